package main

import "github.com/fitlog/fitlog-cli/cmd/fitlog"

func main() {
	fitlog.Execute()
}
