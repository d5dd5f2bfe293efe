package live

// Transform derives a live view from an existing subscription by mapping
// every emission through fn. Cancelling the derived subscription cancels
// the upstream one; an upstream failure propagates to the derived Err().
func Transform[T, U any](in *Subscription[T], fn func(T) U) *Subscription[U] {
	out := newSubscription[U](func(string) { in.Cancel() })
	go func() {
		for v := range in.Updates() {
			out.push(fn(v))
		}
		out.fail(in.Err())
	}()
	return out
}
