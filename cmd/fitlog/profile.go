package fitlog

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fitlog/fitlog-cli/internal/codec"
	"github.com/fitlog/fitlog-cli/internal/gate"
	"github.com/fitlog/fitlog-cli/internal/model"
	"github.com/fitlog/fitlog-cli/internal/repo"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage the user profile",
}

var (
	profileName          string
	profileAge           int
	profileHeight        float64
	profileStartWeight   float64
	profileCurrentWeight float64
	profileTargetWeight  float64
	profileTargetDate    string
	profileReminder      bool
	profileReminderTime  string
	profileDarkMode      string
)

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Create or replace the profile (completes onboarding)",
	RunE: func(cmd *cobra.Command, args []string) error {
		p := model.Profile{
			Name:            optionalString(profileName),
			Age:             optionalInt(profileAge),
			HeightCm:        optionalFloat(profileHeight),
			StartWeightKg:   profileStartWeight,
			CurrentWeightKg: profileCurrentWeight,
			TargetWeightKg:  profileTargetWeight,
			ReminderEnabled: profileReminder,
		}
		if p.CurrentWeightKg == 0 {
			p.CurrentWeightKg = p.StartWeightKg
		}
		if profileTargetDate != "" {
			d, err := codec.DecodeDate(profileTargetDate)
			if err != nil {
				return err
			}
			p.TargetDate = &d
		}
		if profileReminderTime != "" {
			td, err := codec.DecodeTimeOfDay(profileReminderTime)
			if err != nil {
				return err
			}
			p.ReminderTime = &td
		}
		if profileDarkMode != "" {
			v, err := strconv.ParseBool(profileDarkMode)
			if err != nil {
				return fmt.Errorf("invalid --dark-mode %q (use true or false)", profileDarkMode)
			}
			p.DarkMode = &v
		}
		return withRepo(func(r *repo.Repo) error {
			existing, err := r.Profile()
			if err != nil {
				return err
			}
			if existing == nil {
				if _, err := r.CompleteOnboarding(p); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Profile created, first weight entry logged")
				return nil
			}
			if _, err := r.UpsertProfile(p); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Profile replaced")
			return nil
		})
	},
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRepo(func(r *repo.Repo) error {
			p, err := r.Profile()
			if err != nil {
				return err
			}
			if p == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "No profile yet; run 'fitlog profile set'")
				return nil
			}
			name := ""
			if p.Name != nil {
				name = *p.Name
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Name: %s\n", name)
			if p.Age != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Age: %d\n", *p.Age)
			}
			if p.HeightCm != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Height: %.1f cm\n", *p.HeightCm)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Weight: start %.1f, current %.1f, target %.1f kg\n",
				p.StartWeightKg, p.CurrentWeightKg, p.TargetWeightKg)
			if p.TargetDate != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Target date: %s\n", p.TargetDate)
			}
			if p.ReminderEnabled && p.ReminderTime != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Reminder: %s\n", p.ReminderTime)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", formatStamp(p.CreatedAt))
			return nil
		})
	},
}

var profileWeightCmd = &cobra.Command{
	Use:   "weight <kg>",
	Short: "Update the profile's current weight",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kg, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("invalid weight %q", args[0])
		}
		return withRepo(func(r *repo.Repo) error {
			n, err := r.UpdateCurrentWeight(kg)
			if err != nil {
				return err
			}
			if n == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No profile yet; nothing updated")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Current weight set to %.1f kg\n", kg)
			return nil
		})
	},
}

var profileStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show onboarding state and theme preference",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRepo(func(r *repo.Repo) error {
			g := gate.New(r)
			onboarded, err := g.IsOnboarded()
			if err != nil {
				return err
			}
			dark, err := g.PreferredDarkMode()
			if err != nil {
				return err
			}
			theme := "system"
			if dark != nil {
				if *dark {
					theme = "dark"
				} else {
					theme = "light"
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Onboarded: %t\nTheme: %s\n", onboarded, theme)
			return nil
		})
	},
}

func init() {
	profileSetCmd.Flags().StringVar(&profileName, "name", "", "Display name")
	profileSetCmd.Flags().IntVar(&profileAge, "age", 0, "Age in years")
	profileSetCmd.Flags().Float64Var(&profileHeight, "height", 0, "Height in cm")
	profileSetCmd.Flags().Float64Var(&profileStartWeight, "start-weight", 0, "Starting weight in kg")
	profileSetCmd.Flags().Float64Var(&profileCurrentWeight, "current-weight", 0, "Current weight in kg (defaults to start weight)")
	profileSetCmd.Flags().Float64Var(&profileTargetWeight, "target-weight", 0, "Target weight in kg")
	profileSetCmd.Flags().StringVar(&profileTargetDate, "target-date", "", "Target date (YYYY-MM-DD)")
	profileSetCmd.Flags().BoolVar(&profileReminder, "reminder", false, "Enable the daily reminder")
	profileSetCmd.Flags().StringVar(&profileReminderTime, "reminder-time", "", "Reminder time (HH:MM)")
	profileSetCmd.Flags().StringVar(&profileDarkMode, "dark-mode", "", "Theme preference (true/false; empty follows system)")

	profileCmd.AddCommand(profileSetCmd)
	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileWeightCmd)
	profileCmd.AddCommand(profileStatusCmd)
	rootCmd.AddCommand(profileCmd)
}
