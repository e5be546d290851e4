// ABOUTME: Remind command running the local reminder loop.
// ABOUTME: Fires configured daily times until interrupted.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mealog/mealog/internal/config"
	"github.com/mealog/mealog/internal/remind"
	"github.com/mealog/mealog/internal/ui"
	"github.com/spf13/cobra"
)

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Run meal reminders",
	Long:  `Run in the foreground and print a reminder at each configured time (config "reminders", e.g. "12:30"). Ctrl-C stops all timers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(cfg.Reminders) == 0 {
			return fmt.Errorf("no reminders configured in %s", config.ConfigPath())
		}

		scheduler := remind.NewScheduler(func(message string) {
			fmt.Println(ui.Success(message))
		})
		defer scheduler.Stop()

		for _, spec := range cfg.Reminders {
			hour, minute, err := config.ParseReminder(spec)
			if err != nil {
				return err
			}
			scheduler.Add(hour, minute, fmt.Sprintf("Time to log a meal (%s)", spec))
		}

		fmt.Printf("Running %d reminder(s). Ctrl-C to stop.\n", scheduler.Pending())

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		return nil
	},
}

func init() {
	rootCmd.AddCommand(remindCmd)
}
