package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"studyplan/internal/bootstrap"
	"studyplan/internal/platform/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var homePath string

	root := &cobra.Command{
		Use:           "studyplan",
		Short:         "Study session timing companion",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&homePath, "home", "", "state directory (defaults to ~/.studyplan)")

	root.AddCommand(newTUICmd(&homePath))
	root.AddCommand(newTrackCmd(&homePath))
	root.AddCommand(newPlanCmd(&homePath))
	root.AddCommand(newNotifyCmd(&homePath))
	return root
}

func loadConfig(homePath string) (config.Config, error) {
	home := homePath
	if home == "" {
		resolved, err := config.DefaultHome()
		if err != nil {
			return config.Config{}, err
		}
		home = resolved
	}
	if err := os.MkdirAll(home, 0o755); err != nil {
		return config.Config{}, fmt.Errorf("create home dir: %w", err)
	}
	return config.Load(home)
}

func loadApp(homePath string) (config.Config, *bootstrap.App, error) {
	cfg, err := loadConfig(homePath)
	if err != nil {
		return config.Config{}, nil, err
	}
	app, err := bootstrap.New(cfg)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, app, nil
}

func newTUICmd(homePath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the studyplan terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			return bootstrap.RunTUI(cfg, app)
		},
	}
}

func newTrackCmd(homePath *string) *cobra.Command {
	track := &cobra.Command{Use: "track", Short: "Quick-track task timers"}

	var startTaskID string
	start := &cobra.Command{
		Use:   "start --task-id <id>",
		Short: "Start a background timer for a task",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(startTaskID) == "" {
				return fmt.Errorf("--task-id is required")
			}
			_, app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			out, err := app.QuickTrackCLI.Start(context.Background(), startTaskID)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "tracking %s since %s\n", out.TaskID, out.StartedAt.Format(time.RFC3339))
			return nil
		},
	}
	start.Flags().StringVar(&startTaskID, "task-id", "", "task id")

	var stopTaskID string
	var discard bool
	stop := &cobra.Command{
		Use:   "stop --task-id <id>",
		Short: "Stop a task timer and record the elapsed minutes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(stopTaskID) == "" {
				return fmt.Errorf("--task-id is required")
			}
			_, app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			out, err := app.QuickTrackCLI.Stop(context.Background(), stopTaskID, !discard)
			if err != nil {
				return err
			}
			if out.Save && out.ElapsedMinutes > 0 {
				if _, err := app.PlannerCLI.AddTaskTime(context.Background(), out.TaskID, out.ElapsedMinutes, ""); err != nil {
					return fmt.Errorf("record %d min on %s: %w", out.ElapsedMinutes, out.TaskID, err)
				}
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "stopped %s elapsed=%dmin saved=%t\n", out.TaskID, out.ElapsedMinutes, out.Save && out.ElapsedMinutes > 0)
			return nil
		},
	}
	stop.Flags().StringVar(&stopTaskID, "task-id", "", "task id")
	stop.Flags().BoolVar(&discard, "discard", false, "drop the elapsed time instead of recording it")

	list := &cobra.Command{
		Use:   "list",
		Short: "List running task timers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			timers := app.QuickTrackCLI.List(context.Background())
			if len(timers) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no running timers")
				return nil
			}
			for _, t := range timers {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%dmin\tsince %s\n", t.TaskID, t.ElapsedMinutes, t.StartedAt.Format(time.RFC3339))
			}
			return nil
		},
	}

	track.AddCommand(start, stop, list)
	return track
}

func newPlanCmd(homePath *string) *cobra.Command {
	plan := &cobra.Command{Use: "plan", Short: "Planner schedule queries"}

	var days int
	sessions := &cobra.Command{
		Use:   "sessions",
		Short: "List upcoming scheduled sessions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			from := time.Now().UTC()
			out, err := app.PlannerCLI.UpcomingSessions(context.Background(), from, from.AddDate(0, 0, days))
			if err != nil {
				return err
			}
			if len(out) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no upcoming sessions")
				return nil
			}
			for _, s := range out {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%dmin\t%s\n", s.ID, s.StartTime.Local().Format("Mon 15:04"), s.Status, s.EstimatedMinutes, s.Focus)
			}
			return nil
		},
	}
	sessions.Flags().IntVar(&days, "days", 7, "how many days ahead to list")

	tasks := &cobra.Command{
		Use:   "tasks",
		Short: "List tasks with tracked time",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			out, err := app.PlannerCLI.ListTasks(context.Background())
			if err != nil {
				return err
			}
			if len(out) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no tasks")
				return nil
			}
			for _, t := range out {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\ttracked=%dmin est=%dmin\n", t.ID, t.Status, t.Title, t.TimerMinutesSpent, t.EstimatedMinutes)
			}
			return nil
		},
	}

	plan.AddCommand(sessions, tasks)
	return plan
}

func newNotifyCmd(homePath *string) *cobra.Command {
	notify := &cobra.Command{Use: "notify", Short: "Session start notifications"}

	notify.AddCommand(&cobra.Command{
		Use:   "enable",
		Short: "Enable session start notifications",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			if err := app.NotifyCLI.Enable(context.Background()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "notifications enabled")
			return nil
		},
	})

	notify.AddCommand(&cobra.Command{
		Use:   "disable",
		Short: "Disable session start notifications",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			if err := app.NotifyCLI.Disable(context.Background()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "notifications disabled")
			return nil
		},
	})

	notify.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show notification settings and platform support",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			status, err := app.NotifyCLI.Status(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "enabled=%t supported=%t permission=%t\n", status.Enabled, status.Supported, status.PermissionGranted)
			return nil
		},
	})

	notify.AddCommand(&cobra.Command{
		Use:   "run",
		Short: "Run the notification scheduler in the foreground",
		RunE: func(_ *cobra.Command, _ []string) error {
			_, app, err := loadApp(*homePath)
			if err != nil {
				return err
			}
			return app.NotifyCLI.Run(context.Background())
		},
	})

	return notify
}
