// Package cli implements the command-line interface for the fitness advisor.
package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/fit-advisor/internal/config"
	"github.com/fit-advisor/internal/controller"
	"github.com/fit-advisor/internal/logging"
	"github.com/fit-advisor/internal/web"
)

// CLI encapsulates the command-line interface
type CLI struct {
	rootCmd *cobra.Command
	logger  *logging.Logger
	ctrl    *controller.Controller
	ctrlErr error
}

// New creates a new CLI instance
func New() *CLI {
	cfg := config.Get()
	logger, _ := logging.New(logging.Config{
		Level:       logging.ParseLevel(cfg.Logging.Level),
		LogDir:      cfg.Logging.LogDir,
		EnableFile:  cfg.Logging.EnableFile,
		EnableColor: cfg.Logging.EnableColor,
		Component:   "cli",
	})
	if logger == nil {
		logger = logging.GetDefault()
	}

	cli := &CLI{logger: logger}
	cli.ctrl, cli.ctrlErr = controller.New()
	cli.buildCommands()
	return cli
}

// Execute runs the CLI
func (c *CLI) Execute() error {
	return c.rootCmd.Execute()
}

// controller returns the shared controller, surfacing a startup failure
// (bad catalog overlay file, usually) at command time rather than at init.
func (c *CLI) controller() (*controller.Controller, error) {
	if c.ctrlErr != nil {
		return nil, fmt.Errorf("failed to initialize advisor: %w", c.ctrlErr)
	}
	return c.ctrl, nil
}

// buildCommands constructs the command tree
func (c *CLI) buildCommands() {
	c.rootCmd = &cobra.Command{
		Use:   "fit-advisor",
		Short: "Personal fitness and diet advisor",
		Long: `
   _____ ___ _____      _    ______     _____ ____   ___  ____
  |  ___|_ _|_   _|    / \  |  _ \ \   / /_ _/ ___| / _ \|  _ \
  | |_   | |  | |     / _ \ | | | \ \ / / | |\___ \| | | | |_) |
  |  _|  | |  | |    / ___ \| |_| |\ V /  | | ___) | |_| |  _ <
  |_|   |___| |_|   /_/   \_\____/  \_/  |___|____/ \___/|_| \_\

  Log workouts in plain English, track calories and BMI, and get
  diet and health suggestions tailored to your goal.

  Describe a workout like "I did 30 minutes of cycling" and the
  advisor extracts the activity and duration, estimates calories
  burned from MET values, and keeps a running session history.`,
		Version: "1.0.0",
	}

	// Add subcommands
	c.rootCmd.AddCommand(c.logCmd())
	c.rootCmd.AddCommand(c.historyCmd())
	c.rootCmd.AddCommand(c.summaryCmd())
	c.rootCmd.AddCommand(c.profileCmd())
	c.rootCmd.AddCommand(c.suggestCmd())
	c.rootCmd.AddCommand(c.activitiesCmd())
	c.rootCmd.AddCommand(c.topicsCmd())
	c.rootCmd.AddCommand(c.webCmd())
}

// logCmd creates the workout logging command
func (c *CLI) logCmd() *cobra.Command {
	var (
		weightKg float64
		heightCm float64
		date     string
	)

	cmd := &cobra.Command{
		Use:   "log [description]",
		Short: "Log a workout from a free-text description",
		Long: `Log a workout described in plain English. The description must
include a duration ("30 minutes", "45 min") and a known activity.

Examples:
  # Log a ride with default profile values
  fit-advisor log "I did 30 minutes of cycling"

  # Log with your own measurements
  fit-advisor log "ran for 20 min before work" --weight 80 --height 185

  # Backdate an entry
  fit-advisor log "60 minutes of yoga" --date 2026-08-25`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := c.controller()
			if err != nil {
				return err
			}

			c.logger.Info("Logging workout: weight=%.1f height=%.1f", weightKg, heightCm)

			resp, err := ctrl.LogWorkout(controller.LogWorkoutRequest{
				Text:     args[0],
				WeightKg: weightKg,
				HeightCm: heightCm,
				Date:     date,
			})
			if err != nil {
				return err
			}

			fmt.Printf("✅ %s\n", resp.Summary)
			fmt.Printf("   📅 Date:     %s\n", resp.Record.Date)
			fmt.Printf("   🏃 Activity: %s\n", resp.Record.Activity)
			fmt.Printf("   ⏱️  Duration: %d min\n", resp.Record.DurationMinutes)
			fmt.Printf("   🔥 Calories: %.2f\n", resp.Record.Calories)
			fmt.Printf("   📊 BMI:      %.2f\n", resp.Record.BMI)
			return nil
		},
	}

	defaults := config.Get().Profile
	cmd.Flags().Float64Var(&weightKg, "weight", defaults.DefaultWeightKg, "Body weight in kg")
	cmd.Flags().Float64Var(&heightCm, "height", defaults.DefaultHeightCm, "Height in cm")
	cmd.Flags().StringVar(&date, "date", "", "Entry date (YYYY-MM-DD, default today)")

	return cmd
}

// historyCmd creates the history command
func (c *CLI) historyCmd() *cobra.Command {
	var tail int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent workouts from this session",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := c.controller()
			if err != nil {
				return err
			}

			records := ctrl.History(tail)
			if len(records) == 0 {
				fmt.Println("No workouts logged yet in this session.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "DATE\tACTIVITY\tDURATION\tCALORIES\tBMI")
			fmt.Fprintln(w, "----\t--------\t--------\t--------\t---")
			for _, rec := range records {
				fmt.Fprintf(w, "%s\t%s\t%d min\t%.2f\t%.2f\n",
					rec.Date, rec.Activity, rec.DurationMinutes, rec.Calories, rec.BMI)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&tail, "tail", 0, "Number of recent entries to show (0 = configured default)")

	return cmd
}

// summaryCmd creates the session summary command
func (c *CLI) summaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show calorie totals for this session",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := c.controller()
			if err != nil {
				return err
			}

			summary := ctrl.Summary()
			fmt.Printf("Workouts logged: %d\n", summary.TotalWorkouts)
			fmt.Printf("Total calories:  %.2f\n", summary.TotalCalories)
			if len(summary.CaloriesByActivity) == 0 {
				return nil
			}

			fmt.Println()
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ACTIVITY\tCALORIES")
			fmt.Fprintln(w, "--------\t--------")
			for activity, calories := range summary.CaloriesByActivity {
				fmt.Fprintf(w, "%s\t%.2f\n", activity, calories)
			}
			return w.Flush()
		},
	}
}

// profileCmd creates the diet recommendation command
func (c *CLI) profileCmd() *cobra.Command {
	var (
		weightKg float64
		heightCm float64
	)

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Compute BMI, weight goal, and meal suggestions",
		Long: `Compute BMI from weight and height, classify the weight goal
(gain, maintain, lose), and suggest five meals for that goal.

Examples:
  fit-advisor profile --weight 70 --height 170
  fit-advisor profile --weight 55 --height 180`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := c.controller()
			if err != nil {
				return err
			}

			resp, err := ctrl.EvaluateProfile(weightKg, heightCm)
			if err != nil {
				return err
			}

			fmt.Printf("📊 BMI: %.2f\n", resp.BMI)
			fmt.Printf("🎯 Goal: %s weight\n", resp.Goal)
			fmt.Println()
			fmt.Println("🍽️  Suggested meals:")
			for _, food := range resp.Foods {
				fmt.Printf("   • %s\n", food)
			}
			return nil
		},
	}

	defaults := config.Get().Profile
	cmd.Flags().Float64Var(&weightKg, "weight", defaults.DefaultWeightKg, "Body weight in kg")
	cmd.Flags().Float64Var(&heightCm, "height", defaults.DefaultHeightCm, "Height in cm")

	return cmd
}

// suggestCmd creates the health suggestion command
func (c *CLI) suggestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "suggest [query]",
		Short: "Get a health suggestion for a described issue",
		Long: `Look up a health issue in the knowledge catalog and print
a description with practical tips.

Examples:
  fit-advisor suggest "I keep getting headaches"
  fit-advisor suggest "my blood pressure is high"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := c.controller()
			if err != nil {
				return err
			}

			fmt.Println(ctrl.HealthSuggestion(args[0]))
			return nil
		},
	}
}

// activitiesCmd creates the catalog listing command
func (c *CLI) activitiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "activities",
		Short: "List recognized activities and their MET values",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := c.controller()
			if err != nil {
				return err
			}

			entries := ctrl.Activities()
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ACTIVITY\tMET")
			fmt.Fprintln(w, "--------\t---")
			for _, entry := range entries {
				fmt.Fprintf(w, "%s\t%.1f\n", entry.Name, entry.MET)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Printf("\nTotal: %d activities\n", len(entries))
			return nil
		},
	}
}

// topicsCmd creates the knowledge listing command
func (c *CLI) topicsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "topics",
		Short: "List known health topics",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := c.controller()
			if err != nil {
				return err
			}

			topics := ctrl.Topics()
			for _, topic := range topics {
				fmt.Printf("  • %s\n", topic.Key)
			}
			fmt.Printf("\nTotal: %d topics\n", len(topics))
			return nil
		},
	}
}

// webCmd creates the web UI command
func (c *CLI) webCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "web",
		Short: "Start the web UI",
		Long: `Start a web-based user interface for the fitness advisor.

The web UI provides:
  - Free-text workout logging with live calorie estimates
  - BMI and diet suggestions from your measurements
  - Health advisor lookups
  - Session history with per-activity calorie totals

Examples:
  # Start web UI on the configured port
  fit-advisor web

  # Start on custom port
  fit-advisor web --port 3000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("🌐 Starting Fit Advisor Web UI...")
			fmt.Printf("   Open http://localhost:%d in your browser\n", port)
			fmt.Println("   Press Ctrl+C to stop")
			fmt.Println()

			server, err := web.NewServer(port)
			if err != nil {
				return err
			}
			return server.Start()
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", config.Get().Server.Port, "Port to run the web server on")

	return cmd
}
