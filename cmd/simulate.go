package cmd

import (
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/suderio/recall/internal/engine"
	"github.com/suderio/recall/internal/session"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate [encounter]",
	Short: "Let the autopilot fight an encounter many times",
	Long: `Runs an encounter repeatedly with a scripted player and reports how often
each side wins. Useful to balance encounter files.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")
		runs, _ := cmd.Flags().GetInt("runs")
		turns, _ := cmd.Flags().GetInt("turns")
		if runs <= 0 {
			return fmt.Errorf("runs must be positive, got %d", runs)
		}

		enc, err := loadEncounter(args, file)
		if err != nil {
			return err
		}

		tally := map[engine.Outcome]int{}
		stopped := 0
		bar := progressbar.Default(int64(runs), fmt.Sprintf("Simulating %s", enc.Name))
		for i := 0; i < runs; i++ {
			app, err := session.New(enc, sessionOptions())
			if err != nil {
				return fmt.Errorf("failed to bootstrap combat session: %w", err)
			}
			out, err := app.Autoplay(turns)
			if err != nil {
				logger.Warn().Err(err).Int("run", i).Msg("simulation stopped early")
				stopped++
			}
			tally[out]++
			bar.Add(1)
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "\n%s after %d runs (max %d turns each):\n", enc.Name, runs, turns)
		for _, o := range []engine.Outcome{engine.Victory, engine.Defeat, engine.Ongoing} {
			fmt.Fprintf(w, "  %-8s %5d  (%.1f%%)\n", o, tally[o], 100*float64(tally[o])/float64(runs))
		}
		if stopped > 0 {
			fmt.Fprintf(w, "  %d runs stopped abnormally, see the log\n", stopped)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(simulateCmd)
	simulateCmd.Flags().StringP("file", "f", "", "Path to an encounter file, instead of a name")
	simulateCmd.Flags().IntP("runs", "n", 100, "Number of fights to simulate")
	simulateCmd.Flags().Int("turns", 30, "Give up a fight after this many turns")
}
