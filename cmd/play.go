/*
Copyright © 2026 Paulo Suderio
*/
package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/suderio/recall/internal/data"
	"github.com/suderio/recall/internal/engine"
	"github.com/suderio/recall/internal/journal"
	"github.com/suderio/recall/internal/session"
)

var playCmd = &cobra.Command{
	Use:   "play [encounter]",
	Short: "Fight an encounter",
	Long: `Loads an encounter and starts an interactive fight.
Usage:
	> attack to: 2
	> recall 0 1
	> recall 0 1 pick: 1
	> use 1
	> end`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")
		plain, _ := cmd.Flags().GetBool("plain")
		noJournal, _ := cmd.Flags().GetBool("no-journal")

		enc, err := loadEncounter(args, file)
		if err != nil {
			return err
		}

		opts := sessionOptions()
		if !noJournal {
			store, err := journal.NewManager(cfg.JournalDir).Create(opts.ID)
			if err != nil {
				return err
			}
			opts.Journal = store
		}

		app, err := session.New(enc, opts)
		if err != nil {
			return fmt.Errorf("failed to bootstrap combat session: %w", err)
		}
		defer app.Close()

		if plain {
			return runPlain(app, cmd.InOrStdin(), cmd.OutOrStdout())
		}
		return RunTUI(app)
	},
}

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().StringP("file", "f", "", "Path to an encounter file, instead of a name")
	playCmd.Flags().Bool("plain", false, "Line mode without the full screen interface")
	playCmd.Flags().Bool("no-journal", false, "Do not write a combat journal")
}

// loadEncounter resolves the encounter named by args or the --file flag.
func loadEncounter(args []string, file string) (*data.Encounter, error) {
	loader := data.NewLoader(cfg.DataDirs)
	if file != "" {
		return loader.LoadEncounterFile(file)
	}
	if len(args) == 0 {
		names, err := loader.ListEncounters()
		if err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("must name an encounter or pass --file (available: %s)", strings.Join(names, ", "))
	}
	return loader.LoadEncounter(args[0])
}

func sessionOptions() session.Options {
	return session.Options{
		ID:             uuid.NewString(),
		MaxIterations:  cfg.MaxIterations,
		MemoryCapacity: cfg.MemoryCapacity,
		SlotCapacity:   cfg.SlotCapacity,
		Logger:         logger,
	}
}

// runPlain is the line-mode loop: one console command per line until the
// fight ends, the input closes or the player quits.
func runPlain(app *session.Session, in io.Reader, out io.Writer) error {
	sig := app.Start()
	printLines(out, app.Feed())
	fmt.Fprintf(out, "Fighting %s. Type 'help' for commands.\n\n", app.Encounter())

	scanner := bufio.NewScanner(in)
	for sig != engine.CombatEnd {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		res, err := app.Execute(line)
		if res != "" {
			fmt.Fprintln(out, res)
		}
		if errors.Is(err, session.ErrQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
		}
		sig = signalOf(app)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	fmt.Fprintf(out, "Result: %s\n", app.Snapshot().Outcome)
	return nil
}

// signalOf maps the session state to the signal the loop waits on.
func signalOf(app *session.Session) engine.Signal {
	if app.Snapshot().Outcome != engine.Ongoing {
		return engine.CombatEnd
	}
	return engine.WaitInput
}

func printLines(out io.Writer, lines []string) {
	for _, l := range lines {
		fmt.Fprintln(out, l)
	}
}
