package cmd

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"
	"github.com/suderio/recall/internal/journal"
)

var logCmd = &cobra.Command{
	Use:   "log [session]",
	Short: "Replay and summarize a combat journal",
	Long: `Prints the journal of a past fight followed by a summary.
Without a session id the most recent journal is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		listOnly, _ := cmd.Flags().GetBool("list")
		quiet, _ := cmd.Flags().GetBool("summary")

		manager := journal.NewManager(cfg.JournalDir)
		w := cmd.OutOrStdout()

		if listOnly {
			ids, err := manager.List()
			if err != nil {
				return err
			}
			for _, id := range ids {
				fmt.Fprintln(w, id)
			}
			return nil
		}

		id := ""
		if len(args) == 1 {
			id = args[0]
		} else {
			latest, err := manager.Latest()
			if err != nil {
				return err
			}
			id = latest
		}

		store, err := manager.Open(id)
		if err != nil {
			return err
		}
		defer store.Close()

		records, err := store.Load()
		if err != nil {
			return err
		}

		if !quiet {
			for _, r := range records {
				if msg := r.Message(); msg != "" {
					fmt.Fprintln(w, msg)
				}
			}
			fmt.Fprintln(w)
		}
		printSummary(w, journal.Summarize(records))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logCmd)
	logCmd.Flags().BoolP("list", "l", false, "List the journals, oldest first")
	logCmd.Flags().BoolP("summary", "s", false, "Only print the summary")
}

func printSummary(w io.Writer, s *journal.Summary) {
	fmt.Fprintf(w, "Sessions: %d  Actions: %d  Recalls: %d  Last turn: %d\n", s.Sessions, s.Actions, s.Recalls, s.LastTurn)
	printCounts(w, "Outcomes", s.Outcomes)
	printCounts(w, "Acts used", s.Uses)
	printCounts(w, "Recipes forged", s.Recipes)
	printCounts(w, "Rejections", s.Rejections)

	if len(s.Damage) > 0 {
		fmt.Fprintln(w, "Damage dealt:")
		ids := make([]int, 0, len(s.Damage))
		for id := range s.Damage {
			ids = append(ids, id)
		}
		sort.Ints(ids)
		for _, id := range ids {
			fmt.Fprintf(w, "  #%-4d %d\n", id, s.Damage[id])
		}
	}
}

func printCounts(w io.Writer, title string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	fmt.Fprintf(w, "%s:\n", title)
	for _, k := range keys {
		fmt.Fprintf(w, "  %-16s %d\n", k, counts[k])
	}
}
