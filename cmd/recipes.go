package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/suderio/recall/internal/data"
	"github.com/suderio/recall/internal/recipe"
	"github.com/suderio/recall/internal/session"
)

var recipesCmd = &cobra.Command{
	Use:   "recipes",
	Short: "List the recall combos",
	Run: func(cmd *cobra.Command, args []string) {
		w := cmd.OutOrStdout()
		fmt.Fprintln(w, "Basic acts:")
		for _, spec := range []recipe.ActSpec{recipe.Attack(), recipe.Block(), recipe.Charge()} {
			fmt.Fprintf(w, "  %s\n", spec.Summary())
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, session.Recipes(recipe.Default()))
	},
}

var encountersCmd = &cobra.Command{
	Use:   "encounters",
	Short: "List the encounters that can be played",
	RunE: func(cmd *cobra.Command, args []string) error {
		names, err := data.NewLoader(cfg.DataDirs).ListEncounters()
		if err != nil {
			return err
		}
		for _, n := range names {
			fmt.Fprintln(cmd.OutOrStdout(), n)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(recipesCmd)
	rootCmd.AddCommand(encountersCmd)
}
