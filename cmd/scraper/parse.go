package main

import (
	"bufio"
	"encoding/json"
	"strings"

	"github.com/aluiziolira/go-scrape-recipes/ingredient"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse [line...]",
	Short: "Split ingredient lines into quantity, unit, name and notes",
	Long: `Parse prints one JSON object per ingredient line. Lines are read from stdin
when none are given as arguments.

Examples:
  scraper parse "2 1/2 tazas de harina (tamizada)"
  cat ingredients.txt | scraper parse`,
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	lines := args
	if len(lines) == 0 {
		sc := bufio.NewScanner(cmd.InOrStdin())
		for sc.Scan() {
			if line := strings.TrimSpace(sc.Text()); line != "" {
				lines = append(lines, line)
			}
		}
		if err := sc.Err(); err != nil {
			return err
		}
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	for _, parsed := range ingredient.ParseAll(lines) {
		if err := enc.Encode(parsed); err != nil {
			return err
		}
	}
	return nil
}
