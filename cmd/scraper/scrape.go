package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/aluiziolira/go-scrape-recipes/heroimage"
	"github.com/aluiziolira/go-scrape-recipes/models"
	"github.com/aluiziolira/go-scrape-recipes/scraper"
	"github.com/spf13/cobra"
)

var (
	flagHTMLFile string
	flagImage    bool
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape <url>",
	Short: "Scrape one recipe page and print the outcome as JSON",
	Long: `Scrape fetches a single page, runs the extraction tiers and prints the outcome.

Examples:
  scraper scrape https://example.com/tortilla
  scraper scrape https://example.com/tortilla --html-file saved.html
  scraper scrape https://example.com/tortilla --image`,
	Args: cobra.ExactArgs(1),
	RunE: runScrape,
}

func init() {
	rootCmd.AddCommand(scrapeCmd)

	scrapeCmd.Flags().StringVar(&flagHTMLFile, "html-file", "", "Read page HTML from a file instead of fetching the URL")
	scrapeCmd.Flags().BoolVar(&flagImage, "image", false, "Download and normalize the hero image")
}

type scrapeOutput struct {
	models.Outcome
	ImagePath string `json:"image_path,omitempty"`
}

func runScrape(cmd *cobra.Command, args []string) error {
	if err := validateConfig(); err != nil {
		return err
	}

	s, err := scraper.NewScraper(cfg)
	if err != nil {
		return fmt.Errorf("initialising scraper: %w", err)
	}

	var out models.Outcome
	if flagHTMLFile != "" {
		raw, err := os.ReadFile(flagHTMLFile)
		if err != nil {
			return fmt.Errorf("read html file: %w", err)
		}
		out = s.ScrapeHTML(string(raw), args[0])
	} else {
		out = s.Scrape(cmd.Context(), args[0])
	}

	result := scrapeOutput{Outcome: out}
	if flagImage && out.Success() && out.Recipe.ImageURL != "" {
		retriever := heroimage.NewRetriever(cfg, heroimage.NewFileStore(cfg.ImageDir, cfg.ImageURLPrefix))
		path, err := retriever.Retrieve(cmd.Context(), out.Recipe.ImageURL)
		if err != nil {
			slog.Warn("hero image download failed", slog.String("image_url", out.Recipe.ImageURL), slog.Any("error", err))
		}
		result.ImagePath = path
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return err
	}
	if !out.Success() {
		return fmt.Errorf("scrape %s: %s", out.URL, out.Reason)
	}
	return nil
}
