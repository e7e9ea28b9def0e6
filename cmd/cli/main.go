package main

import (
	"fmt"
	"os"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/ouestweb/siteaudit/pkg/runtime/terminal"
	"github.com/ouestweb/siteaudit/pkg/services/config"
	"github.com/ouestweb/siteaudit/pkg/services/disclosure"
	"github.com/ouestweb/siteaudit/pkg/services/normalize"
	"github.com/ouestweb/siteaudit/pkg/services/report"
	"github.com/ouestweb/siteaudit/pkg/services/scanner"
	"github.com/spf13/cobra"
)

var (
	cfgPath string
	rawURL  string
	lang    string
	pdfPath string
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "siteaudit",
		Short: "Run a one-off security audit against a site",
		RunE:  runAudit,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "", "Path to an optional config file")
	rootCmd.Flags().StringVarP(&rawURL, "url", "u", "", "Site to audit")
	rootCmd.Flags().StringVarP(&lang, "lang", "l", "fr", "Report language (fr, en)")
	rootCmd.Flags().StringVarP(&pdfPath, "pdf", "o", "", "Write the PDF report to this path")
	_ = rootCmd.MarkFlagRequired("url")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printBanner() {
	figure.NewColorFigure("SITEAUDIT", "doom", "cyan", true).Print()

	cyan := color.New(color.FgCyan)
	_, _ = cyan.Println("────────────────────────────────────────────────")
}

func runAudit(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err == nil {
		fmt.Println("Loaded settings from .env")
	}

	printBanner()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	client, err := scanner.NewClient(scanner.Config{
		BaseURL: cfg.Scanner.BaseURL,
		APIKey:  cfg.Scanner.APIKey,
		Timeout: time.Duration(cfg.Scanner.TimeoutSeconds) * time.Second,
	})
	if err != nil {
		return fmt.Errorf("failed to create scanner client: %w", err)
	}

	url := normalize.URL(rawURL)
	if url == "" {
		return fmt.Errorf("a non-empty url is required")
	}

	fmt.Printf("Auditing %s ...\n", url)
	raw, err := client.PerformAudit(cmd.Context(), url)
	if err != nil {
		return err
	}

	// Operator tool: always the full, unfiltered view.
	full := disclosure.FilterFull(raw)

	if err := terminal.NewReporter(os.Stdout).Handle(full); err != nil {
		return err
	}

	if pdfPath != "" {
		doc, err := report.NewRenderer().Render(full, lang)
		if err != nil {
			return err
		}
		if err := os.WriteFile(pdfPath, doc, 0o644); err != nil {
			return fmt.Errorf("failed to write PDF report: %w", err)
		}
		fmt.Printf("PDF report written to %s\n", pdfPath)
	}

	return nil
}
