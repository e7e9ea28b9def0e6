package main

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/ouestweb/siteaudit/pkg/server"
	"github.com/ouestweb/siteaudit/pkg/services/config"
	"github.com/ouestweb/siteaudit/pkg/services/notify"
	"github.com/ouestweb/siteaudit/pkg/services/report"
	"github.com/ouestweb/siteaudit/pkg/services/scanner"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the site audit web server",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to an optional config file (environment variables are used by default)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	scannerClient, err := scanner.NewClient(scanner.Config{
		BaseURL: cfg.Scanner.BaseURL,
		APIKey:  cfg.Scanner.APIKey,
		Timeout: time.Duration(cfg.Scanner.TimeoutSeconds) * time.Second,
	})
	if err != nil {
		return fmt.Errorf("failed to create scanner client: %w", err)
	}

	dispatcher, err := notify.NewDispatcher(notify.Config{
		BaseURL:       cfg.Email.BaseURL,
		APIKey:        cfg.Email.APIKey,
		SenderName:    cfg.Email.SenderName,
		SenderEmail:   cfg.Email.SenderEmail,
		ReportListID:  cfg.Email.ReportListID,
		ContactListID: cfg.Email.ContactListID,
	})
	if err != nil {
		return fmt.Errorf("failed to create notification dispatcher: %w", err)
	}

	webAPI := server.NewWebAPI(logger, server.Config{
		Addr:            net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		ShutdownTimeout: 10 * time.Second,
		Dependencies: server.Dependencies{
			Scanner:    scannerClient,
			Renderer:   report.NewRenderer(),
			Dispatcher: dispatcher,
		},
	})

	return webAPI.Start()
}
