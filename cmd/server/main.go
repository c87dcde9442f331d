package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/NamixOS/backend/internal/infrastructure/config"
	"github.com/GriffinCanCode/NamixOS/backend/internal/infrastructure/server"
)

var rootCmd = &cobra.Command{
	Use:   "namixos",
	Short: "Serve the NamixOS desktop shell",
	Long:  "Runs the NamixOS shell backend: window lifecycle, taskbar, dock, menus and power screens over HTTP and WebSocket.",
	RunE:  run,
}

func init() {
	flags := rootCmd.Flags()
	flags.String("port", "", "Server port (overrides PORT)")
	flags.String("host", "", "Bind address (overrides HOST)")
	flags.Bool("dev", false, "Development mode: colored debug logs")
	flags.String("catalog", "", "App catalog YAML (overrides SHELL_CATALOG_PATH)")
	flags.String("prefs", "", "Preferences TOML (overrides PREFS_PATH)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	applyFlags(cmd, cfg)

	log.Println("🖥️  NamixOS Shell")

	srv, err := server.NewServer(cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Run()
	}()

	select {
	case <-sigChan:
		log.Println("🛑 Shutting down gracefully...")
		return srv.Close()
	case err := <-errChan:
		_ = srv.Close()
		return err
	}
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if v, _ := flags.GetString("port"); v != "" {
		cfg.Server.Port = v
	}
	if v, _ := flags.GetString("host"); v != "" {
		cfg.Server.Host = v
	}
	if dev, _ := flags.GetBool("dev"); dev {
		cfg.Logging.Development = true
		cfg.Logging.Level = "debug"
	}
	if v, _ := flags.GetString("catalog"); v != "" {
		cfg.Shell.CatalogPath = v
	}
	if v, _ := flags.GetString("prefs"); v != "" {
		cfg.Prefs.Path = v
	}
}
