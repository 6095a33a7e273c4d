package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"choromap/internal/config"
	"choromap/internal/logging"
	"choromap/internal/tui"
)

var (
	configPath string
	colorProp  string
	logFile    string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "choromap [file]",
	Short: "Terminal choropleth viewer for GeoJSON, CSV, KML and WKT",
	Long: `choromap renders geospatial files in the terminal and colors each
feature by comparing a numeric property against class breaks.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML config file")
	rootCmd.Flags().StringVarP(&colorProp, "prop", "p", "", "property used for classification")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "write logs to this file")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if colorProp != "" {
		cfg.Choropleth.ColorProp = colorProp
	}
	if logFile != "" {
		cfg.Logging.File = logFile
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	logger, err := logging.New(cfg.Logging.File, cfg.Logging.Level)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	logger.Info("starting", zap.String("config", configPath), zap.String("prop", cfg.Choropleth.ColorProp))

	var m tea.Model
	if len(args) > 0 {
		m = tui.NewWithPath(args[0], cfg, logger)
	} else {
		m = tui.New(cfg, logger)
	}
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run(); err != nil {
		logger.Error("program exited", zap.Error(err))
		return err
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "choromap:", err)
		os.Exit(1)
	}
}
