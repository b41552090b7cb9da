package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/hugr-lab/crnk-filtering/internal/preset"
)

var (
	logLevel  string
	presetDir string

	logger = slog.Default()
)

func defaultPresetDir() string {
	dir, err := preset.DefaultDir()
	if err != nil {
		return ".crnkq"
	}
	return dir
}

func defaultLogLevel() string {
	if l := os.Getenv("CRNKQ_LOG_LEVEL"); l != "" {
		return l
	}
	return "warn"
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}

var rootCmd = &cobra.Command{
	Use:           "crnkq",
	Short:         "Build crnk filter, include and sort query parameters",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := parseLevel(logLevel)
		if err != nil {
			return err
		}
		logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
		return nil
	},
}

func init() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "warning: failed to load .env: %v\n", err)
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", defaultLogLevel(), "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&presetDir, "preset-dir", defaultPresetDir(), "directory holding saved presets")

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(presetCmd)
	rootCmd.AddCommand(sqlCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
