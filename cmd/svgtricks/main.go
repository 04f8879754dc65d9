package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/benoitkugler/svgtricks/svgicon"
)

var (
	// Global flags
	verbose    bool
	configPath string
	errorMode  string

	// Settings, from the config file and the global flags
	cfg = defaultConfig()

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "svgtricks",
	Short: "Write SVG drawings, rulers and their PNG or PDF renderings",
	Long: `svgtricks builds SVG documents from declarative scene files (YAML or TOML),
draws measurement rulers, and renders SVG files to PNG or PDF.

Logs go to stderr, so that documents can be written to stdout.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize logger
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		cfg = defaultConfig()
		if configPath != "" {
			cfg, err = loadConfig(configPath)
			if err != nil {
				return err
			}
			logger.Debug("loaded config", zap.String("path", configPath))
		}
		if errorMode != "" {
			mode, ok := svgicon.ParseErrorMode(errorMode)
			if !ok {
				return fmt.Errorf("invalid --error-mode %q (expected ignore, warn or strict)", errorMode)
			}
			cfg.ErrorMode = mode
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "TOML config file with default settings")
	rootCmd.PersistentFlags().StringVar(&errorMode, "error-mode", "", "Reaction to unsupported SVG elements: ignore, warn or strict")

	// Add commands to root
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(rasterizeCmd)
	rootCmd.AddCommand(ruleCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
