// Package cli wires the vpress commands: flag parsing, config loading and
// logger construction, delegating the actual work to the pipeline and
// check packages.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/cliang-dev/vpress/internal/config"
	"github.com/cliang-dev/vpress/internal/logging"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:          "vpress",
	Short:        "Hardware HEVC compression with an adaptive VMAF quality search",
	SilenceUsage: true,
}

// Execute is the entry point called from cmd/vpress/main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file path (default: ./vpress.yaml)")
	pf.String("color", "auto", "colored output: auto | always | never")
	pf.BoolP("verbose", "v", false, "verbose output")
	pf.String("log-file", "", "append plain log output to this file")
	pf.String("ffmpeg-bin", "ffmpeg", "ffmpeg binary to invoke")
	pf.String("ffprobe-bin", "ffprobe", "ffprobe binary to invoke")

	bindFlag("color", pf, "color")
	bindFlag("verbose", pf, "verbose")
	bindFlag("log_file", pf, "log-file")
	bindFlag("ffmpeg_bin", pf, "ffmpeg-bin")
	bindFlag("ffprobe_bin", pf, "ffprobe-bin")

	rootCmd.AddCommand(smartCmd)
	rootCmd.AddCommand(compressCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, _ := os.UserHomeDir()
		viper.SetConfigName("vpress")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath(home + "/.vpress")
	}

	viper.SetEnvPrefix("vpress")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		_, notFound := err.(viper.ConfigFileNotFoundError)
		if !notFound && !os.IsNotExist(err) {
			fmt.Fprintln(os.Stderr, "error reading config file:", err)
			os.Exit(1)
		}
	}
}

// loadConfig builds the run configuration from viper and opens the logger.
// The caller must Close the logger.
func loadConfig() (config.Config, *logging.Logger, error) {
	cfg := config.Load(viper.GetViper())
	if err := cfg.Validate(); err != nil {
		return cfg, nil, err
	}
	log, err := logging.NewLogger(cfg.ColorMode, cfg.Verbose, cfg.LogFile)
	if err != nil {
		return cfg, nil, err
	}
	return cfg, log, nil
}

// signalContext returns a context cancelled on SIGINT or SIGTERM, so
// in-flight ffmpeg work is killed and partial outputs cleaned up.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// validatePathNesting resolves input and output, creates the output
// directory, and rejects an output nested inside the input so discovery
// never picks up its own products.
func validatePathNesting(cfg *config.Config, log *logging.Logger) error {
	inputAbs, err := absPath(cfg.Input)
	if err != nil {
		return fmt.Errorf("input not found: %s", cfg.Input)
	}
	info, err := os.Stat(inputAbs)
	if err != nil {
		return fmt.Errorf("input not found: %s", cfg.Input)
	}

	outDir := cfg.Output
	if !info.IsDir() && filepath.Ext(outDir) != "" {
		outDir = filepath.Dir(outDir)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("cannot create output directory: %s", outDir)
	}
	if !info.IsDir() {
		return nil
	}

	outputAbs, err := absPath(cfg.Output)
	if err != nil {
		return fmt.Errorf("cannot resolve output path: %s", cfg.Output)
	}
	if err := cfg.ValidatePaths(inputAbs, outputAbs); err != nil {
		log.Error("Choose an output path outside: %s", cfg.Input)
		return err
	}
	return nil
}

// absPath returns the absolute path with symlinks resolved, for comparing
// input vs output hierarchy.
func absPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}

func bindFlag(viperKey string, fs *pflag.FlagSet, flagName string) {
	if err := viper.BindPFlag(viperKey, fs.Lookup(flagName)); err != nil {
		panic(fmt.Sprintf("bindFlag %q -> %q: %v", flagName, viperKey, err))
	}
}

// bindLocalFlags returns a PreRunE that binds the command's own flags to
// their viper keys. Several commands share keys (encoder, force, ...);
// viper keeps only the last BindPFlag per key, so binding at init time
// would leave every shared key pointing at whichever command's init ran
// last. Re-binding when the command actually runs makes its FlagSet
// authoritative.
func bindLocalFlags(bindings map[string]string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		for key, flag := range bindings {
			if err := viper.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
				return fmt.Errorf("bind %q -> %q: %w", flag, key, err)
			}
		}
		return nil
	}
}
