// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the procurement-parser CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/procurement-parser/internal/logger"
	"github.com/pdiddy/procurement-parser/internal/output"
	"github.com/pdiddy/procurement-parser/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// cfg is loaded from flags, environment and config file before any
// subcommand runs.
var cfg types.Config

// rootCmd is the base command for the procurement-parser CLI.
var rootCmd = &cobra.Command{
	Use:   "procurement-parser",
	Short: "Extract structured facts from Russian public procurement PDFs",
	Long: `procurement-parser reads procurement notices and contract documents
published under 44-FZ and pulls out the initial maximum contract price (НМЦК),
the procurement method and the notice dates.

Results are written to stdout as JSON (default), YAML or a text summary.
Logs go to stderr.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if configErr != nil {
			return configErr
		}
		if err := viper.Unmarshal(&cfg); err != nil {
			return fmt.Errorf("loading configuration: %w", err)
		}
		logger.Init(cfg.Log, os.Stderr)
		if f := viper.ConfigFileUsed(); f != "" {
			slog.Debug("using config file", "path", f)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./procurement-parser.yaml or ~/.config/procurement-parser/procurement-parser.yaml)")
	pf.String("backend", string(types.BackendNative), "reader backend: native or pdftotext")
	pf.Bool("validate", false, "validate PDF structure before reading")
	pf.String("pdftotext", "", "pdftotext binary for the pdftotext backend (default from PATH)")
	pf.String("container-image", "", "run pdftotext inside this container image via docker or podman")
	pf.StringP("format", "f", string(types.OutputJSON), "output format: json, yaml or text")
	pf.Int("indent", 2, "indentation for JSON and YAML output")
	pf.String("log-level", "info", "log level: debug, info, warn or error")
	pf.String("log-format", "text", "log format: text or json")

	bindFlags(map[string]string{
		"reader.backend":         "backend",
		"reader.validate":        "validate",
		"reader.pdftotext_path":  "pdftotext",
		"reader.container_image": "container-image",
		"output.format":          "format",
		"output.indent":          "indent",
		"log.level":              "log-level",
		"log.format":             "log-format",
	})
}

// configErr holds the failure, if any, of reading the config file. It is
// reported once the logger is set up.
var configErr error

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")

	var paths []string
	if cfgFile == "" {
		paths = append(paths, ".")
		if home, err := os.UserHomeDir(); err == nil {
			paths = append(paths, filepath.Join(home, ".config", "procurement-parser"))
		}
	}

	viper.SetEnvPrefix("PROCUREMENT_PARSER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	configErr = readConfig(viper.GetViper(), cfgFile, paths...)
}

// readConfig loads cfgFile into v, or searches paths for
// procurement-parser.yaml when cfgFile is empty. Finding no file on the
// search paths is not an error; a file that cannot be read or parsed is.
func readConfig(v *viper.Viper, cfgFile string, paths ...string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("procurement-parser")
		v.SetConfigType("yaml")
		for _, p := range paths {
			v.AddConfigPath(p)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}
	return nil
}

// bindFlags binds each viper key to the persistent flag of the given name.
func bindFlags(keys map[string]string) {
	for key, name := range keys {
		if err := viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(name)); err != nil {
			panic(err)
		}
	}
}

// openOutput returns the writer results go to: the --output file when set,
// stdout otherwise.
func openOutput(cmd *cobra.Command) (io.Writer, func() error, error) {
	path, _ := cmd.Flags().GetString("output")
	if path == "" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("creating output file: %w", err)
	}
	return f, f.Close, nil
}

// writeResult encodes v with the configured output settings.
func writeResult(cmd *cobra.Command, v any) error {
	enc, err := output.NewEncoder(cfg.Output)
	if err != nil {
		return err
	}
	w, closeFn, err := openOutput(cmd)
	if err != nil {
		return err
	}
	if err := enc.Encode(w, v); err != nil {
		_ = closeFn()
		return err
	}
	return closeFn()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		slog.Error("command failed", "error", err)
		stop()
		os.Exit(1)
	}
}
