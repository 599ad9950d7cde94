// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the dca-graph CLI. Each pipeline
// stage is a subcommand: convert, templates, enrich, attributes, summarize,
// classify, ask, and graph.
package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/dca-graph/internal/secrets"
	"github.com/pdiddy/dca-graph/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// cfg is the pipeline configuration after defaults, config file, and
	// environment are applied. Commands override it from their flags.
	cfg types.PipelineConfig

	// loadedSecrets holds keys read from .secrets/ at startup.
	loadedSecrets map[string]string

	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
)

var rootCmd = &cobra.Command{
	Use:   "dca-graph",
	Short: "Build and query a knowledge graph of DCA data models",
	Long: `dca-graph converts DCA JSON-LD data models to Turtle, classifies their
templates (role, species, file type), loads everything into a triple store,
and exports the attributes used by each class of template.

Typical run: convert, templates, enrich, then attributes. The ask command
answers questions about the loaded graph.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := secrets.LoadEnv(".env"); err != nil {
			logger.Warn("ignoring .env", "error", err)
		}
		s, err := secrets.Load(".secrets/", os.Stderr)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			logger.Info("loaded secrets", "keys", keys)
		}

		c, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		cfg = c
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (default: ./dca-graph.yaml or ~/.config/dca-graph/dca-graph.yaml)")
}

// loadConfig layers the config file and DCA_GRAPH_* environment variables
// over DefaultPipelineConfig. The defaults are read first so every key is
// known to viper and can be overridden from the environment.
func loadConfig(cmd *cobra.Command) (types.PipelineConfig, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	defaults, err := yaml.Marshal(types.DefaultPipelineConfig())
	if err != nil {
		return types.PipelineConfig{}, fmt.Errorf("encoding defaults: %w", err)
	}
	if err := v.ReadConfig(bytes.NewReader(defaults)); err != nil {
		return types.PipelineConfig{}, fmt.Errorf("reading defaults: %w", err)
	}

	cfgFile, _ := cmd.Flags().GetString("config")
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("dca-graph")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "dca-graph"))
		}
	}
	if err := v.MergeInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return types.PipelineConfig{}, fmt.Errorf("reading config: %w", err)
		}
	} else {
		logger.Info("using config file", "path", v.ConfigFileUsed())
	}

	v.SetEnvPrefix("DCA_GRAPH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	c := types.DefaultPipelineConfig()
	if err := v.Unmarshal(&c); err != nil {
		return types.PipelineConfig{}, fmt.Errorf("decoding config: %w", err)
	}
	return c, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
