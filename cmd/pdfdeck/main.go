// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pdfdeck CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/meshint/pdfdeck/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the pdfdeck CLI.
var rootCmd = &cobra.Command{
	Use:   "pdfdeck",
	Short: "Convert PDF documents to slide decks, scrubbing the corner watermark",
	Long: `pdfdeck converts a PDF document into a PowerPoint presentation. Each page
is rasterized to an image, the fixed watermark region in the bottom-right
corner is blended away with colors sampled from the surrounding pixels,
and the pages become full-bleed 16:9 slides.

Two front ends share the same conversion core: convert (command line) and
serve (web upload form).`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./pdfdeck.yaml or ~/.config/pdfdeck/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pdfdeck")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pdfdeck"))
		}
	}

	viper.SetEnvPrefix("PDFDECK")
	viper.AutomaticEnv()

	defaults := types.Defaults()
	viper.SetDefault("convert.dpi", defaults.Convert.DPI)
	viper.SetDefault("serve.host", defaults.Serve.Host)
	viper.SetDefault("serve.port", defaults.Serve.Port)
	viper.SetDefault("serve.max_upload_mb", defaults.Serve.MaxUploadMB)
	viper.SetDefault("serve.log_level", defaults.Serve.LogLevel)
	viper.SetDefault("serve.log_format", defaults.Serve.LogFormat)

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig materializes the effective configuration from viper.
func loadConfig() types.Config {
	return types.Config{
		Convert: types.ConvertConfig{
			DPI: viper.GetInt("convert.dpi"),
		},
		Serve: types.ServeConfig{
			Host:        viper.GetString("serve.host"),
			Port:        viper.GetInt("serve.port"),
			MaxUploadMB: viper.GetInt64("serve.max_upload_mb"),
			LogLevel:    viper.GetString("serve.log_level"),
			LogFormat:   viper.GetString("serve.log_format"),
		},
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
