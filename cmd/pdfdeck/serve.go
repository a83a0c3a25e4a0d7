package main

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/meshint/pdfdeck/internal/webui"
	"github.com/meshint/pdfdeck/pkg/types"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web front end",
	Long: `Serve starts an HTTP server with an upload form. A posted PDF is
converted and streamed back as a .pptx download.

By default the server binds 127.0.0.1:7860 for local use. Hosted
deployments set the HOST/PORT environment variables (or a .env file);
PORT takes precedence over the configured port.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("host", "", "bind address")
	serveCmd.Flags().Int("port", 0, "listen port")
	viper.BindPFlag("serve.host", serveCmd.Flags().Lookup("host"))
	viper.BindPFlag("serve.port", serveCmd.Flags().Lookup("port"))

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	// Hosted platforms inject HOST/PORT; a local .env file works too.
	_ = godotenv.Load()
	if h := os.Getenv("HOST"); h != "" {
		viper.Set("serve.host", h)
	}
	if p := os.Getenv("PORT"); p != "" {
		port, err := strconv.Atoi(p)
		if err == nil {
			viper.Set("serve.port", port)
		}
	}

	cfg := loadConfig()
	logger := newLogger(cfg.Serve)

	return webui.New(cfg.Serve, logger).ListenAndServe()
}

// newLogger builds the server logger per configuration: console or JSON
// encoding at the configured level.
func newLogger(cfg types.ServeConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if cfg.LogFormat == "console" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		logger = zerolog.New(os.Stderr)
	}
	return logger.Level(level).With().Timestamp().Str("service", "pdfdeck").Logger()
}
