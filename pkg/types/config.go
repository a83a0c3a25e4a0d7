package types

// ConvertConfig holds settings for the convert command.
type ConvertConfig struct {
	// DPI is the rasterization resolution when no flag or positional
	// argument overrides it (default 100).
	DPI int `json:"dpi" yaml:"dpi"`
}

// ServeConfig holds settings for the web front end. The local and hosted
// deployments run the same server; hosted platforms override the bind
// address and port through the environment.
type ServeConfig struct {
	// Host is the bind address (default 127.0.0.1; hosted deployments
	// set 0.0.0.0).
	Host string `json:"host" yaml:"host"`

	// Port is the listen port (default 7860). The PORT environment
	// variable takes precedence when set.
	Port int `json:"port" yaml:"port"`

	// MaxUploadMB caps the size of an uploaded PDF in megabytes (default 50).
	MaxUploadMB int64 `json:"max_upload_mb" yaml:"max_upload_mb"`

	// LogLevel sets the server log level: debug, info, warn, or error.
	LogLevel string `json:"log_level" yaml:"log_level"`

	// LogFormat selects the server log encoding: console or json.
	LogFormat string `json:"log_format" yaml:"log_format"`
}

// Config groups all pdfdeck settings.
type Config struct {
	Convert ConvertConfig `json:"convert" yaml:"convert"`
	Serve   ServeConfig   `json:"serve" yaml:"serve"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Convert: ConvertConfig{
			DPI: 100,
		},
		Serve: ServeConfig{
			Host:        "127.0.0.1",
			Port:        7860,
			MaxUploadMB: 50,
			LogLevel:    "info",
			LogFormat:   "console",
		},
	}
}
