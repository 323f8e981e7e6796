package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/cperrin88/vpmsync/internal/logger"
	"github.com/cperrin88/vpmsync/pkg/config"
	"github.com/cperrin88/vpmsync/pkg/environment"
	vhttp "github.com/cperrin88/vpmsync/pkg/http"
)

// These variables will be set by the main package
var (
	ConfigPath   *string
	Verbose      *bool
	OutputFormat *string
)

// stdout is where command results are printed. Logs go to stderr.
var stdout io.Writer = os.Stdout

func getConfigPath() string {
	if ConfigPath != nil && *ConfigPath != "" {
		return *ConfigPath
	}

	defaultPath, err := config.GetDefaultConfigPath()
	if err != nil {
		// An empty path makes the next read or write fail with a descriptive error
		logger.Warn("Failed to get default config path, using empty path", logger.Fields{"error": err.Error()})
		return ""
	}
	return defaultPath
}

// loadConfig loads the configuration and applies the global flags to it.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(getConfigPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if OutputFormat != nil && *OutputFormat != "" {
		cfg.Settings.OutputFormat = *OutputFormat
	}
	if Verbose != nil && *Verbose {
		cfg.Settings.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setupLogger configures the process logger from the configuration.
func setupLogger(cfg *config.Config) {
	logger.SetLogFile(cfg.Settings.LogFile)
	logger.InitLogger(cfg.Settings.LogLevel, logger.FormatText)
}

// loadService builds the environment service over the settings file.
func loadService() (*environment.Service, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	setupLogger(cfg)

	client := vhttp.NewHTTPClient(cfg.Settings.HTTPTimeout, vhttp.DefaultUserAgent)
	svc := environment.New(config.NewManager(getConfigPath()), client, cfg.GetCacheDir())
	return svc, cfg, nil
}

func jsonOutput(cfg *config.Config) bool {
	return cfg.Settings.OutputFormat == "json"
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}
