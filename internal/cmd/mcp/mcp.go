// Package mcp parses MCP command flags and composes the stdio entrypoint.
package mcp

import (
	"context"
	"flag"
	"fmt"

	mcpserver "github.com/arkavale/gearforge/internal/mcp"
	entrypoint "github.com/arkavale/gearforge/internal/platform/cmd"
)

// Config holds MCP command configuration.
type Config struct {
	DetectorEndpoint string `env:"GEARFORGE_DETECTOR_ENDPOINT"`
	ScaleScriptPath  string `env:"GEARFORGE_SCALE_SCRIPT_PATH"`
	DetectDebug      bool   `env:"GEARFORGE_DETECT_DEBUG" envDefault:"false"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.DetectorEndpoint, "detector-endpoint", cfg.DetectorEndpoint, "grip detection service endpoint")
	fs.StringVar(&cfg.ScaleScriptPath, "scale-script", cfg.ScaleScriptPath, "Lua script path overriding the creature height table")
	fs.BoolVar(&cfg.DetectDebug, "detect-debug", cfg.DetectDebug, "request diagnostic output from the detection service")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run serves the fitting MCP server on stdio until the context ends.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceMCP, func(context.Context) error {
		if err := mcpserver.Run(ctx, mcpserver.Config{
			DetectorEndpoint: cfg.DetectorEndpoint,
			ScaleScriptPath:  cfg.ScaleScriptPath,
			DetectDebug:      cfg.DetectDebug,
		}); err != nil {
			return fmt.Errorf("serve MCP: %w", err)
		}
		return nil
	})
}
