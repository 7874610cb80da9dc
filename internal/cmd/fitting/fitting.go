// Package fitting parses fitting service flags and composes its entrypoint.
package fitting

import (
	"context"
	"flag"
	"fmt"
	"time"

	entrypoint "github.com/arkavale/gearforge/internal/platform/cmd"
	server "github.com/arkavale/gearforge/internal/services/fitting/app"
)

// Config holds fitting service command configuration.
type Config struct {
	HTTPAddr         string        `env:"GEARFORGE_FITTING_HTTP_ADDR"   envDefault:":8080"`
	StoragePath      string        `env:"GEARFORGE_FITTING_DB_PATH"`
	DetectorEndpoint string        `env:"GEARFORGE_DETECTOR_ENDPOINT"`
	ScaleScriptPath  string        `env:"GEARFORGE_SCALE_SCRIPT_PATH"`
	StepDelay        time.Duration `env:"GEARFORGE_FITTING_STEP_DELAY"  envDefault:"0"`
	DetectDebug      bool          `env:"GEARFORGE_DETECT_DEBUG"        envDefault:"false"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "fitting HTTP listen address")
	fs.StringVar(&cfg.StoragePath, "db-path", cfg.StoragePath, "SQLite database path for settings and saved configurations")
	fs.StringVar(&cfg.DetectorEndpoint, "detector-endpoint", cfg.DetectorEndpoint, "grip detection service endpoint")
	fs.StringVar(&cfg.ScaleScriptPath, "scale-script", cfg.ScaleScriptPath, "Lua script path overriding the creature height table")
	fs.DurationVar(&cfg.StepDelay, "step-delay", cfg.StepDelay, "pause between staged fitting progress updates")
	fs.BoolVar(&cfg.DetectDebug, "detect-debug", cfg.DetectDebug, "request diagnostic output from the detection service")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run builds the fitting app and serves it until the context ends.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceFitting, func(context.Context) error {
		if err := server.Run(ctx, server.Config{
			HTTPAddr:         cfg.HTTPAddr,
			StoragePath:      cfg.StoragePath,
			DetectorEndpoint: cfg.DetectorEndpoint,
			ScaleScriptPath:  cfg.ScaleScriptPath,
			StepDelay:        cfg.StepDelay,
			DetectDebug:      cfg.DetectDebug,
		}); err != nil {
			return fmt.Errorf("serve fitting: %w", err)
		}
		return nil
	})
}
