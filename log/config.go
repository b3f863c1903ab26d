package log

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
	"moul.io/zapfilter"
)

// Config describes per-logger filtering, loaded from a yaml file.
// Filters uses zapfilter rule syntax, for example
// "debug:stitch.* info:*" to debug only the stitcher loggers.
type Config struct {
	DefaultLevel string `yaml:"defaultLevel"`
	Filters      string `yaml:"filters"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read log config %s: %w", path, err)
	}
	cfg := &Config{DefaultLevel: "info"}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("could not parse log config %s: %w", path, err)
	}
	return cfg, nil
}

// NewWithConfig creates a JSON logger whose output is filtered by the
// rules of cfg. Logger names (via Named) are matched against the rules.
func NewWithConfig(writer io.Writer, cfg *Config, opts ...Option) (*Logger, error) {
	if writer == nil {
		writer = os.Stderr
	}
	level, err := ParseLevel(cfg.DefaultLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid default level %q: %w", cfg.DefaultLevel, err)
	}
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encCfg),
		zapcore.AddSync(writer),
		zapcore.DebugLevel,
	)
	if cfg.Filters != "" {
		rules, rErr := zapfilter.ParseRules(cfg.Filters)
		if rErr != nil {
			return nil, fmt.Errorf("invalid filter rules %q: %w", cfg.Filters, rErr)
		}
		core = zapfilter.NewFilteringCore(core, rules)
	} else {
		core = zapfilter.NewFilteringCore(core,
			zapfilter.MinimumLevel(level))
	}
	return &Logger{l: zap.New(core, opts...), level: level}, nil
}
