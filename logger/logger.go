package logger

import (
	"strings"

	"github.com/pkg/errors"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	FlagLevel       = "loglevel"
	FlagTime        = "logtime"
	FlagDevelopMode = "logdevelop"

	usageLevel = "logger level (debug, info, warn, error, dpanic, panic, fatal)"
	usageTime  = "logger time format (iso8601, millis, nanos)"
)

// Config of the logger
type Config struct {
	Level   string   `json:"level" mapstructure:"loglevel"`
	Time    string   `json:"time" mapstructure:"logtime"`
	Develop bool     `json:"develop" mapstructure:"logdevelop"`
	Output  []string `json:"output" mapstructure:"logoutput"`
}

// Flags returns the command line flags of the logger
func Flags() *flag.FlagSet {

	flagSet := flag.NewFlagSet("logger", flag.ContinueOnError)
	flagSet.String(FlagLevel, "info", usageLevel)
	flagSet.String(FlagTime, "iso8601", usageTime)
	flagSet.Bool(FlagDevelopMode, false, "logger develop mode")

	return flagSet
}

// New creates a logger. Without outputs it writes to stderr:
// stdout belongs to the console.
func New(c Config) (*zap.Logger, error) {

	var (
		level                          = zapcore.InfoLevel
		timeFormat zapcore.TimeEncoder = zapcore.ISO8601TimeEncoder
	)

	if v := strings.TrimSpace(c.Level); v != "" {
		if err := level.Set(v); err != nil {
			return nil, errors.Wrap(err, usageLevel)
		}
	}

	if v := strings.TrimSpace(c.Time); v != "" {
		if err := timeFormat.UnmarshalText([]byte(v)); err != nil {
			return nil, errors.Wrap(err, usageTime)
		}
	}

	cfg := zap.NewProductionConfig()
	if c.Develop {
		cfg = zap.NewDevelopmentConfig()
	}

	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.EncoderConfig.EncodeTime = timeFormat
	cfg.OutputPaths = []string{"stderr"}
	if len(c.Output) > 0 {
		cfg.OutputPaths = append([]string(nil), c.Output...)
	}

	l, err := cfg.Build()
	if err != nil {
		return nil, errors.Wrap(err, "failed to build logger")
	}

	return l, nil
}
