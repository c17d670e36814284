package config

import (
	"net"
	"strconv"
	"strings"
	"time"

	pkgerr "github.com/pkg/errors"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/dialogs/console-exporter/logger"
)

// EnvPrefix of the environment variables
const EnvPrefix = "CONSOLE_EXPORTER"

const (
	KeyHost         = "host"
	KeyPort         = "port"
	KeyMetricsPath  = "metrics_path"
	KeyCloseTimeout = "close_timeout"
	KeyLogLevel     = logger.FlagLevel
	KeyLogTime      = logger.FlagTime
	KeyLogDevelop   = logger.FlagDevelopMode
	KeyLogOutput    = "logoutput"
)

var defaults = map[string]interface{}{
	KeyHost:         "",
	KeyPort:         8000,
	KeyMetricsPath:  "/metrics",
	KeyCloseTimeout: 5 * time.Second,
	KeyLogLevel:     "info",
	KeyLogTime:      "iso8601",
	KeyLogDevelop:   false,
}

// flag name -> config key
var flagKeys = map[string]string{
	"host":          KeyHost,
	"port":          KeyPort,
	"metrics-path":  KeyMetricsPath,
	"close-timeout": KeyCloseTimeout,

	logger.FlagLevel:       KeyLogLevel,
	logger.FlagTime:        KeyLogTime,
	logger.FlagDevelopMode: KeyLogDevelop,
}

// App is the configuration of the process
type App struct {
	Host         string
	Port         int
	MetricsPath  string
	CloseTimeout time.Duration
	Log          logger.Config
}

// Flags returns the command line flags of the process
func Flags() *flag.FlagSet {

	flagSet := flag.NewFlagSet("console-exporter", flag.ContinueOnError)
	flagSet.String("host", "", "listen host, all interfaces if empty")
	flagSet.Int("port", 8000, "listen port")
	flagSet.String("metrics-path", "/metrics", "path of the scrape endpoint")
	flagSet.Duration("close-timeout", 5*time.Second, "http server shutdown timeout")
	flagSet.AddFlagSet(logger.Flags())

	return flagSet
}

// BindFlags binds the flags to the config keys. Only changed flags
// override other sources.
func BindFlags(v *viper.Viper, flagSet *flag.FlagSet) error {

	for name, key := range flagKeys {
		if f := flagSet.Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return pkgerr.Wrapf(err, "bind flag %q", name)
			}
		}
	}

	return nil
}

// SetDefaults sets the default value of every key that has no value yet
func SetDefaults(v *viper.Viper) {
	for key, val := range defaults {
		if !v.IsSet(key) {
			v.SetDefault(key, val)
		}
	}
}

// Load reads and validates the process configuration
func Load(v *viper.Viper) (*App, error) {

	SetDefaults(v)

	var (
		app = &App{}
		err error
	)

	if app.Host, err = GetString(v, KeyHost); err != nil {
		return nil, err
	}
	if app.Port, err = GetInt(v, KeyPort); err != nil {
		return nil, err
	}
	if app.MetricsPath, err = GetString(v, KeyMetricsPath); err != nil {
		return nil, err
	}
	if app.CloseTimeout, err = GetDuration(v, KeyCloseTimeout); err != nil {
		return nil, err
	}
	if app.Log.Level, err = GetString(v, KeyLogLevel); err != nil {
		return nil, err
	}
	if app.Log.Time, err = GetString(v, KeyLogTime); err != nil {
		return nil, err
	}
	if app.Log.Develop, err = GetBool(v, KeyLogDevelop); err != nil {
		return nil, err
	}
	if v.IsSet(KeyLogOutput) {
		app.Log.Output = v.GetStringSlice(KeyLogOutput)
	}

	if err := app.Validate(); err != nil {
		return nil, err
	}

	return app, nil
}

// Validate checks the configuration values
func (a *App) Validate() error {

	if a.Port < 1 || a.Port > 65535 {
		return invalidValue(KeyPort, a.Port)
	}

	if !strings.HasPrefix(a.MetricsPath, "/") {
		return invalidValue(KeyMetricsPath, a.MetricsPath)
	}

	if a.CloseTimeout < 0 {
		return invalidValue(KeyCloseTimeout, a.CloseTimeout)
	}

	return nil
}

// Addr returns the listen address
func (a *App) Addr() string {
	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// MetricsURL returns the scrape endpoint URL for humans
func (a *App) MetricsURL() string {

	host := a.Host
	if host == "" {
		host = "0.0.0.0"
	}

	return "http://" + net.JoinHostPort(host, strconv.Itoa(a.Port)) + a.MetricsPath
}
