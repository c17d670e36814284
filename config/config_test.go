package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dialogs/console-exporter/logger"
)

func TestConfig(t *testing.T) {

	// create environment
	t.Setenv("TEST_CONFIG_MAIN_KEY1", "val1")
	t.Setenv("TEST_CONFIG_MAIN_KEY2", "val2")
	t.Setenv("TEST_CONFIG_OTHER_KEY1", "other")

	v := New("Test_Config_main", true)

	// test: check values
	require.Equal(t, "val1", v.GetString("key1"))
	require.Equal(t, "val2", v.GetString("key2"))
	require.Equal(t, "", v.GetString("key3"))

	// test: all settings
	require.Equal(t,
		map[string]interface{}{
			"key1": "val1",
			"key2": "val2",
		},
		v.AllSettings())

	// test: without trimming
	require.Equal(t, "val1", New("test_config_main", false).GetString("test_config_main_key1"))
}

func TestHelpers(t *testing.T) {

	// create environment
	t.Setenv("TEST_HELPER_STRING", "val1")
	t.Setenv("TEST_HELPER_EMPTY", "")
	t.Setenv("TEST_HELPER_DURATION", "1s")
	t.Setenv("TEST_HELPER_BOOL", "true")
	t.Setenv("TEST_HELPER_INT", "10")

	v := New("test_helper", true)

	{
		val, err := GetString(v, "string")
		require.NoError(t, err)
		require.Equal(t, "val1", val)

		val, err = GetString(v, "empty")
		require.NoError(t, err)
		require.Equal(t, "", val)
	}

	{
		val, err := GetDuration(v, "duration")
		require.NoError(t, err)
		require.Equal(t, time.Second, val)
	}

	{
		val, err := GetBool(v, "bool")
		require.NoError(t, err)
		require.True(t, val)
	}

	{
		val, err := GetInt(v, "int")
		require.NoError(t, err)
		require.Equal(t, 10, val)
	}

	for _, fn := range []func() error{
		func() error { _, err := GetString(v, "key3"); return err },
		func() error { _, err := GetDuration(v, "key3"); return err },
		func() error { _, err := GetBool(v, "key3"); return err },
		func() error { _, err := GetInt(v, "key3"); return err },
	} {
		err := fn()
		require.EqualError(t, err, "config value 'key3': not found")
		require.True(t, errors.Is(err, ErrNotFound))
	}

	// test: a value of another type is not read as zero
	t.Setenv("TEST_HELPER_BAD", "abc")
	for _, fn := range []func() error{
		func() error { _, err := GetDuration(v, "bad"); return err },
		func() error { _, err := GetBool(v, "bad"); return err },
		func() error { _, err := GetInt(v, "bad"); return err },
	} {
		err := fn()
		require.EqualError(t, err, `config value 'bad' = "abc": invalid value`)
		require.True(t, errors.Is(err, ErrInvalidValue))
	}
}

func TestLoadDefaults(t *testing.T) {

	app, err := Load(New("test_load_defaults", true))
	require.NoError(t, err)

	require.Equal(t,
		&App{
			Host:         "",
			Port:         8000,
			MetricsPath:  "/metrics",
			CloseTimeout: 5 * time.Second,
			Log: logger.Config{
				Level: "info",
				Time:  "iso8601",
			},
		},
		app)

	require.Equal(t, ":8000", app.Addr())
	require.Equal(t, "http://0.0.0.0:8000/metrics", app.MetricsURL())
}

func TestLoadEnvAndFlags(t *testing.T) {

	// create environment
	t.Setenv("TEST_LOAD_PORT", "9100")
	t.Setenv("TEST_LOAD_HOST", "127.0.0.1")
	t.Setenv("TEST_LOAD_LOGLEVEL", "debug")

	v := New("test_load", true)

	flagSet := Flags()
	require.NoError(t, BindFlags(v, flagSet))
	require.NoError(t, flagSet.Parse([]string{"--close-timeout", "1s", "--metrics-path", "/m"}))

	app, err := Load(v)
	require.NoError(t, err)

	require.Equal(t, "127.0.0.1", app.Host)
	require.Equal(t, 9100, app.Port)
	require.Equal(t, "/m", app.MetricsPath)
	require.Equal(t, time.Second, app.CloseTimeout)
	require.Equal(t, "debug", app.Log.Level)
	require.Equal(t, "127.0.0.1:9100", app.Addr())
	require.Equal(t, "http://127.0.0.1:9100/m", app.MetricsURL())

	// test: changed flag wins over the environment
	require.NoError(t, flagSet.Parse([]string{"--port", "9200"}))
	app, err = Load(v)
	require.NoError(t, err)
	require.Equal(t, 9200, app.Port)
}

func TestLoadFile(t *testing.T) {

	name := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(name, []byte("port: 8080\nlogdevelop: true\nlogoutput:\n  - stdout\n"), 0600))

	v := New("test_load_file", true)
	require.NoError(t, ReadFile(v, name))
	require.NoError(t, ReadFile(v, ""))

	app, err := Load(v)
	require.NoError(t, err)
	require.Equal(t, 8080, app.Port)
	require.True(t, app.Log.Develop)
	require.Equal(t, []string{"stdout"}, app.Log.Output)

	require.Error(t, ReadFile(v, filepath.Join(t.TempDir(), "none.yaml")))
}

func TestLoadInvalid(t *testing.T) {

	for key, testInfo := range map[string]struct {
		Value string
		Error string
	}{
		"PORT":          {Value: "0", Error: "config value 'port' = 0: invalid value"},
		"METRICS_PATH":  {Value: "metrics", Error: `config value 'metrics_path' = "metrics": invalid value`},
		"CLOSE_TIMEOUT": {Value: "-1s", Error: "config value 'close_timeout' = -1s: invalid value"},
		"LOGDEVELOP":    {Value: "maybe", Error: `config value 'logdevelop' = "maybe": invalid value`},
	} {
		t.Setenv("TEST_INVALID_"+key, testInfo.Value)

		app, err := Load(New("test_invalid", true))
		require.EqualError(t, err, testInfo.Error, key)
		require.Nil(t, app)

		require.NoError(t, os.Unsetenv("TEST_INVALID_"+key))
	}
}
