package config

import (
	"errors"
	"strconv"
	"time"

	pkgerr "github.com/pkg/errors"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidValue = errors.New("invalid value")
)

// GetString returns the string value of the key
func GetString(src *viper.Viper, key string) (string, error) {
	return get(src, key, cast.ToStringE)
}

// GetDuration returns the duration value of the key. A number is read
// as nanoseconds.
func GetDuration(src *viper.Viper, key string) (time.Duration, error) {
	return get(src, key, cast.ToDurationE)
}

// GetBool returns the boolean value of the key
func GetBool(src *viper.Viper, key string) (bool, error) {
	return get(src, key, cast.ToBoolE)
}

// GetInt returns the integer value of the key
func GetInt(src *viper.Viper, key string) (int, error) {
	return get(src, key, cast.ToIntE)
}

// get fails on a missing key and on a value of another type, where
// viper itself would silently return the zero value
func get[T any](src *viper.Viper, key string, conv func(interface{}) (T, error)) (T, error) {

	var zero T

	if !src.IsSet(key) {
		return zero, pkgerr.Wrapf(ErrNotFound, "config value '%s'", key)
	}

	raw := src.Get(key)
	val, err := conv(raw)
	if err != nil {
		return zero, invalidValue(key, raw)
	}

	return val, nil
}

func invalidValue(key string, val interface{}) error {

	if s, ok := val.(string); ok {
		val = strconv.Quote(s)
	}

	return pkgerr.Wrapf(ErrInvalidValue, "config value '%s' = %v", key, val)
}
