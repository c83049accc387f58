package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Setting keys; env vars are BOOKINGCTL_<KEY> with dashes as underscores.
const (
	keyAPIURL   = "api-url"
	keyTimezone = "timezone"
	keyTimeout  = "timeout"
	keyNoColor  = "no-color"
)

// Settings are resolved from flags, then BOOKINGCTL_* env vars, then an
// optional bookingctl.yaml, then defaults.
type Settings struct {
	APIURL   string
	Timezone string
	Timeout  time.Duration
	NoColor  bool
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("BOOKINGCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(keyAPIURL, "http://localhost:8080")
	v.SetDefault(keyTimezone, "America/Los_Angeles")
	v.SetDefault(keyTimeout, 30*time.Second)
	v.SetDefault(keyNoColor, false)
	return v
}

// loadSettings binds the persistent flags and reads the config file. An
// explicit configFile must exist; the default search path may be empty.
func loadSettings(v *viper.Viper, cmd *cobra.Command, configFile string) (Settings, error) {
	for _, key := range []string{keyAPIURL, keyTimezone, keyTimeout, keyNoColor} {
		if f := cmd.Flags().Lookup(key); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return Settings{}, fmt.Errorf("cli: bind %s: %w", key, err)
			}
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("bookingctl")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return Settings{}, fmt.Errorf("cli: read config: %w", err)
		}
	}

	s := Settings{
		APIURL:   strings.TrimRight(strings.TrimSpace(v.GetString(keyAPIURL)), "/"),
		Timezone: v.GetString(keyTimezone),
		Timeout:  v.GetDuration(keyTimeout),
		NoColor:  v.GetBool(keyNoColor),
	}
	if s.APIURL == "" {
		return Settings{}, errors.New("cli: api-url is required")
	}
	if _, err := time.LoadLocation(s.Timezone); err != nil {
		return Settings{}, fmt.Errorf("cli: timezone %q: %w", s.Timezone, err)
	}
	return s, nil
}

func (s Settings) location() *time.Location {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}
