package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config is the immutable process configuration. Precedence: flags, then
// WATCHDOG_* environment, then the optional YAML file, then defaults.
type Config struct {
	Threshold float64       // usage fraction in (0,1]
	Interval  time.Duration // time between checks
	Cooldown  time.Duration // min time between repeat alerts; 0 disables repeats
	DiskPath  string        // filesystem to monitor
	NoRAM     bool
	NoDisk    bool
	HostLabel string // hostname shown in alerts
	UserKey   string // Pushover user/group key
	AppToken  string // Pushover application token
	APIAddr   string // status API bind address; empty disables it
	LogDir    string
}

// Load reads configuration. cfgFile overrides the default search path
// (~/.config/pushover-watchdog/config.yaml, then the working directory);
// flags, when given, take precedence over everything else.
func Load(cfgFile string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()

	v.SetDefault("threshold", 0.80)
	v.SetDefault("interval", 60)
	v.SetDefault("cooldown", 1800)
	v.SetDefault("disk-path", "/home")
	v.SetDefault("no-ram", false)
	v.SetDefault("no-disk", false)
	v.SetDefault("host-label", "")
	v.SetDefault("pushover-user-key", "")
	v.SetDefault("pushover-app-token", "")
	v.SetDefault("api-addr", "")
	v.SetDefault("log-dir", "logs")

	v.SetEnvPrefix("WATCHDOG")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	// bare names kept for compatibility with the systemd env file
	_ = v.BindEnv("pushover-user-key", "WATCHDOG_PUSHOVER_USER_KEY", "PUSHOVER_USER_KEY")
	_ = v.BindEnv("pushover-app-token", "WATCHDOG_PUSHOVER_APP_TOKEN", "PUSHOVER_APP_TOKEN")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "pushover-watchdog"))
		}
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Config{}, err
		}
	}

	cfg := Config{
		Threshold: v.GetFloat64("threshold"),
		Interval:  time.Duration(v.GetInt("interval")) * time.Second,
		Cooldown:  time.Duration(v.GetInt("cooldown")) * time.Second,
		DiskPath:  v.GetString("disk-path"),
		NoRAM:     v.GetBool("no-ram"),
		NoDisk:    v.GetBool("no-disk"),
		HostLabel: v.GetString("host-label"),
		UserKey:   strings.TrimSpace(v.GetString("pushover-user-key")),
		AppToken:  strings.TrimSpace(v.GetString("pushover-app-token")),
		APIAddr:   v.GetString("api-addr"),
		LogDir:    v.GetString("log-dir"),
	}

	if cfg.HostLabel == "" {
		if host, err := os.Hostname(); err == nil {
			cfg.HostLabel = host
		}
	}

	return cfg, nil
}

// Validate rejects configurations that must never reach the watch loop.
func (c Config) Validate() error {
	if !(c.Threshold > 0 && c.Threshold <= 1) {
		return fmt.Errorf("threshold must be in (0, 1], got %v", c.Threshold)
	}
	if c.Interval <= 0 {
		return fmt.Errorf("interval must be a positive number of seconds")
	}
	if c.Cooldown < 0 {
		return fmt.Errorf("cooldown must not be negative")
	}
	if c.NoRAM && c.NoDisk {
		return fmt.Errorf("nothing to do: both RAM and disk monitoring are disabled")
	}
	if c.UserKey == "" || c.AppToken == "" {
		return fmt.Errorf("missing Pushover credentials: set PUSHOVER_USER_KEY and PUSHOVER_APP_TOKEN, or pass --pushover-user-key and --pushover-app-token")
	}
	return nil
}
