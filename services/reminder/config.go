package reminder

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Offset is a number of days before a deadline at which a reminder fires.
// Offsets are evaluated independently: an entity due in 3 days produces a
// separate notification from the one it produced when it was 7 days out.
type Offset struct {
	Days  int    `mapstructure:"days"`
	Label string `mapstructure:"label"`
}

type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	From     string `mapstructure:"from"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type Config struct {
	Offsets           []Offset      `mapstructure:"offsets"`
	FireAt            string        `mapstructure:"fire_at"`
	Timezone          string        `mapstructure:"timezone"`
	FallbackRecipient string        `mapstructure:"fallback_recipient"`
	CallTimeout       time.Duration `mapstructure:"call_timeout"`
	CycleTimeout      time.Duration `mapstructure:"cycle_timeout"`
	SMTP              SMTPConfig    `mapstructure:"smtp"`
}

func DefaultConfig() Config {
	return Config{
		Offsets: []Offset{
			{Days: 1, Label: "tomorrow"},
			{Days: 3, Label: "in 3 days"},
			{Days: 7, Label: "in a week"},
		},
		FireAt:       "07:00",
		Timezone:     "Local",
		CallTimeout:  10 * time.Second,
		CycleTimeout: 5 * time.Minute,
	}
}

// LoadConfig reads the reminder section of the given config file, falling back
// to defaults when the file is absent. LABOPS_* environment variables override
// file values.
func LoadConfig(path string) (Config, error) {
	def := DefaultConfig()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("LABOPS")
	v.AutomaticEnv()
	v.SetDefault("reminder.fire_at", def.FireAt)
	v.SetDefault("reminder.timezone", def.Timezone)
	v.SetDefault("reminder.call_timeout", def.CallTimeout)
	v.SetDefault("reminder.cycle_timeout", def.CycleTimeout)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.UnmarshalKey("reminder", &cfg); err != nil {
		return Config{}, fmt.Errorf("parse reminder config: %w", err)
	}
	if len(cfg.Offsets) == 0 {
		cfg.Offsets = def.Offsets
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if len(c.Offsets) == 0 {
		return fmt.Errorf("at least one deadline offset is required")
	}
	for _, off := range c.Offsets {
		if off.Days < 0 {
			return fmt.Errorf("offset days must be >= 0, got %d", off.Days)
		}
	}
	if _, _, err := c.fireTime(); err != nil {
		return err
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func (c Config) fireTime() (hour, minute int, err error) {
	t, err := time.Parse("15:04", c.FireAt)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid fire_at %q, want HH:MM: %w", c.FireAt, err)
	}
	return t.Hour(), t.Minute(), nil
}
