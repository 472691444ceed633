package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"
	_ "time/tzdata" // в контейнере может не быть системной базы поясов

	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

type Config struct {
	App struct {
		Env      string
		Timezone string
	} `mapstructure:"app"`

	Telegram struct {
		Token      string
		TimeoutSec int `mapstructure:"timeout_sec"`
	} `mapstructure:"telegram"`

	HTTP struct {
		Addr string
	} `mapstructure:"http"`

	Postgres struct {
		DSN string
	} `mapstructure:"postgres"`

	Metrics struct {
		Enabled bool
	} `mapstructure:"metrics"`

	Attendance struct {
		DefaultMinimum  int  `mapstructure:"default_minimum"`
		TermClasses     int  `mapstructure:"term_classes"`
		ExtendedDefault bool `mapstructure:"extended_default"`
	} `mapstructure:"attendance"`
}

// keys все ключи конфига. AutomaticEnv видит только известные viper ключи,
// поэтому каждый привязывается к APP_* явно.
var keys = []string{
	"app.env",
	"app.timezone",
	"telegram.token",
	"telegram.timeout_sec",
	"http.addr",
	"postgres.dsn",
	"metrics.enabled",
	"attendance.default_minimum",
	"attendance.term_classes",
	"attendance.extended_default",
}

func Load(path string) (Config, error) {
	// .env необязателен: локально удобно держать токен там
	if err := gotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, err
	}

	v := viper.New()
	v.SetConfigFile(path)
	// APP_TELEGRAM_TOKEN -> telegram.token
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, k := range keys {
		if err := v.BindEnv(k); err != nil {
			return Config{}, err
		}
	}

	v.SetDefault("app.env", "prod")
	v.SetDefault("app.timezone", "UTC")
	v.SetDefault("telegram.timeout_sec", 60)
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("attendance.default_minimum", 75)
	v.SetDefault("attendance.term_classes", 55)

	var c Config
	if err := v.ReadInConfig(); err != nil {
		return c, err
	}
	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}
	return c, nil
}

// Location часовой пояс app.timezone; пустое значение это UTC.
func (c Config) Location() (*time.Location, error) {
	if c.App.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(c.App.Timezone)
}
