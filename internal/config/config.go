package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"TempHarvest/internal/model"
)

// Latest is accepted as range.end and means the current month.
const Latest = "latest"

var validate = validator.New()

// Config holds all application configuration.
type Config struct {
	Source struct {
		BaseURL     string            `yaml:"base_url" validate:"required,url"`
		City        string            `yaml:"city" validate:"required"`
		URLTemplate string            `yaml:"url_template"`
		Strategy    string            `yaml:"strategy" validate:"oneof=table embedded"`
		Charset     string            `yaml:"charset"`
		Headers     map[string]string `yaml:"headers"`
		Table       struct {
			XPath    string `yaml:"xpath"`
			MinCells int    `yaml:"min_cells" validate:"gte=0"`
		} `yaml:"table"`
		Embedded struct {
			HighVar string `yaml:"high_var"`
			LowVar  string `yaml:"low_var"`
			DayVar  string `yaml:"day_var"`
		} `yaml:"embedded"`
	} `yaml:"source"`
	Range struct {
		Start string `yaml:"start" validate:"required"`
		End   string `yaml:"end" validate:"required"`
	} `yaml:"range"`
	Fetch struct {
		Timeout          time.Duration `yaml:"timeout" validate:"gt=0"`
		BreakerThreshold uint32        `yaml:"breaker_threshold"`
		BreakerCooldown  time.Duration `yaml:"breaker_cooldown"`
	} `yaml:"fetch"`
	Output struct {
		CSVPath    string `yaml:"csv_path" validate:"required"`
		Columns    string `yaml:"columns" validate:"oneof=max_min single"`
		ReportPath string `yaml:"report_path"`
	} `yaml:"output"`
	Charts struct {
		Enabled    bool   `yaml:"enabled"`
		Title      string `yaml:"title"`
		LineGIF    string `yaml:"line_gif"`
		HeatmapGIF string `yaml:"heatmap_gif"`
		BoxplotPNG string `yaml:"boxplot_png"`
	} `yaml:"charts"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Schedule struct {
		Cron string `yaml:"cron"`
	} `yaml:"schedule"`
	Log struct {
		Level       string `yaml:"level" validate:"oneof=debug info warn error"`
		Development bool   `yaml:"development"`
	} `yaml:"log"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("HARVEST_CITY"); v != "" {
		cfg.Source.City = v
	}
	if v := os.Getenv("HARVEST_START"); v != "" {
		cfg.Range.Start = v
	}
	if v := os.Getenv("HARVEST_END"); v != "" {
		cfg.Range.End = v
	}
	if v := os.Getenv("HARVEST_CRON"); v != "" {
		cfg.Schedule.Cron = v
	}
	if v := os.Getenv("OUTPUT_CSV"); v != "" {
		cfg.Output.CSVPath = v
	}
	if v := os.Getenv("BREAKER_THRESHOLD"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 32); err == nil {
			cfg.Fetch.BreakerThreshold = uint32(n)
		}
	}

	applyDefaults(cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Source.BaseURL == "" {
		cfg.Source.BaseURL = "https://lishi.tianqi.com"
	}
	if cfg.Source.City == "" {
		cfg.Source.City = "foshan"
	}
	if cfg.Source.Strategy == "" {
		cfg.Source.Strategy = "embedded"
	}
	if cfg.Source.Charset == "" {
		cfg.Source.Charset = "utf-8"
	}
	if cfg.Source.Headers == nil {
		cfg.Source.Headers = map[string]string{}
	}
	if _, ok := cfg.Source.Headers["Referer"]; !ok {
		cfg.Source.Headers["Referer"] = strings.TrimRight(cfg.Source.BaseURL, "/") + "/"
	}
	if cfg.Range.Start == "" {
		cfg.Range.Start = "2011-01"
	}
	if cfg.Range.End == "" {
		cfg.Range.End = Latest
	}
	if cfg.Fetch.Timeout == 0 {
		cfg.Fetch.Timeout = 30 * time.Second
	}
	if cfg.Fetch.BreakerCooldown == 0 {
		cfg.Fetch.BreakerCooldown = time.Minute
	}
	if cfg.Output.CSVPath == "" {
		cfg.Output.CSVPath = "data/temperature.csv"
	}
	if cfg.Output.Columns == "" {
		cfg.Output.Columns = "max_min"
	}
	if cfg.Output.ReportPath == "" {
		cfg.Output.ReportPath = "data/last_run.json"
	}
	if cfg.Charts.Title == "" {
		cfg.Charts.Title = cfg.Source.City
	}
	if cfg.Charts.LineGIF == "" {
		cfg.Charts.LineGIF = "data/temperature_line.gif"
	}
	if cfg.Charts.HeatmapGIF == "" {
		cfg.Charts.HeatmapGIF = "data/temperature_heatmap.gif"
	}
	if cfg.Charts.BoxplotPNG == "" {
		cfg.Charts.BoxplotPNG = "data/temperature_boxplot.png"
	}
	if cfg.Schedule.Cron == "" {
		cfg.Schedule.Cron = "0 0 6 2 * *"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}

// Validate checks struct constraints and the month range.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("config %s: failed %q constraint", fe.Namespace(), fe.Tag())
		}
		return fmt.Errorf("config: %w", err)
	}
	if _, _, err := c.ResolveRange(time.Now()); err != nil {
		return err
	}
	return nil
}

// ResolveRange parses range.start and range.end, mapping "latest" to the
// month containing now. End before start is an error.
func (c *Config) ResolveRange(now time.Time) (model.MonthKey, model.MonthKey, error) {
	start, err := model.ParseMonthKey(c.Range.Start)
	if err != nil {
		return model.MonthKey{}, model.MonthKey{}, fmt.Errorf("range.start: %w", err)
	}
	var end model.MonthKey
	if strings.EqualFold(c.Range.End, Latest) {
		end = model.CurrentMonth(now)
	} else {
		end, err = model.ParseMonthKey(c.Range.End)
		if err != nil {
			return model.MonthKey{}, model.MonthKey{}, fmt.Errorf("range.end: %w", err)
		}
	}
	if end.Before(start) {
		return model.MonthKey{}, model.MonthKey{}, fmt.Errorf("range: end %s precedes start %s", end, start)
	}
	return start, end, nil
}

// NotifyEnabled reports whether Telegram credentials are present.
func (c *Config) NotifyEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}
