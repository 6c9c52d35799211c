package config

import (
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/glebarez/sqlite"
	gomysql "github.com/go-sql-driver/mysql"
	"gopkg.in/yaml.v3"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Database DatabaseConfig `yaml:"database"`
	Penalty  PenaltyConfig  `yaml:"penalty"`
	Market   MarketConfig   `yaml:"market"`
	Admins   []string       `yaml:"admins"`
}

type ServerConfig struct {
	Port      int    `yaml:"port"`
	StaticDir string `yaml:"static_dir"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	Console    bool   `yaml:"console"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// DatabaseConfig selects the store driver: "sqlite" (default) keeps the data
// in a local file, "mysql" points at a managed instance.
type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	Path     string `yaml:"path"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

type PenaltyConfig struct {
	DailyFine int `yaml:"daily_fine"`
}

type MarketConfig struct {
	FinnhubBaseURL  string  `yaml:"finnhub_base_url"`
	FXBaseURL       string  `yaml:"fx_base_url"`
	FallbackKRWRate float64 `yaml:"fallback_krw_rate"`
}

func Load(configFile string) *Config {
	c := &Config{
		Server:   ServerConfig{Port: 8080, StaticDir: "static"},
		Log:      LogConfig{Level: "info", Console: true, MaxSizeMB: 100, MaxBackups: 3, MaxAgeDays: 30},
		Database: DatabaseConfig{Driver: "sqlite", Path: "data/pushups.db", Port: 3306, Name: "pushup_club"},
		Penalty:  PenaltyConfig{DailyFine: 10000},
		Market: MarketConfig{
			FinnhubBaseURL:  "https://finnhub.io/api/v1",
			FXBaseURL:       "https://open.er-api.com/v6",
			FallbackKRWRate: 1350,
		},
	}

	paths := []string{"etc/config-dev.yaml", "/etc/pushup-club/config.yaml"}
	if configFile != "" {
		paths = []string{configFile}
	}
	for _, path := range paths {
		if data, err := os.ReadFile(path); err == nil {
			yaml.Unmarshal(data, c)
			break
		}
	}

	envOverride(&c.Database.Driver, "DB_DRIVER")
	envOverride(&c.Database.Path, "DB_PATH")
	envOverride(&c.Database.Host, "DB_HOST")
	envOverride(&c.Database.User, "DB_USER")
	envOverride(&c.Database.Password, "DB_PASS")
	envOverride(&c.Database.Name, "DB_NAME")
	envOverride(&c.Log.Level, "LOG_LEVEL")
	envOverride(&c.Log.File, "LOG_FILE")
	envOverrideInt(&c.Server.Port, "PORT")
	envOverrideInt(&c.Database.Port, "DB_PORT")
	if v := os.Getenv("ADMIN_NAMES"); v != "" {
		c.Admins = c.Admins[:0]
		for _, name := range strings.Split(v, ",") {
			if name = strings.TrimSpace(name); name != "" {
				c.Admins = append(c.Admins, name)
			}
		}
	}

	return c
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

func (c *Config) OpenGormDB() (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	}

	if c.Database.Driver == "mysql" {
		cfg := gomysql.NewConfig()
		cfg.User = c.Database.User
		cfg.Passwd = c.Database.Password
		cfg.Net = "tcp"
		cfg.Addr = fmt.Sprintf("%s:%d", c.Database.Host, c.Database.Port)
		cfg.DBName = c.Database.Name
		cfg.ParseTime = true

		connector, err := gomysql.NewConnector(cfg)
		if err != nil {
			return nil, fmt.Errorf("create connector: %w", err)
		}
		sqlDB := sql.OpenDB(connector)
		if err := sqlDB.Ping(); err != nil {
			return nil, fmt.Errorf("ping db: %w", err)
		}
		return gorm.Open(mysql.New(mysql.Config{Conn: sqlDB}), gormCfg)
	}

	dsn := fmt.Sprintf("%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", c.Database.Path)
	return gorm.Open(sqlite.Open(dsn), gormCfg)
}

func envOverride(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envOverrideInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
