package config

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

var (
	Conf *AppConfig
	once sync.Once
	k    *koanf.Koanf
)

// AppConfig is the full application configuration.
type AppConfig struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Upload   UploadConfig   `koanf:"upload"`
	Log      LogConfig      `koanf:"log"`
	JWT      JWTConfig      `koanf:"jwt"`
}

type ServerConfig struct {
	Host         string        `koanf:"host"`
	Port         int           `koanf:"port"`
	Mode         string        `koanf:"mode"` // debug, release
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
}

type DatabaseConfig struct {
	Host         string `koanf:"host"`
	Port         int    `koanf:"port"`
	Username     string `koanf:"username"`
	Password     string `koanf:"password"`
	Database     string `koanf:"database"`
	LogLevel     string `koanf:"log_level"` // silent, error, warn, info
	MaxOpenConns int    `koanf:"max_open_conns"`
	MaxIdleConns int    `koanf:"max_idle_conns"`
	MaxLifetime  int    `koanf:"max_lifetime"` // seconds
}

type UploadConfig struct {
	// Directory course content files are stored under.
	Dir string `koanf:"dir"`
	// Maximum accepted file size in bytes.
	MaxSize int64 `koanf:"max_size"`
}

type LogConfig struct {
	Level string `koanf:"level"` // debug, info, warn, error
}

type JWTConfig struct {
	Secret     string `koanf:"secret"`
	ExpireTime int    `koanf:"expire_time"` // hours
}

// Load reads the yaml config file, then overlays environment variables.
func Load(configPath string) error {
	var err error
	once.Do(func() {
		if err := godotenv.Load(); err != nil {
			log.Printf("warning: no .env file loaded: %v", err)
		}

		k = koanf.New(".")

		if err = k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			err = fmt.Errorf("load config file: %w", err)
			return
		}

		// Environment variables override the file (JWT_SECRET -> jwt.secret).
		if err = k.Load(env.Provider("", ".", func(s string) string {
			return strings.Replace(strings.ToLower(s), "_", ".", -1)
		}), nil); err != nil {
			log.Printf("load environment variables: %v", err)
		}

		Conf = &AppConfig{}
		if err = k.Unmarshal("", Conf); err != nil {
			err = fmt.Errorf("unmarshal config: %w", err)
			return
		}

		Conf.Server.ReadTimeout = Conf.Server.ReadTimeout * time.Second
		Conf.Server.WriteTimeout = Conf.Server.WriteTimeout * time.Second

		applyDefaults(Conf)
	})

	return err
}

// MustLoad loads the configuration or exits.
func MustLoad(configPath string) {
	if err := Load(configPath); err != nil {
		log.Fatalf("config load failed: %v", err)
	}
}

func applyDefaults(c *AppConfig) {
	if c.Upload.Dir == "" {
		c.Upload.Dir = "uploads/course-content"
	}
	if c.Upload.MaxSize == 0 {
		c.Upload.MaxSize = 10 << 20 // 10 MiB
	}
	if c.JWT.ExpireTime == 0 {
		c.JWT.ExpireTime = 24
	}
}
