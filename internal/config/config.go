package config

import (
	"flag"
	"os"
	"sync"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

var (
	c          *Config
	once       sync.Once
	configPath = flag.String("config", "config.yaml", "config file path")
)

type Config struct {
	HTTPPort string `yaml:"http_port" env:"HTTP_PORT" env-default:"8080"`

	DBPath string `yaml:"db_path" env:"DB_PATH" env-default:"tmms.db"`

	BackupDir      string        `yaml:"backup_dir" env:"BACKUP_DIR" env-default:"backups"`
	BackupInterval time.Duration `yaml:"backup_interval" env:"BACKUP_INTERVAL" env-default:"1h"`
	BackupKeep     int           `yaml:"backup_keep" env:"BACKUP_KEEP" env-default:"20"`

	SessionTTL time.Duration `yaml:"session_ttl" env:"SESSION_TTL" env-default:"12h"`
}

func MustLoad() *Config {
	once.Do(func() {
		if !flag.Parsed() {
			flag.Parse()
		}
		c = new(Config)
		if _, err := os.Stat(*configPath); err == nil {
			if err := cleanenv.ReadConfig(*configPath, c); err != nil {
				panic(err)
			}
			return
		}
		if err := cleanenv.ReadEnv(c); err != nil {
			panic(err)
		}
	})

	return c
}
