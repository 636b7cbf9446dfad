package config

import (
	"time"

	"github.com/pkg/errors"

	"github.com/fourthandlong/playoffpool/pkg/conf"
)

type Config struct {
	Server struct {
		ListenAddress string
	}

	DataBase struct {
		Host string
		Port uint16
		User string
		Pass string
		Name string
	}

	Admin struct {
		Tokens []string
	}

	Rules struct {
		Path string
		URL  string
	}

	PullIntervals struct {
		Rules       *time.Duration
		Leaderboard *time.Duration
	}

	Telegram struct {
		Token  string
		ChatID int64
	}

	Log struct {
		Path       string
		MaxSizeMB  int
		MaxBackups int
		MaxAgeDays int
	}
}

func ParseConfig() (*Config, error) {
	config := &Config{}
	if err := conf.ParseConfig(config, conf.EnvPrefix("POOL")); err != nil {
		return nil, errors.Wrap(err, "Failed to parse config")
	}
	return config, nil
}
