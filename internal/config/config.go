package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	AppEnv   string
	HTTPAddr string

	RedisAddr     string
	RedisPassword string

	// SessionCookie is the LinkedIn li_at cookie used to authenticate the
	// browser session before navigating to a target page.
	SessionCookie string
	FetchTimeout  time.Duration
	SelectorsPath string

	TaskMaxRetries int
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getenvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func Load() Config {
	cfg := Config{
		AppEnv:   getenv("APP_ENV", "development"),
		HTTPAddr: getenv("HTTP_ADDR", ":8081"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		SessionCookie: os.Getenv("LI_AT"),
		FetchTimeout:  time.Duration(getenvInt("FETCH_TIMEOUT_SECONDS", 15)) * time.Second,
		SelectorsPath: os.Getenv("SELECTORS_PATH"),

		TaskMaxRetries: getenvInt("TASK_MAX_RETRIES", 3),
	}
	if cfg.RedisAddr == "" {
		panic(fmt.Errorf("REDIS_ADDR is required"))
	}
	if cfg.SessionCookie == "" {
		panic(fmt.Errorf("LI_AT session cookie is required"))
	}
	return cfg
}
