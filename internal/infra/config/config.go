package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config содержит параметры конфигурации приложения.
type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port string `yaml:"port"`
	} `yaml:"server"`
	TelegramBot struct {
		Token string `yaml:"token"`
		// BaseURL — публичный адрес бота для ссылок на тест,
		// например https://t.me/SynapSnap_bot.
		BaseURL            string `yaml:"base_url"`
		PollTimeoutSeconds int    `yaml:"poll_timeout_seconds"`
		// Параметры повторных запусков лонгпуллинга при сетевых сбоях.
		MaxRetries        int `yaml:"max_retries"`
		RetryDelaySeconds int `yaml:"retry_delay_seconds"`
	} `yaml:"telegram_bot"`
	Storage struct {
		// Driver: "memory", "sqlite" или "postgres".
		Driver string `yaml:"driver"`
		DSN    string `yaml:"dsn"`
	} `yaml:"storage"`
	Snapshot struct {
		File                 string `yaml:"file"`
		FlushIntervalSeconds int    `yaml:"flush_interval_seconds"`
	} `yaml:"snapshot"`
}

// PollTimeout возвращает таймаут лонгпуллинга
func (c *Config) PollTimeout() time.Duration {
	return time.Duration(c.TelegramBot.PollTimeoutSeconds) * time.Second
}

// RetryDelay возвращает паузу между повторными запусками бота
func (c *Config) RetryDelay() time.Duration {
	return time.Duration(c.TelegramBot.RetryDelaySeconds) * time.Second
}

// FlushInterval возвращает период сброса снапшота на диск
func (c *Config) FlushInterval() time.Duration {
	return time.Duration(c.Snapshot.FlushIntervalSeconds) * time.Second
}

// LoadConfig загружает конфигурацию из yaml-файла. Переменные окружения
// (в том числе из .env) переопределяют секреты: TELEGRAM_BOT_TOKEN и STORAGE_DSN.
func LoadConfig(filename string) (*Config, error) {
	// Файл .env опционален, его отсутствие — не ошибка.
	_ = godotenv.Load()

	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := f.Close(); err != nil {
			fmt.Println("f.Close() failed ", err)
		}
	}()

	config := &Config{}
	if err := yaml.NewDecoder(f).Decode(config); err != nil {
		return nil, err
	}

	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		config.TelegramBot.Token = token
	}
	if dsn := os.Getenv("STORAGE_DSN"); dsn != "" {
		config.Storage.DSN = dsn
	}

	applyDefaults(config)

	if config.TelegramBot.Token == "" {
		return nil, fmt.Errorf("токен бота не задан: укажите telegram_bot.token или TELEGRAM_BOT_TOKEN")
	}
	return config, nil
}

func applyDefaults(c *Config) {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if c.TelegramBot.BaseURL == "" {
		c.TelegramBot.BaseURL = "https://t.me/SynapSnap_bot"
	}
	if c.TelegramBot.PollTimeoutSeconds <= 0 {
		c.TelegramBot.PollTimeoutSeconds = 10
	}
	if c.TelegramBot.MaxRetries <= 0 {
		c.TelegramBot.MaxRetries = 10
	}
	if c.TelegramBot.RetryDelaySeconds <= 0 {
		c.TelegramBot.RetryDelaySeconds = 5
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = "sqlite"
	}
	if c.Storage.DSN == "" && c.Storage.Driver == "sqlite" {
		c.Storage.DSN = "file:quizbot.db?cache=shared&mode=rwc&_pragma=busy_timeout(5000)"
	}
	if c.Snapshot.File == "" {
		c.Snapshot.File = "data/bot_data.json"
	}
	if c.Snapshot.FlushIntervalSeconds <= 0 {
		c.Snapshot.FlushIntervalSeconds = 300
	}
}
