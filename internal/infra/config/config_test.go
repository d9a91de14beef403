package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// writeConfig записывает yaml во временный файл и возвращает путь к нему.
func writeConfig(t *testing.T, yaml string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "values.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// TestLoadConfigDefaults проверяет заполнение значений по умолчанию.
func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, `
telegram_bot:
  token: "123:abc"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("порт по умолчанию: ожидалось 8080, получено %q", cfg.Server.Port)
	}
	if cfg.Storage.Driver != "sqlite" {
		t.Errorf("драйвер по умолчанию: ожидалось sqlite, получено %q", cfg.Storage.Driver)
	}
	if cfg.Storage.DSN == "" {
		t.Error("для sqlite должен подставляться DSN по умолчанию")
	}
	if cfg.Snapshot.File != "data/bot_data.json" {
		t.Errorf("файл снапшота по умолчанию: получено %q", cfg.Snapshot.File)
	}
	if cfg.PollTimeout() != 10*time.Second {
		t.Errorf("таймаут лонгпуллинга по умолчанию: получено %v", cfg.PollTimeout())
	}
	if cfg.FlushInterval() != 300*time.Second {
		t.Errorf("период сброса снапшота по умолчанию: получено %v", cfg.FlushInterval())
	}
}

// TestLoadConfigEnvOverride проверяет приоритет переменных окружения.
func TestLoadConfigEnvOverride(t *testing.T) {
	path := writeConfig(t, `
telegram_bot:
  token: "из-файла"
storage:
  driver: "postgres"
  dsn: "из-файла"
`)

	t.Setenv("TELEGRAM_BOT_TOKEN", "из-окружения")
	t.Setenv("STORAGE_DSN", "postgres://localhost/quiz")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.TelegramBot.Token != "из-окружения" {
		t.Errorf("токен должен браться из окружения, получено %q", cfg.TelegramBot.Token)
	}
	if cfg.Storage.DSN != "postgres://localhost/quiz" {
		t.Errorf("DSN должен браться из окружения, получено %q", cfg.Storage.DSN)
	}
}

// TestLoadConfigMissingToken проверяет обязательность токена.
func TestLoadConfigMissingToken(t *testing.T) {
	path := writeConfig(t, `
server:
  port: "9090"
`)
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	if _, err := LoadConfig(path); err == nil {
		t.Error("конфигурация без токена должна отклоняться")
	}
}

// TestLoadConfigMissingFile проверяет ошибку при отсутствии файла.
func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "нет.yaml")); err == nil {
		t.Error("отсутствующий файл должен возвращать ошибку")
	}
}
