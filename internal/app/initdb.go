package app

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/SynapSnap/quizbot/internal/domain/sessions"
	"github.com/SynapSnap/quizbot/internal/infra/config"
)

// InitDatabase устанавливает подключение к базе данных сессий. Для драйвера
// "memory" подключение не нужно, возвращается nil.
func InitDatabase(cfg *config.Config) (*sql.DB, error) {
	const op = "app.InitDatabase"

	var driver string
	switch cfg.Storage.Driver {
	case "memory":
		return nil, nil
	case "sqlite":
		driver = "sqlite"
	case "postgres":
		driver = "pgx"
	default:
		return nil, fmt.Errorf("%s: неизвестный драйвер хранилища %q", op, cfg.Storage.Driver)
	}

	db, err := sql.Open(driver, cfg.Storage.DSN)
	if err != nil {
		return nil, fmt.Errorf("%s: sql.Open: %w", op, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("%s: ping: %w", op, err)
	}

	log.Println("Хранилище сессий подключено")
	return db, nil
}

// InitSessionStore выбирает хранилище сессий по конфигурации.
func InitSessionStore(db *sql.DB) (sessions.Store, error) {
	if db == nil {
		return sessions.NewMemoryStore(), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	store, err := sessions.NewSQLStore(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("app.InitSessionStore: %w", err)
	}
	return store, nil
}
