package sessions

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/SynapSnap/quizbot/internal/domain/model"
)

// Схема совместима с обоими драйверами: плейсхолдеры $N и UPSERT по первичному
// ключу поддерживаются и SQLite, и PostgreSQL.
const schema = `
CREATE TABLE IF NOT EXISTS user_test_sessions (
    user_id      BIGINT PRIMARY KEY,
    session_data TEXT NOT NULL,
    updated_at   TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS active_user_tests (
    user_id    BIGINT PRIMARY KEY,
    test_id    TEXT NOT NULL,
    started_at TEXT NOT NULL
);`

// SQLStore — реализация Store поверх database/sql (SQLite или PostgreSQL).
// Сессия сериализуется целиком в одну JSON-колонку: запись по ключу атомарна,
// частичных обновлений не бывает.
type SQLStore struct {
	db *sql.DB
}

// NewSQLStore создает SQLStore и гарантирует наличие таблиц.
func NewSQLStore(ctx context.Context, db *sql.DB) (*SQLStore, error) {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, fmt.Errorf("не удалось создать таблицы сессий: %w", err)
	}
	return &SQLStore{db: db}, nil
}

func (s *SQLStore) Get(ctx context.Context, takerID int64) (model.TakingSession, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT session_data FROM user_test_sessions WHERE user_id = $1`, takerID).Scan(&payload)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			// Ошибка чтения трактуется как отсутствие сессии, а не как пустая сессия.
			log.Printf("sessions: ошибка чтения сессии участника %d: %v", takerID, err)
		}
		return model.TakingSession{}, ErrNotFound
	}
	var session model.TakingSession
	if err := json.Unmarshal([]byte(payload), &session); err != nil {
		log.Printf("sessions: поврежденная сессия участника %d: %v", takerID, err)
		return model.TakingSession{}, ErrNotFound
	}
	if err := session.Validate(); err != nil {
		log.Printf("sessions: некорректная сессия участника %d: %v", takerID, err)
		return model.TakingSession{}, ErrNotFound
	}
	return session, nil
}

func (s *SQLStore) Put(ctx context.Context, session model.TakingSession) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("не удалось сериализовать сессию участника %d: %w", session.TakerID, err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO user_test_sessions (user_id, session_data, updated_at) VALUES ($1, $2, $3)
         ON CONFLICT (user_id) DO UPDATE SET session_data = EXCLUDED.session_data, updated_at = EXCLUDED.updated_at`,
		session.TakerID, string(payload), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("не удалось сохранить сессию участника %d: %w", session.TakerID, err)
	}
	return nil
}

func (s *SQLStore) Delete(ctx context.Context, takerID int64) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM user_test_sessions WHERE user_id = $1`, takerID); err != nil {
		return fmt.Errorf("не удалось удалить сессию участника %d: %w", takerID, err)
	}
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM active_user_tests WHERE user_id = $1`, takerID); err != nil {
		return fmt.Errorf("не удалось удалить активный тест участника %d: %w", takerID, err)
	}
	return nil
}

func (s *SQLStore) ActiveTest(ctx context.Context, takerID int64) (string, error) {
	var testID string
	err := s.db.QueryRowContext(ctx,
		`SELECT test_id FROM active_user_tests WHERE user_id = $1`, takerID).Scan(&testID)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Printf("sessions: ошибка чтения активного теста участника %d: %v", takerID, err)
		}
		return "", ErrNotFound
	}
	return testID, nil
}

func (s *SQLStore) SetActiveTest(ctx context.Context, takerID int64, testID string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO active_user_tests (user_id, test_id, started_at) VALUES ($1, $2, $3)
         ON CONFLICT (user_id) DO UPDATE SET test_id = EXCLUDED.test_id, started_at = EXCLUDED.started_at`,
		takerID, testID, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("не удалось установить активный тест участника %d: %w", takerID, err)
	}
	return nil
}
