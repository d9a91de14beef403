// Package sessions хранит незавершенные сессии прохождения тестов и указатель
// "какой тест сейчас проходит пользователь". Ключ обоих хранилищ — идентификатор
// участника, поэтому повторный запуск теста просто перезаписывает старую сессию.
package sessions

import (
	"context"
	"errors"
	"sync"

	"github.com/SynapSnap/quizbot/internal/domain/model"
)

// ErrNotFound возвращается, когда сессия или указатель активного теста отсутствуют.
// Ошибки чтения хранилища и некорректно сохраненные сессии тоже сводятся к этой
// ошибке: лучше начать заново, чем работать с поврежденным состоянием.
var ErrNotFound = errors.New("сессия не найдена")

// Store определяет интерфейс хранилища сессий.
type Store interface {
	// Get возвращает сессию участника или ErrNotFound.
	Get(ctx context.Context, takerID int64) (model.TakingSession, error)
	// Put сохраняет сессию, перезаписывая существующую.
	Put(ctx context.Context, session model.TakingSession) error
	// Delete удаляет сессию участника вместе с указателем активного теста.
	Delete(ctx context.Context, takerID int64) error
	// ActiveTest возвращает идентификатор теста, который проходит участник.
	ActiveTest(ctx context.Context, takerID int64) (string, error)
	// SetActiveTest устанавливает указатель активного теста.
	SetActiveTest(ctx context.Context, takerID int64, testID string) error
}

// MemoryStore — in-memory реализация.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[int64]model.TakingSession
	active   map[int64]string
}

// NewMemoryStore создаёт новый MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[int64]model.TakingSession),
		active:   make(map[int64]string),
	}
}

func (m *MemoryStore) Get(_ context.Context, takerID int64) (model.TakingSession, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	session, ok := m.sessions[takerID]
	if !ok {
		return model.TakingSession{}, ErrNotFound
	}
	if err := session.Validate(); err != nil {
		return model.TakingSession{}, ErrNotFound
	}
	return session, nil
}

func (m *MemoryStore) Put(_ context.Context, session model.TakingSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[session.TakerID] = session
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, takerID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, takerID)
	delete(m.active, takerID)
	return nil
}

func (m *MemoryStore) ActiveTest(_ context.Context, takerID int64) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	testID, ok := m.active[takerID]
	if !ok {
		return "", ErrNotFound
	}
	return testID, nil
}

func (m *MemoryStore) SetActiveTest(_ context.Context, takerID int64, testID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.active[takerID] = testID
	return nil
}
