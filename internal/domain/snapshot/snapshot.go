// Package snapshot хранит опубликованные тесты, результаты и роли пользователей
// в памяти и периодически сбрасывает их в один JSON-файл. Файл пишется атомарно
// (временный файл + rename), чтение среза данных не держит блокировку на время
// записи на диск.
package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/SynapSnap/quizbot/internal/domain/model"
)

var (
	// ErrNotFound возвращается при запросе отсутствующего теста.
	ErrNotFound = errors.New("тест не найден")
	// ErrNotOwner возвращается при попытке действия с чужим тестом.
	ErrNotOwner = errors.New("нет прав на действие с чужим тестом")
)

// document — формат снапшота на диске. Временные метки сериализуются в RFC3339,
// что даёт сортируемое и однозначное текстовое представление.
type document struct {
	Users       map[int64]model.Role  `json:"users"`
	Tests       map[string]model.Test `json:"tests"`
	TestResults []model.TestResult    `json:"test_results"`
}

// Registry — реестр тестов, результатов и ролей с периодическим сбросом на диск.
type Registry struct {
	mu       sync.RWMutex
	filename string
	users    map[int64]model.Role
	tests    map[string]model.Test
	results  []model.TestResult
}

// NewRegistry создает пустой реестр, привязанный к файлу снапшота.
func NewRegistry(filename string) *Registry {
	return &Registry{
		filename: filename,
		users:    make(map[int64]model.Role),
		tests:    make(map[string]model.Test),
		results:  []model.TestResult{},
	}
}

// Load читает снапшот с диска. Отсутствующий файл — не ошибка: реестр
// просто остается пустым.
func (r *Registry) Load() error {
	data, err := os.ReadFile(r.filename)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("snapshot: файл %s не найден, начинаем с чистого листа", r.filename)
			return nil
		}
		return fmt.Errorf("не удалось прочитать файл %s: %w", r.filename, err)
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("не удалось разобрать снапшот %s: %w", r.filename, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if doc.Users != nil {
		r.users = doc.Users
	}
	if doc.Tests != nil {
		r.tests = doc.Tests
	}
	if doc.TestResults != nil {
		r.results = doc.TestResults
	}
	log.Printf("snapshot: загружено: пользователи=%d, тесты=%d, результаты=%d",
		len(r.users), len(r.tests), len(r.results))
	return nil
}

// Flush записывает текущее состояние на диск. Копия данных снимается под
// блокировкой чтения, сама запись выполняется уже без блокировок.
func (r *Registry) Flush() error {
	r.mu.RLock()
	doc := document{
		Users:       make(map[int64]model.Role, len(r.users)),
		Tests:       make(map[string]model.Test, len(r.tests)),
		TestResults: make([]model.TestResult, len(r.results)),
	}
	for id, role := range r.users {
		doc.Users[id] = role
	}
	for id, test := range r.tests {
		doc.Tests[id] = test
	}
	copy(doc.TestResults, r.results)
	r.mu.RUnlock()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("не удалось сериализовать снапшот: %w", err)
	}
	tmp := r.filename + ".tmp"
	if err := os.MkdirAll(filepath.Dir(r.filename), 0o755); err != nil {
		return fmt.Errorf("не удалось создать каталог снапшота: %w", err)
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("не удалось записать файл %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, r.filename); err != nil {
		return fmt.Errorf("не удалось заменить файл %s: %w", r.filename, err)
	}
	return nil
}

// Run периодически сбрасывает снапшот на диск до отмены контекста,
// после отмены выполняет финальный сброс.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := r.Flush(); err != nil {
				log.Printf("snapshot: ошибка периодического сохранения: %v", err)
			}
		case <-ctx.Done():
			if err := r.Flush(); err != nil {
				log.Printf("snapshot: ошибка финального сохранения: %v", err)
			}
			return
		}
	}
}

// Role возвращает роль пользователя.
func (r *Registry) Role(userID int64) (model.Role, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	role, ok := r.users[userID]
	return role, ok
}

// SetRole устанавливает роль пользователя.
func (r *Registry) SetRole(userID int64, role model.Role) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[userID] = role
}

// PutTest сохраняет опубликованный тест.
func (r *Registry) PutTest(test model.Test) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tests[test.ID] = test
}

// Test возвращает тест по идентификатору.
func (r *Registry) Test(testID string) (model.Test, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	test, ok := r.tests[testID]
	if !ok {
		return model.Test{}, ErrNotFound
	}
	return test, nil
}

// TestsByOwner возвращает тесты автора в порядке создания.
func (r *Registry) TestsByOwner(ownerID int64) []model.Test {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var tests []model.Test
	for _, t := range r.tests {
		if t.OwnerID == ownerID {
			tests = append(tests, t)
		}
	}
	sortTestsByCreation(tests)
	return tests
}

// ActiveTests возвращает все активные тесты в порядке создания.
func (r *Registry) ActiveTests() []model.Test {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var tests []model.Test
	for _, t := range r.tests {
		if t.Active {
			tests = append(tests, t)
		}
	}
	sortTestsByCreation(tests)
	return tests
}

// DeleteTest удаляет тест автора каскадно вместе со всеми его результатами.
// Для чужого теста возвращается ErrNotOwner без каких-либо изменений.
func (r *Registry) DeleteTest(testID string, ownerID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	test, ok := r.tests[testID]
	if !ok {
		return ErrNotFound
	}
	if test.OwnerID != ownerID {
		return ErrNotOwner
	}
	delete(r.tests, testID)
	kept := r.results[:0]
	for _, res := range r.results {
		if res.TestID != testID {
			kept = append(kept, res)
		}
	}
	r.results = kept
	return nil
}

// AppendResult добавляет результат прохождения теста.
func (r *Registry) AppendResult(result model.TestResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, result)
}

// ResultsByTest возвращает результаты одного теста.
func (r *Registry) ResultsByTest(testID string) []model.TestResult {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var results []model.TestResult
	for _, res := range r.results {
		if res.TestID == testID {
			results = append(results, res)
		}
	}
	return results
}

// ResultsForOwner возвращает результаты по всем тестам автора.
func (r *Registry) ResultsForOwner(ownerID int64) []model.TestResult {
	r.mu.RLock()
	defer r.mu.RUnlock()
	owned := make(map[string]bool)
	for id, t := range r.tests {
		if t.OwnerID == ownerID {
			owned[id] = true
		}
	}
	var results []model.TestResult
	for _, res := range r.results {
		if owned[res.TestID] {
			results = append(results, res)
		}
	}
	return results
}

func sortTestsByCreation(tests []model.Test) {
	sort.SliceStable(tests, func(i, j int) bool {
		return tests[i].CreatedAt.Before(tests[j].CreatedAt)
	})
}
