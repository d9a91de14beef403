package model

import (
	"time"

	"github.com/google/uuid"
)

// Test представляет опубликованный тест.
// Порядок вопросов соответствует порядку добавления и после публикации не меняется.
type Test struct {
	ID        string     `json:"id"`
	OwnerID   int64      `json:"owner_id"`
	OwnerName string     `json:"owner_name"`
	Questions []Question `json:"questions"`
	CreatedAt time.Time  `json:"created_at"`
	Name      string     `json:"name,omitempty"`
	Active    bool       `json:"active"`
}

// NewTest создает пустой тест, привязанный к автору.
// Идентификатор выделяется сразу, вопросы добавляются по мере прохождения мастера.
func NewTest(ownerID int64, ownerName, name string) Test {
	return Test{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		OwnerName: ownerName,
		Questions: []Question{},
		CreatedAt: time.Now(),
		Name:      name,
		Active:    true,
	}
}

// Title возвращает отображаемое название теста
func (t Test) Title() string {
	if t.Name != "" {
		return "«" + t.Name + "»"
	}
	short := t.ID
	if len(short) > 8 {
		short = short[:8] + "..."
	}
	return "ID: " + short
}
