package model

import (
	"fmt"

	"github.com/google/uuid"
)

// QuestionKind определяет тип вопроса теста
type QuestionKind string

const (
	// ChoiceSet — вопрос с фиксированными вариантами ответа
	ChoiceSet QuestionKind = "choice_set"
	// FreeText — вопрос со свободным вводом текста
	FreeText QuestionKind = "free_text"
)

// Question представляет вопрос теста
type Question struct {
	ID            string       `json:"id"`
	Text          string       `json:"text"` // может быть пустым, если к вопросу прикреплено медиа
	Kind          QuestionKind `json:"kind"`
	Options       []string     `json:"options,omitempty"` // только для ChoiceSet, минимум 2 варианта
	CorrectAnswer string       `json:"correct_answer"`
	MediaRef      string       `json:"media_ref,omitempty"` // file_id фото в Telegram
}

// NewQuestionID генерирует уникальный идентификатор вопроса
func NewQuestionID() string {
	return uuid.NewString()
}

// Validate проверяет инварианты вопроса
func (q Question) Validate() error {
	switch q.Kind {
	case ChoiceSet:
		if len(q.Options) < 2 {
			return fmt.Errorf("вопрос %s: требуется минимум 2 варианта ответа, получено %d", q.ID, len(q.Options))
		}
		for _, opt := range q.Options {
			if opt == q.CorrectAnswer {
				return nil
			}
		}
		return fmt.Errorf("вопрос %s: правильный ответ отсутствует среди вариантов", q.ID)
	case FreeText:
		if len(q.Options) != 0 {
			return fmt.Errorf("вопрос %s: варианты ответа недопустимы для свободного ввода", q.ID)
		}
		return nil
	default:
		return fmt.Errorf("вопрос %s: неизвестный тип %q", q.ID, q.Kind)
	}
}
