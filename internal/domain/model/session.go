package model

import (
	"fmt"
	"time"
)

// TakingSession представляет незавершенное прохождение теста.
// Сессия хранится по ключу TakerID: у одного участника может быть
// не больше одной живой сессии, новый запуск теста перезаписывает старую.
type TakingSession struct {
	TestID          string         `json:"test_id"`
	TakerID         int64          `json:"taker_id"`
	TakerName       string         `json:"taker_name"`
	CurrentQuestion int            `json:"current_question"`
	Answers         []AnswerRecord `json:"answers"`
	StartedAt       time.Time      `json:"started_at"`
}

// Validate проверяет форму загруженной сессии.
// Список ответов всегда ровно покрывает уже пройденные вопросы.
func (s TakingSession) Validate() error {
	if s.TestID == "" {
		return fmt.Errorf("сессия участника %d: пустой идентификатор теста", s.TakerID)
	}
	if s.CurrentQuestion < 0 {
		return fmt.Errorf("сессия участника %d: отрицательный индекс вопроса %d", s.TakerID, s.CurrentQuestion)
	}
	if len(s.Answers) != s.CurrentQuestion {
		return fmt.Errorf("сессия участника %d: %d ответов при индексе вопроса %d",
			s.TakerID, len(s.Answers), s.CurrentQuestion)
	}
	for _, a := range s.Answers {
		if a.Skipped && (a.IsCorrect || a.Answer != "") {
			return fmt.Errorf("сессия участника %d: некорректная запись пропуска вопроса %s", s.TakerID, a.QuestionID)
		}
	}
	return nil
}
