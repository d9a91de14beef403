package model

import "time"

// AnswerRecord представляет ответ участника на один вопрос.
// Для пропущенного вопроса Answer пустой, а IsCorrect всегда false.
type AnswerRecord struct {
	QuestionID string `json:"question_id"`
	Answer     string `json:"answer"`
	IsCorrect  bool   `json:"is_correct"`
	Skipped    bool   `json:"skipped"`
}

// TestResult представляет итог прохождения теста.
// Создается один раз при ответе на последний вопрос и далее не изменяется.
type TestResult struct {
	TestID         string         `json:"test_id"`
	TakerID        int64          `json:"taker_id"`
	TakerName      string         `json:"taker_name"`
	Answers        []AnswerRecord `json:"answers"`
	Score          int            `json:"score"` // количество правильных ответов
	TotalQuestions int            `json:"total_questions"`
	Percentage     float64        `json:"percentage"`
	SkippedCount   int            `json:"skipped_count"`
	CompletedAt    time.Time      `json:"completed_at"`
}
