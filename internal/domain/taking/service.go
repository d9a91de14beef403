// Package taking реализует машину состояний прохождения теста.
// Сессия участника персистится после каждого ответа, поэтому прохождение
// переживает перезапуск процесса: после рестарта участник продолжает с
// текущего вопроса. Ответы добавляются строго по порядку вопросов, без
// пропусков в списке — len(Answers) всегда равен индексу текущего вопроса.
package taking

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/SynapSnap/quizbot/internal/domain/gateway"
	"github.com/SynapSnap/quizbot/internal/domain/keyboards"
	"github.com/SynapSnap/quizbot/internal/domain/messages"
	"github.com/SynapSnap/quizbot/internal/domain/model"
	"github.com/SynapSnap/quizbot/internal/domain/sessions"
	"github.com/SynapSnap/quizbot/internal/domain/snapshot"
	"github.com/SynapSnap/quizbot/internal/domain/stats"
)

// Service управляет сессиями прохождения тестов.
type Service struct {
	store    sessions.Store
	registry *snapshot.Registry
}

// NewService создает сервис прохождения тестов.
func NewService(store sessions.Store, registry *snapshot.Registry) *Service {
	return &Service{store: store, registry: registry}
}

// Start начинает прохождение теста. Существующая сессия участника
// перезаписывается: у одного участника может быть только одна живая сессия.
// Второе возвращаемое значение сообщает, была ли сессия действительно создана.
func (s *Service) Start(ctx context.Context, takerID int64, takerName, testID string) ([]gateway.Outbound, bool) {
	test, err := s.registry.Test(testID)
	if err != nil || !test.Active {
		return []gateway.Outbound{gateway.Plain(takerID, messages.TestNotFound)}, false
	}

	if prev, err := s.store.ActiveTest(ctx, takerID); err == nil && prev != testID {
		log.Printf("taking: участник %d бросил тест %s и начал %s", takerID, prev, testID)
	}

	session := model.TakingSession{
		TestID:          testID,
		TakerID:         takerID,
		TakerName:       takerName,
		CurrentQuestion: 0,
		Answers:         []model.AnswerRecord{},
		StartedAt:       time.Now(),
	}
	if err := s.store.Put(ctx, session); err != nil {
		log.Printf("taking: не удалось сохранить сессию участника %d: %v", takerID, err)
	}
	if err := s.store.SetActiveTest(ctx, takerID, testID); err != nil {
		log.Printf("taking: не удалось установить активный тест участника %d: %v", takerID, err)
	}

	intro := gateway.Plain(takerID, fmt.Sprintf(messages.TestIntroFmt, len(test.Questions), test.OwnerName))
	return append([]gateway.Outbound{intro}, s.present(ctx, session, test)...), true
}

// Active сообщает, есть ли у участника живая сессия
func (s *Service) Active(ctx context.Context, takerID int64) bool {
	_, err := s.store.Get(ctx, takerID)
	return err == nil
}

// AwaitingText сообщает, ждет ли текущий вопрос участника свободного ввода.
func (s *Service) AwaitingText(ctx context.Context, takerID int64) bool {
	session, err := s.store.Get(ctx, takerID)
	if err != nil {
		return false
	}
	test, err := s.registry.Test(session.TestID)
	if err != nil || session.CurrentQuestion >= len(test.Questions) {
		return false
	}
	return test.Questions[session.CurrentQuestion].Kind == model.FreeText
}

// present показывает текущий вопрос или завершает тест, если вопросы кончились.
// Единая проверка индекса покрывает и тест без оставшихся вопросов, и только
// что отвеченный последний вопрос.
func (s *Service) present(ctx context.Context, session model.TakingSession, test model.Test) []gateway.Outbound {
	if session.CurrentQuestion >= len(test.Questions) {
		return s.finish(ctx, session, test)
	}

	question := test.Questions[session.CurrentQuestion]
	header := fmt.Sprintf(messages.QuestionHeaderFmt,
		session.CurrentQuestion+1, len(test.Questions), question.Text)

	out := gateway.Outbound{UserID: session.TakerID, MediaRef: question.MediaRef}
	if question.Kind == model.ChoiceSet {
		out.Text = header
		out.Options = keyboards.AnswerChoices(question.Options)
	} else {
		out.Text = header + "\n\n" + messages.EnterAnswer
		out.Options = keyboards.SkipOnly()
	}
	if question.MediaRef != "" {
		out.Kind = gateway.OutboundMedia
	} else {
		out.Kind = gateway.OutboundChoice
	}
	return []gateway.Outbound{out}
}

// SubmitChoice обрабатывает выбор варианта ответа кнопкой.
func (s *Service) SubmitChoice(ctx context.Context, takerID int64, index int) []gateway.Outbound {
	session, err := s.store.Get(ctx, takerID)
	if err != nil {
		return []gateway.Outbound{gateway.Plain(takerID, messages.SessionNotFound)}
	}
	test, err := s.registry.Test(session.TestID)
	if err != nil {
		return s.abandon(ctx, takerID)
	}
	// Сессия могла сохраниться после последнего ответа, но до удаления при
	// подведении итога: вопросов не осталось, остается только итог.
	if session.CurrentQuestion >= len(test.Questions) {
		return s.present(ctx, session, test)
	}
	question := test.Questions[session.CurrentQuestion]
	if question.Kind != model.ChoiceSet || index < 0 || index >= len(question.Options) {
		return []gateway.Outbound{gateway.Plain(takerID, messages.UnknownCallback)}
	}

	selected := question.Options[index]
	correct := selected == question.CorrectAnswer

	feedback := messages.AnswerCorrect
	if !correct {
		feedback = fmt.Sprintf(messages.AnswerWrongFmt, question.CorrectAnswer)
	}
	echo := gateway.Plain(takerID, fmt.Sprintf(messages.QuestionHeaderFmt,
		session.CurrentQuestion+1, len(test.Questions), question.Text)+
		"\n\n"+fmt.Sprintf(messages.YourAnswerFmt, selected, feedback))

	record := model.AnswerRecord{
		QuestionID: question.ID,
		Answer:     selected,
		IsCorrect:  correct,
	}
	return append([]gateway.Outbound{echo}, s.advance(ctx, session, test, record)...)
}

// SubmitText обрабатывает свободный текстовый ответ. Сравнение с правильным
// ответом выполняется без учета регистра, пробелы по краям отбрасываются.
func (s *Service) SubmitText(ctx context.Context, takerID int64, text string) []gateway.Outbound {
	session, err := s.store.Get(ctx, takerID)
	if err != nil {
		return []gateway.Outbound{gateway.Plain(takerID, messages.SessionNotFound)}
	}
	test, err := s.registry.Test(session.TestID)
	if err != nil {
		return s.abandon(ctx, takerID)
	}
	if session.CurrentQuestion >= len(test.Questions) {
		return s.present(ctx, session, test)
	}
	question := test.Questions[session.CurrentQuestion]
	if question.Kind != model.FreeText {
		return []gateway.Outbound{gateway.Plain(takerID, messages.UnknownCallback)}
	}

	answer := strings.TrimSpace(text)
	correct := strings.EqualFold(answer, question.CorrectAnswer)

	feedback := messages.AnswerCorrect
	if !correct {
		feedback = fmt.Sprintf(messages.AnswerWrongFmt, question.CorrectAnswer)
	}
	echo := gateway.Plain(takerID, fmt.Sprintf(messages.YourAnswerFmt, answer, feedback))

	record := model.AnswerRecord{
		QuestionID: question.ID,
		Answer:     answer,
		IsCorrect:  correct,
	}
	return append([]gateway.Outbound{echo}, s.advance(ctx, session, test, record)...)
}

// Skip пропускает текущий вопрос независимо от его типа.
func (s *Service) Skip(ctx context.Context, takerID int64) []gateway.Outbound {
	session, err := s.store.Get(ctx, takerID)
	if err != nil {
		return []gateway.Outbound{gateway.Plain(takerID, messages.SessionNotFound)}
	}
	test, err := s.registry.Test(session.TestID)
	if err != nil {
		return s.abandon(ctx, takerID)
	}
	if session.CurrentQuestion >= len(test.Questions) {
		return s.present(ctx, session, test)
	}

	record := model.AnswerRecord{
		QuestionID: test.Questions[session.CurrentQuestion].ID,
		Answer:     "",
		IsCorrect:  false,
		Skipped:    true,
	}
	echo := gateway.Plain(takerID, messages.QuestionSkipped)
	return append([]gateway.Outbound{echo}, s.advance(ctx, session, test, record)...)
}

// advance фиксирует запись об ответе, сдвигает индекс вопроса и персистит
// сессию. Ошибка записи логируется, но ответ в рамках текущего запроса
// обрабатывается по состоянию в памяти.
func (s *Service) advance(ctx context.Context, session model.TakingSession, test model.Test, record model.AnswerRecord) []gateway.Outbound {
	session.Answers = append(session.Answers, record)
	session.CurrentQuestion++
	if err := s.store.Put(ctx, session); err != nil {
		log.Printf("taking: не удалось сохранить сессию участника %d: %v", session.TakerID, err)
	}
	return s.present(ctx, session, test)
}

// finish подводит итог: собирает TestResult, сохраняет его, отправляет сводку
// участнику и необязательное уведомление автору, затем удаляет сессию.
func (s *Service) finish(ctx context.Context, session model.TakingSession, test model.Test) []gateway.Outbound {
	correct, skipped, percentage := stats.Score(session.Answers)
	result := model.TestResult{
		TestID:         test.ID,
		TakerID:        session.TakerID,
		TakerName:      session.TakerName,
		Answers:        session.Answers,
		Score:          correct,
		TotalQuestions: len(test.Questions),
		Percentage:     percentage,
		SkippedCount:   skipped,
		CompletedAt:    time.Now(),
	}
	s.registry.AppendResult(result)

	var summary strings.Builder
	summary.WriteString(fmt.Sprintf(messages.ResultHeaderFmt,
		correct, result.TotalQuestions, percentage, skipped))
	if skipped > 0 {
		summary.WriteString(messages.SkippedListTitle)
		for i, a := range session.Answers {
			if a.Skipped {
				summary.WriteString(fmt.Sprintf(messages.SkippedItemFmt, i+1) + "\n")
			}
		}
		summary.WriteString("\n")
	}
	summary.WriteString(messages.Banner(percentage))

	notify := gateway.Plain(test.OwnerID, fmt.Sprintf(messages.OwnerNotifyFmt,
		session.TakerName, test.Title(), correct, result.TotalQuestions,
		percentage, skipped, result.CompletedAt.Format(messages.TimeLayoutDisplay)))
	notify.Notify = true

	// Очистка сессии не зависит от доставки уведомления автору.
	if err := s.store.Delete(ctx, session.TakerID); err != nil {
		log.Printf("taking: не удалось удалить сессию участника %d: %v", session.TakerID, err)
	}

	return []gateway.Outbound{
		gateway.Plain(session.TakerID, summary.String()),
		notify,
	}
}

// abandon закрывает сессию, тест которой был удален во время прохождения.
func (s *Service) abandon(ctx context.Context, takerID int64) []gateway.Outbound {
	if err := s.store.Delete(ctx, takerID); err != nil {
		log.Printf("taking: не удалось удалить сессию участника %d: %v", takerID, err)
	}
	return []gateway.Outbound{gateway.Plain(takerID, messages.TestNotFound)}
}
