package taking

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/SynapSnap/quizbot/internal/domain/gateway"
	"github.com/SynapSnap/quizbot/internal/domain/messages"
	"github.com/SynapSnap/quizbot/internal/domain/model"
	"github.com/SynapSnap/quizbot/internal/domain/sessions"
	"github.com/SynapSnap/quizbot/internal/domain/snapshot"
)

const (
	ownerID = int64(1)
	takerID = int64(2)
)

// newFixture создает сервис прохождения с тестом из четырех вопросов:
// три с вариантами и один со свободным вводом.
func newFixture(t *testing.T) (*Service, *snapshot.Registry, sessions.Store, model.Test) {
	t.Helper()
	registry := snapshot.NewRegistry(filepath.Join(t.TempDir(), "bot_data.json"))
	store := sessions.NewMemoryStore()

	test := model.Test{
		ID:        "test-1",
		OwnerID:   ownerID,
		OwnerName: "teacher",
		Name:      "География",
		Active:    true,
		CreatedAt: time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC),
		Questions: []model.Question{
			{ID: "q1", Text: "Столица России?", Kind: model.ChoiceSet,
				Options: []string{"Москва", "Казань"}, CorrectAnswer: "Москва"},
			{ID: "q2", Text: "Capital of France?", Kind: model.FreeText, CorrectAnswer: "Paris"},
			{ID: "q3", Text: "Столица Татарстана?", Kind: model.ChoiceSet,
				Options: []string{"Москва", "Казань"}, CorrectAnswer: "Казань"},
			{ID: "q4", Text: "2+2?", Kind: model.ChoiceSet,
				Options: []string{"3", "4"}, CorrectAnswer: "4"},
		},
	}
	registry.PutTest(test)

	return NewService(store, registry), registry, store, test
}

// mustSession читает сессию участника и проверяет ее инвариант.
func mustSession(t *testing.T, store sessions.Store, takerID int64) model.TakingSession {
	t.Helper()
	session, err := store.Get(context.Background(), takerID)
	if err != nil {
		t.Fatalf("сессия участника %d не найдена: %v", takerID, err)
	}
	if err := session.Validate(); err != nil {
		t.Fatalf("инвариант сессии нарушен: %v", err)
	}
	return session
}

// TestStartUnknownTest проверяет запуск несуществующего теста.
func TestStartUnknownTest(t *testing.T) {
	svc, _, store, _ := newFixture(t)
	ctx := context.Background()

	outs, started := svc.Start(ctx, takerID, "student", "no-such-test")
	if started {
		t.Error("запуск несуществующего теста не должен создавать сессию")
	}
	if len(outs) != 1 || outs[0].Text != messages.TestNotFound {
		t.Errorf("ожидалось сообщение о ненайденном тесте, получено %+v", outs)
	}
	if _, err := store.Get(ctx, takerID); !errors.Is(err, sessions.ErrNotFound) {
		t.Errorf("сессии быть не должно, получено %v", err)
	}
}

// TestStartPresentsFirstQuestion проверяет, что запуск показывает первый вопрос.
func TestStartPresentsFirstQuestion(t *testing.T) {
	svc, _, store, test := newFixture(t)
	ctx := context.Background()

	outs, started := svc.Start(ctx, takerID, "student", test.ID)
	if !started {
		t.Fatal("запуск существующего теста должен создать сессию")
	}
	if len(outs) != 2 {
		t.Fatalf("ожидались вступление и первый вопрос, получено %d сообщений", len(outs))
	}
	if !strings.Contains(outs[1].Text, test.Questions[0].Text) {
		t.Errorf("первый вопрос не показан: %q", outs[1].Text)
	}
	if len(outs[1].Options) != len(test.Questions[0].Options)+1 {
		t.Errorf("ожидались варианты плюс кнопка пропуска, получено %d кнопок", len(outs[1].Options))
	}

	session := mustSession(t, store, takerID)
	if session.CurrentQuestion != 0 || len(session.Answers) != 0 {
		t.Errorf("новая сессия должна начинаться с нулевого вопроса: %+v", session)
	}
}

// TestStartOverwritesSession проверяет, что повторный запуск сбрасывает прогресс.
func TestStartOverwritesSession(t *testing.T) {
	svc, _, store, test := newFixture(t)
	ctx := context.Background()

	svc.Start(ctx, takerID, "student", test.ID)
	svc.SubmitChoice(ctx, takerID, 0)
	if s := mustSession(t, store, takerID); s.CurrentQuestion != 1 {
		t.Fatalf("после ответа ожидался вопрос 1, получено %d", s.CurrentQuestion)
	}

	svc.Start(ctx, takerID, "student", test.ID)
	session := mustSession(t, store, takerID)
	if session.CurrentQuestion != 0 || len(session.Answers) != 0 {
		t.Errorf("повторный запуск должен сбросить прогресс: %+v", session)
	}
}

// TestFullRun проверяет полное прохождение: два правильных ответа, один
// пропуск и один неправильный ответ дают 50%.
func TestFullRun(t *testing.T) {
	svc, registry, store, test := newFixture(t)
	ctx := context.Background()

	svc.Start(ctx, takerID, "student", test.ID)

	// q1: правильный вариант.
	outs := svc.SubmitChoice(ctx, takerID, 0)
	if !strings.Contains(outs[0].Text, messages.AnswerCorrect) {
		t.Errorf("ожидался отклик о правильном ответе: %q", outs[0].Text)
	}
	mustSession(t, store, takerID)

	// q2: свободный ввод, регистр и пробелы не учитываются.
	outs = svc.SubmitText(ctx, takerID, "  paris ")
	if !strings.Contains(outs[0].Text, messages.AnswerCorrect) {
		t.Errorf("ответ в другом регистре должен засчитываться: %q", outs[0].Text)
	}
	mustSession(t, store, takerID)

	// q3: пропуск.
	outs = svc.Skip(ctx, takerID)
	if outs[0].Text != messages.QuestionSkipped {
		t.Errorf("ожидался отклик о пропуске: %q", outs[0].Text)
	}
	mustSession(t, store, takerID)

	// q4: неправильный вариант завершает тест.
	outs = svc.SubmitChoice(ctx, takerID, 0)
	if len(outs) != 3 {
		t.Fatalf("ожидались отклик, сводка и уведомление автору, получено %d сообщений", len(outs))
	}
	if !strings.Contains(outs[0].Text, fmt.Sprintf(messages.AnswerWrongFmt, "4")) {
		t.Errorf("отклик должен показывать правильный ответ: %q", outs[0].Text)
	}

	summary := outs[1]
	if summary.UserID != takerID {
		t.Errorf("сводка должна уходить участнику, получено %d", summary.UserID)
	}
	if !strings.Contains(summary.Text, "2/4") {
		t.Errorf("сводка должна содержать счет 2/4: %q", summary.Text)
	}
	if !strings.Contains(summary.Text, "50.0%") {
		t.Errorf("сводка должна содержать 50.0%%: %q", summary.Text)
	}

	notify := outs[2]
	if !notify.Notify || notify.UserID != ownerID {
		t.Errorf("уведомление должно уходить автору с пометкой Notify: %+v", notify)
	}

	// Результат сохранен, сессия удалена.
	results := registry.ResultsByTest(test.ID)
	if len(results) != 1 {
		t.Fatalf("ожидался 1 результат, получено %d", len(results))
	}
	result := results[0]
	if result.Score != 2 || result.SkippedCount != 1 || result.Percentage != 50.0 {
		t.Errorf("результат посчитан неверно: %+v", result)
	}
	if result.TotalQuestions != 4 || len(result.Answers) != 4 {
		t.Errorf("результат должен покрывать все вопросы: %+v", result)
	}
	if _, err := store.Get(ctx, takerID); !errors.Is(err, sessions.ErrNotFound) {
		t.Errorf("сессия должна удаляться после завершения, получено %v", err)
	}
}

// TestSubmitChoiceBounds проверяет отклонение некорректного индекса варианта.
func TestSubmitChoiceBounds(t *testing.T) {
	svc, _, store, test := newFixture(t)
	ctx := context.Background()
	svc.Start(ctx, takerID, "student", test.ID)

	for _, bad := range []int{-1, 2, 50} {
		outs := svc.SubmitChoice(ctx, takerID, bad)
		if len(outs) != 1 || outs[0].Text != messages.UnknownCallback {
			t.Errorf("индекс %d должен отклоняться, получено %+v", bad, outs)
		}
	}
	if s := mustSession(t, store, takerID); s.CurrentQuestion != 0 {
		t.Errorf("некорректный ввод не должен сдвигать прогресс: %+v", s)
	}
}

// TestSubmitWithoutSession проверяет ответы без открытой сессии.
func TestSubmitWithoutSession(t *testing.T) {
	svc, _, _, _ := newFixture(t)
	ctx := context.Background()

	for name, outs := range map[string][]gateway.Outbound{
		"выбор":   svc.SubmitChoice(ctx, takerID, 0),
		"текст":   svc.SubmitText(ctx, takerID, "ответ"),
		"пропуск": svc.Skip(ctx, takerID),
	} {
		if len(outs) != 1 || outs[0].Text != messages.SessionNotFound {
			t.Errorf("%s без сессии: ожидалось сообщение о ненайденной сессии, получено %+v", name, outs)
		}
	}
}

// TestDeletedTestAbandonsSession проверяет закрытие сессии удаленного теста.
func TestDeletedTestAbandonsSession(t *testing.T) {
	svc, registry, store, test := newFixture(t)
	ctx := context.Background()
	svc.Start(ctx, takerID, "student", test.ID)

	if err := registry.DeleteTest(test.ID, ownerID); err != nil {
		t.Fatalf("удаление теста: %v", err)
	}

	outs := svc.SubmitChoice(ctx, takerID, 0)
	if len(outs) != 1 || outs[0].Text != messages.TestNotFound {
		t.Errorf("ожидалось сообщение о ненайденном тесте, получено %+v", outs)
	}
	if _, err := store.Get(ctx, takerID); !errors.Is(err, sessions.ErrNotFound) {
		t.Errorf("сессия удаленного теста должна закрываться, получено %v", err)
	}
}

// TestTextAnswerWrongKind проверяет текстовый ответ на вопрос с вариантами.
func TestTextAnswerWrongKind(t *testing.T) {
	svc, _, _, test := newFixture(t)
	ctx := context.Background()
	svc.Start(ctx, takerID, "student", test.ID)

	outs := svc.SubmitText(ctx, takerID, "Москва")
	if len(outs) != 1 || outs[0].Text != messages.UnknownCallback {
		t.Errorf("текстовый ответ на вопрос с вариантами должен отклоняться, получено %+v", outs)
	}
}

// TestResumeCompletedSession проверяет восстановление сессии, сохраненной
// после последнего ответа, но удаленной не до конца: процесс мог упасть между
// записью сессии и подведением итога. Любое следующее событие должно подвести
// итог, а не обращаться к несуществующему вопросу.
func TestResumeCompletedSession(t *testing.T) {
	svc, registry, store, test := newFixture(t)
	ctx := context.Background()

	seed := func() {
		session := model.TakingSession{
			TestID:          test.ID,
			TakerID:         takerID,
			TakerName:       "student",
			CurrentQuestion: len(test.Questions),
			Answers: []model.AnswerRecord{
				{QuestionID: "q1", Answer: "Москва", IsCorrect: true},
				{QuestionID: "q2", Answer: "Paris", IsCorrect: true},
				{QuestionID: "q3", Skipped: true},
				{QuestionID: "q4", Answer: "3"},
			},
			StartedAt: time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC),
		}
		if err := session.Validate(); err != nil {
			t.Fatalf("подготовленная сессия должна быть корректной: %v", err)
		}
		if err := store.Put(ctx, session); err != nil {
			t.Fatalf("Put: %v", err)
		}
	}

	events := []struct {
		name string
		fire func() []gateway.Outbound
	}{
		{"пропуск", func() []gateway.Outbound { return svc.Skip(ctx, takerID) }},
		{"выбор", func() []gateway.Outbound { return svc.SubmitChoice(ctx, takerID, 0) }},
		{"текст", func() []gateway.Outbound { return svc.SubmitText(ctx, takerID, "ответ") }},
	}
	for _, ev := range events {
		seed()
		outs := ev.fire()
		if len(outs) != 2 {
			t.Fatalf("%s: ожидались сводка и уведомление автору, получено %d сообщений", ev.name, len(outs))
		}
		if !strings.Contains(outs[0].Text, "2/4") {
			t.Errorf("%s: сводка должна содержать счет 2/4: %q", ev.name, outs[0].Text)
		}
		if !outs[1].Notify || outs[1].UserID != ownerID {
			t.Errorf("%s: уведомление должно уходить автору: %+v", ev.name, outs[1])
		}
		if _, err := store.Get(ctx, takerID); !errors.Is(err, sessions.ErrNotFound) {
			t.Errorf("%s: сессия должна удаляться после итога, получено %v", ev.name, err)
		}
	}

	if results := registry.ResultsByTest(test.ID); len(results) != len(events) {
		t.Errorf("каждое восстановление должно фиксировать результат: %d", len(results))
	}
}

// TestAwaitingText проверяет определение ожидания свободного ввода.
func TestAwaitingText(t *testing.T) {
	svc, _, _, test := newFixture(t)
	ctx := context.Background()

	if svc.AwaitingText(ctx, takerID) {
		t.Error("без сессии свободный ввод не ожидается")
	}

	svc.Start(ctx, takerID, "student", test.ID)
	if svc.AwaitingText(ctx, takerID) {
		t.Error("первый вопрос с вариантами, свободный ввод не ожидается")
	}

	svc.SubmitChoice(ctx, takerID, 0)
	if !svc.AwaitingText(ctx, takerID) {
		t.Error("второй вопрос со свободным вводом должен ожидать текст")
	}
}
