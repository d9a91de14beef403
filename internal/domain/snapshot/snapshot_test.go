package snapshot

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/SynapSnap/quizbot/internal/domain/model"
)

// fixtureTest строит тест с вопросами всех форм: вариантный, свободный ввод
// и вопрос с фото без текста.
func fixtureTest(id string, ownerID int64) model.Test {
	return model.Test{
		ID:        id,
		OwnerID:   ownerID,
		OwnerName: "teacher",
		Name:      "История",
		Active:    true,
		CreatedAt: time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC),
		Questions: []model.Question{
			{ID: "q1", Text: "Вопрос?", Kind: model.ChoiceSet,
				Options: []string{"Да", "Нет"}, CorrectAnswer: "Да"},
			{ID: "q2", Text: "Ответьте текстом", Kind: model.FreeText, CorrectAnswer: "1147"},
			{ID: "q3", Text: "", Kind: model.FreeText, CorrectAnswer: "42", MediaRef: "file_1"},
		},
	}
}

// TestSnapshotRoundTrip проверяет, что состояние переживает сброс и загрузку
// без потерь.
func TestSnapshotRoundTrip(t *testing.T) {
	file := filepath.Join(t.TempDir(), "data", "bot_data.json")

	registry := NewRegistry(file)
	registry.SetRole(1, model.RoleTeacher)
	registry.SetRole(2, model.RoleStudent)

	test := fixtureTest("test-1", 1)
	registry.PutTest(test)

	result := model.TestResult{
		TestID:         "test-1",
		TakerID:        2,
		TakerName:      "student",
		Score:          2,
		TotalQuestions: 3,
		Percentage:     66.66666666666666,
		SkippedCount:   1,
		CompletedAt:    time.Date(2025, 3, 2, 15, 0, 0, 0, time.UTC),
		Answers: []model.AnswerRecord{
			{QuestionID: "q1", Answer: "Да", IsCorrect: true},
			{QuestionID: "q2", Answer: "1147", IsCorrect: true},
			{QuestionID: "q3", Skipped: true},
		},
	}
	registry.AppendResult(result)

	if err := registry.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	restored := NewRegistry(file)
	if err := restored.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if role, ok := restored.Role(1); !ok || role != model.RoleTeacher {
		t.Errorf("роль учителя не восстановлена: %v %v", role, ok)
	}
	if role, ok := restored.Role(2); !ok || role != model.RoleStudent {
		t.Errorf("роль ученика не восстановлена: %v %v", role, ok)
	}

	got, err := restored.Test("test-1")
	if err != nil {
		t.Fatalf("Test: %v", err)
	}
	if !reflect.DeepEqual(got, test) {
		t.Errorf("тест изменился после перезагрузки:\nбыло  %+v\nстало %+v", test, got)
	}

	results := restored.ResultsByTest("test-1")
	if len(results) != 1 {
		t.Fatalf("ожидался 1 результат, получено %d", len(results))
	}
	if !reflect.DeepEqual(results[0], result) {
		t.Errorf("результат изменился после перезагрузки:\nбыло  %+v\nстало %+v", result, results[0])
	}
}

// TestLoadMissingFile проверяет, что отсутствие файла снапшота — не ошибка.
func TestLoadMissingFile(t *testing.T) {
	registry := NewRegistry(filepath.Join(t.TempDir(), "нет_такого.json"))
	if err := registry.Load(); err != nil {
		t.Fatalf("отсутствующий файл должен давать пустое состояние, получено %v", err)
	}
	if tests := registry.ActiveTests(); len(tests) != 0 {
		t.Errorf("пустое состояние не должно содержать тестов: %+v", tests)
	}
}

// TestLoadCorruptFile проверяет, что поврежденный снапшот возвращает ошибку.
func TestLoadCorruptFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "bot_data.json")
	if err := os.WriteFile(file, []byte("{не json"), 0o644); err != nil {
		t.Fatal(err)
	}
	registry := NewRegistry(file)
	if err := registry.Load(); err == nil {
		t.Error("поврежденный файл должен возвращать ошибку")
	}
}

// TestDeleteTestCascade проверяет удаление теста вместе с его результатами.
func TestDeleteTestCascade(t *testing.T) {
	registry := NewRegistry(filepath.Join(t.TempDir(), "bot_data.json"))

	registry.PutTest(fixtureTest("test-1", 1))
	registry.PutTest(fixtureTest("test-2", 1))
	registry.AppendResult(model.TestResult{TestID: "test-1", TakerID: 2})
	registry.AppendResult(model.TestResult{TestID: "test-2", TakerID: 2})
	registry.AppendResult(model.TestResult{TestID: "test-1", TakerID: 3})

	// Чужой тест удалить нельзя.
	if err := registry.DeleteTest("test-1", 99); !errors.Is(err, ErrNotOwner) {
		t.Errorf("ожидался ErrNotOwner, получено %v", err)
	}
	if err := registry.DeleteTest("нет-такого", 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("ожидался ErrNotFound, получено %v", err)
	}

	if err := registry.DeleteTest("test-1", 1); err != nil {
		t.Fatalf("DeleteTest: %v", err)
	}

	if _, err := registry.Test("test-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("удаленный тест должен отсутствовать, получено %v", err)
	}
	if results := registry.ResultsByTest("test-1"); len(results) != 0 {
		t.Errorf("результаты удаленного теста должны каскадно удаляться: %+v", results)
	}
	if results := registry.ResultsByTest("test-2"); len(results) != 1 {
		t.Errorf("результаты других тестов должны сохраняться: %+v", results)
	}
}

// TestTestsByOwnerOrder проверяет порядок списка тестов владельца.
func TestTestsByOwnerOrder(t *testing.T) {
	registry := NewRegistry(filepath.Join(t.TempDir(), "bot_data.json"))

	older := fixtureTest("test-old", 1)
	older.CreatedAt = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := fixtureTest("test-new", 1)
	newer.CreatedAt = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	foreign := fixtureTest("test-foreign", 7)

	registry.PutTest(newer)
	registry.PutTest(older)
	registry.PutTest(foreign)

	tests := registry.TestsByOwner(1)
	if len(tests) != 2 {
		t.Fatalf("ожидалось 2 теста владельца, получено %d", len(tests))
	}
	if tests[0].ID != "test-old" || tests[1].ID != "test-new" {
		t.Errorf("тесты должны идти в порядке создания: %s, %s", tests[0].ID, tests[1].ID)
	}
}

// TestResultsForOwner проверяет выборку результатов по всем тестам владельца.
func TestResultsForOwner(t *testing.T) {
	registry := NewRegistry(filepath.Join(t.TempDir(), "bot_data.json"))
	registry.PutTest(fixtureTest("test-1", 1))
	registry.PutTest(fixtureTest("test-2", 7))
	registry.AppendResult(model.TestResult{TestID: "test-1", TakerID: 2})
	registry.AppendResult(model.TestResult{TestID: "test-2", TakerID: 2})

	results := registry.ResultsForOwner(1)
	if len(results) != 1 || results[0].TestID != "test-1" {
		t.Errorf("ожидался только результат своего теста, получено %+v", results)
	}
}
