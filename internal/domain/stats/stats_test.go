package stats

import (
	"testing"
	"time"

	"github.com/SynapSnap/quizbot/internal/domain/model"
)

// TestScore проверяет подсчет правильных ответов, пропусков и процента.
func TestScore(t *testing.T) {
	cases := []struct {
		name        string
		answers     []model.AnswerRecord
		wantCorrect int
		wantSkipped int
		wantPercent float64
	}{
		{name: "пустой список", wantPercent: 0},
		{
			name: "все правильные",
			answers: []model.AnswerRecord{
				{IsCorrect: true}, {IsCorrect: true},
			},
			wantCorrect: 2, wantPercent: 100,
		},
		{
			name: "смешанный",
			answers: []model.AnswerRecord{
				{IsCorrect: true}, {IsCorrect: true},
				{Skipped: true}, {},
			},
			wantCorrect: 2, wantSkipped: 1, wantPercent: 50,
		},
		{
			name: "треть",
			answers: []model.AnswerRecord{
				{IsCorrect: true}, {}, {},
			},
			wantCorrect: 1, wantPercent: float64(1) / float64(3) * 100,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			correct, skipped, percent := Score(tc.answers)
			if correct != tc.wantCorrect || skipped != tc.wantSkipped || percent != tc.wantPercent {
				t.Errorf("Score() = (%d, %d, %v), ожидалось (%d, %d, %v)",
					correct, skipped, percent, tc.wantCorrect, tc.wantSkipped, tc.wantPercent)
			}
		})
	}
}

// TestAggregateByTest проверяет группировку результатов и средний процент.
func TestAggregateByTest(t *testing.T) {
	results := []model.TestResult{
		{TestID: "a", Percentage: 100},
		{TestID: "a", Percentage: 50},
		{TestID: "b", Percentage: 75},
	}

	agg := AggregateByTest(results)
	if len(agg) != 2 {
		t.Fatalf("ожидалось 2 теста в сводке, получено %d", len(agg))
	}
	if agg["a"].Count != 2 || agg["a"].AveragePercentage != 75 {
		t.Errorf("сводка теста a: %+v", agg["a"])
	}
	if agg["b"].Count != 1 || agg["b"].AveragePercentage != 75 {
		t.Errorf("сводка теста b: %+v", agg["b"])
	}

	if empty := AggregateByTest(nil); len(empty) != 0 {
		t.Errorf("пустые результаты должны давать пустую сводку: %+v", empty)
	}
}

// TestSortByCompletion проверяет сортировку и неизменность исходного среза.
func TestSortByCompletion(t *testing.T) {
	base := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	results := []model.TestResult{
		{TakerName: "первый", CompletedAt: base},
		{TakerName: "третий", CompletedAt: base.Add(2 * time.Hour)},
		{TakerName: "второй", CompletedAt: base.Add(time.Hour)},
	}

	sorted := SortByCompletion(results)
	want := []string{"третий", "второй", "первый"}
	for i, name := range want {
		if sorted[i].TakerName != name {
			t.Errorf("позиция %d: ожидался %q, получен %q", i, name, sorted[i].TakerName)
		}
	}

	if results[0].TakerName != "первый" {
		t.Error("исходный срез не должен изменяться")
	}
}
