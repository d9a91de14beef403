// Package stats содержит чистые функции подсчета и агрегации результатов.
package stats

import (
	"sort"

	"github.com/SynapSnap/quizbot/internal/domain/model"
)

// TestStats — сводка по одному тесту
type TestStats struct {
	Count             int
	AveragePercentage float64
}

// Score подсчитывает правильные и пропущенные ответы и процент правильных.
// Для пустого списка процент равен 0.
func Score(answers []model.AnswerRecord) (correct, skipped int, percentage float64) {
	for _, a := range answers {
		if a.IsCorrect {
			correct++
		}
		if a.Skipped {
			skipped++
		}
	}
	if len(answers) > 0 {
		percentage = float64(correct) / float64(len(answers)) * 100
	}
	return correct, skipped, percentage
}

// AggregateByTest группирует результаты по тесту и считает средний процент.
// Тесты без результатов в итоговой карте отсутствуют.
func AggregateByTest(results []model.TestResult) map[string]TestStats {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, r := range results {
		sums[r.TestID] += r.Percentage
		counts[r.TestID]++
	}
	agg := make(map[string]TestStats, len(counts))
	for id, n := range counts {
		agg[id] = TestStats{Count: n, AveragePercentage: sums[id] / float64(n)}
	}
	return agg
}

// SortByCompletion сортирует результаты по времени завершения, новые первыми.
// Исходный срез не изменяется.
func SortByCompletion(results []model.TestResult) []model.TestResult {
	sorted := make([]model.TestResult, len(results))
	copy(sorted, results)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CompletedAt.After(sorted[j].CompletedAt)
	})
	return sorted
}
