package report

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/SynapSnap/quizbot/internal/domain/model"
	"github.com/SynapSnap/quizbot/internal/domain/stats"
)

// FontDir — каталог с UTF-8 шрифтами, поддерживающими кириллицу.
var FontDir = "fonts"

// GeneratePDFReport формирует PDF-отчёт по результатам одного теста.
// Отчёт формируется в виде непрерывного текста с переносами (без таблицы).
func GeneratePDFReport(test model.Test, results []model.TestResult) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")

	pdf.AddUTF8Font("DejaVu", "", FontDir+"/DejaVuSans.ttf")
	pdf.AddUTF8Font("DejaVu", "B", FontDir+"/DejaVuSans-Bold.ttf")

	pdf.SetFont("DejaVu", "", 14)
	pdf.AddPage()

	// Заголовок отчёта.
	pdf.SetFont("DejaVu", "B", 16)
	pdf.MultiCell(0, 10, fmt.Sprintf("Отчет по тесту %s", test.Title()), "", "L", false)
	pdf.Ln(4)

	// Сводка по тесту.
	pdf.SetFont("DejaVu", "", 12)
	agg := stats.AggregateByTest(results)
	summary := fmt.Sprintf("Автор: @%s\nВопросов: %d\nПрошли: %d чел.\n",
		test.OwnerName, len(test.Questions), len(results))
	if s, ok := agg[test.ID]; ok {
		summary += fmt.Sprintf("Средний балл: %.1f%%\n", s.AveragePercentage)
	}
	pdf.MultiCell(0, 8, summary, "", "L", false)
	pdf.Ln(4)

	// Детальные результаты, новые первыми.
	for _, r := range stats.SortByCompletion(results) {
		pdf.SetFont("DejaVu", "B", 12)
		pdf.MultiCell(0, 8, fmt.Sprintf("Ученик: @%s", r.TakerName), "", "L", false)

		pdf.SetFont("DejaVu", "", 12)
		line := fmt.Sprintf("Результат: %d/%d (%.1f%%)\nПропущено: %d\nЗавершен: %s\n",
			r.Score, r.TotalQuestions, r.Percentage, r.SkippedCount,
			r.CompletedAt.Format("02.01.2006 15:04"))
		pdf.MultiCell(0, 8, line, "", "L", false)
		pdf.Ln(2)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
