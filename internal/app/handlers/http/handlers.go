// Package http отдает служебный HTTP API: список активных тестов, статистику,
// ссылки с QR-кодом и PDF-отчеты по результатам. Статистика и отчеты доступны
// только владельцу теста: идентификатор владельца передается в запросе.
package http

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/SynapSnap/quizbot/internal/domain/authoring"
	"github.com/SynapSnap/quizbot/internal/domain/model"
	"github.com/SynapSnap/quizbot/internal/domain/snapshot"
	"github.com/SynapSnap/quizbot/internal/domain/stats"
	"github.com/SynapSnap/quizbot/internal/infra/report"
	httpError "github.com/SynapSnap/quizbot/pkg/http"
)

type testSummary struct {
	ID            string    `json:"id"`
	Name          string    `json:"name,omitempty"`
	OwnerName     string    `json:"owner_name"`
	QuestionCount int       `json:"question_count"`
	CreatedAt     time.Time `json:"created_at"`
}

type testStatsResponse struct {
	ID                string       `json:"id"`
	Name              string       `json:"name,omitempty"`
	Count             int          `json:"count"`
	AveragePercentage float64      `json:"average_percentage"`
	Results           []resultView `json:"results"`
}

type resultView struct {
	TakerName      string    `json:"taker_name"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	Percentage     float64   `json:"percentage"`
	SkippedCount   int       `json:"skipped_count"`
	CompletedAt    time.Time `json:"completed_at"`
}

type testLinkRequest struct {
	TestID  string `json:"test_id"`
	OwnerID int64  `json:"owner_id"`
}

type testLinkResponse struct {
	Link  string `json:"link"`
	QRPNG string `json:"qr_png_base64"`
}

// ownerID разбирает параметр запроса owner_id.
func ownerID(r *http.Request) (int64, error) {
	raw := r.URL.Query().Get("owner_id")
	if raw == "" {
		return 0, errors.New("owner_id не задан")
	}
	return strconv.ParseInt(raw, 10, 64)
}

// ownedTest загружает тест и проверяет, что им владеет запрошенный владелец.
// Ответ об ошибке уже отправлен, если вернулось false.
func ownedTest(w http.ResponseWriter, registry *snapshot.Registry, testID string, owner int64) (model.Test, bool) {
	test, err := registry.Test(testID)
	if errors.Is(err, snapshot.ErrNotFound) {
		httpError.ErrorResponse(w, http.StatusNotFound, "Тест не найден")
		return model.Test{}, false
	}
	if test.OwnerID != owner {
		httpError.ErrorResponse(w, http.StatusForbidden, "Нет прав на действие с чужим тестом")
		return model.Test{}, false
	}
	return test, true
}

// ListTestsHandler отдает список активных тестов; owner_id сужает его
// до тестов одного владельца.
// GET /api/tests?owner_id=
func ListTestsHandler(registry *snapshot.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var owner int64
		if raw := r.URL.Query().Get("owner_id"); raw != "" {
			parsed, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				httpError.ErrorResponse(w, http.StatusBadRequest, "Некорректный owner_id")
				return
			}
			owner = parsed
		}

		list := make([]testSummary, 0)
		for _, t := range registry.ActiveTests() {
			if owner != 0 && t.OwnerID != owner {
				continue
			}
			list = append(list, testSummary{
				ID:            t.ID,
				Name:          t.Name,
				OwnerName:     t.OwnerName,
				QuestionCount: len(t.Questions),
				CreatedAt:     t.CreatedAt,
			})
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(list)
	}
}

// TestStatsHandler отдает агрегированную статистику и результаты теста
// его владельцу.
// GET /api/tests/{testID}/stats?owner_id=
func TestStatsHandler(registry *snapshot.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, err := ownerID(r)
		if err != nil {
			httpError.ErrorResponse(w, http.StatusBadRequest, "Некорректный owner_id")
			return
		}
		test, ok := ownedTest(w, registry, chi.URLParam(r, "testID"), owner)
		if !ok {
			return
		}

		results := registry.ResultsByTest(test.ID)
		agg := stats.AggregateByTest(results)[test.ID]

		resp := testStatsResponse{
			ID:                test.ID,
			Name:              test.Name,
			Count:             agg.Count,
			AveragePercentage: agg.AveragePercentage,
			Results:           make([]resultView, 0, len(results)),
		}
		for _, res := range stats.SortByCompletion(results) {
			resp.Results = append(resp.Results, resultView{
				TakerName:      res.TakerName,
				Score:          res.Score,
				TotalQuestions: res.TotalQuestions,
				Percentage:     res.Percentage,
				SkippedCount:   res.SkippedCount,
				CompletedAt:    res.CompletedAt,
			})
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}

// TestLinkHandler отдает владельцу теста ссылку на прохождение и ее QR-код
// в base64.
// POST /api/tests/link {"test_id": ..., "owner_id": ...}
func TestLinkHandler(registry *snapshot.Registry, authoringService *authoring.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req testLinkRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError.ErrorResponse(w, http.StatusBadRequest, "Некорректное тело запроса")
			return
		}
		test, ok := ownedTest(w, registry, req.TestID, req.OwnerID)
		if !ok {
			return
		}

		link := authoringService.ShareLink(test.ID)
		png, err := qrcode.Encode(link, qrcode.Medium, 256)
		if err != nil {
			httpError.ErrorResponse(w, http.StatusInternalServerError,
				fmt.Sprintf("Не удалось сгенерировать QR-код: %v", err))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(testLinkResponse{
			Link:  link,
			QRPNG: base64.StdEncoding.EncodeToString(png),
		})
	}
}

// TestReportHandler отдает владельцу теста PDF-отчет по результатам.
// GET /api/tests/{testID}/report?owner_id=
func TestReportHandler(registry *snapshot.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, err := ownerID(r)
		if err != nil {
			httpError.ErrorResponse(w, http.StatusBadRequest, "Некорректный owner_id")
			return
		}
		test, ok := ownedTest(w, registry, chi.URLParam(r, "testID"), owner)
		if !ok {
			return
		}

		pdf, err := report.GeneratePDFReport(test, registry.ResultsByTest(test.ID))
		if err != nil {
			httpError.ErrorResponse(w, http.StatusInternalServerError,
				fmt.Sprintf("Не удалось сформировать отчет: %v", err))
			return
		}

		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition",
			fmt.Sprintf("attachment; filename=\"report_%s.pdf\"", test.ID))
		_, _ = w.Write(pdf)
	}
}
