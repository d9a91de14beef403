package results_handler

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/telebot.v4"

	"github.com/SynapSnap/quizbot/internal/app/telegram"
	"github.com/SynapSnap/quizbot/internal/domain/gateway"
	"github.com/SynapSnap/quizbot/internal/domain/keyboards"
	"github.com/SynapSnap/quizbot/internal/domain/messages"
	"github.com/SynapSnap/quizbot/internal/domain/model"
	"github.com/SynapSnap/quizbot/internal/domain/snapshot"
	"github.com/SynapSnap/quizbot/internal/domain/stats"
)

// Число последних результатов в сводке по всем тестам и в карточке теста.
const (
	recentPerTest  = 5
	recentDetailed = 10
)

// ResultsHandler структура для показа результатов тестов учителя
type ResultsHandler struct {
	registry *snapshot.Registry
	sender   *telegram.Sender
}

// NewResultsHandler возвращает структуру обработчика
func NewResultsHandler(registry *snapshot.Registry, sender *telegram.Sender) *ResultsHandler {
	return &ResultsHandler{registry: registry, sender: sender}
}

// HandleAll показывает сводку результатов по всем тестам учителя
func (h *ResultsHandler) HandleAll(c telebot.Context) error {
	userID := c.Sender().ID

	results := h.registry.ResultsForOwner(userID)
	if len(results) == 0 {
		return h.sender.Deliver([]gateway.Outbound{
			gateway.Choice(userID, messages.NoResultsYet, keyboards.TeacherMenu()),
		})
	}

	aggregates := stats.AggregateByTest(results)

	var b strings.Builder
	b.WriteString(messages.AllResultsTitle)
	for _, test := range h.registry.TestsByOwner(userID) {
		agg, ok := aggregates[test.ID]
		if !ok {
			continue
		}
		b.WriteString(test.Title() + "\n")
		fmt.Fprintf(&b, messages.TestStatsFmt, agg.Count, agg.AveragePercentage)
		writeRecent(&b, h.registry.ResultsByTest(test.ID), recentPerTest)
		b.WriteString("\n")
	}

	return h.sender.Deliver([]gateway.Outbound{
		gateway.Choice(userID, b.String(), keyboards.TeacherMenu()),
	})
}

// HandleOne показывает карточку результатов одного теста по токену view_test_<id>
func (h *ResultsHandler) HandleOne(c telebot.Context, token string) error {
	userID := c.Sender().ID
	testID := strings.TrimPrefix(token, model.ViewTestPrefix)

	test, err := h.registry.Test(testID)
	if errors.Is(err, snapshot.ErrNotFound) {
		return c.Respond(&telebot.CallbackResponse{Text: messages.TestMissing})
	}
	if test.OwnerID != userID {
		return c.Respond(&telebot.CallbackResponse{Text: messages.NotYourTest})
	}

	back := []gateway.Option{{Label: messages.BackButton, Token: model.MyTestsKey}}

	results := h.registry.ResultsByTest(testID)
	if len(results) == 0 {
		return h.sender.Deliver([]gateway.Outbound{
			gateway.Choice(userID, fmt.Sprintf(messages.NoTestResultsFmt, test.Title()), back),
		})
	}

	agg := stats.AggregateByTest(results)[testID]

	var b strings.Builder
	fmt.Fprintf(&b, messages.TestResultsFmt, test.Title())
	fmt.Fprintf(&b, messages.TestStatsFmt, agg.Count, agg.AveragePercentage)
	writeRecent(&b, results, recentDetailed)

	return h.sender.Deliver([]gateway.Outbound{
		gateway.Choice(userID, b.String(), back),
	})
}

// writeRecent дописывает последние n результатов, самые свежие сверху
func writeRecent(b *strings.Builder, results []model.TestResult, n int) {
	recent := stats.SortByCompletion(results)
	if len(recent) > n {
		recent = recent[:n]
	}
	b.WriteString(messages.RecentResults)
	for _, r := range recent {
		fmt.Fprintf(b, messages.ResultLineFmt,
			r.TakerName, r.Score, r.TotalQuestions, r.Percentage,
			r.CompletedAt.Format(messages.TimeLayoutDisplay))
	}
}
