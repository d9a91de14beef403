package my_tests_handler

import (
	"fmt"
	"strings"

	"gopkg.in/telebot.v4"

	"github.com/SynapSnap/quizbot/internal/app/telegram"
	"github.com/SynapSnap/quizbot/internal/domain/gateway"
	"github.com/SynapSnap/quizbot/internal/domain/keyboards"
	"github.com/SynapSnap/quizbot/internal/domain/messages"
	"github.com/SynapSnap/quizbot/internal/domain/model"
	"github.com/SynapSnap/quizbot/internal/domain/snapshot"
)

// MyTestsHandler структура для показа списка тестов учителя
type MyTestsHandler struct {
	registry *snapshot.Registry
	sender   *telegram.Sender
}

// NewMyTestsHandler возвращает структуру обработчика
func NewMyTestsHandler(registry *snapshot.Registry, sender *telegram.Sender) *MyTestsHandler {
	return &MyTestsHandler{registry: registry, sender: sender}
}

// Handle показывает тесты учителя с кнопками просмотра результатов и удаления
func (h *MyTestsHandler) Handle(c telebot.Context) error {
	userID := c.Sender().ID

	tests := h.registry.TestsByOwner(userID)
	if len(tests) == 0 {
		return h.sender.Deliver([]gateway.Outbound{
			gateway.Choice(userID, messages.NoTestsYet, keyboards.TeacherMenu()),
		})
	}

	var b strings.Builder
	b.WriteString(messages.MyTestsTitle)
	options := make([]gateway.Option, 0, 2*len(tests)+1)
	for _, test := range tests {
		fmt.Fprintf(&b, messages.TestItemFmt,
			test.Title(), test.ID,
			test.CreatedAt.Format(messages.TimeLayoutDisplay), len(test.Questions))
		options = append(options,
			gateway.Option{
				Label: fmt.Sprintf(messages.ViewButtonFmt, test.Title()),
				Token: model.ViewTestPrefix + test.ID,
			},
			gateway.Option{
				Label: fmt.Sprintf(messages.DeleteButtonFmt, test.Title()),
				Token: model.DeleteTestPrefix + test.ID,
			},
		)
	}
	options = append(options, gateway.Option{Label: messages.BackButton, Token: model.MainMenuKey})

	return h.sender.Deliver([]gateway.Outbound{
		gateway.Choice(userID, b.String(), options),
	})
}
