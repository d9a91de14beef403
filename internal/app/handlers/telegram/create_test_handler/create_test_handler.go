package create_test_handler

import (
	"gopkg.in/telebot.v4"

	"github.com/SynapSnap/quizbot/internal/app/telegram"
	"github.com/SynapSnap/quizbot/internal/domain/authoring"
	"github.com/SynapSnap/quizbot/internal/domain/gateway"
	"github.com/SynapSnap/quizbot/internal/domain/messages"
	"github.com/SynapSnap/quizbot/internal/domain/model"
	"github.com/SynapSnap/quizbot/internal/domain/snapshot"
)

// CreateTestHandler структура для запуска мастера создания теста
type CreateTestHandler struct {
	registry  *snapshot.Registry
	authoring *authoring.Service
	sender    *telegram.Sender
}

// NewCreateTestHandler возвращает структуру обработчика
func NewCreateTestHandler(registry *snapshot.Registry, authoringService *authoring.Service, sender *telegram.Sender) *CreateTestHandler {
	return &CreateTestHandler{
		registry:  registry,
		authoring: authoringService,
		sender:    sender,
	}
}

// Handle запускает мастер создания теста. Создавать тесты может только учитель.
func (h *CreateTestHandler) Handle(c telebot.Context) error {
	userID := c.Sender().ID

	role, ok := h.registry.Role(userID)
	if !ok || role != model.RoleTeacher {
		return h.sender.Deliver([]gateway.Outbound{
			gateway.Plain(userID, messages.NoRoleHint),
		})
	}
	return h.sender.Deliver(h.authoring.Begin(userID))
}
