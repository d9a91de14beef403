package menu_handler

import (
	"gopkg.in/telebot.v4"

	"github.com/SynapSnap/quizbot/internal/app/telegram"
	"github.com/SynapSnap/quizbot/internal/domain/gateway"
	"github.com/SynapSnap/quizbot/internal/domain/keyboards"
	"github.com/SynapSnap/quizbot/internal/domain/messages"
	"github.com/SynapSnap/quizbot/internal/domain/model"
	"github.com/SynapSnap/quizbot/internal/domain/snapshot"
)

// MenuHandler структура для возврата в главное меню
type MenuHandler struct {
	registry *snapshot.Registry
	sender   *telegram.Sender
}

// NewMenuHandler возвращает структуру обработчика
func NewMenuHandler(registry *snapshot.Registry, sender *telegram.Sender) *MenuHandler {
	return &MenuHandler{registry: registry, sender: sender}
}

// Handle показывает главное меню в зависимости от роли пользователя
func (h *MenuHandler) Handle(c telebot.Context) error {
	userID := c.Sender().ID

	role, ok := h.registry.Role(userID)
	if !ok {
		return h.sender.Deliver([]gateway.Outbound{
			gateway.Choice(userID, messages.WelcomeChooseRole, keyboards.RoleMenu()),
		})
	}
	if role == model.RoleTeacher {
		return h.sender.Deliver([]gateway.Outbound{
			gateway.Choice(userID, messages.WelcomeTeacher, keyboards.TeacherMenu()),
		})
	}
	return h.sender.Deliver([]gateway.Outbound{
		gateway.Plain(userID, messages.WelcomeStudent),
	})
}
