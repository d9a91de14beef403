package role_handler

import (
	"gopkg.in/telebot.v4"

	"github.com/SynapSnap/quizbot/internal/app/telegram"
	"github.com/SynapSnap/quizbot/internal/domain/gateway"
	"github.com/SynapSnap/quizbot/internal/domain/keyboards"
	"github.com/SynapSnap/quizbot/internal/domain/messages"
	"github.com/SynapSnap/quizbot/internal/domain/model"
	"github.com/SynapSnap/quizbot/internal/domain/snapshot"
)

// RoleHandler структура для обработки выбора роли
type RoleHandler struct {
	registry *snapshot.Registry
	sender   *telegram.Sender
}

// NewRoleHandler возвращает структуру обработчика
func NewRoleHandler(registry *snapshot.Registry, sender *telegram.Sender) *RoleHandler {
	return &RoleHandler{registry: registry, sender: sender}
}

// Handle фиксирует выбранную роль и показывает соответствующее меню.
// Токен приходит уже очищенным от служебного префикса callback-данных.
func (h *RoleHandler) Handle(c telebot.Context, token string) error {
	userID := c.Sender().ID

	switch token {
	case model.RoleTeacherKey:
		h.registry.SetRole(userID, model.RoleTeacher)
		return h.sender.Deliver([]gateway.Outbound{
			gateway.Choice(userID, messages.RoleTeacherChosen, keyboards.TeacherMenu()),
		})
	case model.RoleStudentKey:
		h.registry.SetRole(userID, model.RoleStudent)
		return h.sender.Deliver([]gateway.Outbound{
			gateway.Plain(userID, messages.RoleStudentChosen),
		})
	default:
		return c.Respond(&telebot.CallbackResponse{Text: messages.UnknownCallback})
	}
}
