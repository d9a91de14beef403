package help_handler

import (
	"gopkg.in/telebot.v4"

	"github.com/SynapSnap/quizbot/internal/domain/messages"
	"github.com/SynapSnap/quizbot/internal/domain/model"
	"github.com/SynapSnap/quizbot/internal/domain/snapshot"
)

// HelpHandler структура для обработки команды /help
type HelpHandler struct {
	registry *snapshot.Registry
}

// NewHelpHandler возвращает структуру обработчика
func NewHelpHandler(registry *snapshot.Registry) *HelpHandler {
	return &HelpHandler{registry: registry}
}

// Handle отправляет справку, подобранную под роль пользователя
func (h *HelpHandler) Handle(c telebot.Context) error {
	role, ok := h.registry.Role(c.Sender().ID)
	if !ok {
		return c.Send(messages.HelpNoRole)
	}
	if role == model.RoleTeacher {
		return c.Send(messages.HelpTeacher)
	}
	return c.Send(messages.HelpStudent)
}

// GetHandlerFunc возвращает обработчик в формате telebot.HandlerFunc
func (h *HelpHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
