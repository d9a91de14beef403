package text_handler

import (
	"context"

	"gopkg.in/telebot.v4"

	"github.com/SynapSnap/quizbot/internal/app/telegram"
	"github.com/SynapSnap/quizbot/internal/domain/authoring"
	"github.com/SynapSnap/quizbot/internal/domain/gateway"
	"github.com/SynapSnap/quizbot/internal/domain/keyboards"
	"github.com/SynapSnap/quizbot/internal/domain/messages"
	"github.com/SynapSnap/quizbot/internal/domain/model"
	"github.com/SynapSnap/quizbot/internal/domain/snapshot"
	"github.com/SynapSnap/quizbot/internal/domain/taking"
)

// TextHandler структура для маршрутизации произвольного текста
type TextHandler struct {
	registry  *snapshot.Registry
	authoring *authoring.Service
	taking    *taking.Service
	sender    *telegram.Sender
}

// NewTextHandler возвращает структуру обработчика
func NewTextHandler(
	registry *snapshot.Registry,
	authoringService *authoring.Service,
	takingService *taking.Service,
	sender *telegram.Sender,
) *TextHandler {
	return &TextHandler{
		registry:  registry,
		authoring: authoringService,
		taking:    takingService,
		sender:    sender,
	}
}

// Handle направляет текст в активный мастер создания теста, в ожидающую
// свободного ввода сессию прохождения, либо отвечает подсказкой по роли.
func (h *TextHandler) Handle(c telebot.Context) error {
	sender := c.Sender()
	text := c.Text()
	ctx := context.Background()

	if h.authoring.Active(sender.ID) {
		return h.sender.Deliver(h.authoring.HandleText(gateway.Event{
			UserID:      sender.ID,
			DisplayName: telegram.DisplayName(sender),
			Kind:        gateway.EventText,
			Text:        text,
		}))
	}

	if h.taking.AwaitingText(ctx, sender.ID) {
		return h.sender.Deliver(h.taking.SubmitText(ctx, sender.ID, text))
	}

	role, ok := h.registry.Role(sender.ID)
	if !ok {
		return c.Send(messages.NoRoleHint)
	}
	if role == model.RoleTeacher {
		return h.sender.Deliver([]gateway.Outbound{
			gateway.Choice(sender.ID, messages.TeacherMenuHint, keyboards.TeacherMenu()),
		})
	}
	return c.Send(messages.StudentMenuHint)
}

// GetHandlerFunc возвращает обработчик в формате telebot.HandlerFunc
func (h *TextHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
