package start_handler

import (
	"context"
	"strings"

	"gopkg.in/telebot.v4"

	"github.com/SynapSnap/quizbot/internal/app/telegram"
	"github.com/SynapSnap/quizbot/internal/domain/gateway"
	"github.com/SynapSnap/quizbot/internal/domain/keyboards"
	"github.com/SynapSnap/quizbot/internal/domain/messages"
	"github.com/SynapSnap/quizbot/internal/domain/model"
	"github.com/SynapSnap/quizbot/internal/domain/snapshot"
	"github.com/SynapSnap/quizbot/internal/domain/taking"
)

// StartHandler структура для обработки команды /start
type StartHandler struct {
	registry *snapshot.Registry
	taking   *taking.Service
	sender   *telegram.Sender
}

// NewStartHandler возвращает структуру обработчика
func NewStartHandler(registry *snapshot.Registry, takingService *taking.Service, sender *telegram.Sender) *StartHandler {
	return &StartHandler{
		registry: registry,
		taking:   takingService,
		sender:   sender,
	}
}

// Handle обрабатывает команду /start. Аргумент вида test_<id> — глубокая
// ссылка на тест: сессия прохождения стартует сразу, без выбора роли.
func (h *StartHandler) Handle(c telebot.Context) error {
	sender := c.Sender()
	ctx := context.Background()

	payload := strings.TrimSpace(c.Message().Payload)
	if strings.HasPrefix(payload, model.DeepLinkPrefix) {
		testID := strings.TrimPrefix(payload, model.DeepLinkPrefix)
		outs, started := h.taking.Start(ctx, sender.ID, telegram.DisplayName(sender), testID)
		if started {
			// Переход по ссылке на тест делает пользователя учеником.
			h.registry.SetRole(sender.ID, model.RoleStudent)
		}
		return h.sender.Deliver(outs)
	}

	role, ok := h.registry.Role(sender.ID)
	if !ok {
		return h.sender.Deliver([]gateway.Outbound{
			gateway.Choice(sender.ID, messages.WelcomeChooseRole, keyboards.RoleMenu()),
			gateway.Plain(sender.ID, messages.WelcomeHelpHint),
		})
	}

	switch role {
	case model.RoleTeacher:
		return h.sender.Deliver([]gateway.Outbound{
			gateway.Choice(sender.ID, messages.WelcomeTeacher, keyboards.TeacherMenu()),
		})
	default:
		return h.sender.Deliver([]gateway.Outbound{
			gateway.Plain(sender.ID, messages.WelcomeStudent),
		})
	}
}

// GetHandlerFunc возвращает обработчик в формате telebot.HandlerFunc
func (h *StartHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
