package skip_handler

import (
	"context"

	"gopkg.in/telebot.v4"

	"github.com/SynapSnap/quizbot/internal/app/telegram"
	"github.com/SynapSnap/quizbot/internal/domain/taking"
)

// SkipHandler структура для пропуска текущего вопроса
type SkipHandler struct {
	taking *taking.Service
	sender *telegram.Sender
}

// NewSkipHandler возвращает структуру обработчика
func NewSkipHandler(takingService *taking.Service, sender *telegram.Sender) *SkipHandler {
	return &SkipHandler{taking: takingService, sender: sender}
}

// Handle пропускает текущий вопрос активной сессии
func (h *SkipHandler) Handle(c telebot.Context) error {
	ctx := context.Background()
	return h.sender.Deliver(h.taking.Skip(ctx, c.Sender().ID))
}
