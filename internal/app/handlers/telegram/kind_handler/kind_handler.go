package kind_handler

import (
	"gopkg.in/telebot.v4"

	"github.com/SynapSnap/quizbot/internal/app/telegram"
	"github.com/SynapSnap/quizbot/internal/domain/authoring"
)

// KindHandler структура для обработки выбора типа вопроса в мастере
type KindHandler struct {
	authoring *authoring.Service
	sender    *telegram.Sender
}

// NewKindHandler возвращает структуру обработчика
func NewKindHandler(authoringService *authoring.Service, sender *telegram.Sender) *KindHandler {
	return &KindHandler{authoring: authoringService, sender: sender}
}

// Handle передает выбранный тип вопроса в мастер создания теста
func (h *KindHandler) Handle(c telebot.Context, token string) error {
	return h.sender.Deliver(h.authoring.HandleKind(c.Sender().ID, token))
}
