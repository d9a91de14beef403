package correct_option_handler

import (
	"strconv"
	"strings"

	"gopkg.in/telebot.v4"

	"github.com/SynapSnap/quizbot/internal/app/telegram"
	"github.com/SynapSnap/quizbot/internal/domain/authoring"
	"github.com/SynapSnap/quizbot/internal/domain/messages"
	"github.com/SynapSnap/quizbot/internal/domain/model"
)

// CorrectOptionHandler структура для выбора правильного варианта в мастере
type CorrectOptionHandler struct {
	authoring *authoring.Service
	sender    *telegram.Sender
}

// NewCorrectOptionHandler возвращает структуру обработчика
func NewCorrectOptionHandler(authoringService *authoring.Service, sender *telegram.Sender) *CorrectOptionHandler {
	return &CorrectOptionHandler{authoring: authoringService, sender: sender}
}

// Handle разбирает токен вида correct_<index> и передает выбор в мастер
func (h *CorrectOptionHandler) Handle(c telebot.Context, token string) error {
	index, err := strconv.Atoi(strings.TrimPrefix(token, model.CorrectPrefix))
	if err != nil {
		return c.Respond(&telebot.CallbackResponse{Text: messages.UnknownCallback})
	}
	return h.sender.Deliver(h.authoring.HandleCorrectOption(c.Sender().ID, index))
}
