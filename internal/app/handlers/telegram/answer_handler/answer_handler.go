package answer_handler

import (
	"context"
	"strconv"
	"strings"

	"gopkg.in/telebot.v4"

	"github.com/SynapSnap/quizbot/internal/app/telegram"
	"github.com/SynapSnap/quizbot/internal/domain/messages"
	"github.com/SynapSnap/quizbot/internal/domain/model"
	"github.com/SynapSnap/quizbot/internal/domain/taking"
)

// AnswerHandler структура для обработки ответа на вопрос с вариантами
type AnswerHandler struct {
	taking *taking.Service
	sender *telegram.Sender
}

// NewAnswerHandler возвращает структуру обработчика
func NewAnswerHandler(takingService *taking.Service, sender *telegram.Sender) *AnswerHandler {
	return &AnswerHandler{taking: takingService, sender: sender}
}

// Handle разбирает токен вида answer_<index> и передает выбор в сессию
func (h *AnswerHandler) Handle(c telebot.Context, token string) error {
	index, err := strconv.Atoi(strings.TrimPrefix(token, model.AnswerPrefix))
	if err != nil {
		return c.Respond(&telebot.CallbackResponse{Text: messages.UnknownCallback})
	}
	ctx := context.Background()
	return h.sender.Deliver(h.taking.SubmitChoice(ctx, c.Sender().ID, index))
}
