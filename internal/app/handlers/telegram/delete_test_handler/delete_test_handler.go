package delete_test_handler

import (
	"errors"
	"strings"

	"gopkg.in/telebot.v4"

	"github.com/SynapSnap/quizbot/internal/domain/messages"
	"github.com/SynapSnap/quizbot/internal/domain/model"
	"github.com/SynapSnap/quizbot/internal/domain/snapshot"
)

// DeleteTestHandler структура для удаления теста
type DeleteTestHandler struct {
	registry *snapshot.Registry
}

// NewDeleteTestHandler возвращает структуру обработчика
func NewDeleteTestHandler(registry *snapshot.Registry) *DeleteTestHandler {
	return &DeleteTestHandler{registry: registry}
}

// Handle удаляет тест по токену delete_test_<id>. Удалить тест может только
// его владелец, вместе с тестом удаляются и его результаты.
func (h *DeleteTestHandler) Handle(c telebot.Context, token string) error {
	testID := strings.TrimPrefix(token, model.DeleteTestPrefix)

	err := h.registry.DeleteTest(testID, c.Sender().ID)
	switch {
	case errors.Is(err, snapshot.ErrNotFound):
		return c.Respond(&telebot.CallbackResponse{Text: messages.TestMissing})
	case errors.Is(err, snapshot.ErrNotOwner):
		return c.Respond(&telebot.CallbackResponse{Text: messages.NotYourTest})
	case err != nil:
		return err
	}
	return c.Send(messages.TestDeleted)
}
