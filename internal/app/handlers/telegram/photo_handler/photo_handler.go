package photo_handler

import (
	"gopkg.in/telebot.v4"

	"github.com/SynapSnap/quizbot/internal/app/telegram"
	"github.com/SynapSnap/quizbot/internal/domain/authoring"
)

// PhotoHandler структура для обработки загруженных фото
type PhotoHandler struct {
	authoring *authoring.Service
	sender    *telegram.Sender
}

// NewPhotoHandler возвращает структуру обработчика
func NewPhotoHandler(authoringService *authoring.Service, sender *telegram.Sender) *PhotoHandler {
	return &PhotoHandler{authoring: authoringService, sender: sender}
}

// Handle принимает фото для вопроса с медиа. Фото вне мастера игнорируется.
func (h *PhotoHandler) Handle(c telebot.Context) error {
	photo := c.Message().Photo
	if photo == nil || !h.authoring.Active(c.Sender().ID) {
		return nil
	}
	return h.sender.Deliver(h.authoring.HandleMedia(c.Sender().ID, photo.FileID))
}

// GetHandlerFunc возвращает обработчик в формате telebot.HandlerFunc
func (h *PhotoHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
