// Package telegram — адаптер канала доставки: преобразует исходящие запросы
// ядра в сообщения Telegram. Здесь же рендерится QR-код ссылки на тест и
// работает фоновая отправка необязательных уведомлений.
package telegram

import (
	"bytes"
	"fmt"
	"log"
	"strconv"
	"time"

	qrcode "github.com/skip2/go-qrcode"
	"gopkg.in/telebot.v4"

	"github.com/SynapSnap/quizbot/internal/domain/gateway"
)

// notifyAttempts — число попыток доставки необязательного уведомления.
const notifyAttempts = 2

// DisplayName возвращает имя пользователя для отчетов: username,
// а если его нет — числовой идентификатор.
func DisplayName(u *telebot.User) string {
	if u.Username != "" {
		return u.Username
	}
	return strconv.FormatInt(u.ID, 10)
}

// Sender отправляет исходящие запросы ядра через Telegram-бота.
type Sender struct {
	bot    *telebot.Bot
	notify chan gateway.Outbound
	done   chan struct{}
}

// NewSender создает адаптер и запускает фонового отправителя уведомлений.
func NewSender(bot *telebot.Bot) *Sender {
	s := &Sender{
		bot:    bot,
		notify: make(chan gateway.Outbound, 64),
		done:   make(chan struct{}),
	}
	go s.runNotifier()
	return s
}

// Deliver отправляет все исходящие запросы по порядку. Сообщения с пометкой
// Notify уходят в фоновую очередь: их доставка необязательна и не задерживает
// ответ инициатору.
func (s *Sender) Deliver(outs []gateway.Outbound) error {
	for _, out := range outs {
		if out.Notify {
			select {
			case s.notify <- out:
			default:
				log.Printf("telegram: очередь уведомлений переполнена, уведомление пользователю %d отброшено", out.UserID)
			}
			continue
		}
		if err := s.send(out); err != nil {
			return err
		}
	}
	return nil
}

// send отправляет одно сообщение в зависимости от его вида.
func (s *Sender) send(out gateway.Outbound) error {
	recipient := &telebot.User{ID: out.UserID}

	switch out.Kind {
	case gateway.OutboundMedia:
		photo := &telebot.Photo{
			File:    telebot.File{FileID: out.MediaRef},
			Caption: out.Text,
		}
		_, err := s.bot.Send(recipient, photo, s.markup(out))
		return err

	case gateway.OutboundQR:
		png, err := qrcode.Encode(out.Link, qrcode.Medium, 256)
		if err != nil {
			return fmt.Errorf("не удалось сгенерировать QR-код: %w", err)
		}
		photo := &telebot.Photo{
			File:    telebot.FromReader(bytes.NewReader(png)),
			Caption: out.Text,
		}
		_, err = s.bot.Send(recipient, photo)
		return err

	default:
		_, err := s.bot.Send(recipient, out.Text, s.markup(out))
		return err
	}
}

// markup собирает inline-клавиатуру из кнопок запроса, по одной кнопке в строке.
func (s *Sender) markup(out gateway.Outbound) *telebot.ReplyMarkup {
	rm := s.bot.NewMarkup()
	if len(out.Options) == 0 {
		return rm
	}
	rows := make([]telebot.Row, 0, len(out.Options))
	for _, opt := range out.Options {
		rows = append(rows, rm.Row(rm.Data(opt.Label, opt.Token)))
	}
	rm.Inline(rows...)
	return rm
}

// runNotifier доставляет необязательные уведомления с ограниченным числом
// попыток. Ошибка доставки логируется и никуда не пробрасывается.
func (s *Sender) runNotifier() {
	for {
		select {
		case out := <-s.notify:
			var err error
			for attempt := 1; attempt <= notifyAttempts; attempt++ {
				if err = s.send(out); err == nil {
					break
				}
				time.Sleep(time.Second)
			}
			if err != nil {
				log.Printf("telegram: не удалось отправить уведомление пользователю %d: %v", out.UserID, err)
			}
		case <-s.done:
			return
		}
	}
}

// Close останавливает фонового отправителя уведомлений.
func (s *Sender) Close() {
	close(s.done)
}
