// Package gateway описывает нормализованные формы входящих событий и исходящих
// запросов на отправку. Машины состояний работают только с этими типами и не
// знают о транспорте доставки: адаптер канала преобразует их в конкретные
// сообщения и обратно.
package gateway

// EventKind определяет вид входящего события
type EventKind string

const (
	EventCommand EventKind = "command"
	EventText    EventKind = "text"
	EventChoice  EventKind = "choice"
	EventMedia   EventKind = "media"
)

// Event — нормализованное входящее событие от канала доставки
type Event struct {
	UserID      int64
	DisplayName string
	Kind        EventKind
	Command     string // имя команды, для Kind == EventCommand
	Argument    string // аргумент команды (например, параметр deep link)
	Text        string
	Choice      string // непрозрачный токен выбранной кнопки
	MediaRef    string // ссылка на загруженное медиа
}

// OutboundKind определяет вид исходящего запроса на отправку
type OutboundKind string

const (
	OutboundPlain  OutboundKind = "plain"
	OutboundChoice OutboundKind = "choice"
	OutboundMedia  OutboundKind = "media"
	// OutboundQR — запрос на отрисовку и отправку сканируемого представления ссылки.
	// Само изображение рендерит адаптер, ядро передает только ссылку.
	OutboundQR OutboundKind = "qr"
)

// Option — одна кнопка выбора: подпись и токен, который вернется в Event.Choice
type Option struct {
	Label string
	Token string
}

// Outbound — запрос ядра на отправку сообщения пользователю.
type Outbound struct {
	UserID   int64
	Kind     OutboundKind
	Text     string
	Options  []Option
	MediaRef string
	Link     string // для OutboundQR: ссылка, которую нужно закодировать
	// Notify помечает сообщение как необязательное уведомление: адаптер
	// отправляет его в фоне, ошибка доставки логируется и не возвращается.
	Notify bool
}

// Plain строит простое текстовое сообщение
func Plain(userID int64, text string) Outbound {
	return Outbound{UserID: userID, Kind: OutboundPlain, Text: text}
}

// Choice строит сообщение с кнопками выбора
func Choice(userID int64, text string, options []Option) Outbound {
	return Outbound{UserID: userID, Kind: OutboundChoice, Text: text, Options: options}
}
