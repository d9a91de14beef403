// Package authoring реализует машину состояний мастера создания теста.
// Каждый автор проходит линейный мастер: количество вопросов, название теста,
// затем по кругу для каждого вопроса — тип, (медиа), текст, варианты, правильный
// ответ. Черновики хранятся в памяти по идентификатору автора и перезапуск
// процесса не переживают; опубликованный тест сразу уходит в реестр.
package authoring

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/SynapSnap/quizbot/internal/domain/gateway"
	"github.com/SynapSnap/quizbot/internal/domain/keyboards"
	"github.com/SynapSnap/quizbot/internal/domain/messages"
	"github.com/SynapSnap/quizbot/internal/domain/model"
	"github.com/SynapSnap/quizbot/internal/domain/snapshot"
)

// State — состояние мастера для одного автора
type State string

const (
	StateAwaitCount   State = "await_question_count"
	StateAwaitName    State = "await_test_name"
	StateAwaitKind    State = "await_question_kind"
	StateAwaitMedia   State = "await_media"
	StateAwaitPrompt  State = "await_prompt_text"
	StateAwaitCaption State = "await_media_caption" // текст вопроса после фото, "-" означает пустой
	StateAwaitOptions State = "await_options"
	// Выбор правильного ответа: кнопками для вопросов с вариантами,
	// свободным текстом для остальных.
	StateAwaitCorrectOption State = "await_correct_option"
	StateAwaitCorrectText   State = "await_correct_text"
)

// NameSentinel — ввод, означающий "оставить поле пустым".
const NameSentinel = "-"

// Draft — черновик теста: тег состояния плюс накопленные данные.
type Draft struct {
	State State

	Total int        // заявленное количество вопросов
	Test  model.Test // наполняется по одному вопросу за цикл мастера

	// Поля текущего вопроса, очищаются после каждого сохранения.
	PendingKind     model.QuestionKind
	PendingText     string
	PendingOptions  []string
	PendingMediaRef string
}

// Service управляет черновиками всех авторов.
type Service struct {
	mu       sync.Mutex
	drafts   map[int64]*Draft
	registry *snapshot.Registry
	baseURL  string
}

// NewService создает сервис мастера. baseURL — адрес бота для ссылок на тест.
func NewService(registry *snapshot.Registry, baseURL string) *Service {
	return &Service{
		drafts:   make(map[int64]*Draft),
		registry: registry,
		baseURL:  baseURL,
	}
}

// ShareLink строит ссылку для прохождения теста
func (s *Service) ShareLink(testID string) string {
	return fmt.Sprintf("%s?start=%s%s", s.baseURL, model.DeepLinkPrefix, testID)
}

// Active сообщает, есть ли у автора незавершенный мастер
func (s *Service) Active(authorID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.drafts[authorID]
	return ok
}

// Begin запускает мастер создания теста, сбрасывая прежний черновик автора.
func (s *Service) Begin(authorID int64) []gateway.Outbound {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[authorID] = &Draft{State: StateAwaitCount}
	return []gateway.Outbound{gateway.Plain(authorID, messages.AskQuestionCount)}
}

// textHandlers — таблица диспетчеризации текстового ввода по состояниям.
// Состояния, ожидающие не текст (тип вопроса, фото, выбор кнопкой),
// отвечают повторным запросом нужного ввода без смены состояния.
var textHandlers = map[State]func(*Service, *gateway.Event, *Draft) []gateway.Outbound{
	StateAwaitCount:         (*Service).handleCount,
	StateAwaitName:          (*Service).handleName,
	StateAwaitKind:          rePrompt(messages.WizardUnexpectedIn),
	StateAwaitMedia:         rePrompt(messages.BadMedia),
	StateAwaitPrompt:        (*Service).handlePrompt,
	StateAwaitCaption:       (*Service).handleCaption,
	StateAwaitOptions:       (*Service).handleOptions,
	StateAwaitCorrectOption: rePrompt(messages.WizardUnexpectedIn),
	StateAwaitCorrectText:   (*Service).handleCorrectText,
}

func rePrompt(text string) func(*Service, *gateway.Event, *Draft) []gateway.Outbound {
	return func(_ *Service, ev *gateway.Event, _ *Draft) []gateway.Outbound {
		return []gateway.Outbound{gateway.Plain(ev.UserID, text)}
	}
}

// HandleText обрабатывает текстовый ввод автора в текущем состоянии мастера.
func (s *Service) HandleText(ev gateway.Event) []gateway.Outbound {
	s.mu.Lock()
	defer s.mu.Unlock()
	draft, ok := s.drafts[ev.UserID]
	if !ok {
		return []gateway.Outbound{gateway.Plain(ev.UserID, messages.NoActiveWizard)}
	}
	handler, ok := textHandlers[draft.State]
	if !ok {
		return []gateway.Outbound{gateway.Plain(ev.UserID, messages.WizardUnexpectedIn)}
	}
	return handler(s, &ev, draft)
}

// handleCount принимает количество вопросов: положительное целое число.
func (s *Service) handleCount(ev *gateway.Event, draft *Draft) []gateway.Outbound {
	count, err := strconv.Atoi(strings.TrimSpace(ev.Text))
	if err != nil || count <= 0 {
		return []gateway.Outbound{gateway.Plain(ev.UserID, messages.BadQuestionCount)}
	}
	draft.Total = count
	draft.State = StateAwaitName
	return []gateway.Outbound{gateway.Plain(ev.UserID, fmt.Sprintf(messages.AskTestNameFmt, count))}
}

// handleName принимает название теста ("-" оставляет тест без названия)
// и выделяет идентификатор теста.
func (s *Service) handleName(ev *gateway.Event, draft *Draft) []gateway.Outbound {
	name := ev.Text
	if name == NameSentinel {
		name = ""
	}
	draft.Test = model.NewTest(ev.UserID, ev.DisplayName, name)
	draft.State = StateAwaitKind

	title := name
	if title == "" {
		title = messages.NoName
	}
	return []gateway.Outbound{gateway.Choice(ev.UserID,
		fmt.Sprintf(messages.AskQuestionKindFmt, title, 1, draft.Total),
		keyboards.KindMenu())}
}

// HandleKind обрабатывает выбор типа вопроса.
func (s *Service) HandleKind(authorID int64, token string) []gateway.Outbound {
	s.mu.Lock()
	defer s.mu.Unlock()
	draft, ok := s.drafts[authorID]
	if !ok {
		return []gateway.Outbound{gateway.Plain(authorID, messages.NoActiveWizard)}
	}
	if draft.State != StateAwaitKind {
		return []gateway.Outbound{gateway.Plain(authorID, messages.WizardUnexpectedIn)}
	}

	switch token {
	case model.KindChoiceKey:
		draft.PendingKind = model.ChoiceSet
		draft.State = StateAwaitPrompt
		return []gateway.Outbound{gateway.Plain(authorID, messages.AskPromptChoice)}
	case model.KindTextKey:
		draft.PendingKind = model.FreeText
		draft.State = StateAwaitPrompt
		return []gateway.Outbound{gateway.Plain(authorID, messages.AskPromptText)}
	case model.KindMediaChoiceKey:
		draft.PendingKind = model.ChoiceSet
		draft.State = StateAwaitMedia
		return []gateway.Outbound{gateway.Plain(authorID, messages.KindMediaChoiceButton+"\n\n"+messages.AskMedia)}
	case model.KindMediaTextKey:
		draft.PendingKind = model.FreeText
		draft.State = StateAwaitMedia
		return []gateway.Outbound{gateway.Plain(authorID, messages.KindMediaTextButton+"\n\n"+messages.AskMedia)}
	default:
		return []gateway.Outbound{gateway.Plain(authorID, messages.WizardUnexpectedIn)}
	}
}

// HandleMedia обрабатывает загрузку фото задания.
func (s *Service) HandleMedia(authorID int64, mediaRef string) []gateway.Outbound {
	s.mu.Lock()
	defer s.mu.Unlock()
	draft, ok := s.drafts[authorID]
	if !ok {
		return []gateway.Outbound{gateway.Plain(authorID, messages.NoActiveWizard)}
	}
	if draft.State != StateAwaitMedia {
		return []gateway.Outbound{gateway.Plain(authorID, messages.WizardUnexpectedIn)}
	}
	draft.PendingMediaRef = mediaRef
	draft.State = StateAwaitCaption
	return []gateway.Outbound{gateway.Plain(authorID, messages.MediaSaved)}
}

// handlePrompt принимает текст вопроса без медиа. Текст обязателен,
// сентинел здесь не действует.
func (s *Service) handlePrompt(ev *gateway.Event, draft *Draft) []gateway.Outbound {
	draft.PendingText = ev.Text
	return s.afterPrompt(ev.UserID, draft)
}

// handleCaption принимает подпись к фото: "-" оставляет вопрос без текста.
func (s *Service) handleCaption(ev *gateway.Event, draft *Draft) []gateway.Outbound {
	if ev.Text != NameSentinel {
		draft.PendingText = ev.Text
	} else {
		draft.PendingText = ""
	}
	return s.afterPrompt(ev.UserID, draft)
}

// afterPrompt переводит мастер к вариантам ответа или к вводу правильного ответа.
func (s *Service) afterPrompt(authorID int64, draft *Draft) []gateway.Outbound {
	if draft.PendingKind == model.ChoiceSet {
		draft.State = StateAwaitOptions
		return []gateway.Outbound{gateway.Plain(authorID, messages.AskOptions)}
	}
	draft.State = StateAwaitCorrectText
	return []gateway.Outbound{gateway.Plain(authorID, messages.AskCorrectText)}
}

// handleOptions разбирает варианты ответов: по строке на вариант,
// пустые строки отбрасываются, требуется минимум два варианта.
func (s *Service) handleOptions(ev *gateway.Event, draft *Draft) []gateway.Outbound {
	var options []string
	for _, line := range strings.Split(ev.Text, "\n") {
		if opt := strings.TrimSpace(line); opt != "" {
			options = append(options, opt)
		}
	}
	if len(options) < 2 {
		return []gateway.Outbound{gateway.Plain(ev.UserID, messages.TooFewOptions)}
	}
	draft.PendingOptions = options
	draft.State = StateAwaitCorrectOption
	return []gateway.Outbound{gateway.Choice(ev.UserID, messages.ChooseCorrect,
		keyboards.CorrectChoices(options))}
}

// HandleCorrectOption обрабатывает выбор правильного варианта кнопкой.
func (s *Service) HandleCorrectOption(authorID int64, index int) []gateway.Outbound {
	s.mu.Lock()
	defer s.mu.Unlock()
	draft, ok := s.drafts[authorID]
	if !ok {
		return []gateway.Outbound{gateway.Plain(authorID, messages.NoActiveWizard)}
	}
	if draft.State != StateAwaitCorrectOption || index < 0 || index >= len(draft.PendingOptions) {
		return []gateway.Outbound{gateway.Plain(authorID, messages.WizardUnexpectedIn)}
	}
	return s.saveQuestion(authorID, draft, draft.PendingOptions[index])
}

// handleCorrectText принимает точный правильный ответ для свободного ввода.
// Регистр здесь не нормализуется: сравнение без учета регистра выполняется
// при проверке ответов участника.
func (s *Service) handleCorrectText(ev *gateway.Event, draft *Draft) []gateway.Outbound {
	return s.saveQuestion(ev.UserID, draft, ev.Text)
}

// saveQuestion собирает вопрос из накопленных полей черновика, добавляет его в
// тест и либо запускает цикл для следующего вопроса, либо публикует тест.
func (s *Service) saveQuestion(authorID int64, draft *Draft, correct string) []gateway.Outbound {
	question := model.Question{
		ID:            model.NewQuestionID(),
		Text:          draft.PendingText,
		Kind:          draft.PendingKind,
		Options:       draft.PendingOptions,
		CorrectAnswer: correct,
		MediaRef:      draft.PendingMediaRef,
	}
	draft.Test.Questions = append(draft.Test.Questions, question)

	saved := len(draft.Test.Questions)
	if saved < draft.Total {
		draft.PendingKind = ""
		draft.PendingText = ""
		draft.PendingOptions = nil
		draft.PendingMediaRef = ""
		draft.State = StateAwaitKind
		return []gateway.Outbound{gateway.Choice(authorID,
			fmt.Sprintf(messages.NextQuestionKindFmt, saved, draft.Total, saved+1, draft.Total),
			keyboards.KindMenu())}
	}

	// Заявленное количество вопросов достигнуто: тест публикуется,
	// мастер автора завершается.
	test := draft.Test
	s.registry.PutTest(test)
	delete(s.drafts, authorID)

	link := s.ShareLink(test.ID)
	return []gateway.Outbound{
		{
			UserID: authorID,
			Kind:   gateway.OutboundQR,
			Link:   link,
			Text:   fmt.Sprintf(messages.TestCreatedFmt, draft.Total, test.ID, link),
		},
		gateway.Choice(authorID, messages.WhatNext, keyboards.TeacherMenu()),
	}
}
