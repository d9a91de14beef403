// Package keyboards собирает наборы кнопок для сообщений с выбором.
package keyboards

import (
	"fmt"

	"github.com/SynapSnap/quizbot/internal/domain/gateway"
	"github.com/SynapSnap/quizbot/internal/domain/messages"
	"github.com/SynapSnap/quizbot/internal/domain/model"
)

// RoleMenu — клавиатура выбора роли
func RoleMenu() []gateway.Option {
	return []gateway.Option{
		{Label: messages.RoleTeacherButton, Token: model.RoleTeacherKey},
		{Label: messages.RoleStudentButton, Token: model.RoleStudentKey},
	}
}

// TeacherMenu — главное меню учителя
func TeacherMenu() []gateway.Option {
	return []gateway.Option{
		{Label: messages.CreateTestButton, Token: model.CreateTestKey},
		{Label: messages.MyTestsButton, Token: model.MyTestsKey},
		{Label: messages.TestResultsButton, Token: model.TestResultsKey},
	}
}

// KindMenu — клавиатура выбора типа вопроса
func KindMenu() []gateway.Option {
	return []gateway.Option{
		{Label: messages.KindChoiceButton, Token: model.KindChoiceKey},
		{Label: messages.KindTextButton, Token: model.KindTextKey},
		{Label: messages.KindMediaChoiceButton, Token: model.KindMediaChoiceKey},
		{Label: messages.KindMediaTextButton, Token: model.KindMediaTextKey},
	}
}

// Lettered подписывает вариант буквой: "A. Москва", "B. Казань" и так далее.
func Lettered(i int, option string) string {
	return fmt.Sprintf("%c. %s", rune('A'+i), option)
}

// CorrectChoices — выбор правильного ответа среди только что введенных вариантов
func CorrectChoices(options []string) []gateway.Option {
	choices := make([]gateway.Option, 0, len(options))
	for i, opt := range options {
		choices = append(choices, gateway.Option{
			Label: Lettered(i, opt),
			Token: fmt.Sprintf("%s%d", model.CorrectPrefix, i),
		})
	}
	return choices
}

// AnswerChoices — варианты ответа на вопрос плюс кнопка пропуска
func AnswerChoices(options []string) []gateway.Option {
	choices := make([]gateway.Option, 0, len(options)+1)
	for i, opt := range options {
		choices = append(choices, gateway.Option{
			Label: Lettered(i, opt),
			Token: fmt.Sprintf("%s%d", model.AnswerPrefix, i),
		})
	}
	return append(choices, SkipOnly()...)
}

// SkipOnly — одиночная кнопка пропуска для вопросов со свободным вводом
func SkipOnly() []gateway.Option {
	return []gateway.Option{{Label: messages.SkipButton, Token: model.SkipQuestionKey}}
}
