// Package messages содержит тексты сообщений и подписи кнопок.
// Форматирование процентов (одна цифра после запятой) выполняется здесь и в
// адаптере канала: ядро оперирует точным значением float64.
package messages

// Тексты выбора роли и приветствий.
const (
	WelcomeChooseRole = "👋 Добро пожаловать в бот для создания и прохождения тестов!\n\n👉 Выберите вашу роль:"
	WelcomeHelpHint   = "ℹ️ В боте есть команда /help, где вы можете найти всю информацию о доступных функциях.\n\nПосле выбора роли вы сможете использовать все возможности бота."
	WelcomeTeacher    = "👨‍🏫 Добро пожаловать, учитель!\n\nВыберите действие:"
	WelcomeStudent    = "👨‍🎓 Добро пожаловать, ученик!\n\nДля прохождения теста отсканируйте QR-код или перейдите по ссылке от учителя."
	RoleTeacherChosen = "👨‍🏫 Вы выбрали роль учителя!\n\nТеперь вы можете создавать тесты и отслеживать результаты учеников.\n\nВыберите действие:"
	RoleStudentChosen = "👨‍🎓 Вы выбрали роль ученика!\n\nДля прохождения теста отсканируйте QR-код или перейдите по ссылке от учителя."
)

// Подписи кнопок.
const (
	RoleTeacherButton = "👨‍🏫 Учитель"
	RoleStudentButton = "👨‍🎓 Ученик"

	CreateTestButton  = "📝 Создать тест"
	MyTestsButton     = "📊 Мои тесты"
	TestResultsButton = "📈 Результаты"
	BackButton        = "⬅️ Назад"
	SkipButton        = "⏭️ Пропустить"
)

// Тексты мастера создания теста.
const (
	AskQuestionCount    = "📝 Создание нового теста\n\nВведите количество вопросов в тесте:"
	BadQuestionCount    = "❌ Пожалуйста, введите корректное число больше 0:"
	AskTestNameFmt      = "✅ Тест будет содержать %d вопрос(ов).\n\nВведите название теста (или отправьте '-', чтобы оставить без названия):"
	AskQuestionKindFmt  = "✅ Название теста: %s\n\n📝 Вопрос %d/%d\n\nВыберите тип вопроса:"
	NextQuestionKindFmt = "✅ Вопрос %d/%d сохранен!\n\n📝 Вопрос %d/%d\n\nВыберите тип вопроса:"
	NoName              = "Без названия"

	KindChoiceButton      = "📋 Варианты ответов"
	KindTextButton        = "✏️ Ввод текста"
	KindMediaChoiceButton = "📸 Фото с вариантами"
	KindMediaTextButton   = "🖼️ Фото с вводом текста"

	AskPromptChoice    = "📋 Тип вопроса: Варианты ответов\n\nВведите текст вопроса:"
	AskPromptText      = "✏️ Тип вопроса: Ввод текста\n\nВведите текст вопроса:"
	AskMedia           = "Пожалуйста, отправьте фото с заданием:"
	BadMedia           = "❌ Пожалуйста, отправьте фото с заданием:"
	MediaSaved         = "✅ Фото с заданием сохранено!\n\nВведите текст вопроса (опционально, можно отправить '-', чтобы оставить без текста):"
	AskOptions         = "📋 Тип вопроса: Варианты ответов\n\nВведите варианты ответов, каждый с новой строки:\n\nПример:\nМосква\nСанкт-Петербург\nКазань\nНовосибирск"
	TooFewOptions      = "❌ Введите минимум 2 варианта ответа, каждый с новой строки:"
	ChooseCorrect      = "✅ Варианты ответов сохранены!\n\nТеперь выберите правильный ответ:"
	AskCorrectText     = "✏️ Тип вопроса: Ввод текста\n\nВведите правильный ответ:"
	TestCreatedFmt     = "🎉 Тест создан успешно!\n\n📋 Количество вопросов: %d\n🆔 ID теста: %s\n\n📱 Ученики могут:\n• Отсканировать QR-код\n• Перейти по ссылке: %s\n\n✅ Тест готов к использованию!"
	WhatNext           = "Что хотите делать дальше?"
	NoActiveWizard     = "Нет активного мастера создания теста. Нажмите «Создать тест»."
	WizardUnexpectedIn = "Дождитесь текущего шага мастера или отправьте ожидаемый ввод."
)

// Тексты прохождения теста.
const (
	TestNotFound      = "❌ Тест не найден или больше не активен."
	SessionNotFound   = "❌ Сессия тестирования не найдена."
	TestIntroFmt      = "📚 Тест готов к прохождению!\n\n📝 Количество вопросов: %d\n👨‍🏫 Автор: @%s\n\nℹ️ Вы можете пропускать вопросы кнопкой 'Пропустить'\n\nГотовы начать?"
	QuestionHeaderFmt = "❓ Вопрос %d/%d\n\n%s"
	EnterAnswer       = "✏️ Введите ваш ответ:"
	AnswerCorrect     = "✅ Правильно!"
	AnswerWrongFmt    = "❌ Неправильно! Правильный ответ: %s"
	YourAnswerFmt     = "Ваш ответ: %s\n%s"
	QuestionSkipped   = "⏭️ Вопрос пропущен"

	ResultHeaderFmt  = "🎉 Тест завершен!\n\n📊 Ваши результаты:\n✅ Правильных ответов: %d/%d\n📈 Процент правильных: %.1f%%\n⏭️ Пропущено вопросов: %d\n\n"
	SkippedListTitle = "❓ Пропущенные вопросы:\n"
	SkippedItemFmt   = "  • Вопрос %d"

	OwnerNotifyFmt = "📋 Новый результат теста!\n\n👤 Ученик: @%s\n📝 Тест %s\n📊 Результат: %d/%d (%.1f%%)\n⏭️ Пропущено: %d\n⏰ Завершен: %s\n\nПодробная статистика доступна в разделе 'Результаты'."
)

// Оценочные баннеры по порогам процента правильных ответов.
const (
	BannerExcellent   = "🌟 Отлично! Превосходный результат!"
	BannerGood        = "👍 Хорошо! Неплохие знания!"
	BannerFair        = "👌 Удовлетворительно. Есть над чем поработать."
	BannerNeedsReview = "📚 Стоит повторить материал."
)

// Banner возвращает оценочный баннер для процента правильных ответов
func Banner(percentage float64) string {
	switch {
	case percentage >= 90:
		return BannerExcellent
	case percentage >= 75:
		return BannerGood
	case percentage >= 60:
		return BannerFair
	default:
		return BannerNeedsReview
	}
}

// Тексты списков тестов и результатов.
const (
	NoTestsYet        = "📝 У вас пока нет созданных тестов.\n\nСоздайте первый тест!"
	MyTestsTitle      = "📚 Ваши тесты:\n\n"
	TestItemFmt       = "📋 %s\n🆔 ID: %s\n📅 Создан: %s\n❓ Вопросов: %d\n\n"
	ViewButtonFmt     = "📊 %s"
	DeleteButtonFmt   = "🗑️ %s"
	NoResultsYet      = "📊 Пока нет результатов по вашим тестам.\n\nКогда ученики пройдут тесты, здесь появится статистика."
	NoTestResultsFmt  = "📊 Результаты теста %s\n\nПока нет результатов по этому тесту.\n\nКогда ученики пройдут тест, здесь появится статистика."
	AllResultsTitle   = "📊 Результаты ваших тестов:\n\n"
	TestResultsFmt    = "📊 Результаты теста %s\n\n"
	TestStatsFmt      = "📈 Прохождений: %d\n📊 Средний результат: %.1f%%\n\n"
	RecentResults     = "Последние результаты:\n"
	ResultLineFmt     = "👤 @%s: %d/%d (%.1f%%) — %s\n"
	TestDeleted       = "✅ Тест успешно удален"
	NotYourTest       = "❌ У вас нет прав на это действие с чужим тестом"
	TestMissing       = "❌ Тест не найден"
	TeacherMenuHint   = "👨‍🏫 Используйте меню для навигации:"
	StudentMenuHint   = "👨‍🎓 Для прохождения теста используйте QR-код или ссылку от учителя.\n\nИли напишите /start для начала работы с ботом."
	NoRoleHint        = "👋 Добро пожаловать! Используйте /start для начала работы."
	UnknownCallback   = "❌ Неизвестная команда"
	HelpNoRole        = "ℹ️ Помощь по боту\n\nДля начала работы с ботом используйте команду /start"
	HelpTeacher       = "ℹ️ Помощь для учителя\n\nВы можете использовать следующие функции:\n\n• 📝 Создать тест - создание нового теста\n• 📚 Мои тесты - просмотр созданных тестов\n• 📊 Результаты - просмотр результатов по всем тестам\n\nВ разделе 'Мои тесты' вы также можете:\n• Просматривать результаты по конкретному тесту\n• Удалять ненужные тесты"
	HelpStudent       = "ℹ️ Помощь для ученика\n\nДля прохождения теста отсканируйте QR-код или перейдите по ссылке от учителя.\n\nПосле прохождения теста ваши результаты будут отправлены учителю."
	TimeLayoutDisplay = "02.01.2006 15:04"
)
