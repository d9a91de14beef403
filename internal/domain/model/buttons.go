package model

// Константы callback-токенов. Привязаны к маршрутизации в app.bootstrapHandlersTelegram.
// Не следует добавлять/изменять константы без изменения логики диспетчера callback'ов.
const (
	RoleTeacherKey = "role_teacher"
	RoleStudentKey = "role_student"

	CreateTestKey  = "create_test"
	MyTestsKey     = "my_tests"
	TestResultsKey = "test_results"
	MainMenuKey    = "main_menu"

	KindChoiceKey      = "kind_choice"
	KindTextKey        = "kind_text"
	KindMediaChoiceKey = "kind_media_choice"
	KindMediaTextKey   = "kind_media_text"

	SkipQuestionKey = "skip_question"

	// Префиксы токенов с параметром: answer_<index>, correct_<index>,
	// view_test_<id>, delete_test_<id>.
	AnswerPrefix     = "answer_"
	CorrectPrefix    = "correct_"
	ViewTestPrefix   = "view_test_"
	DeleteTestPrefix = "delete_test_"

	// DeepLinkPrefix — префикс аргумента команды /start для прямого запуска теста.
	DeepLinkPrefix = "test_"
)
