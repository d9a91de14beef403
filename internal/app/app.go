package app

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"gopkg.in/telebot.v4"

	httpapi "github.com/SynapSnap/quizbot/internal/app/handlers/http"
	"github.com/SynapSnap/quizbot/internal/app/handlers/telegram/answer_handler"
	"github.com/SynapSnap/quizbot/internal/app/handlers/telegram/correct_option_handler"
	"github.com/SynapSnap/quizbot/internal/app/handlers/telegram/create_test_handler"
	"github.com/SynapSnap/quizbot/internal/app/handlers/telegram/delete_test_handler"
	"github.com/SynapSnap/quizbot/internal/app/handlers/telegram/help_handler"
	"github.com/SynapSnap/quizbot/internal/app/handlers/telegram/kind_handler"
	"github.com/SynapSnap/quizbot/internal/app/handlers/telegram/menu_handler"
	"github.com/SynapSnap/quizbot/internal/app/handlers/telegram/my_tests_handler"
	"github.com/SynapSnap/quizbot/internal/app/handlers/telegram/photo_handler"
	"github.com/SynapSnap/quizbot/internal/app/handlers/telegram/results_handler"
	"github.com/SynapSnap/quizbot/internal/app/handlers/telegram/role_handler"
	"github.com/SynapSnap/quizbot/internal/app/handlers/telegram/skip_handler"
	"github.com/SynapSnap/quizbot/internal/app/handlers/telegram/start_handler"
	"github.com/SynapSnap/quizbot/internal/app/handlers/telegram/text_handler"
	"github.com/SynapSnap/quizbot/internal/app/telegram"
	"github.com/SynapSnap/quizbot/internal/domain/authoring"
	"github.com/SynapSnap/quizbot/internal/domain/messages"
	"github.com/SynapSnap/quizbot/internal/domain/model"
	"github.com/SynapSnap/quizbot/internal/domain/sessions"
	"github.com/SynapSnap/quizbot/internal/domain/snapshot"
	"github.com/SynapSnap/quizbot/internal/domain/taking"
	"github.com/SynapSnap/quizbot/internal/infra/config"
)

// Services собирает машины состояний приложения
type Services struct {
	authoringService *authoring.Service
	takingService    *taking.Service
}

type App struct {
	config   *config.Config
	bot      *telebot.Bot
	db       *sql.DB
	server   *http.Server
	registry *snapshot.Registry
	store    sessions.Store
	sender   *telegram.Sender

	Services

	// cancelFlush останавливает периодический сброс снапшота.
	cancelFlush context.CancelFunc
}

func NewApp(configPath string) (*App, error) {
	configImpl, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("config.LoadConfig: %w", err)
	}

	db, err := InitDatabase(configImpl)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	store, err := InitSessionStore(db)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session store: %w", err)
	}

	registry := snapshot.NewRegistry(configImpl.Snapshot.File)
	if err := registry.Load(); err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	app := &App{
		config:   configImpl,
		db:       db,
		registry: registry,
		store:    store,
	}

	app.initServices()

	return app, nil
}

// Функция для инициализации машин состояний
func (app *App) initServices() {
	app.authoringService = authoring.NewService(app.registry, app.config.TelegramBot.BaseURL)
	app.takingService = taking.NewService(app.store, app.registry)
}

// ListenAndServeTelegram запускает сервер Telegram бота. Создание бота
// повторяется при сетевых сбоях с паузой между попытками.
func (app *App) ListenAndServeTelegram() error {
	var bot *telebot.Bot
	var err error
	for attempt := 0; ; attempt++ {
		bot, err = telebot.NewBot(telebot.Settings{
			Token:  app.config.TelegramBot.Token,
			Poller: &telebot.LongPoller{Timeout: app.config.PollTimeout()},
		})
		if err == nil {
			break
		}
		if attempt >= app.config.TelegramBot.MaxRetries {
			return fmt.Errorf("telebot.NewBot: %w", err)
		}
		log.Printf("telebot.NewBot: %v, повтор через %s", err, app.config.RetryDelay())
		time.Sleep(app.config.RetryDelay())
	}
	app.bot = bot
	app.sender = telegram.NewSender(bot)

	app.bootstrapHandlersTelegram()

	go app.bot.Start()

	return nil
}

// bootstrapHandlersTelegram регистрирует обработчики для бота
func (app *App) bootstrapHandlersTelegram() {
	app.bot.Handle("/start", start_handler.NewStartHandler(app.registry, app.takingService, app.sender).GetHandlerFunc())
	app.bot.Handle("/help", help_handler.NewHelpHandler(app.registry).GetHandlerFunc())
	app.bot.Handle(telebot.OnText, text_handler.NewTextHandler(app.registry, app.authoringService, app.takingService, app.sender).GetHandlerFunc())
	app.bot.Handle(telebot.OnPhoto, photo_handler.NewPhotoHandler(app.authoringService, app.sender).GetHandlerFunc())

	roleHandler := role_handler.NewRoleHandler(app.registry, app.sender)
	menuHandler := menu_handler.NewMenuHandler(app.registry, app.sender)
	createHandler := create_test_handler.NewCreateTestHandler(app.registry, app.authoringService, app.sender)
	kindHandler := kind_handler.NewKindHandler(app.authoringService, app.sender)
	correctHandler := correct_option_handler.NewCorrectOptionHandler(app.authoringService, app.sender)
	answerHandler := answer_handler.NewAnswerHandler(app.takingService, app.sender)
	skipHandler := skip_handler.NewSkipHandler(app.takingService, app.sender)
	myTestsHandler := my_tests_handler.NewMyTestsHandler(app.registry, app.sender)
	deleteHandler := delete_test_handler.NewDeleteTestHandler(app.registry)
	resultsHandler := results_handler.NewResultsHandler(app.registry, app.sender)

	// Все кнопки создаются с динамическими токенами, поэтому их разбирает
	// единый диспетчер callback'ов.
	app.bot.Handle(telebot.OnCallback, func(c telebot.Context) error {
		data := c.Callback().Data

		// Очищаем данные от служебных символов telebot
		cleanedData := strings.TrimSpace(data)
		cleanedData = strings.ReplaceAll(cleanedData, "\f", "")
		cleanedData = strings.ReplaceAll(cleanedData, "\\f", "")

		switch {
		case cleanedData == model.RoleTeacherKey || cleanedData == model.RoleStudentKey:
			return roleHandler.Handle(c, cleanedData)
		case cleanedData == model.MainMenuKey:
			return menuHandler.Handle(c)
		case cleanedData == model.CreateTestKey:
			return createHandler.Handle(c)
		case cleanedData == model.MyTestsKey:
			return myTestsHandler.Handle(c)
		case cleanedData == model.TestResultsKey:
			return resultsHandler.HandleAll(c)
		case strings.HasPrefix(cleanedData, model.ViewTestPrefix):
			return resultsHandler.HandleOne(c, cleanedData)
		case strings.HasPrefix(cleanedData, model.DeleteTestPrefix):
			return deleteHandler.Handle(c, cleanedData)
		case cleanedData == model.KindChoiceKey, cleanedData == model.KindTextKey,
			cleanedData == model.KindMediaChoiceKey, cleanedData == model.KindMediaTextKey:
			return kindHandler.Handle(c, cleanedData)
		case strings.HasPrefix(cleanedData, model.CorrectPrefix):
			return correctHandler.Handle(c, cleanedData)
		case strings.HasPrefix(cleanedData, model.AnswerPrefix):
			return answerHandler.Handle(c, cleanedData)
		case cleanedData == model.SkipQuestionKey:
			return skipHandler.Handle(c)
		default:
			return c.Respond(&telebot.CallbackResponse{Text: messages.UnknownCallback})
		}
	})
}

// ListenAndServeHTTP запускает HTTP сервер служебного API
func (app *App) ListenAndServeHTTP() error {
	app.server = &http.Server{
		Addr:    fmt.Sprintf("%s:%s", app.config.Server.Host, app.config.Server.Port),
		Handler: httpapi.NewRouter(app.registry, app.authoringService),
	}

	err := app.server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// ListenAndServe запускает оба сервера (Telegram и HTTP) и периодический
// сброс снапшота на диск.
func (app *App) ListenAndServe() error {
	ctx, cancel := context.WithCancel(context.Background())
	app.cancelFlush = cancel
	go app.registry.Run(ctx, app.config.FlushInterval())

	if err := app.ListenAndServeTelegram(); err != nil {
		return fmt.Errorf("failed to start Telegram bot: %w", err)
	}

	if err := app.ListenAndServeHTTP(); err != nil {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	return nil
}

// Shutdown останавливает серверы и сбрасывает снапшот на диск.
func (app *App) Shutdown(ctx context.Context) error {
	if app.server != nil {
		if err := app.server.Shutdown(ctx); err != nil {
			log.Printf("http server shutdown: %v", err)
		}
	}
	if app.bot != nil {
		app.bot.Stop()
	}
	if app.sender != nil {
		app.sender.Close()
	}
	if app.cancelFlush != nil {
		app.cancelFlush()
	}

	if err := app.registry.Flush(); err != nil {
		return fmt.Errorf("snapshot flush: %w", err)
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			return fmt.Errorf("db close: %w", err)
		}
	}
	return nil
}
