package controller

import (
	"context"

	"github.com/glebkhl/zapis_bot/internal/catalog"
	"github.com/glebkhl/zapis_bot/internal/config"
	"github.com/glebkhl/zapis_bot/internal/controller/callbacks"
	"github.com/glebkhl/zapis_bot/internal/controller/handlers"
	"github.com/glebkhl/zapis_bot/internal/controller/state"
	"github.com/glebkhl/zapis_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

type BotController struct {
	bot             *bot.Bot
	handlers        *handlers.Handlers
	callbackHandler *callbacks.Handler
	logger          *zap.Logger
}

func NewBotController(
	botInstance *bot.Bot,
	bookingService *service.BookingService,
	scheduleService *service.ScheduleService,
	reportService *service.ReportService,
	cat *catalog.Catalog,
	cfg *config.Config,
	logger *zap.Logger,
) *BotController {
	// Менеджер незавершённых выборов (per-user)
	stateManager := state.NewManager()

	cmdHandlers := handlers.NewHandlers(
		bookingService,
		scheduleService,
		reportService,
		cat,
		stateManager,
		cfg,
		logger,
	)

	callbackHandler := callbacks.NewHandler(
		bookingService,
		reportService,
		cat,
		stateManager,
		logger,
	)

	return &BotController{
		bot:             botInstance,
		handlers:        cmdHandlers,
		callbackHandler: callbackHandler,
		logger:          logger,
	}
}

// RegisterHandlers регистрирует все обработчики команд
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	// Команды
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, c.handlers.HandleStart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, c.handlers.HandleHelp)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/mybookings", bot.MatchTypeExact, c.handlers.HandleMyBookings)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/cancel", bot.MatchTypeExact, c.handlers.HandleCancel)

	// Команды оператора (доступ проверяется в обработчиках по ADMIN_IDS)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/stats", bot.MatchTypeExact, c.handlers.HandleStats)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/allbookings", bot.MatchTypeExact, c.handlers.HandleAllBookings)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/refresh", bot.MatchTypeExact, c.handlers.HandleRefresh)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/scheduleimage", bot.MatchTypeExact, c.handlers.HandleScheduleImage)

	// Нажатия inline кнопок
	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, c.callbackHandler.HandleCallbackQuery)

	return c.setCommands(ctx)
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "🚀 Главное меню"},
		{Command: "mybookings", Description: "📋 Мои записи"},
		{Command: "cancel", Description: "❌ Прервать текущий выбор"},
		{Command: "help", Description: "❓ Справка"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})

	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("✅ Bot commands menu set")
	return nil
}

// Start запускает бота
func (c *BotController) Start(ctx context.Context) error {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
	return nil
}
