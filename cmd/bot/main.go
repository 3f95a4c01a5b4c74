package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/glebkhl/zapis_bot/internal/app"
	"github.com/glebkhl/zapis_bot/internal/catalog"
	"github.com/glebkhl/zapis_bot/internal/config"
	"github.com/glebkhl/zapis_bot/internal/controller"
	"github.com/glebkhl/zapis_bot/internal/repository"
	"github.com/glebkhl/zapis_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	logger.Info("Starting zapis bot",
		zap.String("environment", cfg.Environment),
		zap.Int("horizon_days", cfg.HorizonDays),
		zap.Ints("work_hours", cfg.WorkHours),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Подключение к БД
	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		logger.Fatal("Failed to create connection pool", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("Failed to ping database", zap.Error(err))
	}

	// Миграции
	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath, logger)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}
	migrator.Close()

	// Справочник услуг и слой сервисов
	cat := catalog.Default()
	slotRepo := repository.NewSlotRepository(pool)

	scheduleService := service.NewScheduleService(
		slotRepo,
		cfg.HorizonDays,
		cfg.WorkHours,
		service.RoundRobin(cat),
		logger,
	)
	bookingService := service.NewBookingService(slotRepo, cat, cfg.DatesLimit, logger)
	reportService := service.NewReportService(slotRepo, cat, logger)

	// Фоновое дозаполнение горизонта (первый проход сразу при старте)
	scheduler := app.NewScheduler(scheduleService, logger)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	// Телеграм
	b, err := bot.New(cfg.TelegramToken)
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	botController := controller.NewBotController(
		b,
		bookingService,
		scheduleService,
		reportService,
		cat,
		cfg,
		logger,
	)

	if err := botController.RegisterHandlers(ctx); err != nil {
		logger.Fatal("Failed to register handlers", zap.Error(err))
	}

	if err := botController.Start(ctx); err != nil {
		logger.Fatal("Bot stopped with error", zap.Error(err))
	}

	logger.Info("Bot stopped")
}
