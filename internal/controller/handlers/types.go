package handlers

import (
	"github.com/glebkhl/zapis_bot/internal/catalog"
	"github.com/glebkhl/zapis_bot/internal/config"
	"github.com/glebkhl/zapis_bot/internal/controller/state"
	"github.com/glebkhl/zapis_bot/internal/service"
	"go.uber.org/zap"
)

// Handlers содержит все зависимости для обработки команд
type Handlers struct {
	bookingService  *service.BookingService
	scheduleService *service.ScheduleService
	reportService   *service.ReportService
	catalog         *catalog.Catalog
	stateManager    *state.Manager
	cfg             *config.Config
	logger          *zap.Logger
}

// NewHandlers создаёт новый обработчик команд
func NewHandlers(
	bookingService *service.BookingService,
	scheduleService *service.ScheduleService,
	reportService *service.ReportService,
	cat *catalog.Catalog,
	stateManager *state.Manager,
	cfg *config.Config,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		bookingService:  bookingService,
		scheduleService: scheduleService,
		reportService:   reportService,
		catalog:         cat,
		stateManager:    stateManager,
		cfg:             cfg,
		logger:          logger,
	}
}
