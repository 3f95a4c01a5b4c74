package callbacks

import (
	"github.com/glebkhl/zapis_bot/internal/catalog"
	"github.com/glebkhl/zapis_bot/internal/controller/state"
	"github.com/glebkhl/zapis_bot/internal/service"
	"go.uber.org/zap"
)

// Handler содержит все зависимости для обработки callback query
type Handler struct {
	Booking *service.BookingService
	Reports *service.ReportService
	Catalog *catalog.Catalog
	State   *state.Manager
	Logger  *zap.Logger
}

// NewHandler создаёт callback handler с зависимостями
func NewHandler(
	bookingService *service.BookingService,
	reportService *service.ReportService,
	cat *catalog.Catalog,
	stateManager *state.Manager,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		Booking: bookingService,
		Reports: reportService,
		Catalog: cat,
		State:   stateManager,
		Logger:  logger,
	}
}
