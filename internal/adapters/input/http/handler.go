package http

import (
	"translation-bot/internal/application"
	"translation-bot/internal/ports/output"

	"gorm.io/gorm"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// HTTPHandler struct - Primary/Driving adapter for operational endpoints
type HTTPHandler struct {
	sessions output.SessionStore
	limiter  *application.RateLimiter
	db       *gorm.DB // nil when sessions live in memory
}

// New func - Creates new HTTP handler
func New(sessions output.SessionStore, limiter *application.RateLimiter, db *gorm.DB) *HTTPHandler {
	return &HTTPHandler{
		sessions: sessions,
		limiter:  limiter,
		db:       db,
	}
}

// HealthCheck func
// @Summary Health check
// @Description Reports whether the service and its session storage are reachable
// @Tags Operations
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (hdl *HTTPHandler) HealthCheck(c *fiber.Ctx) error {
	if hdl.db != nil {
		sqlDB, err := hdl.db.DB()
		if err != nil {
			logrus.Errorln(err)
			return c.Status(fiber.StatusInternalServerError).JSON(ResponseBody{Status: InternalServerError})
		}
		if err := sqlDB.Ping(); err != nil {
			logrus.Errorln(err)
			return c.Status(fiber.StatusInternalServerError).JSON(ResponseBody{Status: InternalServerError})
		}
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: ""})
}

// Stats func
// @Summary Operational statistics
// @Description Reports active session and rate-limiter counters
// @Tags Operations
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /stats [get]
func (hdl *HTTPHandler) Stats(c *fiber.Ctx) error {
	active, err := hdl.sessions.ActiveCount()
	if err != nil {
		logrus.Errorln(err)
		return c.Status(fiber.StatusInternalServerError).JSON(ResponseBody{Status: InternalServerError})
	}

	limiterStats := hdl.limiter.Statistics()
	return c.Status(fiber.StatusOK).JSON(ResponseBody{
		Status: Success,
		Data: StatsResponse{
			ActiveSessions: active,
			TrackedUsers:   limiterStats.TotalUsers,
			DailyLimit:     limiterStats.DailyLimit,
			RateLimiting:   limiterStats.Enabled,
		},
	})
}
