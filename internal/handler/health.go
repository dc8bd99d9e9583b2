package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/clinicdesk/booking-api/pkg/httputil"
)

type Handler struct {
	db *sqlx.DB
}

func NewHandler(db *sqlx.DB) *Handler {
	return &Handler{db: db}
}

func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, httputil.NewSuccessResponse(gin.H{"status": "healthy"}))
}

// ReadinessCheck fails when the database is unreachable.
func (h *Handler) ReadinessCheck(c *gin.Context) {
	if err := h.db.PingContext(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, httputil.NewErrorResponse("database unreachable"))
		return
	}
	c.JSON(http.StatusOK, httputil.NewSuccessResponse(gin.H{"status": "ready"}))
}
