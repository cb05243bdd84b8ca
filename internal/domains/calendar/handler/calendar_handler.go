package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"bghomes-backend/internal/domains/calendar/service"
	"bghomes-backend/internal/shared/response"
)

type CalendarHandler struct {
	service *service.Service
}

func NewCalendarHandler(svc *service.Service) *CalendarHandler {
	return &CalendarHandler{service: svc}
}

// Month handles GET /api/calendar?month=&year=
// A missing month defaults to the current month; an unparseable or
// out-of-range month is a 400.
func (h *CalendarHandler) Month(c *gin.Context) {
	month := int(time.Now().Month())
	if raw := c.Query("month"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > 12 {
			response.BadRequest(c, "month must be a number between 1 and 12")
			return
		}
		month = v
	}

	year := 0
	if raw := c.Query("year"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			year = v
		}
	}

	events, err := h.service.Month(c.Request.Context(), month, year)
	if err != nil {
		log.Error().Err(err).Msg("calendar month query failed")
		response.InternalServerError(c, "failed to query calendar")
		return
	}

	c.JSON(http.StatusOK, events)
}

// Today handles GET /api/calendar/today?year=
func (h *CalendarHandler) Today(c *gin.Context) {
	year := 0
	if raw := c.Query("year"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			year = v
		}
	}

	events, err := h.service.Today(c.Request.Context(), year)
	if err != nil {
		log.Error().Err(err).Msg("calendar today query failed")
		response.InternalServerError(c, "failed to query calendar")
		return
	}

	c.JSON(http.StatusOK, events)
}
