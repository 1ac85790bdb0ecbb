package ginserver

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	gin "github.com/gin-gonic/gin"

	"festiloc/internal/app/dto"
	calendarapp "festiloc/internal/app/handlers/calendarview"
	"festiloc/internal/app/queries"
)

type CalendarHandler struct {
	Queries   queries.Bus
	Navigator *calendarapp.Navigator
}

func (h CalendarHandler) Month(c *gin.Context) {
	year, month, ok := yearMonthParams(c)
	if !ok {
		return
	}
	query := calendarapp.GetMonthQuery{Year: year, Month: month}
	result, err := queries.Ask[calendarapp.GetMonthQuery, dto.Month](c.Request.Context(), h.Queries, query)
	if err != nil {
		calendarError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h CalendarHandler) Stats(c *gin.Context) {
	year, month, ok := yearMonthParams(c)
	if !ok {
		return
	}
	query := calendarapp.GetStatsQuery{Year: year, Month: month}
	result, err := queries.Ask[calendarapp.GetStatsQuery, dto.MonthStats](c.Request.Context(), h.Queries, query)
	if err != nil {
		calendarError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h CalendarHandler) Upcoming(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = parsed
	}
	query := calendarapp.UpcomingQuery{Limit: limit}
	result, err := queries.Ask[calendarapp.UpcomingQuery, dto.ReservationCollection](c.Request.Context(), h.Queries, query)
	if err != nil {
		calendarError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Navigate steps the shared navigation session. Stale loads are resolved
// inside the navigator; whatever it returns is the view to display.
func (h CalendarHandler) Navigate(c *gin.Context) {
	if h.Navigator == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "navigation not configured"})
		return
	}
	var (
		view dto.Month
		err  error
	)
	ctx := c.Request.Context()
	switch c.Param("direction") {
	case "next":
		view, err = h.Navigator.Next(ctx)
	case "previous":
		view, err = h.Navigator.Previous(ctx)
	case "today":
		view, err = h.Navigator.Today(ctx)
	case "refresh":
		view, err = h.Navigator.Refresh(ctx)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown direction"})
		return
	}
	if err != nil {
		calendarError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func yearMonthParams(c *gin.Context) (int, time.Month, bool) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
		return 0, 0, false
	}
	monthNum, err := strconv.Atoi(c.Param("month"))
	if err != nil || monthNum < 1 || monthNum > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid month"})
		return 0, 0, false
	}
	return year, time.Month(monthNum), true
}

func calendarError(c *gin.Context, err error) {
	if errors.Is(err, calendarapp.ErrDataUnavailable) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

var _ CalendarHTTP = CalendarHandler{}
