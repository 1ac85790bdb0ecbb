package ginserver

import (
	"errors"
	"net/http"
	"strings"
	"time"

	gin "github.com/gin-gonic/gin"

	"festiloc/internal/app/dto"
	stockapp "festiloc/internal/app/handlers/stock"
	"festiloc/internal/app/queries"
	"festiloc/internal/domain/shared/daterange"
)

type AvailabilityHandler struct {
	Queries queries.Bus
}

// Check answers remaining-stock questions for a date span. Article IDs come
// comma-separated in "ids"; an empty list means the whole catalog.
func (h AvailabilityHandler) Check(c *gin.Context) {
	from, err := time.Parse(dateLayout, c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from date"})
		return
	}
	to, err := time.Parse(dateLayout, c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to date"})
		return
	}

	var ids []string
	if raw := c.Query("ids"); raw != "" {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, id)
			}
		}
	}

	query := stockapp.AvailabilityQuery{ArticleIDs: ids, From: from, To: to}
	result, err := queries.Ask[stockapp.AvailabilityQuery, dto.AvailabilityReport](c.Request.Context(), h.Queries, query)
	if err != nil {
		if errors.Is(err, daterange.ErrInvalidSpan) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

var _ AvailabilityHTTP = AvailabilityHandler{}
