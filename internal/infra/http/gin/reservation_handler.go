package ginserver

import (
	"errors"
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"

	"festiloc/internal/app/commands"
	"festiloc/internal/app/dto"
	reservationapp "festiloc/internal/app/handlers/reservations"
	"festiloc/internal/app/queries"
	domainclient "festiloc/internal/domain/client"
	domainreservation "festiloc/internal/domain/reservation"
)

const dateLayout = "2006-01-02"

type ReservationHandler struct {
	Commands commands.Bus
	Queries  queries.Bus
}

type reservationItemRequest struct {
	ArticleID string `json:"article_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

type createReservationRequest struct {
	ClientID  string                   `json:"client_id" binding:"required"`
	StartDate string                   `json:"start_date" binding:"required"`
	EndDate   string                   `json:"end_date" binding:"required"`
	Items     []reservationItemRequest `json:"items" binding:"required,min=1,dive"`
	Remarks   string                   `json:"remarks"`
}

type updateReservationRequest struct {
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	Status    string  `json:"status"`
	Remarks   *string `json:"remarks"`
}

func (h ReservationHandler) Create(c *gin.Context) {
	var req createReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date"})
		return
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_date"})
		return
	}
	cmd := reservationapp.CreateCommand{
		ClientID:  req.ClientID,
		StartDate: start,
		EndDate:   end,
		Remarks:   req.Remarks,
	}
	for _, item := range req.Items {
		cmd.Items = append(cmd.Items, reservationapp.CreateItem{ArticleID: item.ArticleID, Quantity: item.Quantity})
	}
	result, err := commands.Dispatch[reservationapp.CreateCommand, *reservationapp.CreateResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		reservationError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h ReservationHandler) Update(c *gin.Context) {
	var req updateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd := reservationapp.UpdateCommand{
		ReservationID: c.Param("id"),
		Status:        req.Status,
		Remarks:       req.Remarks,
	}
	if req.StartDate != "" {
		start, err := time.Parse(dateLayout, req.StartDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date"})
			return
		}
		cmd.StartDate = start
	}
	if req.EndDate != "" {
		end, err := time.Parse(dateLayout, req.EndDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_date"})
			return
		}
		cmd.EndDate = end
	}
	result, err := commands.Dispatch[reservationapp.UpdateCommand, *reservationapp.UpdateResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		reservationError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h ReservationHandler) Delete(c *gin.Context) {
	cmd := reservationapp.DeleteCommand{ReservationID: c.Param("id")}
	result, err := commands.Dispatch[reservationapp.DeleteCommand, *reservationapp.DeleteResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		reservationError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h ReservationHandler) List(c *gin.Context) {
	result, err := queries.Ask[reservationapp.ListQuery, dto.ReservationCollection](c.Request.Context(), h.Queries, reservationapp.ListQuery{})
	if err != nil {
		reservationError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h ReservationHandler) Get(c *gin.Context) {
	query := reservationapp.GetQuery{ReservationID: c.Param("id")}
	result, err := queries.Ask[reservationapp.GetQuery, dto.Reservation](c.Request.Context(), h.Queries, query)
	if err != nil {
		reservationError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h ReservationHandler) ByClient(c *gin.Context) {
	query := reservationapp.ByClientQuery{ClientID: c.Param("id")}
	result, err := queries.Ask[reservationapp.ByClientQuery, dto.ReservationCollection](c.Request.Context(), h.Queries, query)
	if err != nil {
		reservationError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h ReservationHandler) ByMonth(c *gin.Context) {
	year, month, ok := yearMonthParams(c)
	if !ok {
		return
	}
	query := reservationapp.ByMonthQuery{Year: year, Month: month}
	result, err := queries.Ask[reservationapp.ByMonthQuery, dto.ReservationCollection](c.Request.Context(), h.Queries, query)
	if err != nil {
		reservationError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func reservationError(c *gin.Context, err error) {
	var stockErr reservationapp.ErrInsufficientStock
	switch {
	case errors.As(err, &stockErr):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "article_id": stockErr.ArticleID, "remaining": stockErr.Remaining})
	case errors.Is(err, domainreservation.ErrReservationNotFound),
		errors.Is(err, domainclient.ErrClientNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domainreservation.ErrInvalidState),
		errors.Is(err, domainreservation.ErrNoItems),
		errors.Is(err, domainreservation.ErrInvalidQuantity):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

var _ ReservationHTTP = ReservationHandler{}
