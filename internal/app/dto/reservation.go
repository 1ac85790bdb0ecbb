package dto

import (
	"time"

	domainclient "festiloc/internal/domain/client"
	domainreservation "festiloc/internal/domain/reservation"
	"festiloc/internal/domain/shared/money"
)

type MoneyDTO struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

func MapMoney(m money.Money) MoneyDTO {
	return MoneyDTO{Amount: m.Amount, Currency: m.Currency}
}

type ReservationItem struct {
	ArticleID string   `json:"article_id"`
	Quantity  int      `json:"quantity"`
	UnitPrice MoneyDTO `json:"unit_price"`
}

type Reservation struct {
	ID         string            `json:"id"`
	ClientID   string            `json:"client_id"`
	ClientName string            `json:"client_name,omitempty"`
	StartDate  time.Time         `json:"start_date"`
	EndDate    time.Time         `json:"end_date"`
	Days       int               `json:"days"`
	Status     string            `json:"status"`
	TotalPrice MoneyDTO          `json:"total_price"`
	Items      []ReservationItem `json:"items"`
	Active     bool              `json:"active"`
	Remarks    string            `json:"remarks,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
}

type ReservationCollection struct {
	Items []Reservation `json:"items"`
}

func MapReservation(r *domainreservation.Reservation, clients []*domainclient.Client) Reservation {
	if r == nil {
		return Reservation{}
	}
	items := make([]ReservationItem, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, ReservationItem{
			ArticleID: string(item.ArticleID),
			Quantity:  item.Quantity,
			UnitPrice: MapMoney(item.UnitPrice),
		})
	}
	name := ""
	if len(clients) > 0 {
		name = domainclient.DisplayName(clients, r.ClientID)
	}
	return Reservation{
		ID:         string(r.ID),
		ClientID:   string(r.ClientID),
		ClientName: name,
		StartDate:  r.Span.Start,
		EndDate:    r.Span.End,
		Days:       r.Span.Days(),
		Status:     string(r.Status),
		TotalPrice: MapMoney(r.TotalPrice),
		Items:      items,
		Active:     r.Active,
		Remarks:    r.Remarks,
		CreatedAt:  r.CreatedAt,
	}
}

func MapReservations(list []*domainreservation.Reservation, clients []*domainclient.Client) ReservationCollection {
	items := make([]Reservation, 0, len(list))
	for _, r := range list {
		items = append(items, MapReservation(r, clients))
	}
	return ReservationCollection{Items: items}
}
