package client

import (
	"context"
	"errors"
	"time"
)

var ErrClientNotFound = errors.New("client: not found")

type ClientID string

// Client is the person or company a reservation is made for. The calendar
// only needs it for display names; no calculation reads client data.
type Client struct {
	ID          ClientID
	Name        string
	Phone       string
	Email       string
	EventType   string
	Address     string
	CompanyName string
	Active      bool
	CreatedAt   time.Time
}

// Source provides client records for display purposes.
type Source interface {
	ByID(ctx context.Context, id ClientID) (*Client, error)
	ListAll(ctx context.Context) ([]*Client, error)
}

// DisplayName resolves a client name from a fetched set, falling back to a
// placeholder when the client is unknown.
func DisplayName(clients []*Client, id ClientID) string {
	for _, c := range clients {
		if c.ID == id {
			return c.Name
		}
	}
	return "Client inconnu"
}
