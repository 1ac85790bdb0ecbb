package dto

import (
	"time"

	domainclient "festiloc/internal/domain/client"
)

type Client struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Phone       string    `json:"phone"`
	Email       string    `json:"email,omitempty"`
	EventType   string    `json:"event_type,omitempty"`
	Address     string    `json:"address,omitempty"`
	CompanyName string    `json:"company_name,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}

func MapClient(c *domainclient.Client) Client {
	if c == nil {
		return Client{}
	}
	return Client{
		ID:          string(c.ID),
		Name:        c.Name,
		Phone:       c.Phone,
		Email:       c.Email,
		EventType:   c.EventType,
		Address:     c.Address,
		CompanyName: c.CompanyName,
		Active:      c.Active,
		CreatedAt:   c.CreatedAt,
	}
}
