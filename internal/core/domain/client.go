package domain

import (
	"errors"
	"time"
)

var (
	ErrClientNotFound = errors.New("client not found")
	ErrClientExists   = errors.New("client already exists")
)

// Client is a customer of the owning user.
type Client struct {
	ID      string `json:"_id" bson:"_id"`
	Name    string `json:"name" bson:"name"`
	Address string `json:"address" bson:"address"`
	Email   string `json:"email" bson:"email"`
	OwnerID string `json:"user" bson:"user_id"`

	SoftDelete `bson:",inline"`

	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`
}

type ClientUpdate struct {
	Name    *string
	Address *string
	Email   *string
}

func (p ClientUpdate) Apply(c *Client) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Address != nil {
		c.Address = *p.Address
	}
	if p.Email != nil {
		c.Email = *p.Email
	}
}
