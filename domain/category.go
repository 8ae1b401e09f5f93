package domain

import (
	"strings"
	"time"
)

// UncategorizedName labels tasks without a category or whose category was deleted.
const UncategorizedName = "Uncategorized"

// Category groups tasks. Names are unique per owner.
type Category struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Name      string    `json:"name"`
	Color     string    `json:"color,omitempty"`
	Icon      string    `json:"icon,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (c *Category) Validate() error {
	if c == nil {
		return ErrInvalidPayload
	}
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return Invalidf("category name is required")
	}
	return nil
}
