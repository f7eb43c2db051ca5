package entity

import (
	"time"

	"github.com/google/uuid"
)

// Contact is a single contact-card record as it is persisted and encoded.
// FirstName and LastName are mandatory; everything else may be empty.
type Contact struct {
	ID uuid.UUID `json:"id"`

	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Mobile    string `json:"mobile,omitempty"`
	Work      string `json:"work,omitempty"`
	Email     string `json:"email,omitempty"`
	Company   string `json:"company,omitempty"`
	Role      string `json:"role,omitempty"`
	Street    string `json:"street,omitempty"`
	City      string `json:"city,omitempty"`
	State     string `json:"state,omitempty"`
	Website   string `json:"website,omitempty"`

	// Color is the raw foreground color spec ("#RRGGBB"); it is resolved
	// during encoding and never validated at the boundary.
	Color string `json:"color,omitempty"`

	ArchiveKey string    `json:"archive_key,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
