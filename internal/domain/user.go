package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	RoleAdmin = "Admin"
	RoleUser  = "User"
)

type User struct {
	ID                 uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Username           string    `json:"username" gorm:"not null"`
	NormalizedUsername string    `json:"-" gorm:"uniqueIndex;not null"`
	Name               string    `json:"name"`
	PasswordHash       string    `json:"-" gorm:"not null"`
	Role               string    `json:"role" gorm:"not null;default:'User'"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// NormalizeUsername produces the uniqueness key for a username: surrounding
// whitespace is trimmed and the result is lower-cased, so "Alice" and " alice "
// resolve to the same identity.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
