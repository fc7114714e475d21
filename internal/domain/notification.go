package domain

import (
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID         int64             `json:"id"`
	UserID     uuid.UUID         `json:"user_id"`
	Title      string            `json:"title"`
	Message    string            `json:"message"`
	IsRead     bool              `json:"is_read"`
	Attributes map[string]string `json:"attributes"`
	CreatedAt  time.Time         `json:"created_at"`
}
