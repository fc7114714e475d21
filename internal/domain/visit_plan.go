package domain

import (
	"time"

	"github.com/google/uuid"
)

type Visibility string

const (
	VisibilityPublic      Visibility = "public"
	VisibilityMembersOnly Visibility = "members_only"
	VisibilityAnonymous   Visibility = "anonymous"
	VisibilityPrivate     Visibility = "private"
)

func (v Visibility) Valid() bool {
	switch v {
	case VisibilityPublic, VisibilityMembersOnly, VisibilityAnonymous, VisibilityPrivate:
		return true
	}
	return false
}

// AnonymousDisplayName replaces the owner identity on anonymous plans.
const AnonymousDisplayName = "Anonymous member"

type VisitPlan struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	VisitDate   string     `json:"visit_date"`
	StartTime   string     `json:"start_time"`
	EndTime     string     `json:"end_time,omitempty"`
	Visibility  Visibility `json:"visibility"`
	Message     string     `json:"message,omitempty"`
	IsCancelled bool       `json:"is_cancelled"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Owner is joined for cross-user listings.
	Owner *MemberSummary `json:"owner,omitempty"`
}

// VisitPlanEntry is a visit plan as shown to another member. UserID is nil
// when the owner's identity is withheld.
type VisitPlanEntry struct {
	ID          uuid.UUID  `json:"id"`
	UserID      *uuid.UUID `json:"user_id"`
	DisplayName string     `json:"display_name"`
	AvatarURL   string     `json:"avatar_url,omitempty"`
	VisitDate   string     `json:"visit_date"`
	StartTime   string     `json:"start_time"`
	EndTime     string     `json:"end_time,omitempty"`
	Visibility  Visibility `json:"visibility"`
	Message     string     `json:"message,omitempty"`
}

// CalendarDay groups the entries of one visit date.
type CalendarDay struct {
	Date    string           `json:"date"`
	Entries []VisitPlanEntry `json:"entries"`
}

// DateRange is an inclusive range of YYYY-MM-DD dates.
type DateRange struct {
	From string `json:"from"`
	To   string `json:"to"`
}
