package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type MatchingRequestStatus string

const (
	MatchingRequestStatusPending   MatchingRequestStatus = "pending"
	MatchingRequestStatusAccepted  MatchingRequestStatus = "accepted"
	MatchingRequestStatusRejected  MatchingRequestStatus = "rejected"
	MatchingRequestStatusExpired   MatchingRequestStatus = "expired"
	MatchingRequestStatusCancelled MatchingRequestStatus = "cancelled"
)

// MaxProposedDates bounds the candidate slots a requester may offer.
const MaxProposedDates = 3

// IsTerminal reports whether no further transition is allowed out of s.
func (s MatchingRequestStatus) IsTerminal() bool {
	switch s {
	case MatchingRequestStatusAccepted, MatchingRequestStatusRejected,
		MatchingRequestStatusExpired, MatchingRequestStatusCancelled:
		return true
	}
	return false
}

// ProposedDate is one candidate meeting slot. Date is YYYY-MM-DD, Time is HH:MM.
type ProposedDate struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
	Time string `json:"time" validate:"omitempty,datetime=15:04"`
}

// Matches reports whether sel identifies p. An empty selection time matches
// any time on the same date.
func (p ProposedDate) Matches(sel ProposedDate) bool {
	if p.Date != sel.Date {
		return false
	}
	return sel.Time == "" || sel.Time == p.Time
}

type MatchingRequest struct {
	ID            uuid.UUID             `json:"id"`
	FromUserID    uuid.UUID             `json:"from_user_id"`
	ToUserID      uuid.UUID             `json:"to_user_id"`
	Status        MatchingRequestStatus `json:"status"`
	ProposedDates []ProposedDate        `json:"proposed_dates"`
	SelectedDate  *ProposedDate         `json:"selected_date,omitempty"`
	Introduction  string                `json:"introduction"`
	Message       string                `json:"message"`
	Topic         string                `json:"topic,omitempty"`
	CreatedAt     time.Time             `json:"created_at"`
	RespondedAt   *time.Time            `json:"responded_at,omitempty"`

	// Counterpart is populated only when listed with ListOptions.WithCounterpart.
	Counterpart *MemberSummary `json:"counterpart,omitempty"`
}

// FindProposed returns the proposed slot identified by sel. A selection
// without a time must name a date that has exactly one proposal.
func (r *MatchingRequest) FindProposed(sel ProposedDate) (ProposedDate, error) {
	var found []ProposedDate
	for _, p := range r.ProposedDates {
		if p.Matches(sel) {
			found = append(found, p)
		}
	}
	switch len(found) {
	case 0:
		return ProposedDate{}, fmt.Errorf("%w: %s is not a proposed date", ErrInvalidSelection, sel.Date)
	case 1:
		return found[0], nil
	default:
		return ProposedDate{}, fmt.Errorf("%w: %d proposals fall on %s, a time is required", ErrInvalidSelection, len(found), sel.Date)
	}
}

// LastProposedDate returns the latest proposed date, used by the expiry sweep.
func (r *MatchingRequest) LastProposedDate() string {
	last := ""
	for _, p := range r.ProposedDates {
		if p.Date > last {
			last = p.Date
		}
	}
	return last
}

// IsParty reports whether userID is the requester or the recipient.
func (r *MatchingRequest) IsParty(userID uuid.UUID) bool {
	return r.FromUserID == userID || r.ToUserID == userID
}

// ListOptions controls relational embedding on matching request listings.
type ListOptions struct {
	WithCounterpart bool
}
