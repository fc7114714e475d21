package domain

import (
	"time"

	"github.com/google/uuid"
)

type Profile struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	DisplayName  string    `json:"display_name"`
	AvatarURL    string    `json:"avatar_url"`
	Occupation   string    `json:"occupation"`
	Bio          string    `json:"bio"`
	Interests    []string  `json:"interests"`
	PushToken    string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Summary is the public face of a profile embedded in other records.
func (p *Profile) Summary() *MemberSummary {
	return &MemberSummary{
		ID:          p.ID,
		DisplayName: p.DisplayName,
		AvatarURL:   p.AvatarURL,
		Occupation:  p.Occupation,
	}
}

type MemberSummary struct {
	ID          uuid.UUID `json:"id"`
	DisplayName string    `json:"display_name"`
	AvatarURL   string    `json:"avatar_url"`
	Occupation  string    `json:"occupation,omitempty"`
}

type MembershipPlan string

const (
	MembershipPlanFree MembershipPlan = "free"
	MembershipPlanPaid MembershipPlan = "paid"
)

type MembershipRank string

const (
	MembershipRankNone     MembershipRank = ""
	MembershipRankBronze   MembershipRank = "bronze"
	MembershipRankSilver   MembershipRank = "silver"
	MembershipRankGold     MembershipRank = "gold"
	MembershipRankPlatinum MembershipRank = "platinum"
)

type MembershipStatus string

const (
	MembershipStatusActive    MembershipStatus = "active"
	MembershipStatusCancelled MembershipStatus = "cancelled"
	MembershipStatusPastDue   MembershipStatus = "past_due"
)

type Membership struct {
	UserID           uuid.UUID        `json:"user_id"`
	Plan             MembershipPlan   `json:"plan"`
	Rank             MembershipRank   `json:"rank,omitempty"`
	Status           MembershipStatus `json:"status"`
	SubscriptionID   string           `json:"-"`
	CurrentPeriodEnd *time.Time       `json:"current_period_end,omitempty"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// FreeMembership is assumed for members without a membership row.
func FreeMembership(userID uuid.UUID) *Membership {
	return &Membership{
		UserID: userID,
		Plan:   MembershipPlanFree,
		Status: MembershipStatusActive,
	}
}

// Tier is the visibility tier of a viewer.
type Tier string

const (
	TierGuest Tier = "guest"
	TierFree  Tier = "free"
	TierPaid  Tier = "paid"
)

// Tier is paid only while a paid plan is active.
func (m *Membership) Tier() Tier {
	if m.Plan == MembershipPlanPaid && m.Status == MembershipStatusActive {
		return TierPaid
	}
	return TierFree
}
