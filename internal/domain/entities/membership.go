package entities

import "time"

// PlanManual marks memberships granted by hand by an admin.
const PlanManual = "manual"

// Membership is a paid-access flag granted to a user.
type Membership struct {
	UserID    int64
	IsActive  bool
	Plan      string
	GrantedBy int64 // admin Telegram ID
	GrantedAt time.Time
}

// NewManualMembership creates an active manual membership.
func NewManualMembership(userID, grantedBy int64, now time.Time) *Membership {
	return &Membership{
		UserID:    userID,
		IsActive:  true,
		Plan:      PlanManual,
		GrantedBy: grantedBy,
		GrantedAt: now,
	}
}
