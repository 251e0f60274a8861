package eligibility

import (
	"time"

	"github.com/skycruzer/air-niugini-pms-sub008/internal/domain/pilot"
)

// Recommendation is the advisory verdict for a leave request. The engine
// never commits a decision; the approval workflow does.
type Recommendation string

const (
	RecommendApprove Recommendation = "APPROVE"
	RecommendReview  Recommendation = "REVIEW"
	RecommendDeny    Recommendation = "DENY"
)

// CrewRequirement is the minimum on-duty headcount for a role, effective
// from a given date. Requirements are date-versioned; the provider resolves
// the row in force on each day.
type CrewRequirement struct {
	Role          pilot.Role `json:"role"`
	MinOnDuty     int        `json:"minimumOnDuty"`
	Scope         string     `json:"scope,omitempty"`
	EffectiveFrom time.Time  `json:"effectiveFrom"`
}

// DailyAvailability is the derived per-day crewing picture for one role.
type DailyAvailability struct {
	Date            time.Time  `json:"date"`
	Role            pilot.Role `json:"role"`
	TotalActive     int        `json:"totalActive"`
	OnApprovedLeave int        `json:"onApprovedLeave"`
	Available       int        `json:"available"`
	Required        int        `json:"required"`
	Deficit         int        `json:"deficit"`
}

// Conflict is one day on which granting a request would leave the role
// below its minimum on-duty count.
type Conflict struct {
	Date    time.Time  `json:"date"`
	Role    pilot.Role `json:"role"`
	Deficit int        `json:"deficit"`
}

type EligibilityResult struct {
	RequestID      string         `json:"requestId,omitempty"`
	IsEligible     bool           `json:"isEligible"`
	Recommendation Recommendation `json:"recommendation"`
	Conflicts      []Conflict     `json:"conflicts,omitempty"`
}

// BulkEligibilityResult partitions every pending request of a roster period
// into three disjoint sets, in resolver walk order, with per-request detail.
type BulkEligibilityResult struct {
	RosterPeriod   string                       `json:"rosterPeriod"`
	Eligible       []string                     `json:"eligible"`
	RequiresReview []string                     `json:"requiresReview"`
	ShouldDeny     []string                     `json:"shouldDeny"`
	Results        map[string]EligibilityResult `json:"results"`
}

// PilotRef is the slice of the roster the engine needs: identity, role and
// seniority of each active pilot.
type PilotRef struct {
	ID        string
	Role      pilot.Role
	Seniority *int
}

// LeaveSpan is an approved leave request projected onto the calendar.
type LeaveSpan struct {
	RequestID string
	PilotID   string
	Role      pilot.Role
	Start     time.Time
	End       time.Time
}

// PendingRequest is a leave request awaiting a decision, carrying the
// requesting pilot's seniority for the resolver walk.
type PendingRequest struct {
	ID        string
	PilotID   string
	Role      pilot.Role
	Start     time.Time
	End       time.Time
	CreatedAt time.Time
	Seniority *int
}

// Snapshot is one consistent read of roster, leave and requirement state.
// Every evaluation loads a snapshot once, computes over it and discards it;
// nothing in the engine mutates shared state.
type Snapshot struct {
	Pilots       []PilotRef
	Approved     []LeaveSpan
	Pending      []PendingRequest
	Requirements []CrewRequirement
}

// ActiveCount returns the number of active pilots holding the role.
func (s *Snapshot) ActiveCount(role pilot.Role) int {
	count := 0
	for _, p := range s.Pilots {
		if p.Role == role {
			count++
		}
	}
	return count
}

// HasPilot reports whether the roster snapshot contains the pilot.
func (s *Snapshot) HasPilot(pilotID string) bool {
	for _, p := range s.Pilots {
		if p.ID == pilotID {
			return true
		}
	}
	return false
}

// PendingForRole filters pending requests down to one role.
func (s *Snapshot) PendingForRole(role pilot.Role) []PendingRequest {
	var out []PendingRequest
	for _, r := range s.Pending {
		if r.Role == role {
			out = append(out, r)
		}
	}
	return out
}
