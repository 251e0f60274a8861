package leave

import (
	"time"

	"github.com/skycruzer/air-niugini-pms-sub008/internal/domain/pilot"
)

const (
	StatusPending     = "PENDING"
	StatusApproved    = "APPROVED"
	StatusDenied      = "DENIED"
	StatusUnderReview = "UNDER_REVIEW"
)

const (
	TypeAnnual        = "ANNUAL"
	TypeSick          = "SICK"
	TypeLongService   = "LONG_SERVICE"
	TypeCompassionate = "COMPASSIONATE"
	TypeUnpaid        = "UNPAID"
)

// RequestTypes lists the accepted leave categories.
var RequestTypes = []string{TypeAnnual, TypeSick, TypeLongService, TypeCompassionate, TypeUnpaid}

// Request is a pilot's leave request. The role is denormalized onto the
// request so evaluation does not need a roster join per day.
type Request struct {
	ID           string     `json:"id"`
	PilotID      string     `json:"pilotId"`
	PilotRole    pilot.Role `json:"pilotRole"`
	RequestType  string     `json:"requestType"`
	StartDate    time.Time  `json:"startDate"`
	EndDate      time.Time  `json:"endDate"`
	Status       string     `json:"status"`
	RosterPeriod string     `json:"rosterPeriod"`
	Reason       string     `json:"reason,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	DecidedAt    *time.Time `json:"decidedAt,omitempty"`
	DecidedBy    string     `json:"decidedBy,omitempty"`
}

// Days returns the inclusive day count of the request.
func (r Request) Days() int {
	return int(r.EndDate.Sub(r.StartDate).Hours()/24) + 1
}
