package pilot

import (
	"fmt"
	"strings"
	"time"
)

// Role is the closed set of flight-deck positions the fleet staffs.
type Role string

const (
	RoleCaptain      Role = "CAPTAIN"
	RoleFirstOfficer Role = "FIRST_OFFICER"
)

// Roles lists every role in a fixed order, used wherever per-role output
// must be deterministic.
var Roles = []Role{RoleCaptain, RoleFirstOfficer}

func ParseRole(value string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(value))) {
	case RoleCaptain:
		return RoleCaptain, nil
	case RoleFirstOfficer:
		return RoleFirstOfficer, nil
	}
	return "", fmt.Errorf("unknown pilot role %q", value)
}

type Pilot struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employeeId"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Role       Role   `json:"role"`
	// Seniority is nil for pilots not yet assigned a seniority number;
	// they always resolve after numbered pilots, never as a sentinel value.
	Seniority *int      `json:"seniorityNumber"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}
