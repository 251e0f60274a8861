package leave

import (
	"testing"
	"time"
)

func TestRequestDaysInclusive(t *testing.T) {
	r := Request{
		StartDate: time.Date(2025, 11, 5, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 11, 5, 0, 0, 0, 0, time.UTC),
	}
	if got := r.Days(); got != 1 {
		t.Fatalf("single-day request: got %d days, want 1", got)
	}

	r.EndDate = time.Date(2025, 11, 9, 0, 0, 0, 0, time.UTC)
	if got := r.Days(); got != 5 {
		t.Fatalf("got %d days, want 5", got)
	}
}

func TestPeriodLockKeyStable(t *testing.T) {
	a := periodLockKey("RP11/2025")
	b := periodLockKey("RP11/2025")
	if a != b {
		t.Fatalf("same period must hash to the same lock key: %d != %d", a, b)
	}
	if a == periodLockKey("RP12/2025") {
		t.Fatal("different periods should not share a lock key")
	}
}
