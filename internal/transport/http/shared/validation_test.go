package shared

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2025-11-05")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	want := time.Date(2025, 11, 5, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}

	got, err = ParseDate("2025-11-05T14:30:00+10:00")
	if err != nil {
		t.Fatalf("ParseDate RFC3339: %v", err)
	}
	if !got.Equal(want) {
		t.Fatalf("RFC3339 input not normalized to UTC day: got %v", got)
	}

	if _, err := ParseDate("05/11/2025"); err == nil {
		t.Fatal("expected error for unsupported format")
	}

	got, err = ParseDate("")
	if err != nil || !got.IsZero() {
		t.Fatalf("empty input should yield zero time, got %v err %v", got, err)
	}
}

func TestValidatorCollectsAndSortsIssues(t *testing.T) {
	v := NewValidator()
	v.Required("startDate", "", "start date is required")
	v.Enum("role", "NAVIGATOR", []string{"CAPTAIN", "FIRST_OFFICER"}, "unknown role")
	v.Enum("requestType", "annual", []string{"ANNUAL", "SICK"}, "unknown type")

	if !v.HasIssues() {
		t.Fatal("expected issues")
	}
	issues := v.Issues()
	if len(issues) != 2 {
		t.Fatalf("got %d issues, want 2 (case-insensitive enum should pass)", len(issues))
	}
	if issues[0].Field != "role" || issues[1].Field != "startDate" {
		t.Fatalf("issues not sorted by field: %+v", issues)
	}
}

func TestValidatorDateOrder(t *testing.T) {
	v := NewValidator()
	start := time.Date(2025, 11, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 11, 5, 0, 0, 0, 0, time.UTC)
	v.DateOrder("startDate", start, "endDate", end)
	if len(v.Issues()) != 2 {
		t.Fatalf("got %d issues, want 2", len(v.Issues()))
	}

	v = NewValidator()
	v.DateOrder("startDate", start, "endDate", start)
	if v.HasIssues() {
		t.Fatal("same-day range should be valid")
	}
}

func TestParsePagination(t *testing.T) {
	r := httptest.NewRequest("GET", "/pilots?limit=500&offset=20", nil)
	p := ParsePagination(r, 50, 200)
	if p.Limit != 200 || p.Offset != 20 {
		t.Fatalf("got %+v, want limit capped at 200, offset 20", p)
	}

	r = httptest.NewRequest("GET", "/pilots?limit=-3&offset=junk", nil)
	p = ParsePagination(r, 50, 200)
	if p.Limit != 50 || p.Offset != 0 {
		t.Fatalf("got %+v, want defaults on bad input", p)
	}
}
