package eligibility

import "sort"

// ReviewPolicy controls when a conflicted request escalates from REVIEW to
// DENY during the bulk walk. The exact product rule is still open, so the
// threshold is configuration rather than a constant.
type ReviewPolicy struct {
	// DenyDeficitFraction escalates to DENY when the share of a request's
	// evaluated days that are in deficit strictly exceeds this fraction.
	DenyDeficitFraction float64
}

func DefaultReviewPolicy() ReviewPolicy {
	return ReviewPolicy{DenyDeficitFraction: 0.5}
}

// SortBySeniority orders competing requests most senior first. Pilots
// without an assigned seniority number always resolve last; ties break by
// earliest creation time, then request id, so the walk is fully
// deterministic.
func SortBySeniority(requests []PendingRequest) []PendingRequest {
	sorted := make([]PendingRequest, len(requests))
	copy(sorted, requests)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		switch {
		case a.Seniority != nil && b.Seniority == nil:
			return true
		case a.Seniority == nil && b.Seniority != nil:
			return false
		case a.Seniority != nil && b.Seniority != nil && *a.Seniority != *b.Seniority:
			return *a.Seniority < *b.Seniority
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
	return sorted
}

// ResolveCompeting is the single-pass, seniority-ordered, capacity-consuming
// walk over one role's pending requests. Each request is simulated against
// the current headroom table:
//
//   - no deficit anywhere: APPROVE, and its days permanently consume
//     headroom so junior requests see the reduced capacity;
//   - some deficit: REVIEW, headroom untouched so later requests are judged
//     as if this one were not granted;
//   - deficit on more days than the policy fraction allows: DENY, the
//     request is infeasible regardless of manual adjustment.
//
// It deliberately favors seniority fairness over maximizing approvals.
// Results come back in walk order.
func ResolveCompeting(requests []PendingRequest, baseline []DailyAvailability, policy ReviewPolicy) []EligibilityResult {
	table := make([]DailyAvailability, len(baseline))
	copy(table, baseline)

	results := make([]EligibilityResult, 0, len(requests))
	for _, req := range SortBySeniority(requests) {
		conflicts := DetectConflicts(table, req.Start, req.End)
		if len(conflicts) == 0 {
			consume(table, req)
			results = append(results, EligibilityResult{
				RequestID:      req.ID,
				IsEligible:     true,
				Recommendation: RecommendApprove,
			})
			continue
		}

		recommendation := RecommendReview
		if days := coveredDays(table, req.Start, req.End); days > 0 {
			if float64(len(conflicts))/float64(days) > policy.DenyDeficitFraction {
				recommendation = RecommendDeny
			}
		}
		results = append(results, EligibilityResult{
			RequestID:      req.ID,
			IsEligible:     false,
			Recommendation: recommendation,
			Conflicts:      conflicts,
		})
	}
	return results
}

func consume(table []DailyAvailability, req PendingRequest) {
	for i := range table {
		if table[i].Date.Before(req.Start) || table[i].Date.After(req.End) {
			continue
		}
		table[i].OnApprovedLeave++
		table[i].Available--
		if deficit := table[i].Required - table[i].Available; deficit > 0 {
			table[i].Deficit = deficit
		}
	}
}
