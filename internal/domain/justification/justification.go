package justification

import (
	"context"
	"time"
)

// Justification is an externally managed leave record that can excuse an
// otherwise absent day. The incidents service owns these; we only read them.
type Justification struct {
	StartDate     time.Time
	EndDate       time.Time
	ApprovalState string
	Code          string
}

const StateApproved = "Approved"

// Covers reports whether the justification is approved and its inclusive
// date range contains date.
func (j Justification) Covers(date time.Time) bool {
	if j.ApprovalState != StateApproved {
		return false
	}
	return !date.Before(j.StartDate) && !date.After(j.EndDate)
}

// Oracle looks up approved justifications for an employee-date. A failed or
// timed-out lookup must surface as ("", false, err): callers log the error
// and treat the day as unjustified rather than failing the computation.
type Oracle interface {
	ApprovedCode(ctx context.Context, employeeID string, date time.Time) (code string, found bool, err error)
}
