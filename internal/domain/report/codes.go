package report

import (
	"strings"

	"github.com/clockwise-hr/timeclock-backend-go/internal/domain/attendance"
)

// Short display codes for matrix cells. Keys are verdicts or justification
// codes as stored on DailyRecord; values are what payroll reads off the grid.
var displayCodes = map[string]string{
	attendance.VerdictPresent: "A",
	attendance.VerdictLate:    "T",
	attendance.VerdictAbsent:  "FAL",
	attendance.VerdictHoliday: "FER",
	"VACATION":                "VAC",
	"VAC":                     "VAC",
	"LICENSE":                 "L/S", // unpaid leave
	"PAID_LEAVE":              "L/C",
	"COMMISSION":              "C/S", // service commission
	"PERMIT":                  "PER",
	"REST":                    "D", // medical or weekly rest
}

// DisplayCode maps a verdict to its short matrix code. Unknown codes fall
// back to FAL so a corrupt or legacy verdict never renders as attendance.
func DisplayCode(verdict string) string {
	if verdict == "" {
		return "FAL"
	}

	upper := strings.ToUpper(verdict)
	if code, ok := displayCodes[upper]; ok {
		return code
	}

	// Partial matches for free-form codes from the incidents service.
	switch {
	case strings.Contains(upper, "LICEN"):
		return "L/S"
	case strings.Contains(upper, "COMIS"):
		return "C/S"
	case strings.Contains(upper, "PERMI"):
		return "PER"
	case strings.Contains(upper, "VACA"):
		return "VAC"
	}

	return "FAL"
}

// Codes that count toward the worked-days summary column: effective
// attendance plus paid non-working classifications.
var computableCodes = map[string]bool{
	"A":   true,
	"T":   true,
	"FER": true,
	"L/C": true,
	"D":   true,
}

// IsComputable reports whether a cell code counts as a worked day. Weekday
// initials mark non-working days and count too.
func IsComputable(code string) bool {
	if computableCodes[code] {
		return true
	}
	for _, initial := range weekdayInitialSet {
		if code == initial {
			return true
		}
	}
	return false
}

var weekdayInitialSet = []string{"L", "M", "J", "V", "S", "D"}

// Codes that count toward the leave summary column.
var leaveCodes = map[string]bool{
	"VAC": true,
	"L/S": true,
	"C/S": true,
	"PER": true,
}

func IsLeave(code string) bool {
	return leaveCodes[code]
}
