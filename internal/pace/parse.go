package pace

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/claude/paceplan/internal/models"
)

// maxPaceSeconds bounds a sane per-unit pace: anything at or above 61
// minutes per unit is rejected.
const maxPaceSeconds = 61 * 60

// ParseDuration parses "mm:ss", "h:mm:ss", or a bare number (interpreted as
// minutes) into seconds. Errors carry models.PaceError codes.
func ParseDuration(s string) (float64, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0, &models.PaceError{
			Code:    models.ErrPaceMalformed,
			Input:   s,
			Message: "empty duration",
		}
	}

	parts := strings.Split(trimmed, ":")
	switch len(parts) {
	case 1:
		minutes, err := strconv.ParseFloat(parts[0], 64)
		if err != nil || minutes <= 0 {
			return 0, &models.PaceError{
				Code:    models.ErrPaceMalformed,
				Input:   s,
				Message: "expected mm:ss, h:mm:ss, or a number of minutes",
			}
		}
		return minutes * 60, nil
	case 2:
		minutes, err1 := strconv.Atoi(parts[0])
		seconds, err2 := strconv.Atoi(parts[1])
		if err1 != nil || err2 != nil || len(parts[1]) != 2 {
			return 0, &models.PaceError{
				Code:    models.ErrPaceMalformed,
				Input:   s,
				Message: "expected mm:ss with two-digit seconds",
			}
		}
		if minutes < 0 || seconds < 0 || seconds > 59 {
			return 0, &models.PaceError{
				Code:    models.ErrPaceOutOfRange,
				Input:   s,
				Message: "seconds must be 00-59",
			}
		}
		return float64(minutes*60 + seconds), nil
	case 3:
		hours, err1 := strconv.Atoi(parts[0])
		minutes, err2 := strconv.Atoi(parts[1])
		seconds, err3 := strconv.Atoi(parts[2])
		if err1 != nil || err2 != nil || err3 != nil || len(parts[1]) != 2 || len(parts[2]) != 2 {
			return 0, &models.PaceError{
				Code:    models.ErrPaceMalformed,
				Input:   s,
				Message: "expected h:mm:ss with two-digit minutes and seconds",
			}
		}
		if hours < 0 || minutes > 59 || seconds > 59 || minutes < 0 || seconds < 0 {
			return 0, &models.PaceError{
				Code:    models.ErrPaceOutOfRange,
				Input:   s,
				Message: "minutes and seconds must be 00-59",
			}
		}
		return float64(hours*3600 + minutes*60 + seconds), nil
	default:
		return 0, &models.PaceError{
			Code:    models.ErrPaceMalformed,
			Input:   s,
			Message: "too many colon-separated fields",
		}
	}
}

// ParsePace parses a per-unit pace string into seconds, accepting the same
// forms as ParseDuration and additionally bounding the result to a sane
// pace (under 61 minutes per unit).
func ParsePace(s string) (float64, error) {
	seconds, err := ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if seconds <= 0 || seconds >= maxPaceSeconds {
		return 0, &models.PaceError{
			Code:    models.ErrPaceOutOfRange,
			Input:   s,
			Message: "pace must be between 0 and 61 minutes per unit",
		}
	}
	return seconds, nil
}

// FormatPace renders a per-unit pace in seconds as "m:ss", rounding to the
// nearest second.
func FormatPace(seconds float64) string {
	total := int(math.Round(seconds))
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
