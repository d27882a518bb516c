package dates

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/claude/paceplan/internal/models"
)

// RenderICS renders a dated plan as an iCalendar document with one all-day
// event per dated run, for import into any calendar app. Runs without
// dates are skipped; call Assign first.
func RenderICS(plan *models.TrainingPlan) string {
	var sb strings.Builder

	sb.WriteString("BEGIN:VCALENDAR\r\n")
	sb.WriteString("VERSION:2.0\r\n")
	sb.WriteString("PRODID:-//paceplan//Training Calendar//EN\r\n")
	sb.WriteString("CALSCALE:GREGORIAN\r\n")
	sb.WriteString("METHOD:PUBLISH\r\n")
	sb.WriteString("X-WR-CALNAME:Training Plan\r\n")

	for _, week := range plan.Schedule {
		for _, run := range week.Runs {
			if run.Date == nil {
				continue
			}
			day := run.Date.Format("20060102")
			sb.WriteString("BEGIN:VEVENT\r\n")
			sb.WriteString(fmt.Sprintf("UID:%s\r\n", uuid.NewString()))
			sb.WriteString(fmt.Sprintf("DTSTAMP:%sT000000Z\r\n", day))
			sb.WriteString(fmt.Sprintf("DTSTART;VALUE=DATE:%s\r\n", day))
			sb.WriteString(fmt.Sprintf("SUMMARY:%s\r\n", escapeICS(runSummary(run))))
			if run.Notes != "" {
				sb.WriteString(fmt.Sprintf("DESCRIPTION:%s\r\n", escapeICS(run.Notes)))
			}
			sb.WriteString("END:VEVENT\r\n")
		}
	}

	sb.WriteString("END:VCALENDAR\r\n")
	return sb.String()
}

func runSummary(run models.PlannedRun) string {
	return fmt.Sprintf("%s run: %.1f %s at %s", run.Type, run.Distance, run.Unit, run.TargetPace)
}

// escapeICS escapes the characters iCalendar reserves in text values.
func escapeICS(s string) string {
	r := strings.NewReplacer(
		"\\", "\\\\",
		";", "\\;",
		",", "\\,",
		"\n", "\\n",
	)
	return r.Replace(s)
}
