package display

import (
	"fmt"
	"strings"
	"time"

	"github.com/alimgiray/gitpulse/internal/models"
)

// TimeElapsed formats the time since a date in a compact human-readable
// form. Future dates (small clock differences on fresh commits) read as
// "recently".
func TimeElapsed(now, date time.Time) string {
	delta := now.Sub(date)
	if delta < 0 {
		return "recently"
	}

	days := int(delta.Hours() / 24)
	switch {
	case days == 0:
		hours := int(delta.Hours())
		if hours == 0 {
			return fmt.Sprintf("%dm ago", int(delta.Minutes()))
		}
		return fmt.Sprintf("%dh ago", hours)
	case days < 7:
		return fmt.Sprintf("%dd ago", days)
	case days < 49:
		return fmt.Sprintf("%dw ago", days/7)
	case days < 365:
		return fmt.Sprintf("%dmo ago", days/30)
	default:
		return fmt.Sprintf("%dy ago", days/365)
	}
}

// scoreColor maps a frequency score onto a traffic-light color
func scoreColor(score float64) string {
	switch {
	case score >= 8:
		return green()
	case score >= 5:
		return yellow()
	default:
		return red()
	}
}

// frequencyCell formats the frequency score and its supporting metrics for
// one table cell
func frequencyCell(dev *models.DeveloperStats) string {
	parts := []string{
		fmt.Sprintf("%.0f%%D", dev.DayRatio*100),
		fmt.Sprintf("%.0f%%W", dev.WeekRatio*100),
		fmt.Sprintf("%dd", dev.MaxStreak),
		fmt.Sprintf("%.1fd/%.1fw", dev.AvgActiveDayGap, dev.AvgWorkdayGap),
	}

	totalDays := dev.TotalStreakDays + dev.TotalGapDays
	activePct := 100.0
	if totalDays > 0 {
		activePct = float64(dev.TotalStreakDays) / float64(totalDays) * 100
	}
	parts = append(parts, fmt.Sprintf("A:I=%.0f:%.0f", activePct, 100-activePct))

	weekdayPct := dev.WeekdayRatio * 100
	parts = append(parts, fmt.Sprintf("WD:WE=%.0f:%.0f", weekdayPct, 100-weekdayPct))

	return fmt.Sprintf("%s★%.1f/10%s (%s)",
		scoreColor(dev.FrequencyScore), dev.FrequencyScore, reset(),
		strings.Join(parts, ", "))
}

// nameCell formats the display name with any other observed name variants
// in parentheses
func nameCell(dev *models.DeveloperStats) string {
	var others []string
	for _, name := range dev.Names {
		if name != dev.DisplayName {
			others = append(others, name)
		}
	}
	if len(others) == 0 {
		return dev.DisplayName
	}
	return fmt.Sprintf("%s (%s)", dev.DisplayName, strings.Join(others, ", "))
}

// emailCell lists the valid observed emails, falling back to the group's
// canonical email
func emailCell(dev *models.DeveloperStats) string {
	var valid []string
	for _, email := range dev.Emails {
		if strings.Contains(email, "@") {
			valid = append(valid, email)
		}
	}
	if len(valid) == 0 {
		return dev.CanonicalEmail
	}
	return strings.Join(valid, ", ")
}
