package stats

import (
	"math"
	"sort"
	"time"

	"github.com/alimgiray/gitpulse/internal/models"
)

// MetricsCalculator derives the commit consistency metrics (coverage
// ratios, gaps, streaks, frequency score) from the raw counters collected
// during aggregation. Finalize applies only to identities with at least
// one commit; every ratio special-cases a zero denominator instead of
// propagating a fault.
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new MetricsCalculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// FinalizeAll finalizes every identity in a single-repository result
// against its own first-to-last commit window
func (m *MetricsCalculator) FinalizeAll(result map[string]*models.DeveloperStats) {
	for _, dev := range result {
		if dev.CommitCount == 0 || dev.FirstCommitAt == nil || dev.LastCommitAt == nil {
			continue
		}
		m.Finalize(dev, *dev.FirstCommitAt, *dev.LastCommitAt)
	}
}

// Finalize populates the derived metric fields of one identity against the
// given analysis window
func (m *MetricsCalculator) Finalize(dev *models.DeveloperStats, analysisStart, analysisEnd time.Time) {
	if dev.CommitCount == 0 {
		return
	}

	totalDays := int(analysisEnd.Sub(analysisStart).Hours()/24) + 1
	if totalDays > 0 {
		dev.DayRatio = clampRatio(float64(len(dev.CommitsPerDay)) / float64(totalDays))
	}

	totalWeeks := totalISOWeeks(analysisStart, analysisEnd)
	if totalWeeks > 0 {
		dev.WeekRatio = clampRatio(float64(len(dev.CommitsPerWeek)) / float64(totalWeeks))
	}

	// The month ratio spans the identity's own first and last commit
	// months, not the analysis window.
	first, last := *dev.FirstCommitAt, *dev.LastCommitAt
	totalMonths := (last.Year()*12 + int(last.Month())) - (first.Year()*12 + int(first.Month())) + 1
	if totalMonths > 0 {
		dev.MonthRatio = clampRatio(float64(len(dev.CommitsPerMonth)) / float64(totalMonths))
	}

	m.computeCommitGaps(dev)
	m.computeActiveDayMetrics(dev)

	weekdayCommits := 0
	for _, ts := range dev.CommitDates {
		if isWeekday(ts) {
			weekdayCommits++
		}
	}
	if len(dev.CommitDates) > 0 {
		dev.WeekdayRatio = float64(weekdayCommits) / float64(len(dev.CommitDates))
	} else {
		dev.WeekdayRatio = 1.0
	}

	dev.FrequencyScore = m.frequencyScore(dev)
	dev.DisplayName = displayName(dev)
}

// computeCommitGaps fills the real-time and workday-aware gap metrics from
// the individual commit timestamps
func (m *MetricsCalculator) computeCommitGaps(dev *models.DeveloperStats) {
	if len(dev.CommitDates) < 2 {
		return
	}

	sorted := make([]time.Time, len(dev.CommitDates))
	copy(sorted, dev.CommitDates)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

	var gapSum, gapMax float64
	var workdaySum, workdayMax float64
	pairs := len(sorted) - 1

	for i := 1; i < len(sorted); i++ {
		gap := sorted[i].Sub(sorted[i-1]).Seconds() / 86400
		gapSum += gap
		if gap > gapMax {
			gapMax = gap
		}

		wd := float64(workdaysBetween(sorted[i-1], sorted[i]))
		workdaySum += wd
		if wd > workdayMax {
			workdayMax = wd
		}
	}

	dev.AvgGapDays = gapSum / float64(pairs)
	dev.MaxGapDays = gapMax
	dev.AvgWorkdayGap = workdaySum / float64(pairs)
	dev.MaxWorkdayGap = workdayMax
}

// computeActiveDayMetrics fills the gap and streak metrics that operate on
// distinct active days rather than individual commits. Two separate streak
// definitions are computed on purpose: the plain one (strict next-day
// adjacency) feeds the streak/gap ratio, while the display streak also
// bridges a Friday to the following Monday.
func (m *MetricsCalculator) computeActiveDayMetrics(dev *models.DeveloperStats) {
	days := activeDays(dev)
	if len(days) == 0 {
		return
	}

	dev.TotalStreakDays = len(days)
	dev.MaxStreak = 1

	if len(days) == 1 {
		dev.StreakGapRatio = float64(dev.TotalStreakDays)
		return
	}

	var gapSum float64
	var gapMax float64
	displayStreak := 1

	for i := 1; i < len(days); i++ {
		diff := daysApart(days[i-1], days[i])

		gap := float64(diff)
		gapSum += gap
		if gap > gapMax {
			gapMax = gap
		}

		// Every active day sits in some plain streak, so the streak total
		// is the active-day count; only the gap days need accumulating.
		if diff > 1 {
			dev.TotalGapDays += diff - 1
		}

		if diff == 1 || bridgesWeekend(days[i-1], diff) {
			displayStreak++
			if displayStreak > dev.MaxStreak {
				dev.MaxStreak = displayStreak
			}
		} else {
			displayStreak = 1
		}
	}

	dev.AvgActiveDayGap = gapSum / float64(len(days)-1)
	dev.MaxActiveDayGap = gapMax

	if dev.TotalGapDays == 0 {
		dev.StreakGapRatio = float64(dev.TotalStreakDays)
	} else {
		dev.StreakGapRatio = float64(dev.TotalStreakDays) / float64(dev.TotalGapDays+1)
	}
}

// frequencyScore computes the composite 0-10 consistency score: day
// coverage up to 5 points, week coverage up to 3, streak length up to 2,
// minus a penalty when the average commit gap exceeds a week
func (m *MetricsCalculator) frequencyScore(dev *models.DeveloperStats) float64 {
	dayScore := math.Min(dev.DayRatio*10, 5)
	weekScore := math.Min(dev.WeekRatio*5, 3)
	streakScore := math.Min(float64(dev.MaxStreak)/5, 2)

	gapPenalty := 0.0
	if dev.AvgGapDays > 7 {
		gapPenalty = math.Min((dev.AvgGapDays-7)/7, 2)
	}

	score := math.Round((dayScore+weekScore+streakScore-gapPenalty)*10) / 10
	return math.Max(0, math.Min(score, 10))
}

// displayName picks the most frequently used raw name, breaking ties by
// first-encountered order
func displayName(dev *models.DeveloperStats) string {
	best := dev.Identity
	bestCount := 0
	for _, name := range dev.Names {
		if count := dev.NameCounts[name]; count > bestCount {
			best = name
			bestCount = count
		}
	}
	return best
}

// activeDays returns the identity's distinct active calendar days, sorted
func activeDays(dev *models.DeveloperStats) []time.Time {
	days := make([]time.Time, 0, len(dev.CommitsPerDay))
	for key := range dev.CommitsPerDay {
		day, err := time.Parse("2006-01-02", key)
		if err != nil {
			continue
		}
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}

// totalISOWeeks counts the ISO weeks spanned by [start, end], summing the
// weeks remaining in the first year, 52 per full year between, and the
// weeks elapsed in the final year
func totalISOWeeks(start, end time.Time) int {
	startYear, startWeek := start.ISOWeek()
	endYear, endWeek := end.ISOWeek()

	if startYear == endYear {
		return endWeek - startWeek + 1
	}
	if endYear < startYear {
		return 0
	}

	weeks := isoWeeksInYear(startYear) - startWeek + 1
	weeks += 52 * (endYear - startYear - 1)
	weeks += endWeek
	return weeks
}

// isoWeeksInYear returns 52 or 53 depending on the ISO year length.
// December 28 always falls in the last ISO week of its year.
func isoWeeksInYear(year int) int {
	_, week := time.Date(year, time.December, 28, 0, 0, 0, 0, time.UTC).ISOWeek()
	return week
}

// workdaysBetween counts the weekdays strictly between two commits,
// excluding the commit day itself; same-day commits yield zero
func workdaysBetween(prev, curr time.Time) int {
	prevDay := midnight(prev)
	currDay := midnight(curr)

	count := 0
	for d := prevDay.AddDate(0, 0, 1); !d.After(currDay); d = d.AddDate(0, 0, 1) {
		if isWeekday(d) {
			count++
		}
	}

	count--
	if count < 0 {
		count = 0
	}
	return count
}

// daysApart returns the whole calendar days between two midnights
func daysApart(a, b time.Time) int {
	return int(math.Round(b.Sub(a).Hours() / 24))
}

// bridgesWeekend reports whether a gap is exactly the Friday-to-Monday
// weekend jump that keeps a display streak alive
func bridgesWeekend(earlier time.Time, diff int) bool {
	return diff == 3 && earlier.Weekday() == time.Friday
}

func isWeekday(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func clampRatio(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < 0 {
		return 0
	}
	return v
}
