package stats

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/alimgiray/gitpulse/internal/models"
)

func devWithCommits(timestamps ...time.Time) *models.DeveloperStats {
	dev := models.NewDeveloperStats("Alice")
	dev.AddName("Alice")
	for i, ts := range timestamps {
		dev.RecordCommit(fmt.Sprintf("hash-%d", i), ts)
	}
	return dev
}

func at(year int, month time.Month, day, hour int) time.Time {
	return time.Date(year, month, day, hour, 0, 0, 0, time.UTC)
}

func TestFinalizeSingleCommit(t *testing.T) {
	metrics := NewMetricsCalculator()

	// 2024-03-06 is a Wednesday.
	dev := devWithCommits(at(2024, time.March, 6, 10))
	metrics.Finalize(dev, *dev.FirstCommitAt, *dev.LastCommitAt)

	assert.Equal(t, 1.0, dev.DayRatio)
	assert.Equal(t, 1.0, dev.WeekRatio)
	assert.Equal(t, 1.0, dev.MonthRatio)
	assert.Equal(t, 1, dev.MaxStreak)
	assert.Equal(t, 1, dev.TotalStreakDays)
	assert.Equal(t, 0, dev.TotalGapDays)
	assert.Equal(t, 1.0, dev.StreakGapRatio)
	assert.Equal(t, 1.0, dev.WeekdayRatio)
	assert.Equal(t, 8.2, dev.FrequencyScore)
}

func TestFinalizeRatioBounds(t *testing.T) {
	metrics := NewMetricsCalculator()

	testCases := []struct {
		name       string
		timestamps []time.Time
	}{
		{
			name:       "sparse activity over a year",
			timestamps: []time.Time{at(2023, time.January, 5, 9), at(2023, time.June, 20, 9), at(2023, time.December, 30, 9)},
		},
		{
			name: "many commits on one day",
			timestamps: []time.Time{
				at(2024, time.March, 6, 9), at(2024, time.March, 6, 11),
				at(2024, time.March, 6, 15), at(2024, time.March, 6, 18),
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dev := devWithCommits(tc.timestamps...)
			metrics.Finalize(dev, *dev.FirstCommitAt, *dev.LastCommitAt)

			for label, ratio := range map[string]float64{
				"day":     dev.DayRatio,
				"week":    dev.WeekRatio,
				"month":   dev.MonthRatio,
				"weekday": dev.WeekdayRatio,
			} {
				assert.GreaterOrEqual(t, ratio, 0.0, label)
				assert.LessOrEqual(t, ratio, 1.0, label)
			}
			assert.GreaterOrEqual(t, dev.FrequencyScore, 0.0)
			assert.LessOrEqual(t, dev.FrequencyScore, 10.0)
		})
	}
}

func TestFinalizeConsecutiveDayStreak(t *testing.T) {
	metrics := NewMetricsCalculator()

	// Monday through Friday, one commit per day.
	dev := devWithCommits(
		at(2024, time.March, 4, 10),
		at(2024, time.March, 5, 10),
		at(2024, time.March, 6, 10),
		at(2024, time.March, 7, 10),
		at(2024, time.March, 8, 10),
	)
	metrics.Finalize(dev, *dev.FirstCommitAt, *dev.LastCommitAt)

	assert.Equal(t, 5, dev.MaxStreak)
	assert.Equal(t, 5, dev.TotalStreakDays)
	assert.Equal(t, 0, dev.TotalGapDays)
	assert.Equal(t, 5.0, dev.StreakGapRatio)
	assert.Equal(t, 1.0, dev.AvgGapDays)
	assert.Equal(t, 1.0, dev.WeekdayRatio)
}

func TestFinalizeWeekendBridging(t *testing.T) {
	metrics := NewMetricsCalculator()

	// Friday and the following Monday. The display streak bridges the
	// weekend, but the streak/gap accounting still sees two gap days.
	dev := devWithCommits(
		at(2024, time.March, 1, 10),
		at(2024, time.March, 4, 10),
	)
	metrics.Finalize(dev, *dev.FirstCommitAt, *dev.LastCommitAt)

	assert.Equal(t, 2, dev.MaxStreak)
	assert.Equal(t, 2, dev.TotalStreakDays)
	assert.Equal(t, 2, dev.TotalGapDays)
	assert.InDelta(t, 2.0/3.0, dev.StreakGapRatio, 0.0001)
}

func TestFinalizeNonWeekendGapBreaksStreak(t *testing.T) {
	metrics := NewMetricsCalculator()

	// Wednesday to Saturday is also a three-day jump, but it does not
	// start on a Friday, so the streak resets.
	dev := devWithCommits(
		at(2024, time.March, 6, 10),
		at(2024, time.March, 9, 10),
	)
	metrics.Finalize(dev, *dev.FirstCommitAt, *dev.LastCommitAt)

	assert.Equal(t, 1, dev.MaxStreak)
}

func TestFinalizeDailyCommitterScoresTen(t *testing.T) {
	metrics := NewMetricsCalculator()

	var timestamps []time.Time
	for day := 1; day <= 30; day++ {
		timestamps = append(timestamps, at(2024, time.March, day, 14))
	}
	dev := devWithCommits(timestamps...)
	metrics.Finalize(dev, *dev.FirstCommitAt, *dev.LastCommitAt)

	assert.Equal(t, 1.0, dev.DayRatio)
	assert.Equal(t, 30, dev.MaxStreak)
	assert.Equal(t, 10.0, dev.FrequencyScore)
}

func TestFinalizeGapPenalty(t *testing.T) {
	metrics := NewMetricsCalculator()

	// Two commits two weeks apart: the average gap of 14 days costs a
	// one-point penalty.
	dev := devWithCommits(
		at(2024, time.March, 4, 10),
		at(2024, time.March, 18, 10),
	)
	metrics.Finalize(dev, *dev.FirstCommitAt, *dev.LastCommitAt)

	assert.Equal(t, 14.0, dev.AvgGapDays)
	assert.Equal(t, 14.0, dev.MaxGapDays)
	assert.Equal(t, 14.0, dev.AvgActiveDayGap)
	// day 2/15, week 2/3. Score: 10*2/15 ~ 1.3 + 5*2/3 ~ 3 capped... left
	// to the bounds assertions; the penalty itself is what matters here.
	assert.Equal(t, 13, dev.TotalGapDays)
}

func TestFinalizeAgainstWiderWindow(t *testing.T) {
	metrics := NewMetricsCalculator()

	// One active day inside a ten-day analysis window.
	dev := devWithCommits(at(2024, time.March, 5, 10))
	metrics.Finalize(dev, at(2024, time.March, 1, 10), at(2024, time.March, 10, 10))

	assert.InDelta(t, 0.1, dev.DayRatio, 0.0001)
	// The month ratio always spans the identity's own commit months.
	assert.Equal(t, 1.0, dev.MonthRatio)
}

func TestFinalizeSkipsZeroCommits(t *testing.T) {
	metrics := NewMetricsCalculator()

	dev := models.NewDeveloperStats("Nobody")
	metrics.Finalize(dev, at(2024, time.March, 1, 0), at(2024, time.March, 31, 0))

	assert.Equal(t, 0.0, dev.DayRatio)
	assert.Equal(t, 0.0, dev.FrequencyScore)
}

func TestTotalISOWeeks(t *testing.T) {
	testCases := []struct {
		name     string
		start    time.Time
		end      time.Time
		expected int
	}{
		{
			name:     "same week",
			start:    at(2024, time.March, 4, 0),
			end:      at(2024, time.March, 8, 0),
			expected: 1,
		},
		{
			name:     "adjacent weeks",
			start:    at(2024, time.March, 4, 0),
			end:      at(2024, time.March, 11, 0),
			expected: 2,
		},
		{
			name: "year boundary in a 53-week ISO year",
			// 2020-12-28 falls in ISO week 53 of 2020; 2021-01-04 opens
			// week 1 of 2021.
			start:    at(2020, time.December, 28, 0),
			end:      at(2021, time.January, 4, 0),
			expected: 2,
		},
		{
			name:     "multi-year span",
			start:    at(2019, time.January, 7, 0),
			end:      at(2021, time.January, 4, 0),
			expected: 52 - 2 + 1 + 52 + 1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, totalISOWeeks(tc.start, tc.end))
		})
	}
}

func TestDisplayName(t *testing.T) {
	testCases := []struct {
		name     string
		observed []string
		expected string
	}{
		{
			name:     "most frequent wins",
			observed: []string{"alice", "Alice Smith", "Alice Smith"},
			expected: "Alice Smith",
		},
		{
			name:     "tie goes to first encountered",
			observed: []string{"alice", "Alice Smith"},
			expected: "alice",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dev := models.NewDeveloperStats("Alice")
			for _, n := range tc.observed {
				dev.AddName(n)
			}
			assert.Equal(t, tc.expected, displayName(dev))
		})
	}
}

func TestWorkdaysBetween(t *testing.T) {
	testCases := []struct {
		name     string
		prev     time.Time
		curr     time.Time
		expected int
	}{
		{
			name:     "same day",
			prev:     at(2024, time.March, 6, 9),
			curr:     at(2024, time.March, 6, 17),
			expected: 0,
		},
		{
			name:     "next day",
			prev:     at(2024, time.March, 6, 9),
			curr:     at(2024, time.March, 7, 9),
			expected: 0,
		},
		{
			name:     "over a weekend",
			prev:     at(2024, time.March, 1, 9),
			curr:     at(2024, time.March, 4, 9),
			expected: 0,
		},
		{
			name:     "full working week apart",
			prev:     at(2024, time.March, 1, 9),
			curr:     at(2024, time.March, 8, 9),
			expected: 4,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, workdaysBetween(tc.prev, tc.curr))
		})
	}
}
