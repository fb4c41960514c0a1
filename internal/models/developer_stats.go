package models

import (
	"fmt"
	"time"
)

// DeveloperStats accumulates per-developer statistics during an analysis run.
// Counters only increase while aggregation is running; the derived metric
// fields are populated once by the metrics calculator and never mutated
// afterward.
type DeveloperStats struct {
	Identity       string `json:"identity"`
	CanonicalEmail string `json:"canonical_email"`

	// Names and Emails keep every observed variant in first-seen order.
	Names      []string       `json:"names"`
	NameCounts map[string]int `json:"name_counts"`
	Emails     []string       `json:"emails"`

	CommitCount  int `json:"commit_count"`
	LinesAdded   int `json:"lines_added"`
	LinesDeleted int `json:"lines_deleted"`
	FilesChanged int `json:"files_changed"`

	FirstCommitAt *time.Time `json:"first_commit_at"`
	LastCommitAt  *time.Time `json:"last_commit_at"`

	CommitDates     []time.Time     `json:"commit_dates"`
	CommitsPerDay   map[string]int  `json:"commits_per_day"`
	CommitsPerWeek  map[string]int  `json:"commits_per_week"`
	CommitsPerMonth map[string]int  `json:"commits_per_month"`
	CommitHashes    map[string]bool `json:"commit_hashes"`

	// Derived metrics, populated by the metrics calculator.
	DayRatio        float64 `json:"day_ratio"`
	WeekRatio       float64 `json:"week_ratio"`
	MonthRatio      float64 `json:"month_ratio"`
	AvgGapDays      float64 `json:"avg_gap_days"`
	MaxGapDays      float64 `json:"max_gap_days"`
	AvgWorkdayGap   float64 `json:"avg_workday_gap"`
	MaxWorkdayGap   float64 `json:"max_workday_gap"`
	AvgActiveDayGap float64 `json:"avg_active_day_gap"`
	MaxActiveDayGap float64 `json:"max_active_day_gap"`
	TotalStreakDays int     `json:"total_streak_days"`
	TotalGapDays    int     `json:"total_gap_days"`
	StreakGapRatio  float64 `json:"streak_gap_ratio"`
	WeekdayRatio    float64 `json:"weekday_ratio"`
	MaxStreak       int     `json:"max_streak"`
	FrequencyScore  float64 `json:"frequency_score"`
	DisplayName     string  `json:"display_name"`
}

// NewDeveloperStats creates a zero-valued DeveloperStats for an identity
func NewDeveloperStats(identity string) *DeveloperStats {
	return &DeveloperStats{
		Identity:        identity,
		NameCounts:      make(map[string]int),
		CommitsPerDay:   make(map[string]int),
		CommitsPerWeek:  make(map[string]int),
		CommitsPerMonth: make(map[string]int),
		CommitHashes:    make(map[string]bool),
	}
}

// AddName records an observed author name variant
func (d *DeveloperStats) AddName(name string) {
	if name == "" {
		return
	}
	if _, seen := d.NameCounts[name]; !seen {
		d.Names = append(d.Names, name)
	}
	d.NameCounts[name]++
}

// AddEmail records an observed author email variant
func (d *DeveloperStats) AddEmail(email string) {
	if email == "" {
		return
	}
	for _, e := range d.Emails {
		if e == email {
			return
		}
	}
	d.Emails = append(d.Emails, email)
}

// RecordCommit updates the commit counters, date buckets and the
// first/last commit boundaries for one commit
func (d *DeveloperStats) RecordCommit(hash string, timestamp time.Time) {
	d.CommitCount++
	d.CommitDates = append(d.CommitDates, timestamp)
	if hash != "" {
		d.CommitHashes[hash] = true
	}

	d.CommitsPerDay[DayKey(timestamp)]++
	d.CommitsPerWeek[WeekKey(timestamp)]++
	d.CommitsPerMonth[MonthKey(timestamp)]++

	if d.FirstCommitAt == nil || timestamp.Before(*d.FirstCommitAt) {
		t := timestamp
		d.FirstCommitAt = &t
	}
	if d.LastCommitAt == nil || timestamp.After(*d.LastCommitAt) {
		t := timestamp
		d.LastCommitAt = &t
	}
}

// NetLines returns the net line delta across all counted changes
func (d *DeveloperStats) NetLines() int {
	return d.LinesAdded - d.LinesDeleted
}

// DayKey returns the calendar-day bucket key for a timestamp
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// WeekKey returns the ISO 8601 year-week bucket key for a timestamp
func WeekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// MonthKey returns the calendar-month bucket key for a timestamp
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}
