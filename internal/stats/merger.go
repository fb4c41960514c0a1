package stats

import (
	"time"

	"github.com/alimgiray/gitpulse/internal/models"
)

// Merger combines per-repository result sets into one aggregate without
// double-counting. Commit counts deduplicate on commit hash, so a commit
// reachable from two repositories (a fork or mirror) counts once; date
// buckets deduplicate on the second-resolution timestamp, a deliberate
// heuristic that is independent of the hash dedup.
type Merger struct {
	metrics *MetricsCalculator
	now     func() time.Time
}

// NewMerger creates a new Merger
func NewMerger() *Merger {
	return &Merger{
		metrics: NewMetricsCalculator(),
		now:     time.Now,
	}
}

const mergeTimestampFormat = "2006-01-02 15:04:05"

// Merge unions the given result sets, recomputes the commit counters under
// hash dedup, and re-finalizes every identity against one shared analysis
// window so developers from different repositories compare on equal
// footing. It returns the merged mapping and the window start.
func (m *Merger) Merge(results []map[string]*models.DeveloperStats, since *time.Time) (map[string]*models.DeveloperStats, time.Time) {
	merged := make(map[string]*models.DeveloperStats)
	seenDates := make(map[string]map[string]bool)

	for _, result := range results {
		for identity, src := range result {
			target, ok := merged[identity]
			if !ok {
				target = models.NewDeveloperStats(identity)
				target.CanonicalEmail = src.CanonicalEmail
				merged[identity] = target
				seenDates[identity] = make(map[string]bool)
			}
			m.absorb(target, src, seenDates[identity])
		}
	}

	var earliest *time.Time
	for _, dev := range merged {
		m.rebuild(dev)
		if dev.FirstCommitAt != nil && (earliest == nil || dev.FirstCommitAt.Before(*earliest)) {
			earliest = dev.FirstCommitAt
		}
	}

	end := m.now()
	start := end
	if earliest != nil {
		start = *earliest
	}
	if since != nil && since.After(start) {
		start = *since
	}

	for _, dev := range merged {
		if dev.CommitCount == 0 {
			continue
		}
		m.metrics.Finalize(dev, start, end)
	}

	return merged, start
}

// absorb folds one per-repository record into the merged target
func (m *Merger) absorb(target, src *models.DeveloperStats, seen map[string]bool) {
	for _, name := range src.Names {
		if _, known := target.NameCounts[name]; !known {
			target.Names = append(target.Names, name)
		}
		target.NameCounts[name] += src.NameCounts[name]
	}
	for _, email := range src.Emails {
		target.AddEmail(email)
	}
	if target.CanonicalEmail == "" {
		target.CanonicalEmail = src.CanonicalEmail
	}

	target.LinesAdded += src.LinesAdded
	target.LinesDeleted += src.LinesDeleted
	target.FilesChanged += src.FilesChanged

	for hash := range src.CommitHashes {
		target.CommitHashes[hash] = true
	}

	for _, ts := range src.CommitDates {
		key := ts.Format(mergeTimestampFormat)
		if seen[key] {
			continue
		}
		seen[key] = true
		target.CommitDates = append(target.CommitDates, ts)
	}
}

// rebuild recomputes the commit count, date buckets and activity
// boundaries of a merged record from its deduplicated inputs
func (m *Merger) rebuild(dev *models.DeveloperStats) {
	dev.CommitCount = len(dev.CommitHashes)

	dev.CommitsPerDay = make(map[string]int)
	dev.CommitsPerWeek = make(map[string]int)
	dev.CommitsPerMonth = make(map[string]int)
	dev.FirstCommitAt = nil
	dev.LastCommitAt = nil

	for _, ts := range dev.CommitDates {
		dev.CommitsPerDay[models.DayKey(ts)]++
		dev.CommitsPerWeek[models.WeekKey(ts)]++
		dev.CommitsPerMonth[models.MonthKey(ts)]++

		if dev.FirstCommitAt == nil || ts.Before(*dev.FirstCommitAt) {
			t := ts
			dev.FirstCommitAt = &t
		}
		if dev.LastCommitAt == nil || ts.After(*dev.LastCommitAt) {
			t := ts
			dev.LastCommitAt = &t
		}
	}
}
