package display

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alimgiray/gitpulse/internal/models"
)

func statsDev(identity string, score float64, commits int) *models.DeveloperStats {
	dev := models.NewDeveloperStats(identity)
	dev.DisplayName = identity
	dev.FrequencyScore = score
	dev.CommitCount = commits
	ts := time.Date(2024, time.March, 4, 10, 0, 0, 0, time.UTC)
	dev.FirstCommitAt = &ts
	dev.LastCommitAt = &ts
	return dev
}

func TestRank(t *testing.T) {
	result := map[string]*models.DeveloperStats{
		"Alice": statsDev("Alice", 7.5, 100),
		"Bob":   statsDev("Bob", 9.1, 20),
		"Carol": statsDev("Carol", 7.5, 200),
		"Dave":  statsDev("Dave", 7.5, 100),
	}

	ranked := Rank(result)

	require.Len(t, ranked, 4)
	// Score first, then commit count, then identity for determinism.
	assert.Equal(t, "Bob", ranked[0].Identity)
	assert.Equal(t, "Carol", ranked[1].Identity)
	assert.Equal(t, "Alice", ranked[2].Identity)
	assert.Equal(t, "Dave", ranked[3].Identity)
}

func TestRenderEmptyResult(t *testing.T) {
	SetColorEnabled(false)

	var buf bytes.Buffer
	Render(&buf, nil, Options{})

	assert.Contains(t, buf.String(), "No commits found")
}

func TestRenderTable(t *testing.T) {
	SetColorEnabled(false)

	dev := statsDev("Alice", 8.2, 42)
	dev.AddName("Alice")
	dev.AddName("alice-laptop")
	dev.AddEmail("alice@example.com")
	dev.LinesAdded = 100
	dev.LinesDeleted = 40

	var buf bytes.Buffer
	Render(&buf, map[string]*models.DeveloperStats{"Alice": dev}, Options{ShowEmails: true})

	out := buf.String()
	assert.Contains(t, out, "Alice (alice-laptop)")
	assert.Contains(t, out, "alice@example.com")
	assert.Contains(t, out, "★8.2/10")
	assert.Contains(t, out, "+100/-40")
	assert.Contains(t, out, "Total Developers: 1")
	assert.Contains(t, out, "Total Commits: 42")
}

func TestRenderMergedTitle(t *testing.T) {
	SetColorEnabled(false)

	windowStart := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	dev := statsDev("Alice", 5.0, 1)

	var buf bytes.Buffer
	Render(&buf, map[string]*models.DeveloperStats{"Alice": dev}, Options{
		Merged:      true,
		WindowStart: &windowStart,
	})

	out := buf.String()
	assert.Contains(t, out, "Aggregated Git Repositories")
	assert.Contains(t, out, "since 2024-03-01")
}

func TestTimeElapsed(t *testing.T) {
	now := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

	testCases := []struct {
		name     string
		date     time.Time
		expected string
	}{
		{name: "future reads as recently", date: now.Add(time.Hour), expected: "recently"},
		{name: "minutes", date: now.Add(-30 * time.Minute), expected: "30m ago"},
		{name: "hours", date: now.Add(-5 * time.Hour), expected: "5h ago"},
		{name: "days", date: now.AddDate(0, 0, -3), expected: "3d ago"},
		{name: "weeks", date: now.AddDate(0, 0, -21), expected: "3w ago"},
		{name: "months", date: now.AddDate(0, 0, -90), expected: "3mo ago"},
		{name: "years", date: now.AddDate(0, 0, -800), expected: "2y ago"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, TimeElapsed(now, tc.date))
		})
	}
}

func TestEmailCellFallsBackToCanonical(t *testing.T) {
	dev := models.NewDeveloperStats("Alice")
	dev.CanonicalEmail = "alice@example.com"

	assert.Equal(t, "alice@example.com", emailCell(dev))

	dev.AddEmail("work@corp.com")
	assert.Equal(t, "work@corp.com", emailCell(dev))
}
