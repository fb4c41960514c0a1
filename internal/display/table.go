package display

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/alimgiray/gitpulse/internal/models"
)

// Options controls table rendering
type Options struct {
	ShowEmails  bool
	Merged      bool
	WindowStart *time.Time
}

// Render prints the ranked statistics table, a summary block and a metric
// legend to w. An empty result prints a "no commits" notice instead.
func Render(w io.Writer, result map[string]*models.DeveloperStats, opts Options) {
	if len(result) == 0 {
		fmt.Fprintf(w, "%sNo commits found matching the criteria.%s\n", yellow(), reset())
		return
	}

	ranked := Rank(result)
	now := time.Now()

	title := "Git Repository Commit Frequency Analysis"
	if opts.Merged {
		title = "Aggregated Git Repositories Commit Frequency Analysis"
	}
	fmt.Fprintf(w, "\n%s%s%s\n\n", cyan(), title, reset())

	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	if opts.ShowEmails {
		fmt.Fprintln(tw, "Developer\tEmail\tCommits\tCommit Frequency\tActivity Period\tCode Impact")
	} else {
		fmt.Fprintln(tw, "Developer\tCommits\tCommit Frequency\tActivity Period\tCode Impact")
	}

	for _, dev := range ranked {
		period := fmt.Sprintf("%s → %s",
			TimeElapsed(now, *dev.FirstCommitAt), TimeElapsed(now, *dev.LastCommitAt))
		impact := fmt.Sprintf("+%d/-%d", dev.LinesAdded, dev.LinesDeleted)

		if opts.ShowEmails {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%s\n",
				nameCell(dev), emailCell(dev), dev.CommitCount, frequencyCell(dev), period, impact)
		} else {
			fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\n",
				nameCell(dev), dev.CommitCount, frequencyCell(dev), period, impact)
		}
	}
	tw.Flush()

	renderSummary(w, result, opts)
	renderLegend(w)
}

// Rank orders the result by frequency score, descending; ties fall back
// to commit count, then identity for a stable order
func Rank(result map[string]*models.DeveloperStats) []*models.DeveloperStats {
	ranked := make([]*models.DeveloperStats, 0, len(result))
	for _, dev := range result {
		ranked = append(ranked, dev)
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].FrequencyScore != ranked[j].FrequencyScore {
			return ranked[i].FrequencyScore > ranked[j].FrequencyScore
		}
		if ranked[i].CommitCount != ranked[j].CommitCount {
			return ranked[i].CommitCount > ranked[j].CommitCount
		}
		return ranked[i].Identity < ranked[j].Identity
	})

	return ranked
}

func renderSummary(w io.Writer, result map[string]*models.DeveloperStats, opts Options) {
	totalCommits, totalAdded, totalDeleted := 0, 0, 0
	var earliest *time.Time
	for _, dev := range result {
		totalCommits += dev.CommitCount
		totalAdded += dev.LinesAdded
		totalDeleted += dev.LinesDeleted
		if dev.FirstCommitAt != nil && (earliest == nil || dev.FirstCommitAt.Before(*earliest)) {
			earliest = dev.FirstCommitAt
		}
	}

	since := ""
	if opts.WindowStart != nil {
		since = fmt.Sprintf(" since %s", opts.WindowStart.Format("2006-01-02"))
	} else if earliest != nil {
		since = fmt.Sprintf(" since %s", earliest.Format("2006-01-02"))
	}

	fmt.Fprintf(w, "\n%sSummary%s:%s\n", green(), since, reset())
	fmt.Fprintf(w, "Total Developers: %d\n", len(result))
	fmt.Fprintf(w, "Total Commits: %d\n", totalCommits)
	fmt.Fprintf(w, "Code Impact: +%d/-%d\n", totalAdded, totalDeleted)
}

func renderLegend(w io.Writer) {
	fmt.Fprintf(w, "\n%sCommit Frequency Column:%s ★score/10 (metrics)\n", cyan(), reset())
	fmt.Fprintln(w, "Score: 50% day coverage + 30% week coverage + 20% streak length - gap penalty")
	fmt.Fprintf(w, "  %s★8-10%s consistent daily work   %s★5-7%s regular with gaps   %s★0-4%s infrequent\n",
		green(), reset(), yellow(), reset(), red(), reset())
	fmt.Fprintln(w, "Metrics: X%D days with commits, X%W weeks with commits, Xd longest streak")
	fmt.Fprintln(w, "         (weekends discounted), avg active-day gap / avg workday gap,")
	fmt.Fprintln(w, "         A:I active vs inactive days, WD:WE weekday vs weekend commits")
}
