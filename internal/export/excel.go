package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/alimgiray/gitpulse/internal/display"
	"github.com/alimgiray/gitpulse/internal/models"
)

// ExcelExporter writes a finalized result set to an XLSX workbook with the
// full metric set per developer
type ExcelExporter struct{}

// NewExcelExporter creates a new ExcelExporter
func NewExcelExporter() *ExcelExporter {
	return &ExcelExporter{}
}

const sheetName = "Developers"

var headers = []string{
	"Developer", "Canonical Email", "Commits", "Lines Added", "Lines Deleted",
	"Net Lines", "Files Changed", "First Commit", "Last Commit",
	"Day Ratio", "Week Ratio", "Month Ratio", "Avg Gap (days)", "Max Gap (days)",
	"Avg Workday Gap", "Avg Active-Day Gap", "Max Streak", "Streak/Gap Ratio",
	"Weekday Ratio", "Frequency Score",
}

// Export writes the ranked result set to the given file path
func (e *ExcelExporter) Export(path string, result map[string]*models.DeveloperStats) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("failed to prepare sheet: %w", err)
	}

	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return err
		}
	}

	for i, dev := range display.Rank(result) {
		values := []interface{}{
			dev.DisplayName,
			dev.CanonicalEmail,
			dev.CommitCount,
			dev.LinesAdded,
			dev.LinesDeleted,
			dev.NetLines(),
			dev.FilesChanged,
			dev.FirstCommitAt.Format("2006-01-02 15:04:05"),
			dev.LastCommitAt.Format("2006-01-02 15:04:05"),
			dev.DayRatio,
			dev.WeekRatio,
			dev.MonthRatio,
			dev.AvgGapDays,
			dev.MaxGapDays,
			dev.AvgWorkdayGap,
			dev.AvgActiveDayGap,
			dev.MaxStreak,
			dev.StreakGapRatio,
			dev.WeekdayRatio,
			dev.FrequencyScore,
		}

		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return err
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	return nil
}
