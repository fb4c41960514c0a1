package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/alimgiray/gitpulse/internal/display"
	"github.com/alimgiray/gitpulse/internal/export"
	"github.com/alimgiray/gitpulse/internal/git"
	"github.com/alimgiray/gitpulse/internal/identity"
	"github.com/alimgiray/gitpulse/internal/models"
	"github.com/alimgiray/gitpulse/internal/repositories"
	"github.com/alimgiray/gitpulse/internal/services"
	"github.com/alimgiray/gitpulse/internal/stats"
	"github.com/alimgiray/gitpulse/pkg/config"
	"github.com/alimgiray/gitpulse/pkg/database"
	"github.com/alimgiray/gitpulse/pkg/logger"
)

var (
	statsBranch     string
	statsSince      string
	statsUntil      string
	statsExclude    string
	statsShowEmails bool
	statsExportPath string
	statsNoCache    bool
)

var statsCmd = &cobra.Command{
	Use:   "stats <repo> [<repo>...]",
	Short: "Analyze commit statistics for one or more repositories",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().StringVar(&statsBranch, "branch", "", "analyze only a specific branch")
	statsCmd.Flags().StringVar(&statsSince, "since", "", "only consider commits on or after this date (YYYY-MM-DD)")
	statsCmd.Flags().StringVar(&statsUntil, "until", "", "only consider commits on or before this date (YYYY-MM-DD)")
	statsCmd.Flags().StringVar(&statsExclude, "exclude", "", "comma-separated file path patterns to exclude")
	statsCmd.Flags().BoolVar(&statsShowEmails, "show-emails", false, "show email addresses in the table")
	statsCmd.Flags().StringVar(&statsExportPath, "export", "", "export the result table to an XLSX file")
	statsCmd.Flags().BoolVar(&statsNoCache, "no-cache", false, "bypass the commit cache")
}

func runStats(cmd *cobra.Command, args []string) error {
	display.SetColorEnabled(!noColor)

	since, err := services.ParseDateFilter(statsSince, false)
	if err != nil {
		return err
	}
	until, err := services.ParseDateFilter(statsUntil, true)
	if err != nil {
		return err
	}

	var excludePatterns []string
	for _, pattern := range strings.Split(statsExclude, ",") {
		if pattern = strings.TrimSpace(pattern); pattern != "" {
			excludePatterns = append(excludePatterns, pattern)
		}
	}

	service := newAnalysisService()
	defer database.Close()

	if len(args) == 1 {
		return runSingleRepo(service, args[0], since, until, excludePatterns)
	}
	return runMergedRepos(service, args, since, until, excludePatterns)
}

// newAnalysisService wires the analysis pipeline, opening the commit cache
// unless it is disabled by flag or environment
func newAnalysisService() *services.AnalysisService {
	store := identity.NewStore(config.AppConfig.Store.ConfigDir)

	cacheEnabled := config.AppConfig.Store.CacheEnabled && !statsNoCache
	if cacheEnabled {
		if err := database.Init(config.AppConfig.Store.CachePath); err != nil {
			logger.WithError(err).Warnf("Failed to open commit cache, continuing without it")
			cacheEnabled = false
		}
	}

	if !cacheEnabled {
		return services.NewAnalysisService(nil, nil, nil, store, false)
	}

	return services.NewAnalysisService(
		repositories.NewAnalysisRepository(database.DB),
		repositories.NewCommitRepository(database.DB),
		repositories.NewCommitFileRepository(database.DB),
		store,
		true,
	)
}

func runSingleRepo(service *services.AnalysisService, repoPath string, since, until *time.Time, excludePatterns []string) error {
	logger.Infof("Analyzing git repository at %s", repoPath)

	result, err := service.AnalyzeRepository(services.AnalyzeOptions{
		RepoPath:        repoPath,
		Branch:          statsBranch,
		Since:           since,
		Until:           until,
		ExcludePatterns: excludePatterns,
	})
	if err != nil {
		return describeFatal(repoPath, err)
	}

	display.Render(os.Stdout, result, display.Options{ShowEmails: statsShowEmails})
	return exportIfRequested(result)
}

// runMergedRepos analyzes each repository in turn and merges the results.
// A repository that fails fatally is skipped and reported; the run only
// fails when every repository does.
func runMergedRepos(service *services.AnalysisService, repoPaths []string, since, until *time.Time, excludePatterns []string) error {
	var results []map[string]*models.DeveloperStats

	for _, repoPath := range repoPaths {
		logger.Infof("Analyzing git repository at %s", repoPath)

		result, err := service.AnalyzeRepository(services.AnalyzeOptions{
			RepoPath:        repoPath,
			Branch:          statsBranch,
			Since:           since,
			Until:           until,
			ExcludePatterns: excludePatterns,
		})
		if err != nil {
			logger.WithError(err).Errorf("Skipping repository %s", repoPath)
			continue
		}
		results = append(results, result)
	}

	if len(results) == 0 {
		return errors.New("no repositories could be analyzed")
	}

	merged, windowStart := stats.NewMerger().Merge(results, since)

	display.Render(os.Stdout, merged, display.Options{
		ShowEmails:  statsShowEmails,
		Merged:      true,
		WindowStart: &windowStart,
	})
	return exportIfRequested(merged)
}

func exportIfRequested(result map[string]*models.DeveloperStats) error {
	if statsExportPath == "" || len(result) == 0 {
		return nil
	}

	if err := export.NewExcelExporter().Export(statsExportPath, result); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	logger.Infof("Exported statistics to %s", statsExportPath)
	return nil
}

// describeFatal keeps the user-facing message for the common fatal cases
// aligned with the repository and branch that caused them
func describeFatal(repoPath string, err error) error {
	switch {
	case errors.Is(err, git.ErrNotARepository):
		return fmt.Errorf("%s is not a valid git repository", repoPath)
	case errors.Is(err, git.ErrBranchNotFound):
		return fmt.Errorf("branch %q not found in %s", statsBranch, repoPath)
	default:
		return err
	}
}
