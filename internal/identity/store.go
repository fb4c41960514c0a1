package identity

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alimgiray/gitpulse/internal/models"
	"github.com/alimgiray/gitpulse/pkg/logger"
)

// Store persists identity mappings as one JSON file per repository inside
// the configuration directory. The stats run only ever reads the store;
// mutations happen through the identity subcommands.
type Store struct {
	configDir string
}

// NewStore creates a new Store rooted at the given configuration directory
func NewStore(configDir string) *Store {
	return &Store{configDir: configDir}
}

// FilePath returns the mapping file path for a repository
func (s *Store) FilePath(repoPath string) string {
	abs, err := filepath.Abs(repoPath)
	if err != nil {
		abs = repoPath
	}

	sanitized := strings.NewReplacer("/", "_", "\\", "_", ":", "_").Replace(abs)
	return filepath.Join(s.configDir, sanitized+"_identities.json")
}

// Load reads the identity mappings for a repository. A missing or
// unreadable file yields empty mappings and no exclusions.
func (s *Store) Load(repoPath string) *models.IdentityMappings {
	mappings := models.NewIdentityMappings()

	data, err := os.ReadFile(s.FilePath(repoPath))
	if err != nil {
		if !os.IsNotExist(err) {
			logger.WithError(err).Warnf("Failed to read identity mappings for %s", repoPath)
		}
		return mappings
	}

	if err := json.Unmarshal(data, mappings); err != nil {
		logger.WithError(err).Warnf("Failed to parse identity mappings for %s", repoPath)
		return models.NewIdentityMappings()
	}

	if mappings.Emails == nil {
		mappings.Emails = make(map[string]string)
	}
	if mappings.Names == nil {
		mappings.Names = make(map[string]string)
	}

	return mappings
}

// Save writes the identity mappings for a repository
func (s *Store) Save(repoPath string, mappings *models.IdentityMappings) error {
	if err := os.MkdirAll(s.configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(mappings, "", "  ")
	if err != nil {
		return err
	}

	if err := os.WriteFile(s.FilePath(repoPath), data, 0644); err != nil {
		return fmt.Errorf("failed to write identity mappings: %w", err)
	}

	return nil
}

// AddMapping maps an author name or email onto a canonical identity.
// Values containing '@' are treated as emails and stored lower-cased.
func (s *Store) AddMapping(repoPath, nameOrEmail, canonical string) error {
	mappings := s.Load(repoPath)

	if strings.Contains(nameOrEmail, "@") {
		mappings.Emails[strings.ToLower(nameOrEmail)] = canonical
	} else {
		mappings.Names[nameOrEmail] = canonical
	}

	return s.Save(repoPath, mappings)
}

// RemoveMapping removes a name or email mapping
func (s *Store) RemoveMapping(repoPath, nameOrEmail string) error {
	mappings := s.Load(repoPath)

	if strings.Contains(nameOrEmail, "@") {
		delete(mappings.Emails, strings.ToLower(nameOrEmail))
	} else {
		delete(mappings.Names, nameOrEmail)
	}

	return s.Save(repoPath, mappings)
}

// Exclude adds a developer name or email to the exclusion list
func (s *Store) Exclude(repoPath, nameOrEmail string) error {
	mappings := s.Load(repoPath)

	for _, entry := range mappings.Excluded {
		if strings.EqualFold(entry, nameOrEmail) {
			return nil
		}
	}
	mappings.Excluded = append(mappings.Excluded, nameOrEmail)

	return s.Save(repoPath, mappings)
}

// Include removes a developer name or email from the exclusion list
func (s *Store) Include(repoPath, nameOrEmail string) error {
	mappings := s.Load(repoPath)

	kept := mappings.Excluded[:0]
	for _, entry := range mappings.Excluded {
		if !strings.EqualFold(entry, nameOrEmail) {
			kept = append(kept, entry)
		}
	}
	mappings.Excluded = kept

	return s.Save(repoPath, mappings)
}
