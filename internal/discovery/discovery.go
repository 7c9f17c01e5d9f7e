package discovery

import (
	"context"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/opensource-hub/phpbb-core/internal/config"
	"github.com/opensource-hub/phpbb-core/internal/core"
	"github.com/opensource-hub/phpbb-core/internal/extensions"
)

// Availability reports the extensions present on disk.
type Availability interface {
	AllAvailable() (map[string]*extensions.Manifest, error)
}

// ManagedSet reports which extensions the installer owns.
type ManagedSet interface {
	IsManaged(id string) bool
	Managed() ([]string, error)
}

// Service scans a board installation for extension state.
type Service struct {
	cfg     *config.Config
	avail   Availability
	managed ManagedSet
}

// NewService creates a discovery Service over the given collaborators.
func NewService(cfg *config.Config, avail Availability, managed ManagedSet) *Service {
	return &Service{cfg: cfg, avail: avail, managed: managed}
}

// Discover scans the board and returns the discovery result.
func (s *Service) Discover(ctx context.Context) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	available, err := s.avail.AllAvailable()
	if err != nil {
		return nil, err
	}

	result := &Result{}
	for _, id := range slices.Sorted(maps.Keys(available)) {
		result.Extensions = append(result.Extensions, Extension{
			ID:      id,
			Version: available[id].Version,
			Enabled: slices.Contains(s.cfg.Enabled, id),
			Managed: s.managed.IsManaged(id),
		})
	}

	result.Findings = s.detectFindings(available)
	result.Findings = append(result.Findings, s.findStaleBackups()...)
	return result, nil
}

// findStaleBackups walks the two-level extensions directory for leftover
// migration backup directories.
func (s *Service) findStaleBackups() []Finding {
	var findings []Finding
	extPath := s.cfg.ExtPath()

	vendors, err := os.ReadDir(extPath)
	if err != nil {
		return nil
	}
	for _, vendor := range vendors {
		if !vendor.IsDir() {
			continue
		}
		names, err := os.ReadDir(filepath.Join(extPath, vendor.Name()))
		if err != nil {
			continue
		}
		for _, name := range names {
			if !name.IsDir() || !strings.HasSuffix(name.Name(), core.BackupSuffix) {
				continue
			}
			id := vendor.Name() + "/" + strings.TrimSuffix(name.Name(), core.BackupSuffix)
			findings = append(findings, Finding{
				Kind:   FindingStaleBackup,
				ID:     id,
				Detail: filepath.Join(extPath, vendor.Name(), name.Name()),
			})
		}
	}
	return findings
}
