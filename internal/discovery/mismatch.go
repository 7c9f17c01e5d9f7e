package discovery

import (
	"sort"

	"github.com/opensource-hub/phpbb-core/internal/extensions"
)

// detectFindings compares the configured and managed state against what is
// actually on disk and flags the inconsistencies.
func (s *Service) detectFindings(available map[string]*extensions.Manifest) []Finding {
	var findings []Finding

	for _, id := range s.cfg.Enabling {
		findings = append(findings, Finding{Kind: FindingStuckEnabling, ID: id})
	}

	for _, id := range s.cfg.Enabled {
		if _, ok := available[id]; !ok {
			findings = append(findings, Finding{Kind: FindingEnabledMissing, ID: id})
		}
	}

	if managed, err := s.managed.Managed(); err == nil {
		for _, id := range managed {
			if _, ok := available[id]; !ok {
				findings = append(findings, Finding{Kind: FindingManagedMissing, ID: id})
			}
		}
	}

	// Sort for stable output across runs.
	sort.Slice(findings, func(i, j int) bool {
		if findings[i].Kind != findings[j].Kind {
			return findings[i].Kind < findings[j].Kind
		}
		return findings[i].ID < findings[j].ID
	})
	return findings
}
