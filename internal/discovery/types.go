package discovery

// Extension is one extension found on disk.
type Extension struct {
	// ID is the vendor/name identifier.
	ID string

	// Version is the version declared in the extension manifest.
	Version string

	// Enabled reports whether the extension is on the enabled list.
	Enabled bool

	// Managed reports whether the installer owns the extension.
	Managed bool
}

// FindingKind classifies a discovery finding.
type FindingKind int

const (
	// FindingStaleBackup is a leftover migration backup directory.
	FindingStaleBackup FindingKind = iota

	// FindingStuckEnabling is an extension whose enable never finished.
	FindingStuckEnabling

	// FindingEnabledMissing is an enabled extension with no files on disk.
	FindingEnabledMissing

	// FindingManagedMissing is a managed extension with no files on disk.
	FindingManagedMissing
)

// String returns a human-readable representation of the finding kind.
func (k FindingKind) String() string {
	switch k {
	case FindingStaleBackup:
		return "stale backup"
	case FindingStuckEnabling:
		return "stuck enabling"
	case FindingEnabledMissing:
		return "enabled but missing"
	case FindingManagedMissing:
		return "managed but missing"
	default:
		return "unknown"
	}
}

// Finding is one condition that needs operator attention.
type Finding struct {
	// Kind classifies the finding.
	Kind FindingKind

	// ID is the affected extension identifier, when one applies.
	ID string

	// Detail is a path or free-form context for the finding.
	Detail string
}

// Result represents the complete discovery result for a board.
type Result struct {
	// Extensions contains every extension found on disk, sorted by id.
	Extensions []Extension

	// Findings contains the conditions that need attention.
	Findings []Finding
}

// HasExtensions returns true if any extensions were found on disk.
func (r *Result) HasExtensions() bool {
	return len(r.Extensions) > 0
}

// HasFindings returns true if anything needs operator attention.
func (r *Result) HasFindings() bool {
	return len(r.Findings) > 0
}

// Unmanaged returns the extensions present on disk that the installer does
// not own.
func (r *Result) Unmanaged() []Extension {
	var out []Extension
	for _, e := range r.Extensions {
		if !e.Managed {
			out = append(out, e)
		}
	}
	return out
}
