package config

import (
	"fmt"
	"os"
	"regexp"
	"slices"
)

// ValidationResult represents the result of a validation check.
type ValidationResult struct {
	// Category is the validation category (e.g., "Extension Ids", "Paths").
	Category string

	// Passed indicates if the check passed.
	Passed bool

	// Message provides details about the validation result.
	Message string

	// Warning indicates if this is a warning rather than an error.
	Warning bool
}

// extensionIDPattern matches vendor/name extension identifiers.
var extensionIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_]+/[a-zA-Z0-9_]+$`)

// ValidID reports whether id is a well-formed vendor/name extension
// identifier.
func ValidID(id string) bool {
	return extensionIDPattern.MatchString(id)
}

// Validator validates configuration files and settings.
type Validator struct {
	cfg         *Config
	configPath  string
	validations []ValidationResult
}

// NewValidator creates a new configuration validator.
func NewValidator(cfg *Config, configPath string) *Validator {
	return &Validator{
		cfg:        cfg,
		configPath: configPath,
	}
}

// Validate runs every check and returns the accumulated results.
func (v *Validator) Validate() []ValidationResult {
	v.validations = nil
	v.checkIdentifiers()
	v.checkDuplicates()
	v.checkPaths()
	return v.validations
}

// Passed reports whether no non-warning validation failed.
func Passed(results []ValidationResult) bool {
	for _, r := range results {
		if !r.Passed && !r.Warning {
			return false
		}
	}
	return true
}

func (v *Validator) add(category string, passed bool, warning bool, format string, args ...any) {
	v.validations = append(v.validations, ValidationResult{
		Category: category,
		Passed:   passed,
		Warning:  warning,
		Message:  fmt.Sprintf(format, args...),
	})
}

func (v *Validator) checkIdentifiers() {
	ok := true
	for _, list := range [][]string{v.cfg.Enabled, v.cfg.Enabling} {
		for _, id := range list {
			if !ValidID(id) {
				ok = false
				v.add("Extension Ids", false, false, "invalid extension identifier %q (expected vendor/name)", id)
			}
		}
	}
	if ok {
		v.add("Extension Ids", true, false, "all extension identifiers are well-formed")
	}
}

func (v *Validator) checkDuplicates() {
	seen := make(map[string]bool, len(v.cfg.Enabled))
	ok := true
	for _, id := range v.cfg.Enabled {
		if seen[id] {
			ok = false
			v.add("Extension Ids", false, false, "extension %q listed as enabled more than once", id)
		}
		seen[id] = true
	}
	for _, id := range v.cfg.Enabling {
		if slices.Contains(v.cfg.Enabled, id) {
			v.add("Extension Ids", false, true, "extension %q is both enabled and mid-enabling", id)
		}
	}
	if ok {
		v.add("Extension Ids", true, false, "no duplicate enabled entries")
	}
}

func (v *Validator) checkPaths() {
	if info, err := os.Stat(v.cfg.ExtPath()); err != nil || !info.IsDir() {
		v.add("Paths", false, false, "extensions directory %q is missing", v.cfg.ExtPath())
	} else {
		v.add("Paths", true, false, "extensions directory %q exists", v.cfg.ExtPath())
	}

	if info, err := os.Stat(v.cfg.PackagesPath()); err != nil || !info.IsDir() {
		// Missing mirror only prevents installs, not enable/disable.
		v.add("Paths", false, true, "package mirror %q is missing", v.cfg.PackagesPath())
	} else {
		v.add("Paths", true, false, "package mirror %q exists", v.cfg.PackagesPath())
	}
}
