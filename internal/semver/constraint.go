package semver

import (
	"fmt"
	"strings"
)

// AnyVersion is the wildcard constraint accepting every version.
const AnyVersion = "*"

// constraint operators recognized in package specs, longest first so ">="
// is not split into ">" + "=...".
var constraintOps = []string{">=", "<=", "^", "~", ">", "<", "="}

// NormalizeConstraint validates and normalizes a version constraint.
// An empty constraint becomes the wildcard; whitespace is trimmed.
func NormalizeConstraint(s string) (string, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" || trimmed == AnyVersion {
		return AnyVersion, nil
	}

	version := trimmed
	for _, op := range constraintOps {
		if strings.HasPrefix(trimmed, op) {
			version = strings.TrimSpace(trimmed[len(op):])
			break
		}
	}

	if _, err := ParseVersion(version); err != nil {
		return "", fmt.Errorf("%w: %q", errInvalidConstraint, s)
	}
	return trimmed, nil
}

// ParseSpec splits a package spec of the form "vendor/name[@constraint]" into
// the extension identifier and its normalized constraint.
func ParseSpec(spec string) (string, string, error) {
	id := strings.TrimSpace(spec)
	constraint := ""

	if at := strings.IndexByte(id, '@'); at >= 0 {
		constraint = id[at+1:]
		id = id[:at]
	}

	if id == "" {
		return "", "", fmt.Errorf("empty package name in spec %q", spec)
	}

	normalized, err := NormalizeConstraint(constraint)
	if err != nil {
		return "", "", err
	}
	return id, normalized, nil
}
