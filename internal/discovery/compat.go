package discovery

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Compatible reports whether coreVersion satisfies a
// core_version_requirement constraint such as "^9.5 || ^10". An empty
// requirement is treated as compatible. Prerelease suffixes on the core
// version are ignored, so "10.2.0-dev" is checked as "10.2.0".
func Compatible(requirement, coreVersion string) (bool, error) {
	requirement = strings.TrimSpace(requirement)
	if requirement == "" {
		return true, nil
	}

	c, err := semver.NewConstraint(requirement)
	if err != nil {
		return false, fmt.Errorf("parsing core requirement %q: %w", requirement, err)
	}
	v, err := semver.NewVersion(strings.TrimPrefix(coreVersion, "v"))
	if err != nil {
		return false, fmt.Errorf("parsing core version %q: %w", coreVersion, err)
	}
	if v.Prerelease() != "" {
		released, err := v.SetPrerelease("")
		if err != nil {
			return false, fmt.Errorf("normalizing core version %q: %w", coreVersion, err)
		}
		v = &released
	}
	return c.Check(v), nil
}
