package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// axisTokens lists the accepted axis and orientation tokens.
var axisTokens = map[string]bool{
	"h":          true,
	"horizontal": true,
	"v":          true,
	"vertical":   true,
}

// alignDirectives lists the accepted auto-align directives.
var alignDirectives = map[string]bool{
	"hcenter": true,
	"vcenter": true,
	"hfill":   true,
	"vfill":   true,
	"stretch": true,
}

// ValidateAxisToken validates an axis or orientation token.
// Accepted tokens are "h", "horizontal", "v" and "vertical".
func ValidateAxisToken(token string) error {
	if token == "" {
		return New(ErrCodeInvalidAxis, "axis token cannot be empty")
	}
	if !axisTokens[token] {
		return New(ErrCodeInvalidAxis, "unknown axis token %q (want h, horizontal, v or vertical)", token)
	}
	return nil
}

// ValidateDirectives validates a comma-separated alignment directive list.
// Empty entries are tolerated; unknown directives are rejected so that
// nothing is applied from a partially valid list.
func ValidateDirectives(list string) error {
	for _, d := range strings.Split(list, ",") {
		d = strings.TrimSpace(d)
		if d == "" {
			continue
		}
		if !alignDirectives[d] {
			return New(ErrCodeInvalidDirective, "unknown alignment directive %q", d)
		}
	}
	return nil
}

// roleNameRegex matches role names usable as item keys.
var roleNameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidateRoleNames validates list-model role names.
// Names must be identifiers and unique.
func ValidateRoleNames(names []string) error {
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if !roleNameRegex.MatchString(n) {
			return New(ErrCodeInvalidRole, "invalid role name: %q", n)
		}
		if seen[n] {
			return New(ErrCodeInvalidRole, "duplicate role name: %q", n)
		}
		seen[n] = true
	}
	return nil
}

// ValidateSceneName validates a scene or node name.
// Empty names are allowed; named nodes must not contain control characters
// or path separators since names are used in diagrams and cache keys.
func ValidateSceneName(name string) error {
	if len(name) > 256 {
		return New(ErrCodeInvalidScene, "name too long (max 256 characters)")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidScene, "name contains invalid control characters")
		}
	}
	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidScene, "name cannot contain path separators: %q", name)
	}
	return nil
}

// ValidatePath validates a scene file path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	return nil
}
