package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// maxNameLength bounds role, dimension and panel identifiers.
const maxNameLength = 256

// ValidateName validates an identifier used for roles, dimensions or panels.
// kind is only used in the message (e.g. "role", "dimension").
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters or whitespace at either end
//   - No wildcard marker (*), which is reserved for default-dimension patterns
//   - Maximum length of 256 characters
func ValidateName(kind, name string) error {
	if name == "" {
		return New(ErrCodeInvalidConfig, "%s name cannot be empty", kind)
	}

	if len(name) > maxNameLength {
		return New(ErrCodeInvalidConfig, "%s name too long (max %d characters)", kind, maxNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidConfig, "%s name %q contains control characters", kind, name)
		}
	}

	if strings.TrimSpace(name) != name {
		return New(ErrCodeInvalidConfig, "%s name %q has leading or trailing whitespace", kind, name)
	}

	if strings.Contains(name, "*") {
		return New(ErrCodeInvalidConfig, "%s name %q cannot contain the wildcard marker", kind, name)
	}

	return nil
}

// supportedChartExtensions lists the chart definition formats accepted by ValidateChartPath.
var supportedChartExtensions = map[string]bool{
	".toml": true,
	".hcl":  true,
	".json": true,
}

// ValidateChartPath validates a chart definition file path.
//
// Validation rules:
//   - Path cannot be empty
//   - No null bytes or control characters
//   - Extension must be .toml, .hcl or .json
func ValidateChartPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	ext := strings.ToLower(filepath.Ext(path))
	if !supportedChartExtensions[ext] {
		return New(ErrCodeInvalidPath, "unsupported chart file extension %q (want .toml, .hcl or .json)", ext)
	}

	return nil
}
