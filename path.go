package templatecache

import (
	"strings"

	"github.com/notifykit/templatecache/errors"
)

// ResolvePath joins a template-relative path with an optional base path.
//
// Both inputs are trimmed of whitespace and leading/trailing slashes before
// joining, so the result never contains a double slash at the join point.
// Returns an invalid-input error if templatePath is empty after trimming.
//
// Example:
//
//	path, _ := templatecache.ResolvePath("emails/welcome.pug", "src/templates")
//	// "src/templates/emails/welcome.pug"
func ResolvePath(templatePath, basePath string) (string, error) {
	cleaned := strings.Trim(strings.TrimSpace(templatePath), "/")
	if cleaned == "" {
		return "", errors.New(errors.CodeInvalidInput, "template path must not be empty")
	}

	base := strings.Trim(strings.TrimSpace(basePath), "/")
	if base == "" {
		return cleaned, nil
	}

	return base + "/" + cleaned, nil
}
