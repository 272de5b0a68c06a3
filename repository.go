package templatecache

import (
	"net/url"
	"strings"

	"github.com/notifykit/templatecache/errors"
)

// Repository identifies a hosted repository in canonical owner/name form,
// with no scheme and no trailing ".git".
type Repository struct {
	Owner string
	Name  string
}

// FullName returns the canonical "owner/name" form.
func (r Repository) FullName() string {
	return r.Owner + "/" + r.Name
}

// ParseRepository parses a repository identifier into canonical form.
//
// Accepted inputs:
//   - HTTP(S) URLs: https://github.com/acme/widgets[.git]
//   - SSH form: git@github.com:acme/widgets[.git]
//   - owner/name shorthand: acme/widgets
//
// For URLs the first two non-empty path segments become owner and name, so
// deep links (e.g. .../acme/widgets/tree/main) still resolve. Anything
// unparseable returns an invalid-input error.
func ParseRepository(raw string) (Repository, error) {
	trimmed := strings.TrimSuffix(strings.TrimSpace(raw), ".git")
	if trimmed == "" {
		return Repository{}, errors.New(errors.CodeInvalidInput, "repository reference must not be empty")
	}

	// HTTP(S) URLs
	if strings.Contains(trimmed, "://") {
		parsed, err := url.Parse(trimmed)
		if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
			return Repository{}, errors.Newf(errors.CodeInvalidInput, "invalid repository reference: %q", raw)
		}
		segments := splitSegments(parsed.Path)
		if len(segments) < 2 {
			return Repository{}, errors.Newf(errors.CodeInvalidInput, "invalid repository reference: %q", raw)
		}
		return Repository{Owner: segments[0], Name: segments[1]}, nil
	}

	// SSH form: git@host:owner/name
	if strings.Contains(trimmed, "@") && strings.Contains(trimmed, ":") {
		_, hostPath, _ := strings.Cut(trimmed, "@")
		_, repoPath, ok := strings.Cut(hostPath, ":")
		if !ok {
			return Repository{}, errors.Newf(errors.CodeInvalidInput, "invalid repository reference: %q", raw)
		}
		segments := splitSegments(repoPath)
		if len(segments) < 2 {
			return Repository{}, errors.Newf(errors.CodeInvalidInput, "invalid repository reference: %q", raw)
		}
		return Repository{Owner: segments[0], Name: segments[1]}, nil
	}

	// owner/name shorthand
	segments := splitSegments(trimmed)
	if len(segments) == 2 && !strings.ContainsAny(trimmed, " \t") {
		return Repository{Owner: segments[0], Name: segments[1]}, nil
	}

	return Repository{}, errors.Newf(errors.CodeInvalidInput, "invalid repository reference: %q", raw)
}

// splitSegments splits a path on "/" and drops empty segments.
func splitSegments(path string) []string {
	var segments []string
	for _, segment := range strings.Split(path, "/") {
		if segment != "" {
			segments = append(segments, segment)
		}
	}
	return segments
}
