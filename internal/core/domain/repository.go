package domain

import (
	"fmt"
	"strings"
	"unicode"
)

// RepoID identifies a GitHub repository in "owner/name" form.
// It is the key into the subscription set and into aggregated updates.
type RepoID string

// ParseRepoID validates and normalises a repository identifier.
// Surrounding whitespace is trimmed; anything other than exactly one slash
// separating two non-empty parts is rejected.
func ParseRepoID(s string) (RepoID, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, ".git")
	s = strings.TrimPrefix(s, "https://github.com/")

	parts := strings.Split(s, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidRepo, s)
	}
	if strings.IndexFunc(s, unicode.IsSpace) >= 0 {
		return "", fmt.Errorf("%w: %q", ErrInvalidRepo, s)
	}
	return RepoID(s), nil
}

// MustParseRepoID is like ParseRepoID but panics on error.
// Intended for tests and constants.
func MustParseRepoID(s string) RepoID {
	id, err := ParseRepoID(s)
	if err != nil {
		panic(err)
	}
	return id
}

// Owner returns the owner (user or organisation) part.
func (r RepoID) Owner() string {
	owner, _, _ := strings.Cut(string(r), "/")
	return owner
}

// Name returns the repository name part.
func (r RepoID) Name() string {
	_, name, _ := strings.Cut(string(r), "/")
	return name
}

// Slug returns a filesystem-friendly form, "owner_name".
func (r RepoID) Slug() string {
	return strings.ReplaceAll(string(r), "/", "_")
}

// String returns the "owner/name" form.
func (r RepoID) String() string {
	return string(r)
}

// ParseRepoIDs parses a list of identifiers, failing on the first invalid one.
func ParseRepoIDs(values []string) ([]RepoID, error) {
	ids := make([]RepoID, 0, len(values))
	for _, v := range values {
		id, err := ParseRepoID(v)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
