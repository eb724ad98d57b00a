package repo

import (
	"fmt"
	"path"
	"strings"
	"time"
)

// Filter narrows a repository list. The zero value matches everything.
// Include/Exclude are glob patterns evaluated against both the short
// name and the full name.
type Filter struct {
	Include         []string  `yaml:"include,omitempty"`
	Exclude         []string  `yaml:"exclude,omitempty"`
	ExcludeArchived bool      `yaml:"exclude_archived"`
	ExcludeForks    bool      `yaml:"exclude_forks"`
	Language        string    `yaml:"language,omitempty"`
	MinStars        int       `yaml:"min_stars,omitempty"`
	UpdatedAfter    time.Time `yaml:"updated_after,omitempty"`
}

// Apply returns the repositories matching the filter, preserving input
// order. A malformed glob pattern fails the whole call.
func Apply(repos []Repository, f Filter) ([]Repository, error) {
	if err := validatePatterns(f.Include); err != nil {
		return nil, err
	}
	if err := validatePatterns(f.Exclude); err != nil {
		return nil, err
	}

	out := make([]Repository, 0, len(repos))
	for _, r := range repos {
		if f.ExcludeArchived && r.Archived {
			continue
		}
		if f.ExcludeForks && r.Fork {
			continue
		}
		if f.Language != "" && !strings.EqualFold(f.Language, r.Language) {
			continue
		}
		if r.Stars < f.MinStars {
			continue
		}
		if !f.UpdatedAfter.IsZero() && r.UpdatedAt.Before(f.UpdatedAfter) {
			continue
		}
		if len(f.Include) > 0 && !matchesAny(f.Include, r) {
			continue
		}
		if matchesAny(f.Exclude, r) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func matchesAny(patterns []string, r Repository) bool {
	for _, p := range patterns {
		if ok, _ := path.Match(p, r.Name); ok {
			return true
		}
		if ok, _ := path.Match(p, r.FullName); ok {
			return true
		}
	}
	return false
}

func validatePatterns(patterns []string) error {
	for _, p := range patterns {
		if _, err := path.Match(p, ""); err != nil {
			return fmt.Errorf("invalid filter pattern %q: %w", p, err)
		}
	}
	return nil
}
