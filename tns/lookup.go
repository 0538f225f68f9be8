package tns

import (
	"log/slog"
	"strings"

	"github.com/sahilm/fuzzy"
)

// maxSuggestions bounds the alternatives reported for an unknown service.
const maxSuggestions = 3

// Lookup returns the first entry naming service. Service names are compared
// ignoring ASCII case.
//
// If no entry matches, the error wraps [ErrServiceNotFound] and carries the
// closest service names as the "suggestions" attribute.
func (d *Document) Lookup(service string) (*Entry, error) {
	for _, e := range d.entries {
		for _, s := range e.services {
			if strings.EqualFold(s, service) {
				return e, nil
			}
		}
	}

	return nil, ErrServiceNotFound.With(
		slog.String("service", service),
		slog.Any("suggestions", d.Suggest(service)),
	)
}

// Suggest returns up to three service names that fuzzy-match pattern, best
// match first.
func (d *Document) Suggest(pattern string) []string {
	names := d.Services()

	upper := make([]string, len(names))
	for i, n := range names {
		upper[i] = strings.ToUpper(n)
	}

	matches := fuzzy.Find(strings.ToUpper(pattern), upper)

	var suggestions []string

	for _, m := range matches {
		if len(suggestions) == maxSuggestions {
			break
		}

		suggestions = append(suggestions, names[m.Index])
	}

	return suggestions
}
