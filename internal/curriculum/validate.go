package curriculum

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidCatalog is wrapped by every catalog validation failure.
var ErrInvalidCatalog = errors.New("invalid catalog")

// Validate performs structural checks on a topic set.
// Returns a combined error describing all problems found, or nil if valid.
func Validate(topics []Topic) error {
	var errs []string

	idSet := make(map[string]bool, len(topics))
	for _, t := range topics {
		if t.ID == "" {
			errs = append(errs, fmt.Sprintf("topic %q has no ID", t.Title))
			continue
		}
		if idSet[t.ID] {
			errs = append(errs, fmt.Sprintf("duplicate topic ID: %q", t.ID))
		}
		idSet[t.ID] = true

		if strings.TrimSpace(t.Title) == "" {
			errs = append(errs, fmt.Sprintf("topic %q has no title", t.ID))
		}
		if strings.TrimSpace(t.Subject) == "" {
			errs = append(errs, fmt.Sprintf("topic %q has no subject", t.ID))
		}
		if t.Level < 0 || t.Level > SchedulableLevel {
			errs = append(errs, fmt.Sprintf("topic %q has invalid level %d", t.ID, t.Level))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w:\n  %s", ErrInvalidCatalog, strings.Join(errs, "\n  "))
	}
	return nil
}
