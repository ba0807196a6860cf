// Package assignment normalises and compares occurrence selections.
package assignment

import (
	"slices"
	"strings"

	"github.com/vietanh2810/occurrence-registration-api/internal/domain"
)

// Selection is a raw occurrence choice as received from a caller.
type Selection struct {
	All bool
	IDs []string
}

// Empty reports whether sel names no session at all: no All flag and no
// non-blank id.
func (sel Selection) Empty() bool {
	if sel.All {
		return false
	}
	for _, id := range sel.IDs {
		if strings.TrimSpace(id) != "" {
			return false
		}
	}

	return true
}

// Normalize trims, deduplicates and sorts the selected ids. An explicit All,
// or a selection that ends up empty, becomes the "all" assignment: rows
// created before per-occurrence selection existed carry no ids at all.
func Normalize(sel Selection) domain.Assignment {
	if sel.All {
		return domain.AllOccurrences()
	}

	ids := make([]string, 0, len(sel.IDs))
	for _, id := range sel.IDs {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return domain.AllOccurrences()
	}

	slices.Sort(ids)

	return domain.Assignment{
		Mode:          domain.AssignmentCustom,
		OccurrenceIDs: slices.Compact(ids),
	}
}

// Canonical re-normalises a stored assignment.
func Canonical(a domain.Assignment) domain.Assignment {
	return Normalize(Selection{
		All: a.Mode != domain.AssignmentCustom,
		IDs: a.OccurrenceIDs,
	})
}

// Equal compares the mode first, then the sorted id sets element-wise.
func Equal(a, b domain.Assignment) bool {
	a, b = Canonical(a), Canonical(b)
	if a.Mode != b.Mode {
		return false
	}

	return slices.Equal(a.OccurrenceIDs, b.OccurrenceIDs)
}

// Contains reports whether a explicitly holds id. An "all" assignment holds
// every occurrence.
func Contains(a domain.Assignment, id string) bool {
	a = Canonical(a)
	if a.Mode != domain.AssignmentCustom {
		return true
	}
	_, found := slices.BinarySearch(a.OccurrenceIDs, id)

	return found
}

// OccurrenceCount is the number of occurrences billed for a. Unrestricted
// registrations are billed once.
func OccurrenceCount(a domain.Assignment) int {
	if a.Mode != domain.AssignmentCustom {
		return 1
	}

	return len(a.OccurrenceIDs)
}
