package tasklist

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/fastygo/planner/domain"
)

// SortKey selects the order of a task list.
type SortKey string

const (
	SortByCreated    SortKey = "date"
	SortByDueDate    SortKey = "dueDate"
	SortAlphabetical SortKey = "alphabetical"
	SortByPriority   SortKey = "priority"
)

// ParseSortKey maps a query value to a key, defaulting to creation time.
func ParseSortKey(s string) SortKey {
	switch key := SortKey(s); key {
	case SortByDueDate, SortAlphabetical, SortByPriority:
		return key
	default:
		return SortByCreated
	}
}

// Sort returns a sorted copy of tasks. Equal keys keep their input order.
func Sort(tasks []domain.Task, key SortKey) []domain.Task {
	out := make([]domain.Task, len(tasks))
	copy(out, tasks)

	var less func(a, b domain.Task) bool
	switch key {
	case SortByPriority:
		less = lessPriority
	case SortByDueDate:
		less = lessDueDate
	case SortAlphabetical:
		col := collate.New(language.Und, collate.IgnoreCase)
		less = func(a, b domain.Task) bool {
			return col.CompareString(a.Title, b.Title) < 0
		}
	default:
		less = func(a, b domain.Task) bool {
			return a.CreatedAt.After(b.CreatedAt)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return less(out[i], out[j])
	})
	return out
}

func lessPriority(a, b domain.Task) bool {
	if ra, rb := a.Priority.Rank(), b.Priority.Rank(); ra != rb {
		return ra > rb
	}
	switch {
	case a.DueDate.Valid && b.DueDate.Valid:
		return a.DueDate.Before(b.DueDate)
	case a.DueDate.Valid:
		return true
	default:
		return false
	}
}

// lessDueDate puts undated tasks last.
func lessDueDate(a, b domain.Task) bool {
	switch {
	case !a.DueDate.Valid:
		return false
	case !b.DueDate.Valid:
		return true
	default:
		return a.DueDate.Before(b.DueDate)
	}
}
