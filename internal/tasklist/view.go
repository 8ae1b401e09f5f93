package tasklist

import (
	"time"

	"github.com/fastygo/planner/domain"
)

// Query is what a list screen asks for.
type Query struct {
	Options
	Sort SortKey
}

// View is a filtered, sorted list together with its bucket split.
type View struct {
	Tasks  []domain.Task `json:"tasks"`
	Groups Groups        `json:"groups"`
}

// Build composes filter, sort and classification over one snapshot.
func Build(tasks []domain.Task, q Query, now time.Time) View {
	sorted := Sort(Filter(tasks, q.Options, now), q.Sort)
	return View{
		Tasks:  sorted,
		Groups: Group(sorted, now),
	}
}
