package tasklist

import (
	"time"

	"github.com/fastygo/planner/domain"
)

var refNow = time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

func day(y int, m time.Month, d int) domain.Date {
	return domain.NewDate(y, m, d)
}

func ids(tasks []domain.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func sameIDs(got []domain.Task, want ...string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i].ID != want[i] {
			return false
		}
	}
	return true
}
