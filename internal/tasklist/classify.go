// Package tasklist holds the pure engines that turn an owner's task collection
// into what a user sees: time-window buckets, filters and sort orders.
package tasklist

import (
	"time"

	"github.com/fastygo/planner/domain"
)

// Bucket is the due-status group of an incomplete task.
type Bucket string

const (
	BucketOverdue  Bucket = "overdue"
	BucketToday    Bucket = "today"
	BucketUpcoming Bucket = "upcoming"
	BucketNoDate   Bucket = "no_date"
	BucketExcluded Bucket = "excluded"
)

// Classify places a task in exactly one bucket relative to now.
// The overdue test runs before the same-day test, so a task due earlier today
// whose time has passed is overdue, not today.
func Classify(task domain.Task, now time.Time) Bucket {
	if task.Completed {
		return BucketExcluded
	}
	deadline, ok := task.Deadline(now.Location())
	if !ok {
		return BucketNoDate
	}
	if deadline.Before(now) {
		return BucketOverdue
	}
	if task.DueDate.Equal(domain.DateOf(now)) {
		return BucketToday
	}
	return BucketUpcoming
}

// IsOverdue reports whether an incomplete task's deadline is already behind now.
func IsOverdue(task domain.Task, now time.Time) bool {
	return Classify(task, now) == BucketOverdue
}

// Groups holds incomplete tasks split by bucket, each in input order.
type Groups struct {
	Overdue  []domain.Task `json:"overdue"`
	Today    []domain.Task `json:"today"`
	Upcoming []domain.Task `json:"upcoming"`
	NoDate   []domain.Task `json:"no_date"`
}

// Group classifies every task once. Completed tasks are left out.
func Group(tasks []domain.Task, now time.Time) Groups {
	groups := Groups{
		Overdue:  []domain.Task{},
		Today:    []domain.Task{},
		Upcoming: []domain.Task{},
		NoDate:   []domain.Task{},
	}
	for _, task := range tasks {
		switch Classify(task, now) {
		case BucketOverdue:
			groups.Overdue = append(groups.Overdue, task)
		case BucketToday:
			groups.Today = append(groups.Today, task)
		case BucketUpcoming:
			groups.Upcoming = append(groups.Upcoming, task)
		case BucketNoDate:
			groups.NoDate = append(groups.NoDate, task)
		}
	}
	return groups
}

// Counts returns the size of each bucket.
func (g Groups) Counts() map[Bucket]int {
	return map[Bucket]int{
		BucketOverdue:  len(g.Overdue),
		BucketToday:    len(g.Today),
		BucketUpcoming: len(g.Upcoming),
		BucketNoDate:   len(g.NoDate),
	}
}
