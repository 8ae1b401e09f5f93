package tasklist

import (
	"time"

	"github.com/fastygo/planner/domain"
)

// Completion narrows a list by completion state.
type Completion string

const (
	CompletionAll       Completion = "all"
	CompletionPending   Completion = "pending"
	CompletionCompleted Completion = "completed"
)

// ParseCompletion defaults unknown values to all.
func ParseCompletion(s string) Completion {
	switch c := Completion(s); c {
	case CompletionPending, CompletionCompleted:
		return c
	default:
		return CompletionAll
	}
}

// Range is a named look-back window on created_at.
type Range string

const (
	RangeToday Range = "today"
	RangeWeek  Range = "week"
	RangeMonth Range = "month"
	RangeAll   Range = "all"
)

// ParseRange defaults unknown values to all.
func ParseRange(s string) Range {
	switch r := Range(s); r {
	case RangeToday, RangeWeek, RangeMonth:
		return r
	default:
		return RangeAll
	}
}

// Span is how far back the range reaches. RangeAll reports false.
func (r Range) Span() (time.Duration, bool) {
	switch r {
	case RangeToday:
		return 24 * time.Hour, true
	case RangeWeek:
		return 7 * 24 * time.Hour, true
	case RangeMonth:
		return 30 * 24 * time.Hour, true
	default:
		return 0, false
	}
}

type windowKind int

const (
	windowNone windowKind = iota
	windowDay
	windowRange
)

// Window is either a single calendar day matched against due dates or a named
// range matched against creation time. The zero Window filters nothing.
type Window struct {
	kind windowKind
	day  domain.Date
	rng  Range
}

// OnDay keeps tasks due on day.
func OnDay(day domain.Date) Window {
	if !day.Valid {
		return Window{}
	}
	return Window{kind: windowDay, day: day}
}

// Within keeps tasks created inside the named range.
func Within(r Range) Window {
	return Window{kind: windowRange, rng: r}
}

// Options combines the independent predicates of a filter pass.
type Options struct {
	Completion Completion
	CategoryID string
	Window     Window
}

// Filter keeps the tasks matching every predicate, preserving order.
func Filter(tasks []domain.Task, opts Options, now time.Time) []domain.Task {
	out := make([]domain.Task, 0, len(tasks))
	for _, task := range tasks {
		if matches(task, opts, now) {
			out = append(out, task)
		}
	}
	return out
}

func matches(task domain.Task, opts Options, now time.Time) bool {
	switch opts.Completion {
	case CompletionPending:
		if task.Completed {
			return false
		}
	case CompletionCompleted:
		if !task.Completed {
			return false
		}
	}
	if opts.CategoryID != "" && task.CategoryID != opts.CategoryID {
		return false
	}
	return opts.Window.matches(task, now)
}

func (w Window) matches(task domain.Task, now time.Time) bool {
	switch w.kind {
	case windowDay:
		return task.DueDate.Equal(w.day)
	case windowRange:
		span, ok := w.rng.Span()
		if !ok {
			return true
		}
		return !task.CreatedAt.Before(now.Add(-span))
	default:
		return true
	}
}
