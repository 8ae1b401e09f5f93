// Package analytics derives summary statistics and advisory insights from an
// owner's task collection.
package analytics

import (
	"time"

	"github.com/fastygo/planner/domain"
	"github.com/fastygo/planner/internal/tasklist"
)

// PriorityCounts is the pending-task histogram per priority.
type PriorityCounts struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
	Unset  int `json:"unset"`
}

// CategoryStat is the completion breakdown of one category.
type CategoryStat struct {
	CategoryID     string  `json:"category_id,omitempty"`
	Name           string  `json:"name"`
	Total          int     `json:"total"`
	Completed      int     `json:"completed"`
	CompletionRate float64 `json:"completion_rate"`
}

// DayStat counts tasks created and completed on one weekday.
type DayStat struct {
	Day            string  `json:"day"`
	Total          int     `json:"total"`
	Completed      int     `json:"completed"`
	CompletionRate float64 `json:"completion_rate"`
}

// BucketCounts mirrors the list view buckets.
type BucketCounts struct {
	Overdue  int `json:"overdue"`
	Today    int `json:"today"`
	Upcoming int `json:"upcoming"`
	NoDate   int `json:"no_date"`
}

// Summary holds every aggregate. Rates are fractions in [0, 1].
type Summary struct {
	Total                int            `json:"total"`
	Completed            int            `json:"completed"`
	Pending              int            `json:"pending"`
	CompletedOnTime      int            `json:"completed_on_time"`
	CompletedLate        int            `json:"completed_late"`
	CompletionRate       float64        `json:"completion_rate"`
	OnTimeRate           float64        `json:"on_time_rate"`
	PriorityDistribution PriorityCounts `json:"priority_distribution"`
	OverdueCount         int            `json:"overdue_count"`
	Buckets              BucketCounts   `json:"buckets"`
	Categories           []CategoryStat `json:"categories"`
	Weekly               [7]DayStat     `json:"weekly"`
	Trend                Trend          `json:"trend"`
}

// Trend compares the completion rate of tasks created in the last seven days
// with the seven days before.
type Trend string

const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
	TrendFlat Trend = "flat"
)

// trendBand is the rate change, in percentage points, still reported as flat.
const trendBand = 5.0

// Compute aggregates tasks. Categories resolve names; tasks whose category is
// unset or unknown fall under Uncategorized, which is listed last.
func Compute(tasks []domain.Task, categories []domain.Category, now time.Time) Summary {
	var s Summary
	for d := time.Sunday; d <= time.Saturday; d++ {
		s.Weekly[d].Day = d.String()
	}

	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}
	byCategory := make(map[string]*CategoryStat)
	var thisWeek, lastWeek cohort

	for _, task := range tasks {
		s.Total++
		if task.Completed {
			s.Completed++
			if task.CompletedOnTime != nil && *task.CompletedOnTime {
				s.CompletedOnTime++
			}
			s.Weekly[task.UpdatedAt.In(now.Location()).Weekday()].Completed++
		} else {
			s.Pending++
			countPriority(&s.PriorityDistribution, task.Priority)
		}
		if !task.CreatedAt.IsZero() {
			s.Weekly[task.CreatedAt.In(now.Location()).Weekday()].Total++
			switch age := now.Sub(task.CreatedAt); {
			case age < 0:
			case age < week:
				thisWeek.add(task)
			case age < 2*week:
				lastWeek.add(task)
			}
		}

		switch tasklist.Classify(task, now) {
		case tasklist.BucketOverdue:
			s.Buckets.Overdue++
		case tasklist.BucketToday:
			s.Buckets.Today++
		case tasklist.BucketUpcoming:
			s.Buckets.Upcoming++
		case tasklist.BucketNoDate:
			s.Buckets.NoDate++
		}

		key := task.CategoryID
		if _, known := names[key]; !known {
			key = ""
		}
		stat, ok := byCategory[key]
		if !ok {
			stat = &CategoryStat{CategoryID: key, Name: names[key]}
			if key == "" {
				stat.Name = domain.UncategorizedName
			}
			byCategory[key] = stat
		}
		stat.Total++
		if task.Completed {
			stat.Completed++
		}
	}

	s.CompletedLate = s.Completed - s.CompletedOnTime
	s.CompletionRate = ratio(s.Completed, s.Total)
	s.OnTimeRate = ratio(s.CompletedOnTime, s.Completed)
	s.OverdueCount = s.Buckets.Overdue
	s.Trend = compareWeeks(thisWeek, lastWeek)
	for i := range s.Weekly {
		s.Weekly[i].CompletionRate = ratio(s.Weekly[i].Completed, s.Weekly[i].Total)
	}

	s.Categories = make([]CategoryStat, 0, len(byCategory))
	for _, c := range categories {
		if stat, ok := byCategory[c.ID]; ok && c.ID != "" {
			stat.CompletionRate = ratio(stat.Completed, stat.Total)
			s.Categories = append(s.Categories, *stat)
		}
	}
	if stat, ok := byCategory[""]; ok {
		stat.CompletionRate = ratio(stat.Completed, stat.Total)
		s.Categories = append(s.Categories, *stat)
	}
	return s
}

const week = 7 * 24 * time.Hour

type cohort struct{ total, completed int }

func (c *cohort) add(t domain.Task) {
	c.total++
	if t.Completed {
		c.completed++
	}
}

func compareWeeks(current, previous cohort) Trend {
	if current.total == 0 || previous.total == 0 {
		return TrendFlat
	}
	diff := 100 * (ratio(current.completed, current.total) - ratio(previous.completed, previous.total))
	switch {
	case diff >= trendBand:
		return TrendUp
	case diff <= -trendBand:
		return TrendDown
	}
	return TrendFlat
}

func countPriority(c *PriorityCounts, p domain.Priority) {
	switch p {
	case domain.PriorityHigh:
		c.High++
	case domain.PriorityMedium:
		c.Medium++
	case domain.PriorityLow:
		c.Low++
	default:
		c.Unset++
	}
}

func ratio(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return float64(n) / float64(d)
}
