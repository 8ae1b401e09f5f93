package analytics

import "fmt"

const (
	highPriorityLimit = 5
	completionFloor   = 0.5
	onTimeFloor       = 0.7
)

type rule struct {
	applies func(Summary) bool
	message func(Summary) string
}

var rules = []rule{
	{
		applies: func(s Summary) bool { return s.PriorityDistribution.Unset > 0 },
		message: func(s Summary) string {
			return fmt.Sprintf("%d tasks need priority assignment", s.PriorityDistribution.Unset)
		},
	},
	{
		applies: func(s Summary) bool { return s.OverdueCount > 0 },
		message: func(s Summary) string {
			return fmt.Sprintf("%d tasks are overdue and need attention", s.OverdueCount)
		},
	},
	{
		applies: func(s Summary) bool { return s.PriorityDistribution.High > highPriorityLimit },
		message: func(Summary) string { return "Consider redistributing high priority tasks" },
	},
	{
		applies: func(s Summary) bool { return s.Total > 0 && s.CompletionRate < completionFloor },
		message: func(Summary) string {
			return "Task completion rate is low, consider focusing on completing existing tasks"
		},
	},
	{
		applies: func(s Summary) bool { return s.Completed > 0 && s.OnTimeRate < onTimeFloor },
		message: func(Summary) string { return "On-time completion rate could be improved" },
	},
}

// Insights evaluates the advisory rules in a fixed order.
func Insights(s Summary) []string {
	out := make([]string, 0, len(rules))
	for _, r := range rules {
		if r.applies(s) {
			out = append(out, r.message(s))
		}
	}
	return out
}
