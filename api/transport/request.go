package transport

import (
	"encoding/json"
	"strings"

	"github.com/fastygo/planner/domain"
)

// Field tracks whether a JSON key was present and whether it was null.
type Field[T any] struct {
	Set   bool
	Null  bool
	Value T
}

func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Set = true
	if string(data) == "null" {
		f.Null = true
		return nil
	}
	return json.Unmarshal(data, &f.Value)
}

type TaskCreateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"due_date"`
	DueTime     string `json:"due_time"`
	Priority    string `json:"priority"`
	CategoryID  string `json:"category_id"`
}

// ToTask parses the request into a draft task.
func (r TaskCreateRequest) ToTask() (domain.Task, error) {
	dueDate, err := domain.ParseDate(strings.TrimSpace(r.DueDate))
	if err != nil {
		return domain.Task{}, err
	}
	dueTime, err := domain.ParseClock(strings.TrimSpace(r.DueTime))
	if err != nil {
		return domain.Task{}, err
	}
	priority, err := domain.ParsePriority(r.Priority)
	if err != nil {
		return domain.Task{}, err
	}
	return domain.Task{
		Title:       r.Title,
		Description: r.Description,
		DueDate:     dueDate,
		DueTime:     dueTime,
		Priority:    priority,
		CategoryID:  strings.TrimSpace(r.CategoryID),
	}, nil
}

// TaskPatchRequest is a partial update. A key set to null clears the value.
type TaskPatchRequest struct {
	Title       Field[string] `json:"title"`
	Description Field[string] `json:"description"`
	DueDate     Field[string] `json:"due_date"`
	DueTime     Field[string] `json:"due_time"`
	Priority    Field[string] `json:"priority"`
	CategoryID  Field[string] `json:"category_id"`
	Completed   Field[bool]   `json:"completed"`
}

func (r TaskPatchRequest) ToPatch() (domain.TaskPatch, error) {
	var p domain.TaskPatch
	if r.Title.Set {
		title := r.Title.Value
		p.Title = &title
	}
	if r.Description.Set {
		desc := r.Description.Value
		p.Description = &desc
	}
	if r.DueDate.Set {
		d, err := domain.ParseDate(strings.TrimSpace(r.DueDate.Value))
		if err != nil {
			return p, err
		}
		p.DueDate = &d
	}
	if r.DueTime.Set {
		c, err := domain.ParseClock(strings.TrimSpace(r.DueTime.Value))
		if err != nil {
			return p, err
		}
		p.DueTime = &c
	}
	if r.Priority.Set {
		pr, err := domain.ParsePriority(r.Priority.Value)
		if err != nil {
			return p, err
		}
		p.Priority = &pr
	}
	if r.CategoryID.Set {
		id := strings.TrimSpace(r.CategoryID.Value)
		p.CategoryID = &id
	}
	if r.Completed.Set {
		if r.Completed.Null {
			return p, domain.Invalidf("completed cannot be null")
		}
		done := r.Completed.Value
		p.Completed = &done
	}
	return p, nil
}

type CategoryRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

func (r CategoryRequest) ToCategory() domain.Category {
	return domain.Category{Name: r.Name, Color: r.Color, Icon: r.Icon}
}

type PreferenceRequest struct {
	FullName         *string `json:"full_name"`
	Email            *string `json:"email"`
	RemindersEnabled *bool   `json:"reminders_enabled"`
}

type DeviceRequest struct {
	Token string `json:"token"`
}
