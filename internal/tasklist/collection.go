package tasklist

import (
	"sync"
	"time"

	"github.com/fastygo/planner/domain"
)

// Collection is an owner's task list mirrored from the store. It is only
// changed through its transition methods, each called after the store
// confirmed the change.
type Collection struct {
	mu       sync.RWMutex
	tasks    []domain.Task
	lastSync time.Time
}

// NewCollection returns an empty, never-synced collection.
func NewCollection() *Collection {
	return &Collection{}
}

// ReplaceAll swaps in a freshly fetched list.
func (c *Collection) ReplaceAll(tasks []domain.Task, at time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tasks = append([]domain.Task(nil), tasks...)
	c.lastSync = at
}

// Add appends a created task.
func (c *Collection) Add(task domain.Task) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tasks = append(c.tasks, task)
}

// Put replaces the task with the same id. Unknown ids are ignored, the same
// way an edit result for a task no longer in view is dropped.
func (c *Collection) Put(task domain.Task) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.tasks {
		if c.tasks[i].ID == task.ID {
			c.tasks[i] = task
			return true
		}
	}
	return false
}

// Remove drops the task with id.
func (c *Collection) Remove(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.tasks {
		if c.tasks[i].ID == id {
			c.tasks = append(c.tasks[:i], c.tasks[i+1:]...)
			return true
		}
	}
	return false
}

// Get returns a copy of the task with id.
func (c *Collection) Get(id string) (domain.Task, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, task := range c.tasks {
		if task.ID == id {
			return task, true
		}
	}
	return domain.Task{}, false
}

// Snapshot returns a copy of the current list.
func (c *Collection) Snapshot() []domain.Task {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]domain.Task(nil), c.tasks...)
}

// LastSync is the time of the last full fetch; zero if never fetched.
func (c *Collection) LastSync() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastSync
}

// Registry keeps one collection per owner.
type Registry struct {
	mu          sync.Mutex
	collections map[string]*Collection
}

func NewRegistry() *Registry {
	return &Registry{collections: make(map[string]*Collection)}
}

// For returns the owner's collection, creating it on first use.
func (r *Registry) For(ownerID string) *Collection {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.collections[ownerID]
	if !ok {
		c = NewCollection()
		r.collections[ownerID] = c
	}
	return c
}
