package task

// Task is a node of the prerequisite graph. Prerequisites hold registry keys,
// never copies of other tasks.
type Task struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Duration      float64  `json:"duration"` // hours
	Prerequisites []string `json:"prerequisites"`
}

// IsPrimitive reports whether the task has no prerequisites.
func (t *Task) IsPrimitive() bool {
	return len(t.Prerequisites) == 0
}

// HasPrerequisite reports whether name is a direct prerequisite of t.
func (t *Task) HasPrerequisite(name string) bool {
	for _, p := range t.Prerequisites {
		if p == name {
			return true
		}
	}
	return false
}

// Property names accepted by Registry.Change.
const (
	PropName          = "name"
	PropDescription   = "description"
	PropDuration      = "duration"
	PropPrerequisites = "prerequisites"
	PropSubtasks      = "subtasks"
)
