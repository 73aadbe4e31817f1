package domain

import (
	"fmt"
	"strings"
)

// TaskType is the closed set of asset task categories.
type TaskType string

// Task types.
const (
	TaskClean    TaskType = "clean"
	TaskConvert  TaskType = "convert"
	TaskOptimize TaskType = "optimize"
	TaskPackage  TaskType = "package"
)

// TaskTypes returns every task type in declaration order.
func TaskTypes() []TaskType {
	return []TaskType{TaskClean, TaskConvert, TaskOptimize, TaskPackage}
}

// ParseTaskType resolves a configured type string.
func ParseTaskType(s string) (TaskType, error) {
	t := TaskType(strings.ToLower(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", fmt.Errorf("%w: unknown task type %q", ErrConfig, s)
	}
	return t, nil
}

// IsValid reports whether t is a known task type.
func (t TaskType) IsValid() bool {
	switch t {
	case TaskClean, TaskConvert, TaskOptimize, TaskPackage:
		return true
	default:
		return false
	}
}

// RequiresOutput reports whether tasks of this type need an output file.
func (t TaskType) RequiresOutput() bool {
	return t == TaskConvert || t == TaskPackage
}

// String returns the configuration spelling of the type.
func (t TaskType) String() string {
	return string(t)
}

// TaskContext is one unit of asset work. Unlike documents it is flat.
type TaskContext struct {
	Context

	inputs []File
	output *File
}

// NewTaskContext creates a task context. output may be nil.
func NewTaskContext(typ TaskType, data Data, inputs []File, output *File, cfg *Config) *TaskContext {
	t := &TaskContext{
		Context: newContext(typ.String(), data, cfg),
		inputs:  make([]File, len(inputs)),
	}
	copy(t.inputs, inputs)
	if output != nil {
		out := *output
		t.output = &out
	}
	return t
}

// TaskType returns the typed task category.
func (t *TaskContext) TaskType() TaskType {
	return TaskType(t.typ)
}

// Inputs returns the glob-expanded input files in sorted order.
func (t *TaskContext) Inputs() []File {
	out := make([]File, len(t.inputs))
	copy(out, t.inputs)
	return out
}

// Output returns the output file when one was configured.
func (t *TaskContext) Output() (File, bool) {
	if t.output == nil {
		return File{}, false
	}
	return *t.output, true
}
