package domain

import (
	"path/filepath"
	"sync"
)

// Scope is the per-run index of contexts and shared attributes.
// It does not own the contexts; it only records them for later lookup.
// It is cleared once at the start of every generation.
type Scope struct {
	mu         sync.RWMutex
	attributes map[string]any
	docs       orderedSet[*DocumentContext]
	tasks      orderedSet[*TaskContext]
}

// NewScope creates an empty scope.
func NewScope() *Scope {
	return &Scope{
		attributes: make(map[string]any),
		docs:       newOrderedSet[*DocumentContext](),
		tasks:      newOrderedSet[*TaskContext](),
	}
}

// Clear empties attributes, documents and tasks.
func (s *Scope) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attributes = make(map[string]any)
	s.docs = newOrderedSet[*DocumentContext]()
	s.tasks = newOrderedSet[*TaskContext]()
}

// Set stores an attribute.
func (s *Scope) Set(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attributes[key] = value
}

// Get retrieves an attribute.
func (s *Scope) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.attributes[key]
	return v, ok
}

// Attributes returns a copy of all attributes.
func (s *Scope) Attributes() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]any, len(s.attributes))
	for k, v := range s.attributes {
		out[k] = v
	}
	return out
}

// AddDoc adds doc and its whole subtree.
func (s *Scope) AddDoc(doc *DocumentContext) {
	if doc == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	doc.Walk(func(d *DocumentContext) { s.docs.add(d) })
}

// AddAllDocs adds every document and its subtree.
func (s *Scope) AddAllDocs(docs []*DocumentContext) {
	for _, d := range docs {
		s.AddDoc(d)
	}
}

// RemoveDoc removes doc and its whole subtree.
func (s *Scope) RemoveDoc(doc *DocumentContext) {
	if doc == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	doc.Walk(func(d *DocumentContext) { s.docs.remove(d) })
}

// HasDoc reports whether doc is indexed.
func (s *Scope) HasDoc(doc *DocumentContext) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.docs.has(doc)
}

// Docs returns all indexed documents in insertion order.
func (s *Scope) Docs() []*DocumentContext {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.docs.values()
}

// Roots returns the indexed root documents in insertion order.
func (s *Scope) Roots() []*DocumentContext {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var roots []*DocumentContext
	for _, d := range s.docs.values() {
		if d.IsRoot() {
			roots = append(roots, d)
		}
	}
	return roots
}

// FindRoot returns the first root document whose output file base name
// equals name.
func (s *Scope) FindRoot(name string) (*DocumentContext, bool) {
	for _, d := range s.Roots() {
		f, _ := d.File()
		if filepath.Base(f.Path()) == name {
			return d, true
		}
	}
	return nil, false
}

// AddTask indexes a task context.
func (s *Scope) AddTask(task *TaskContext) {
	if task == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks.add(task)
}

// AddAllTasks indexes every task context.
func (s *Scope) AddAllTasks(tasks []*TaskContext) {
	for _, t := range tasks {
		s.AddTask(t)
	}
}

// RemoveTask removes a task context.
func (s *Scope) RemoveTask(task *TaskContext) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks.remove(task)
}

// Tasks returns all indexed tasks in insertion order.
func (s *Scope) Tasks() []*TaskContext {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tasks.values()
}

// orderedSet is a set that iterates in insertion order.
type orderedSet[T comparable] struct {
	index map[T]int
	items []T
}

func newOrderedSet[T comparable]() orderedSet[T] {
	return orderedSet[T]{index: make(map[T]int)}
}

func (o *orderedSet[T]) add(v T) {
	if _, ok := o.index[v]; ok {
		return
	}
	o.index[v] = len(o.items)
	o.items = append(o.items, v)
}

func (o *orderedSet[T]) remove(v T) {
	i, ok := o.index[v]
	if !ok {
		return
	}
	o.items = append(o.items[:i], o.items[i+1:]...)
	delete(o.index, v)
	for j := i; j < len(o.items); j++ {
		o.index[o.items[j]] = j
	}
}

func (o *orderedSet[T]) has(v T) bool {
	_, ok := o.index[v]
	return ok
}

func (o *orderedSet[T]) values() []T {
	out := make([]T, len(o.items))
	copy(out, o.items)
	return out
}
