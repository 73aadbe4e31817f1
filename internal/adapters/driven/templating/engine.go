// Package templating implements driven.Templater with text/template.
package templating

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
	"text/template"
	"text/template/parse"

	"github.com/custodia-labs/brander/internal/core/domain"
	"github.com/custodia-labs/brander/internal/core/ports/driven"
)

// Ensure Engine implements the interface.
var _ driven.Templater = (*Engine)(nil)

// Engine renders Go text templates. Parsed templates are cached by source.
type Engine struct {
	mu    sync.Mutex
	cache map[string]*compiled
}

// compiled is a parsed template plus the top-level field chains it prints.
type compiled struct {
	tmpl   *template.Template
	fields [][]string
}

// New creates a template engine.
func New() *Engine {
	return &Engine{cache: make(map[string]*compiled)}
}

// Render evaluates tmpl against vars. Missing keys render as empty values.
// Fields read inside range or with blocks are relative to a different dot
// and are left as they are.
func (e *Engine) Render(tmpl string, vars map[string]any) (string, error) {
	if !strings.Contains(tmpl, "{{") {
		return tmpl, nil
	}
	c, err := e.parse(tmpl)
	if err != nil {
		return "", err
	}
	data := make(map[string]any, len(vars)+len(c.fields))
	for k, v := range vars {
		data[k] = v
	}
	for _, chain := range c.fields {
		fill(data, chain)
	}

	var b strings.Builder
	if err := c.tmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}
	return b.String(), nil
}

func (e *Engine) parse(tmpl string) (*compiled, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if c, ok := e.cache[tmpl]; ok {
		return c, nil
	}
	t, err := template.New("brander").
		Option("missingkey=zero").
		Funcs(funcs).
		Parse(tmpl)
	if err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}
	c := &compiled{tmpl: t, fields: printedFields(t.Tree.Root)}
	e.cache[tmpl] = c
	return c, nil
}

// printedFields returns the field chains of the root dot used by actions
// and conditions. Chains ranged over are excluded because an empty string
// cannot be ranged over.
func printedFields(root *parse.ListNode) [][]string {
	var used, ranged [][]string
	var walk func(n parse.Node)
	walk = func(n parse.Node) {
		switch n := n.(type) {
		case *parse.ListNode:
			if n == nil {
				return
			}
			for _, child := range n.Nodes {
				walk(child)
			}
		case *parse.ActionNode:
			used = append(used, pipeFields(n.Pipe)...)
		case *parse.IfNode:
			used = append(used, pipeFields(n.Pipe)...)
			walk(n.List)
			walk(n.ElseList)
		case *parse.RangeNode:
			ranged = append(ranged, pipeFields(n.Pipe)...)
			walk(n.ElseList)
		case *parse.WithNode:
			walk(n.ElseList)
		}
	}
	walk(root)

	skip := make(map[string]bool, len(ranged))
	for _, chain := range ranged {
		skip[strings.Join(chain, ".")] = true
	}
	out := used[:0]
	for _, chain := range used {
		if !skip[strings.Join(chain, ".")] {
			out = append(out, chain)
		}
	}
	// Longer chains first, so {{if .a}} does not turn .a into a string
	// before {{.a.b}} needs it as a map.
	sort.SliceStable(out, func(i, j int) bool { return len(out[i]) > len(out[j]) })
	return out
}

func pipeFields(pipe *parse.PipeNode) [][]string {
	if pipe == nil {
		return nil
	}
	var out [][]string
	for _, cmd := range pipe.Cmds {
		for _, arg := range cmd.Args {
			switch a := arg.(type) {
			case *parse.FieldNode:
				out = append(out, a.Ident)
			case *parse.VariableNode:
				if len(a.Ident) > 1 && a.Ident[0] == "$" {
					out = append(out, a.Ident[1:])
				}
			case *parse.PipeNode:
				out = append(out, pipeFields(a)...)
			}
		}
	}
	return out
}

// fill sets a missing chain to the empty string. A missing or empty
// intermediate map becomes a nil map of matching depth, which is still
// false in conditions but yields "" for any key. Non-empty maps along the
// chain are copied before being changed so the caller's values stay
// untouched.
func fill(m map[string]any, chain []string) {
	key := chain[0]
	v, ok := m[key]
	if len(chain) == 1 {
		if !ok || v == nil {
			m[key] = ""
		}
		return
	}

	var child map[string]any
	switch x := v.(type) {
	case nil:
	case map[string]any:
		child = x
	case domain.Data:
		child = x
	default:
		return
	}
	if len(child) == 0 {
		m[key] = emptyMap(len(chain) - 1)
		return
	}
	child = copyMap(child)
	m[key] = child
	fill(child, chain[1:])
}

// emptyMap returns a nil map nested depth levels deep with string leaves.
func emptyMap(depth int) any {
	str := reflect.TypeOf("")
	t := str
	for i := 0; i < depth; i++ {
		t = reflect.MapOf(str, t)
	}
	return reflect.Zero(t).Interface()
}

func copyMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	return out
}

var funcs = template.FuncMap{
	"lower":   strings.ToLower,
	"upper":   strings.ToUpper,
	"trim":    strings.TrimSpace,
	"replace": func(from, to, s string) string { return strings.ReplaceAll(s, from, to) },
	"default": func(def, v any) any {
		if v == nil {
			return def
		}
		if s, ok := v.(string); ok && s == "" {
			return def
		}
		return v
	},
}
