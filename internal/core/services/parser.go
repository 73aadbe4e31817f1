package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/brander/internal/core/domain"
)

// ParseFunc turns one cloned, non-empty entry into zero or more contexts.
type ParseFunc[C any] func(ctx context.Context, data domain.Data, index int) ([]C, error)

// ParsedEvent is delivered once for every entry a parser consumes.
type ParsedEvent[C any] struct {
	Contexts []C
	Data     domain.Data
	Index    int
}

// ParserOption configures a ContextParser.
type ParserOption[C any] func(*ContextParser[C])

// WithParsedHook registers a hook called after every parsed entry.
func WithParsedHook[C any](hook func(ParsedEvent[C])) ParserOption[C] {
	return func(p *ContextParser[C]) {
		p.onParsed = append(p.onParsed, hook)
	}
}

// WithResetHook registers a hook called on Reset.
func WithResetHook[C any](hook func()) ParserOption[C] {
	return func(p *ContextParser[C]) {
		p.onReset = append(p.onReset, hook)
	}
}

// ContextParser turns an ordered list of configuration entries into contexts,
// one entry at a time.
type ContextParser[C any] struct {
	entries []any
	cursor  int
	parse   ParseFunc[C]

	onParsed []func(ParsedEvent[C])
	onReset  []func()
}

// NewContextParser creates a parser over entries.
func NewContextParser[C any](entries []any, parse ParseFunc[C], opts ...ParserOption[C]) *ContextParser[C] {
	p := &ContextParser[C]{
		entries: entries,
		parse:   parse,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Len returns the number of entries.
func (p *ContextParser[C]) Len() int {
	return len(p.entries)
}

// ParseNext parses the entry at the cursor. ok is false once every entry
// has been consumed. Empty entries (nil, false, "", {}) produce an empty
// list with ok true.
func (p *ContextParser[C]) ParseNext(ctx context.Context) (contexts []C, ok bool, err error) {
	if p.cursor >= len(p.entries) {
		return nil, false, nil
	}
	index := p.cursor
	raw := p.entries[index]
	p.cursor++

	clone := domain.CloneValue(raw)
	var data domain.Data
	if domain.IsEmptyValue(clone) {
		contexts = []C{}
	} else {
		var isMap bool
		data, isMap = domain.AsData(clone)
		if !isMap {
			return nil, true, fmt.Errorf("%w: entry %d must be a table, got %T", domain.ErrConfig, index, raw)
		}
		contexts, err = p.parse(ctx, data, index)
		if err != nil {
			return nil, true, err
		}
		if contexts == nil {
			contexts = []C{}
		}
	}

	event := ParsedEvent[C]{Contexts: contexts, Data: data, Index: index}
	for _, hook := range p.onParsed {
		hook(event)
	}
	return contexts, true, nil
}

// ParseRemaining parses every entry left, returning the contexts in order.
func (p *ContextParser[C]) ParseRemaining(ctx context.Context) ([]C, error) {
	result := make([]C, 0, len(p.entries)-p.cursor)
	for {
		contexts, ok, err := p.ParseNext(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			return result, nil
		}
		result = append(result, contexts...)
	}
}

// Reset rewinds the parser so the entries can be parsed again.
func (p *ContextParser[C]) Reset() {
	p.cursor = 0
	for _, hook := range p.onReset {
		hook()
	}
}
