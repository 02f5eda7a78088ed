// Package command is the named command table every host dispatches through.
package command

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aki/mknote/internal/core/logger"
)

// ErrUnknownCommand is returned by Run for unregistered names.
var ErrUnknownCommand = errors.New("unknown command")

// Args are the arguments of one invocation.
type Args map[string]any

// String returns the string argument key, or "" when absent.
func (a Args) String(key string) string {
	s, _ := a[key].(string)
	return s
}

// Strings returns the string slice argument key.
func (a Args) Strings(key string) []string {
	switch v := a[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// Bool returns the bool argument key.
func (a Args) Bool(key string) bool {
	b, _ := a[key].(bool)
	return b
}

// Handler executes a command.
type Handler func(ctx context.Context, args Args) error

// Registry maps command names to handlers.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
	log      logger.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(log logger.Logger) *Registry {
	return &Registry{
		handlers: make(map[string]Handler),
		log:      logger.Component(log, "command"),
	}
}

// Register adds a handler. Names must be unique.
func (r *Registry) Register(name string, h Handler) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.handlers[name]; exists {
		return fmt.Errorf("command %q already registered", name)
	}
	r.handlers[name] = h
	return nil
}

// MustRegister is Register for static tables; it panics on duplicates.
func (r *Registry) MustRegister(name string, h Handler) {
	if err := r.Register(name, h); err != nil {
		panic(err)
	}
}

// Run executes the named command.
func (r *Registry) Run(ctx context.Context, name string, args Args) error {
	_, err := r.RunResult(ctx, name, args)
	return err
}

// RunResult executes the named command and returns the value its handler
// recorded with SetResult, if any.
func (r *Registry) RunResult(ctx context.Context, name string, args Args) (any, error) {
	r.mu.RLock()
	h, ok := r.handlers[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}

	log := r.log.With("command", name, "op", uuid.NewString())
	holder := &resultHolder{}
	ctx = logger.WithContext(ctx, log)
	ctx = context.WithValue(ctx, resultKey{}, holder)
	start := time.Now()
	log.Debug("running command")

	err := h(ctx, args)
	if err != nil {
		log.Debug("command failed", "error", err, "duration", time.Since(start))
		return holder.value, err
	}
	log.Debug("command finished", "duration", time.Since(start))
	return holder.value, nil
}

type resultKey struct{}

type resultHolder struct {
	value any
}

// SetResult records what the running command produced. It is a no-op outside
// of Registry.RunResult.
func SetResult(ctx context.Context, v any) {
	if h, ok := ctx.Value(resultKey{}).(*resultHolder); ok {
		h.value = v
	}
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Reporter shows that a long-running command is in progress.
type Reporter interface {
	Start(title string)
	Stop()
}

// WithProgress brackets h with the reporter. A nil reporter returns h.
func WithProgress(reporter Reporter, title string, h Handler) Handler {
	if reporter == nil {
		return h
	}
	return func(ctx context.Context, args Args) error {
		reporter.Start(title)
		defer reporter.Stop()
		return h(ctx, args)
	}
}
