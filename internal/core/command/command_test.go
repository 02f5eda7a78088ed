package command

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aki/mknote/internal/core/logger"
)

func TestRegistry_RegisterAndRun(t *testing.T) {
	r := NewRegistry(logger.Nop())

	var got Args
	require.NoError(t, r.Register("notes.newItem", func(ctx context.Context, args Args) error {
		got = args
		assert.NotNil(t, logger.FromContext(ctx))
		return nil
	}))

	require.NoError(t, r.Run(context.Background(), "notes.newItem", Args{"name": "a.md"}))
	assert.Equal(t, "a.md", got.String("name"))

	err := r.Register("notes.newItem", func(context.Context, Args) error { return nil })
	assert.Error(t, err)
	assert.Panics(t, func() {
		r.MustRegister("notes.newItem", func(context.Context, Args) error { return nil })
	})
}

func TestRegistry_RunUnknown(t *testing.T) {
	r := NewRegistry(logger.Nop())
	err := r.Run(context.Background(), "nope", nil)
	assert.ErrorIs(t, err, ErrUnknownCommand)
}

func TestRegistry_RunPropagatesError(t *testing.T) {
	r := NewRegistry(logger.Nop())
	boom := errors.New("boom")
	r.MustRegister("x", func(context.Context, Args) error { return boom })
	assert.ErrorIs(t, r.Run(context.Background(), "x", nil), boom)
}

func TestRegistry_Names(t *testing.T) {
	r := NewRegistry(logger.Nop())
	for _, n := range []string{"fav.add", "notes.moveUp", "notes.delete"} {
		r.MustRegister(n, func(context.Context, Args) error { return nil })
	}
	assert.Equal(t, []string{"fav.add", "notes.delete", "notes.moveUp"}, r.Names())
}

type recordingReporter struct {
	calls []string
}

func (r *recordingReporter) Start(title string) { r.calls = append(r.calls, "start:"+title) }
func (r *recordingReporter) Stop()              { r.calls = append(r.calls, "stop") }

func TestWithProgress(t *testing.T) {
	rep := &recordingReporter{}
	boom := errors.New("boom")
	h := WithProgress(rep, "Syncing", func(context.Context, Args) error {
		rep.calls = append(rep.calls, "run")
		return boom
	})

	assert.ErrorIs(t, h(context.Background(), nil), boom)
	assert.Equal(t, []string{"start:Syncing", "run", "stop"}, rep.calls)

	plain := func(context.Context, Args) error { return nil }
	assert.NoError(t, WithProgress(nil, "x", plain)(context.Background(), nil))
}

func TestArgs(t *testing.T) {
	a := Args{"paths": []any{"a", 1, "b"}, "yes": true, "list": []string{"x"}}
	assert.Equal(t, []string{"a", "b"}, a.Strings("paths"))
	assert.Equal(t, []string{"x"}, a.Strings("list"))
	assert.Nil(t, a.Strings("missing"))
	assert.True(t, a.Bool("yes"))
	assert.Empty(t, a.String("missing"))
}

func TestRegistry_RunResult(t *testing.T) {
	r := NewRegistry(logger.Nop())
	r.MustRegister("count", func(ctx context.Context, args Args) error {
		SetResult(ctx, len(args.Strings("paths")))
		return nil
	})
	r.MustRegister("silent", func(context.Context, Args) error { return nil })

	v, err := r.RunResult(context.Background(), "count", Args{"paths": []string{"a", "b"}})
	require.NoError(t, err)
	assert.Equal(t, 2, v)

	v, err = r.RunResult(context.Background(), "silent", nil)
	require.NoError(t, err)
	assert.Nil(t, v)

	// Outside a run there is nowhere to record to
	SetResult(context.Background(), 1)
}
