package batch

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/jsonobj/internal/envelope"
	"github.com/mcncl/jsonobj/internal/errors"
	"github.com/mcncl/jsonobj/internal/formatter"
	"github.com/mcncl/jsonobj/internal/logger"
	"github.com/mcncl/jsonobj/internal/models"
)

func newRunner(t *testing.T, workers int, opts ...Option) *Runner {
	t.Helper()
	r, err := NewRunner(workers, formatter.NewFormatter(formatter.StyleCompact), opts...)
	require.NoError(t, err)
	t.Cleanup(r.Release)
	return r
}

func TestNewRunner_Defaults(t *testing.T) {
	r, err := NewRunner(0, nil)
	require.NoError(t, err)
	defer r.Release()

	assert.Equal(t, DefaultWorkers, r.Workers())

	results := r.Run(context.Background(), []Job{{Name: "a", Text: `{"a":1}`}})
	require.Len(t, results, 1)
	assert.Equal(t, "{\n    \"a\": 1\n}", results[0].Output)
}

func TestRun_PreservesOrder(t *testing.T) {
	r := newRunner(t, 3)

	jobs := make([]Job, 50)
	for i := range jobs {
		jobs[i] = Job{
			Name: fmt.Sprintf("doc-%d", i),
			Text: fmt.Sprintf(`{ "id" : %d, "tags" : [ "x", { "n" : %d } ] }`, i, i*2),
		}
	}

	results := r.Run(context.Background(), jobs)
	require.Len(t, results, len(jobs))
	for i, res := range results {
		require.NoError(t, res.Err)
		assert.Equal(t, jobs[i].Name, res.Name)
		assert.Equal(t, fmt.Sprintf(`{"id":%d,"tags":["x",{"n":%d}]}`, i, i*2), res.Output)
	}
	assert.Equal(t, 0, Failed(results))
}

func TestRun_LogsFailures(t *testing.T) {
	var buf bytes.Buffer
	r := newRunner(t, 2, WithLogger(logger.New(&buf, false)))

	results := r.Run(context.Background(), []Job{
		{Name: "good", Text: `[1,2]`},
		{Name: "bad", Text: `{"a" 1}`},
	})

	assert.Equal(t, "[1,2]", results[0].Output)
	require.Error(t, results[1].Err)
	assert.True(t, errors.IsSyntax(results[1].Err))
	assert.Equal(t, 1, Failed(results))

	out := buf.String()
	assert.Contains(t, out, "level=warn")
	assert.Contains(t, out, "name=bad")
}

func TestRunFiles(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.json")
	require.NoError(t, os.WriteFile(good, []byte("{\n  \"ok\": true\n}\n"), 0o644))
	missing := filepath.Join(dir, "missing.json")

	r := newRunner(t, 2)
	results := r.RunFiles(context.Background(), []string{good, missing})

	require.Len(t, results, 2)
	assert.Equal(t, `{"ok":true}`, results[0].Output)
	assert.True(t, stderrors.Is(results[1].Err, errors.ErrFileNotFound))
}

func TestRun_Cancelled(t *testing.T) {
	r := newRunner(t, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := r.Run(ctx, []Job{{Name: "a", Text: "{}"}, {Name: "b", Text: "{}"}})
	for _, res := range results {
		assert.ErrorIs(t, res.Err, context.Canceled)
	}
}

func TestRun_CustomRender(t *testing.T) {
	r := newRunner(t, 2, WithRender(envelope.ToBase64))

	results := r.Run(context.Background(), []Job{{Name: "empty", Text: "{}"}})
	require.NoError(t, results[0].Err)
	assert.Equal(t, "e30=", results[0].Output)
}

func TestRun_RenderPanicIsFailure(t *testing.T) {
	var buf bytes.Buffer
	r := newRunner(t, 2,
		WithLogger(logger.New(&buf, false)),
		WithRender(func(c models.Container) string {
			if c.Len() == 0 {
				panic("boom")
			}
			return formatter.Compact(c)
		}),
	)

	results := r.Run(context.Background(), []Job{
		{Name: "a", Text: "{}"},
		{Name: "b", Text: `{"b":1}`},
	})
	require.Len(t, results, 2)

	require.Error(t, results[0].Err)
	assert.Equal(t, "a", results[0].Name)
	assert.Empty(t, results[0].Output)
	assert.Contains(t, results[0].Err.Error(), "formatting a panicked: boom")

	require.NoError(t, results[1].Err)
	assert.Equal(t, `{"b":1}`, results[1].Output)

	assert.Equal(t, 1, Failed(results))
	assert.Contains(t, buf.String(), `msg="worker panicked"`)
}

func TestRun_AfterRelease(t *testing.T) {
	r, err := NewRunner(1, nil)
	require.NoError(t, err)
	r.Release()

	results := r.Run(context.Background(), []Job{{Name: "late", Text: "{}"}})
	require.Error(t, results[0].Err)
	assert.Contains(t, results[0].Err.Error(), "failed to schedule late")
}
