package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// touchStage makes a stage that writes its declared outputs.
func touchStage(name string, needs, makes []string) Stage {
	return Stage{
		Name:  name,
		Needs: needs,
		Makes: makes,
		Run: func(ctx context.Context) error {
			for _, path := range makes {
				if err := os.WriteFile(path, []byte(name), 0644); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func TestRunOrdersByArtifacts(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.json")
	b := filepath.Join(dir, "b.json")

	var mu sync.Mutex
	var order []string
	record := func(name string) {
		mu.Lock()
		order = append(order, name)
		mu.Unlock()
	}

	stages := []Stage{
		{
			Name: "consumer", Needs: []string{a, b},
			Makes: []string{filepath.Join(dir, "c.json")},
			Run: func(ctx context.Context) error {
				record("consumer")
				return os.WriteFile(filepath.Join(dir, "c.json"), nil, 0644)
			},
		},
		{
			Name: "producer-a", Makes: []string{a},
			Run: func(ctx context.Context) error {
				record("producer-a")
				return os.WriteFile(a, nil, 0644)
			},
		},
		{
			Name: "producer-b", Makes: []string{b},
			Run: func(ctx context.Context) error {
				record("producer-b")
				return os.WriteFile(b, nil, 0644)
			},
		},
	}

	results := NewRunner(stages, time.Minute).Run(context.Background())
	require.Len(t, results, 3)
	assert.True(t, AllOK(results))

	// The consumer must run after both producers.
	assert.Equal(t, "consumer", order[len(order)-1])
}

func TestRunSkipsOnMissingDependency(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "never-made.json")

	stages := []Stage{
		touchStage("ok", nil, []string{filepath.Join(dir, "out.json")}),
		{
			Name: "needs-missing", Needs: []string{missing},
			Run: func(ctx context.Context) error { return nil },
		},
	}

	results := NewRunner(stages, time.Minute).Run(context.Background())
	require.Len(t, results, 2)

	assert.Equal(t, StatusOK, results[0].Status)
	assert.Equal(t, StatusSkipped, results[1].Status)

	var depErr *MissingDependencyError
	require.ErrorAs(t, results[1].Err, &depErr)
	assert.Equal(t, missing, depErr.Path)
}

func TestRunContinuesPastFailure(t *testing.T) {
	dir := t.TempDir()

	stages := []Stage{
		{
			Name: "boom",
			Run:  func(ctx context.Context) error { return assert.AnError },
		},
		touchStage("independent", nil, []string{filepath.Join(dir, "x.json")}),
	}

	results := NewRunner(stages, time.Minute).Run(context.Background())
	require.Len(t, results, 2)
	assert.Equal(t, StatusFailed, results[0].Status)
	assert.Equal(t, StatusOK, results[1].Status)
	assert.False(t, AllOK(results))

	var stageErr *StageError
	require.ErrorAs(t, results[0].Err, &stageErr)
	assert.Equal(t, "boom", stageErr.Stage)
}

func TestRunTimeout(t *testing.T) {
	stages := []Stage{
		{
			Name: "slow",
			Run: func(ctx context.Context) error {
				select {
				case <-time.After(5 * time.Second):
					return nil
				case <-ctx.Done():
					return ctx.Err()
				}
			},
		},
	}

	results := NewRunner(stages, 20*time.Millisecond).Run(context.Background())
	require.Len(t, results, 1)
	assert.Equal(t, StatusTimeout, results[0].Status)

	var timeoutErr *StageTimeoutError
	require.ErrorAs(t, results[0].Err, &timeoutErr)
}

func TestRunVerifiesDeclaredOutputs(t *testing.T) {
	dir := t.TempDir()
	stages := []Stage{
		{
			Name:  "liar",
			Makes: []string{filepath.Join(dir, "promised.json")},
			Run:   func(ctx context.Context) error { return nil },
		},
	}

	results := NewRunner(stages, time.Minute).Run(context.Background())
	require.Len(t, results, 1)
	assert.Equal(t, StatusFailed, results[0].Status)
	assert.ErrorContains(t, results[0].Err, "was not produced")
}

func TestRunDependencyCycle(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.json")
	b := filepath.Join(dir, "b.json")

	stages := []Stage{
		{Name: "one", Needs: []string{b}, Makes: []string{a}, Run: func(ctx context.Context) error { return nil }},
		{Name: "two", Needs: []string{a}, Makes: []string{b}, Run: func(ctx context.Context) error { return nil }},
	}

	results := NewRunner(stages, time.Minute).Run(context.Background())
	require.Len(t, results, 2)
	for _, r := range results {
		assert.Equal(t, StatusFailed, r.Status)
		assert.ErrorContains(t, r.Err, "cycle")
	}
}

func TestSelect(t *testing.T) {
	stages := []Stage{{Name: "a"}, {Name: "b"}, {Name: "c"}}

	got, err := Select(stages, nil)
	require.NoError(t, err)
	assert.Len(t, got, 3)

	got, err = Select(stages, []string{"c", "a"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	// Original declaration order is preserved.
	assert.Equal(t, "a", got[0].Name)
	assert.Equal(t, "c", got[1].Name)

	_, err = Select(stages, []string{"nope"})
	assert.ErrorContains(t, err, `unknown stage "nope"`)
}

func TestWriteSummary(t *testing.T) {
	var sb strings.Builder
	WriteSummary(&sb, []Result{
		{Stage: "a", Status: StatusOK, Duration: time.Second},
		{Stage: "b", Status: StatusFailed, Err: assert.AnError},
	})
	out := sb.String()
	assert.Contains(t, out, "Succeeded:   1")
	assert.Contains(t, out, "Failed:      1")
	assert.Contains(t, out, "a")
	assert.Contains(t, out, assert.AnError.Error())
}
