package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/studyloop/internal/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePortfolio() *domain.Portfolio {
	clock := time.Date(2025, 3, 15, 9, 0, 0, 0, time.UTC)
	tick := func() time.Time {
		clock = clock.Add(90 * time.Second)
		return clock
	}

	p := domain.NewPortfolio()

	a := p.GetOrCreate("session-a").WithClock(tick)
	a.Topic, a.Level, a.Goal = "fractions", "beginner", "add fractions"
	a.StartedAt = time.Date(2025, 3, 15, 9, 0, 0, 0, time.UTC)
	a.Append(0, "ok")
	a.Append(0, "I get that fractions are parts of a whole")
	a.Append(1, "  spaced   answer ")

	b := p.GetOrCreate("session-b").WithClock(tick)
	b.Append(0, "não sei por onde começar")

	return p
}

func TestJSONFileStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "data", "portfolio.json")
	store := NewJSONFileStore(path)

	original := samplePortfolio()
	require.NoError(t, store.Save(ctx, original))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)

	assert.Equal(t, original.IDs(), loaded.IDs())
	for _, id := range original.IDs() {
		want, err := original.Get(id)
		require.NoError(t, err)
		got, err := loaded.Get(id)
		require.NoError(t, err)

		if diff := cmp.Diff(want.Records(), got.Records()); diff != "" {
			t.Errorf("records for %s differ (-want +got):\n%s", id, diff)
		}
		assert.Equal(t, want.Topic, got.Topic)
		assert.Equal(t, want.Goal, got.Goal)
		assert.True(t, want.StartedAt.Equal(got.StartedAt))
	}
}

func TestJSONFileStore_SaveOverwrites(t *testing.T) {
	ctx := context.Background()
	store := NewJSONFileStore(filepath.Join(t.TempDir(), "portfolio.json"))

	p := samplePortfolio()
	require.NoError(t, store.Save(ctx, p))

	h, err := p.Get("session-b")
	require.NoError(t, err)
	h.Append(0, "a second, longer answer")
	require.NoError(t, store.Save(ctx, p))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	got, err := loaded.Get("session-b")
	require.NoError(t, err)
	assert.Equal(t, 2, got.Len())
}

func TestJSONFileStore_MissingFileIsEmpty(t *testing.T) {
	store := NewJSONFileStore(filepath.Join(t.TempDir(), "absent.json"))
	p, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, p.Len())
}

func TestJSONFileStore_MalformedIsEmpty(t *testing.T) {
	for name, content := range map[string]string{
		"not json":      "{{{ nope",
		"array at root": `[1, 2, 3]`,
		"string root":   `"sessions"`,
	} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "portfolio.json")
			require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

			p, err := NewJSONFileStore(path).Load(context.Background())
			require.NoError(t, err)
			assert.Equal(t, 0, p.Len())
		})
	}
}

func TestJSONFileStore_ToleratesMissingAndMistypedFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.json")
	content := `{
  "sessions": {
    "from-key": {
      "records": [
        {"step_index": "2", "student_answer": "string step index"},
        {"student_answer": 42, "created_at": "not a time"},
        {"step_index": 1.0, "student_answer": "python time", "created_at": "2025-03-15T09:30:00.123456"},
        {"step_index": -4}
      ]
    },
    "other": {"session_id": "inner-id", "unexpected": true}
  },
  "version": 7
}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	store := NewJSONFileStore(path)
	loadTime := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	store.now = func() time.Time { return loadTime }

	p, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"from-key", "inner-id"}, p.IDs())

	h, err := p.Get("from-key")
	require.NoError(t, err)
	recs := h.Records()
	require.Len(t, recs, 4)

	assert.Equal(t, 2, recs[0].StepIndex)
	assert.Equal(t, loadTime, recs[0].CreatedAt, "missing timestamp is normalized, not dropped")

	assert.Equal(t, 0, recs[1].StepIndex)
	assert.Equal(t, "42", recs[1].Answer)
	assert.Equal(t, loadTime, recs[1].CreatedAt)

	assert.Equal(t, 1, recs[2].StepIndex)
	assert.Equal(t, time.Date(2025, 3, 15, 9, 30, 0, 123456000, time.UTC), recs[2].CreatedAt)

	assert.Equal(t, 0, recs[3].StepIndex)
	assert.Equal(t, "", recs[3].Answer)

	empty, err := p.Get("inner-id")
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Len())
}

func TestJSONFileStore_StringStepIndexIsDecimal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.json")
	content := `{"sessions": {"s": {"records": [
  {"step_index": "010", "student_answer": "a"},
  {"step_index": "08", "student_answer": "b"},
  {"step_index": " 3 ", "student_answer": "c"},
  {"step_index": "0x1F", "student_answer": "d"},
  {"step_index": "-2", "student_answer": "e"}
]}}}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	p, err := NewJSONFileStore(path).Load(context.Background())
	require.NoError(t, err)
	h, err := p.Get("s")
	require.NoError(t, err)

	var steps []int
	for _, r := range h.Records() {
		steps = append(steps, r.StepIndex)
	}
	assert.Equal(t, []int{10, 8, 3, 0, 0}, steps)
}

func TestJSONFileStore_DuplicateInnerIDKeepsBothSessions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.json")
	content := `{"sessions": {
  "k2": {"session_id": "dup", "topic": "second", "records": [{"step_index": 1, "student_answer": "from k2"}]},
  "k1": {"session_id": "dup", "topic": "first", "records": [{"step_index": 0, "student_answer": "from k1"}]}
}}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	for range 5 {
		p, err := NewJSONFileStore(path).Load(context.Background())
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"dup", "k2"}, p.IDs())

		first, err := p.Get("dup")
		require.NoError(t, err)
		assert.Equal(t, "first", first.Topic)
		require.Equal(t, 1, first.Len())
		assert.Equal(t, "from k1", first.Records()[0].Answer)

		second, err := p.Get("k2")
		require.NoError(t, err)
		assert.Equal(t, "second", second.Topic)
		require.Equal(t, 1, second.Len())
		assert.Equal(t, "from k2", second.Records()[0].Answer)
	}
}

func TestJSONFileStore_CollidingKeyMergesRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.json")
	content := `{"sessions": {
  "a": {"session_id": "b", "records": [{"step_index": 0, "student_answer": "from a"}]},
  "b": {"records": [{"step_index": 1, "student_answer": "from b"}]}
}}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	p, err := NewJSONFileStore(path).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, p.IDs())

	h, err := p.Get("b")
	require.NoError(t, err)
	recs := h.Records()
	require.Len(t, recs, 2)
	assert.Equal(t, "from a", recs[0].Answer)
	assert.Equal(t, "from b", recs[1].Answer)
}
