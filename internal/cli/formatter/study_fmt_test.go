package formatter

import (
	"testing"
	"time"

	"github.com/alexanderramin/studyloop/internal/domain"
	"github.com/alexanderramin/studyloop/internal/service"
	"github.com/alexanderramin/studyloop/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func TestFormatVerdict_Retry(t *testing.T) {
	out := FormatVerdict(domain.Verdict{
		Action:   domain.ActionRetry,
		Reason:   domain.ReasonLowEffortEarly,
		NextStep: domain.IntPtr(0),
		Friction: "Say more.",
	})
	assert.Contains(t, out, "[decision]")
	assert.Contains(t, out, "RETRY")
	assert.Contains(t, out, string(domain.ReasonLowEffortEarly))
	assert.Contains(t, out, "[friction]")
	assert.Contains(t, out, "Say more.")
}

func TestFormatVerdict_AdvanceHasNoFriction(t *testing.T) {
	out := FormatVerdict(domain.Verdict{
		Action:   domain.ActionAdvance,
		Reason:   domain.ReasonAnswerProvided,
		NextStep: domain.IntPtr(1),
	})
	assert.Contains(t, out, "ADVANCE")
	assert.NotContains(t, out, "[friction]")
}

func TestFormatPlan_NumbersSteps(t *testing.T) {
	plan := domain.Plan{{Title: "Warm up"}, {Title: "Practice"}}
	out := FormatPlan(domain.StudyRequest{Topic: "Verbs", Level: "a2", Goal: "past"}, plan)
	assert.Contains(t, out, "STUDY PLAN")
	assert.Contains(t, out, "1.")
	assert.Contains(t, out, "Warm up")
	assert.Contains(t, out, "2.")
	assert.Contains(t, out, "Practice")
}

func TestFormatInstruction(t *testing.T) {
	out := FormatInstruction(1, 5, domain.StepDescriptor{Title: "Core concept"}, "Explain it.")
	assert.Contains(t, out, "STEP 2/5")
	assert.Contains(t, out, "Explain it.")
}

func TestFormatAttempt(t *testing.T) {
	assert.Empty(t, FormatAttempt(1))
	assert.Contains(t, FormatAttempt(3), "attempt 3")
}

func TestFormatSessionList(t *testing.T) {
	assert.Contains(t, FormatSessionList(nil), "No study sessions yet.")

	out := FormatSessionList([]service.SessionSummary{
		{ID: "0123456789abcdef", Topic: "Fractions", Level: "beginner", Goal: "add", Answers: 3, HighestStep: 1},
		{ID: "fedcba", Topic: "Verbs", Level: "a2", Goal: "past", HighestStep: -1},
	})
	assert.Contains(t, out, "01234567")
	assert.NotContains(t, out, "89abcdef")
	assert.Contains(t, out, "Fractions")
	assert.Contains(t, out, "step 2")
	assert.Contains(t, out, "--")
}

func TestFormatSessionDetail(t *testing.T) {
	h := testutil.NewTestHistory(
		testutil.WithRequest("Fractions", "beginner", "add"),
		testutil.WithAnswers(0, "idk", testutil.Substantive),
	)
	out := FormatSessionDetail(h)
	assert.Contains(t, out, "Fractions")
	assert.Contains(t, out, "idk")
	assert.Contains(t, out, "ANSWER")

	empty := testutil.NewTestHistory()
	assert.Contains(t, FormatSessionDetail(empty), "No answers recorded.")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abcd...", Truncate("abcdefghij", 7))
	assert.Equal(t, "a b", Truncate("a \n b", 10))
	assert.Equal(t, "ééé...", Truncate("ééééééé", 6))
}

func TestHumanTimestampFrom(t *testing.T) {
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"zero", time.Time{}, "--"},
		{"seconds", now.Add(-10 * time.Second), "Just now"},
		{"minutes", now.Add(-5 * time.Minute), "5m ago"},
		{"hours", now.Add(-3 * time.Hour), "3h ago"},
		{"yesterday", now.Add(-30 * time.Hour), "Yesterday"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, HumanTimestampFrom(tc.t, now))
		})
	}
}

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := RenderTable([]string{"A", "B"}, [][]string{{"long cell", "x"}, {"s"}})
	assert.Contains(t, out, "long cell  x")
	assert.Contains(t, out, "─────────")
	assert.Empty(t, RenderTable(nil, nil))
}
