package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/studyloop/internal/domain"
	"github.com/alexanderramin/studyloop/internal/service"
)

// FormatPlan lists the plan steps, numbered from 1.
func FormatPlan(req domain.StudyRequest, plan domain.Plan) string {
	var b strings.Builder
	b.WriteString(Header("Study plan"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s  %s %s  %s %s\n\n",
		Dim("topic"), Bold(req.Topic),
		Dim("level"), StyleFg.Render(req.Level),
		Dim("goal"), StyleFg.Render(req.Goal))
	for i, step := range plan {
		fmt.Fprintf(&b, "  %s %s\n", StyleDim.Render(fmt.Sprintf("%d.", i+1)), step.Title)
	}
	return b.String()
}

// FormatInstruction renders the instruction box for the step at index.
func FormatInstruction(index, total int, step domain.StepDescriptor, instruction string) string {
	title := fmt.Sprintf("Step %d/%d  %s", index+1, total, step.Title)
	body := StyleFg.Render(instruction) + "\n\n" +
		Dim("Answer honestly. If you get stuck, say exactly where.")
	return RenderBox(title, body)
}

// FormatAttempt notes how many answers the current step has received.
func FormatAttempt(attempts int) string {
	if attempts <= 1 {
		return ""
	}
	return Dim("attempt " + strconv.Itoa(attempts))
}

// FormatVerdict renders the decision line and, for retries, the friction line.
func FormatVerdict(v domain.Verdict) string {
	line := fmt.Sprintf("%s %s - %s",
		Dim("[decision]"),
		ActionStyle(v.Action).Render(string(v.Action)),
		ReasonStyle(v.Reason).Render(string(v.Reason)))
	if v.Friction != "" {
		line += "\n" + fmt.Sprintf("%s %s", StyleYellow.Render("[friction]"), v.Friction)
	}
	return line
}

// FormatCompletion is the banner printed when the last step is passed.
func FormatCompletion(topic string, answers int) string {
	body := fmt.Sprintf("You finished every step for %s.\n%s",
		Bold(topic), Dim(fmt.Sprintf("%d answers recorded", answers)))
	return RenderBox("End of plan", body)
}

// FormatSessionList renders the history list table.
func FormatSessionList(sessions []service.SessionSummary) string {
	if len(sessions) == 0 {
		return Dim("No study sessions yet.") + "\n"
	}
	headers := []string{"ID", "TOPIC", "LEVEL", "GOAL", "STARTED", "ANSWERS", "REACHED"}
	rows := make([][]string, 0, len(sessions))
	for _, s := range sessions {
		reached := "--"
		if s.HighestStep >= 0 {
			reached = "step " + strconv.Itoa(s.HighestStep+1)
		}
		rows = append(rows, []string{
			TruncID(s.ID),
			Truncate(s.Topic, 24),
			s.Level,
			Truncate(s.Goal, 32),
			HumanTimestamp(s.StartedAt),
			strconv.Itoa(s.Answers),
			reached,
		})
	}
	return RenderTable(headers, rows)
}

// FormatSessionDetail renders every answer of one session in order.
func FormatSessionDetail(h *domain.SessionHistory) string {
	var b strings.Builder
	b.WriteString(Header("Session " + h.ID))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s\n%s %s\n%s %s\n\n",
		Dim("topic"), Bold(h.Topic),
		Dim("level"), h.Level,
		Dim("goal "), h.Goal)

	records := h.Records()
	if len(records) == 0 {
		b.WriteString(Dim("No answers recorded.") + "\n")
		return b.String()
	}

	headers := []string{"#", "STEP", "WHEN", "ANSWER"}
	rows := make([][]string, 0, len(records))
	for i, r := range records {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			strconv.Itoa(r.StepIndex + 1),
			r.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			Truncate(r.Answer, 60),
		})
	}
	b.WriteString(RenderTable(headers, rows))
	return b.String()
}
