package storage

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/studyloop/internal/domain"
	"github.com/spf13/cast"
)

type snapshot struct {
	Sessions map[string]sessionSnapshot `json:"sessions"`
}

type sessionSnapshot struct {
	SessionID string           `json:"session_id"`
	Topic     string           `json:"topic,omitempty"`
	Level     string           `json:"level,omitempty"`
	Goal      string           `json:"goal,omitempty"`
	StartedAt string           `json:"started_at,omitempty"`
	Records   []recordSnapshot `json:"records"`
}

type recordSnapshot struct {
	StepIndex     int    `json:"step_index"`
	StudentAnswer string `json:"student_answer"`
	CreatedAt     string `json:"created_at"`
}

func encodePortfolio(p *domain.Portfolio) snapshot {
	out := snapshot{Sessions: make(map[string]sessionSnapshot, p.Len())}
	for _, id := range p.IDs() {
		h, err := p.Get(id)
		if err != nil {
			continue
		}
		ss := sessionSnapshot{
			SessionID: h.ID,
			Topic:     h.Topic,
			Level:     h.Level,
			Goal:      h.Goal,
			Records:   make([]recordSnapshot, 0, h.Len()),
		}
		if !h.StartedAt.IsZero() {
			ss.StartedAt = h.StartedAt.UTC().Format(time.RFC3339Nano)
		}
		for _, r := range h.Records() {
			ss.Records = append(ss.Records, recordSnapshot{
				StepIndex:     r.StepIndex,
				StudentAnswer: r.Answer,
				CreatedAt:     r.CreatedAt.UTC().Format(time.RFC3339Nano),
			})
		}
		out.Sessions[id] = ss
	}
	return out
}

// decodePortfolio rebuilds a portfolio from loosely typed JSON. Missing or
// mistyped fields become zero values; unparseable timestamps become now.
func decodePortfolio(top map[string]any, now time.Time) *domain.Portfolio {
	p := domain.NewPortfolio()
	sessions := cast.ToStringMap(top["sessions"])

	keys := make([]string, 0, len(sessions))
	for key := range sessions {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		sdata := cast.ToStringMap(sessions[key])

		// The inner id wins unless an earlier key already claimed it. If the
		// key is taken too, records merge into that history.
		id := cast.ToString(sdata["session_id"])
		if id == "" || has(p, id) {
			id = key
		}
		h, err := p.Get(id)
		if err != nil {
			h = domain.NewSessionHistory(id)
			h.Topic = cast.ToString(sdata["topic"])
			h.Level = cast.ToString(sdata["level"])
			h.Goal = cast.ToString(sdata["goal"])
			if ts, ok := parseTime(sdata["started_at"]); ok {
				h.StartedAt = ts
			}
			p.Add(h)
		}

		for _, rawRecord := range cast.ToSlice(sdata["records"]) {
			rdata := cast.ToStringMap(rawRecord)
			step := toStep(rdata["step_index"])
			createdAt, ok := parseTime(rdata["created_at"])
			if !ok {
				createdAt = now
			}
			h.AppendRecord(domain.AnswerRecord{
				StepIndex: step,
				Answer:    cast.ToString(rdata["student_answer"]),
				CreatedAt: createdAt,
			})
		}
	}

	return p
}

func has(p *domain.Portfolio, id string) bool {
	_, err := p.Get(id)
	return err == nil
}

// toStep reads a step index. Numeric strings are decimal, so "010" is 10.
func toStep(v any) int {
	var n int
	if s, ok := v.(string); ok {
		parsed, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return 0
		}
		n = parsed
	} else {
		n = cast.ToInt(v)
	}
	return max(n, 0)
}

func parseTime(v any) (time.Time, bool) {
	s := cast.ToString(v)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
