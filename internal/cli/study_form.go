package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alexanderramin/studyloop/internal/cli/formatter"
	"github.com/alexanderramin/studyloop/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// collectStudyRequest fills the fields the flags left blank, with a form on
// a terminal and plain line prompts otherwise. The form needs the raw
// terminal reader; prompts share the answer line reader.
func collectStudyRequest(ctx context.Context, app *App, in io.Reader, lines *promptReader, out io.Writer, req domain.StudyRequest) (domain.StudyRequest, error) {
	if req.Validate() == nil {
		return req, nil
	}

	if app.interactive() {
		form := studyRequestForm(&req, in, out)
		if err := form.RunWithContext(ctx); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return req, fmt.Errorf("study request cancelled")
			}
			return req, fmt.Errorf("study request form: %w", err)
		}
		return req, nil
	}

	prompts := []struct {
		label string
		value *string
	}{
		{"Topic", &req.Topic},
		{"Level", &req.Level},
		{"Goal", &req.Goal},
	}
	for _, p := range prompts {
		if strings.TrimSpace(*p.value) != "" {
			continue
		}
		fmt.Fprintf(out, "%s: ", p.label)
		text, err := lines.ReadLine()
		if err != nil && !errors.Is(err, io.EOF) {
			return req, fmt.Errorf("reading %s: %w", strings.ToLower(p.label), err)
		}
		*p.value = text
	}
	return req, nil
}

// studyRequestForm asks only for the fields that are still blank.
func studyRequestForm(req *domain.StudyRequest, in io.Reader, out io.Writer) *huh.Form {
	var fields []huh.Field
	if strings.TrimSpace(req.Topic) == "" {
		fields = append(fields, requiredInput("Topic", "fractions", &req.Topic))
	}
	if strings.TrimSpace(req.Level) == "" {
		fields = append(fields, requiredInput("Level", "beginner", &req.Level))
	}
	if strings.TrimSpace(req.Goal) == "" {
		fields = append(fields, requiredInput("Goal", "add fractions with different denominators", &req.Goal))
	}

	return huh.NewForm(huh.NewGroup(fields...)).
		WithTheme(studyHuhTheme()).
		WithKeyMap(studyKeyMap()).
		WithProgramOptions(tea.WithInput(in), tea.WithOutput(out))
}

func requiredInput(title, placeholder string, value *string) *huh.Input {
	return huh.NewInput().
		Title(title).
		Placeholder(placeholder).
		Value(value).
		Validate(validateRequired)
}

func validateRequired(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("cannot be empty")
	}
	return nil
}

// studyKeyMap lets esc cancel the form alongside ctrl+c.
func studyKeyMap() *huh.KeyMap {
	km := huh.NewDefaultKeyMap()
	km.Quit = key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "cancel"))
	return km
}

func studyHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}
