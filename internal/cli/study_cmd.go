package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/alexanderramin/studyloop/internal/cli/formatter"
	"github.com/alexanderramin/studyloop/internal/domain"
	"github.com/alexanderramin/studyloop/internal/service"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newStudyCmd(app *App) *cobra.Command {
	var req domain.StudyRequest

	cmd := &cobra.Command{
		Use:   "study",
		Short: "Start a study session",
		Long: "Start a study session. Missing --topic, --level or --goal values are\n" +
			"asked for interactively. Each answer is judged for effort before the\n" +
			"session moves on to the next step.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStudy(cmd, app, req)
		},
	}
	bindStudyFlags(cmd.Flags(), &req)

	return cmd
}

func bindStudyFlags(fs *pflag.FlagSet, req *domain.StudyRequest) {
	fs.StringVarP(&req.Topic, "topic", "t", "", "What to study")
	fs.StringVarP(&req.Level, "level", "l", "", "Current level, e.g. beginner")
	fs.StringVarP(&req.Goal, "goal", "g", "", "What you want to be able to do")
}

func runStudy(cmd *cobra.Command, app *App, req domain.StudyRequest) error {
	ctx := cmd.Context()
	in, out, errOut := streams(cmd)
	lines := newPromptReader(in)

	req, err := collectStudyRequest(ctx, app, in, lines, out, req)
	if err != nil {
		return err
	}

	sess, err := app.Study.Start(ctx, req)
	if err != nil {
		return fmt.Errorf("starting session: %w", err)
	}

	fmt.Fprintln(out, formatter.FormatPlan(sess.Request, sess.Plan))

	answers := 0
	showStep := true
	for !sess.Completed {
		if showStep {
			if err := printInstruction(cmd, app, sess); err != nil {
				return err
			}
			showStep = false
		}

		fmt.Fprint(out, formatter.StyleHeader.Render("> "))
		answer, err := lines.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(out)
				fmt.Fprintln(out, formatter.Dim("Input closed. Your answers so far are saved."))
				return nil
			}
			return fmt.Errorf("reading answer: %w", err)
		}

		res, err := app.Study.Submit(ctx, sess, answer)
		if err != nil {
			return err
		}
		answers++
		if res.PersistErr != nil {
			fmt.Fprintf(errOut, "%s %v\n", formatter.StyleYellow.Render("warning:"), res.PersistErr)
		}

		fmt.Fprintln(out, formatter.FormatVerdict(res.Verdict))
		if res.Verdict.Action == domain.ActionRetry {
			if note := formatter.FormatAttempt(res.Attempts); note != "" {
				fmt.Fprintln(out, note)
			}
			continue
		}
		showStep = true
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, formatter.FormatCompletion(sess.Request.Topic, answers))
	return nil
}

func printInstruction(cmd *cobra.Command, app *App, sess *service.StudySession) error {
	_, out, errOut := streams(cmd)
	step, ok := sess.CurrentStep()
	if !ok {
		return service.ErrSessionCompleted
	}

	var stop func()
	if app.ShowSpinner {
		stop = formatter.StartSpinner(errOut, "Preparing the next step...")
	}
	text, err := app.Study.Explain(cmd.Context(), sess)
	if stop != nil {
		stop()
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, formatter.FormatInstruction(sess.Current, sess.Plan.Len(), step, text))
	return nil
}
