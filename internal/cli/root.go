package cli

import (
	"io"

	"github.com/alexanderramin/studyloop/internal/domain"
	"github.com/alexanderramin/studyloop/internal/service"
	"github.com/spf13/cobra"
)

// App holds the services and terminal hooks used by CLI commands.
type App struct {
	Study service.StudyService

	// IsInteractive reports whether stdin is a terminal. Nil means no.
	IsInteractive func() bool

	// ShowSpinner animates on stderr while explanations are produced.
	ShowSpinner bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "studyloop" command. Run without a
// subcommand it starts a study session.
func NewRootCmd(app *App) *cobra.Command {
	var req domain.StudyRequest

	root := &cobra.Command{
		Use:           "studyloop",
		Short:         "Guided study sessions that push back on low-effort answers",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStudy(cmd, app, req)
		},
	}
	bindStudyFlags(root.Flags(), &req)

	root.AddCommand(
		newStudyCmd(app),
		newHistoryCmd(app),
	)

	return root
}

// streams returns the command's input and output, defaulting to the process's.
func streams(cmd *cobra.Command) (io.Reader, io.Writer, io.Writer) {
	return cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr()
}
