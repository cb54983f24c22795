package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/taskforge/internal/service"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Templates  service.TemplateService
	Generation service.GenerationService
	Import     service.ImportService
	Projects   service.ProjectService
	Teams      service.TeamService
	Users      service.UserService

	// DefaultUserID backs the --user flag.
	DefaultUserID int64

	// IsInteractive reports whether stdin is a terminal. Nil means never.
	IsInteractive func() bool
	// PromptVariables asks for placeholder values. Nil uses a huh form.
	PromptVariables func(keys []string) (map[string]string, error)

	userID int64
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "taskforge" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "taskforge",
		Short:         "Generate projects and tasks from reusable templates",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().Int64Var(&app.userID, "user", app.DefaultUserID, "acting user id")

	root.AddCommand(
		newTemplateCmd(app),
		newImportCmd(app),
		newProjectCmd(app),
		newTeamCmd(app),
		newUserCmd(app),
	)

	return root
}

func parseID(kind, s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s id %q", kind, s)
	}
	return id, nil
}
