package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/taskforge/internal/cli/formatter"
	"github.com/alexanderramin/taskforge/internal/domain"
	"github.com/alexanderramin/taskforge/internal/importer"
)

func newImportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import CSV files; each row commits on its own",
	}

	cmd.AddCommand(
		newImportFileCmd("projects", "Import projects (name,description,team_uuid,start_date,end_date,status)",
			func(ctx context.Context, r io.Reader) (*domain.ImportResult, error) {
				return app.Import.ImportProjects(ctx, r, app.userID)
			}),
		newImportFileCmd("tasks", "Import tasks (title,description,project_uuid,assignee_email,status,priority,due_date)",
			func(ctx context.Context, r io.Reader) (*domain.ImportResult, error) {
				return app.Import.ImportTasks(ctx, r, app.userID)
			}),
		newImportFileCmd("members", "Import team members (team_uuid,email,role)",
			func(ctx context.Context, r io.Reader) (*domain.ImportResult, error) {
				return app.Import.ImportTeamMembers(ctx, r)
			}),
		newImportColumnsCmd(),
	)

	return cmd
}

func newImportFileCmd(kind, short string, run func(context.Context, io.Reader) (*domain.ImportResult, error)) *cobra.Command {
	return &cobra.Command{
		Use:   kind + " FILE",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			result, err := run(cmd.Context(), f)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatImportResult(kind, result))
			return nil
		},
	}
}

func newImportColumnsCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "columns projects|tasks|members",
		Short:     "Print the CSV header line for an import kind",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"projects", "tasks", "members"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var cols []string
			switch args[0] {
			case "projects":
				cols = importer.ProjectColumns()
			case "tasks":
				cols = importer.TaskColumns()
			case "members":
				cols = importer.MemberColumns()
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(cols, ","))
			return nil
		},
	}
}
