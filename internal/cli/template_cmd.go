package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/taskforge/internal/cli/formatter"
	"github.com/alexanderramin/taskforge/internal/domain"
	tmpl "github.com/alexanderramin/taskforge/internal/template"
)

func newTemplateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Manage templates and generate projects from them",
	}

	cmd.AddCommand(
		newTemplateCreateCmd(app),
		newTemplateListCmd(app),
		newTemplateShowCmd(app),
		newTemplateUpdateCmd(app),
		newTemplateDeleteCmd(app),
		newTemplateExportCmd(app),
		newTemplateGenerateCmd(app),
	)

	return cmd
}

func newTemplateCreateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "create FILE",
		Short: "Create a template from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, err := tmpl.LoadSchema(args[0])
			if err != nil {
				return err
			}
			t, err := app.Templates.Create(cmd.Context(), schema, app.userID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf(
				"Created template #%d '%s' (%d project(s), %d task(s))",
				t.ID, t.Name, len(t.Projects), t.TaskCount())))
			return nil
		},
	}
}

func newTemplateListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			templates, err := app.Templates.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(templates) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No templates found.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTemplateList(templates))
			return nil
		},
	}
}

func newTemplateShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a template's definitions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("template", args[0])
			if err != nil {
				return err
			}
			t, err := app.Templates.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTemplateShow(t))
			return nil
		},
	}
}

func newTemplateUpdateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "update ID FILE",
		Short: "Replace a template's header and definitions",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("template", args[0])
			if err != nil {
				return err
			}
			schema, err := tmpl.LoadSchema(args[1])
			if err != nil {
				return err
			}
			t, err := app.Templates.Update(cmd.Context(), id, schema)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf(
				"Updated template #%d '%s' (%d project(s), %d task(s))",
				t.ID, t.Name, len(t.Projects), t.TaskCount())))
			return nil
		},
	}
}

func newTemplateDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a template (generated projects are kept)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("template", args[0])
			if err != nil {
				return err
			}
			if err := app.Templates.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Deleted template #%d", id)))
			return nil
		},
	}
}

func newTemplateExportCmd(app *App) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export ID",
		Short: "Write a template as JSON accepted by create and update",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("template", args[0])
			if err != nil {
				return err
			}
			t, err := app.Templates.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(tmpl.SchemaFromTemplate(t), "", "  ")
			if err != nil {
				return fmt.Errorf("encoding template: %w", err)
			}
			data = append(data, '\n')
			if out == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", out, err)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "write to FILE instead of stdout")
	return cmd
}

func newTemplateGenerateCmd(app *App) *cobra.Command {
	var (
		teamID     int64
		start      string
		vars       []string
		paramsFile string
		dryRun     bool
	)
	cmd := &cobra.Command{
		Use:   "generate ID",
		Short: "Create every project and task of a template in one transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("template", args[0])
			if err != nil {
				return err
			}

			params := domain.GenerationParams{}
			if paramsFile != "" {
				if params, err = loadParams(paramsFile); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("team") {
				params.TeamID = teamID
			}
			if cmd.Flags().Changed("start") {
				params.StartDate = start
			}
			extra, err := parseVars(vars)
			if err != nil {
				return err
			}
			if params.Variables == nil {
				params.Variables = map[string]string{}
			}
			for k, v := range extra {
				params.Variables[k] = v
			}

			if app.interactive() {
				if err := promptMissing(cmd, app, id, &params); err != nil {
					return err
				}
			}

			if dryRun {
				plan, err := app.Generation.Preview(cmd.Context(), id, params)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatPlan(plan))
				return nil
			}

			result, err := app.Generation.Generate(cmd.Context(), id, params, app.userID)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatGenerationResult(result))
			return nil
		},
	}
	cmd.Flags().Int64Var(&teamID, "team", 0, "team id that owns the generated projects")
	cmd.Flags().StringVar(&start, "start", "", "master start date (YYYY-MM-DD)")
	cmd.Flags().StringArrayVar(&vars, "var", nil, "placeholder value as key=value (repeatable)")
	cmd.Flags().StringVar(&paramsFile, "params", "", "JSON file with team_id, start_date and variables")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show the plan without writing anything")
	return cmd
}

func loadParams(path string) (domain.GenerationParams, error) {
	var params domain.GenerationParams
	data, err := os.ReadFile(path)
	if err != nil {
		return params, err
	}
	var file struct {
		TeamID    int64  `json:"team_id"`
		StartDate string `json:"start_date"`
		Variables any    `json:"variables"`
	}
	if err := json.Unmarshal(data, &file); err != nil {
		return params, fmt.Errorf("parsing %s: %w", path, err)
	}
	vars, err := tmpl.Variables(file.Variables)
	if err != nil {
		return params, fmt.Errorf("parsing %s: %w", path, err)
	}
	params.TeamID = file.TeamID
	params.StartDate = file.StartDate
	params.Variables = vars
	return params, nil
}

func parseVars(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		k, v, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(k) == "" {
			return nil, fmt.Errorf("invalid --var %q: expected key=value", pair)
		}
		out[strings.TrimSpace(k)] = v
	}
	return out, nil
}

// promptMissing asks for placeholder values the caller did not supply.
func promptMissing(cmd *cobra.Command, app *App, id int64, params *domain.GenerationParams) error {
	t, err := app.Templates.Get(cmd.Context(), id)
	if err != nil {
		return err
	}
	missing := tmpl.MissingVariables(t, params.Variables)
	if len(missing) == 0 {
		return nil
	}
	prompt := app.PromptVariables
	if prompt == nil {
		prompt = promptVariables
	}
	answers, err := prompt(missing)
	if err != nil {
		return err
	}
	for k, v := range answers {
		params.Variables[k] = v
	}
	return nil
}
