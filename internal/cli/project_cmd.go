package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/taskforge/internal/cli/formatter"
	"github.com/alexanderramin/taskforge/internal/domain"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Browse generated and imported projects",
	}

	cmd.AddCommand(
		newProjectListCmd(app),
		newProjectTasksCmd(app),
	)

	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	var teamUUID string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a team's projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			team, _, err := app.Teams.Members(cmd.Context(), teamUUID)
			if err != nil {
				return err
			}
			projects, err := app.Projects.ListByTeam(cmd.Context(), teamUUID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProjectList(team, projects))
			return nil
		},
	}
	cmd.Flags().StringVar(&teamUUID, "team", "", "team UUID")
	_ = cmd.MarkFlagRequired("team")
	return cmd
}

func newProjectTasksCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tasks UUID",
		Short: "Show a project's tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			project, tasks, err := app.Projects.Tasks(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTaskList(project, tasks))
			return nil
		},
	}
}

func newTeamCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "team",
		Short: "Manage teams",
	}

	cmd.AddCommand(
		newTeamCreateCmd(app),
		newTeamListCmd(app),
		newTeamMembersCmd(app),
		newTeamAddMemberCmd(app),
	)

	return cmd
}

func newTeamCreateCmd(app *App) *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a team",
		RunE: func(cmd *cobra.Command, args []string) error {
			team, err := app.Teams.Create(cmd.Context(), name)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Created team #%d '%s' %s", team.ID, team.Name, team.UUID)))
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "team name")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newTeamListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List teams",
		RunE: func(cmd *cobra.Command, args []string) error {
			teams, err := app.Teams.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(teams) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No teams found.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTeamList(teams))
			return nil
		},
	}
}

func newTeamMembersCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "members UUID",
		Short: "List a team's members",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			team, members, err := app.Teams.Members(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			users, err := app.Users.List(cmd.Context())
			if err != nil {
				return err
			}
			byID := make(map[int64]*domain.User, len(users))
			for _, u := range users {
				byID[u.ID] = u
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatMembers(team, members, byID))
			return nil
		},
	}
}

func newTeamAddMemberCmd(app *App) *cobra.Command {
	var email, role string
	cmd := &cobra.Command{
		Use:   "add-member UUID",
		Short: "Add an existing user to a team",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Teams.AddMember(cmd.Context(), args[0], email, domain.MemberRole(role)); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Added %s to team", email)))
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "user email")
	cmd.Flags().StringVar(&role, "role", string(domain.RoleMember), "member or lead")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newUserCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage users",
	}

	var name, email string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := app.Users.Create(cmd.Context(), name, email)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Created user #%d %s <%s>", u.ID, u.Name, u.Email)))
			return nil
		},
	}
	create.Flags().StringVar(&name, "name", "", "display name")
	create.Flags().StringVar(&email, "email", "", "email address")
	_ = create.MarkFlagRequired("name")
	_ = create.MarkFlagRequired("email")

	list := &cobra.Command{
		Use:   "list",
		Short: "List users",
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := app.Users.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(users) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No users found.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatUserList(users))
			return nil
		},
	}

	cmd.AddCommand(create, list)
	return cmd
}
