package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/musheet/admin/internal/client"
	"github.com/musheet/admin/internal/format"
	"github.com/musheet/admin/internal/pager"
	"github.com/musheet/admin/internal/theme"
)

type listFlags struct {
	page     int
	pageSize int
	json     bool
}

func (f *listFlags) bind(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.page, "page", 0, "page index, starting at 0")
	cmd.Flags().IntVar(&f.pageSize, "page-size", 0, "rows per page (default from config)")
	cmd.Flags().BoolVar(&f.json, "json", false, "print JSON instead of a table")
}

func (f *listFlags) size(e *env) int {
	if f.pageSize > 0 {
		return f.pageSize
	}
	return e.cfg.List.PageSize
}

func newUsersCmd(gf *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Inspect user accounts",
	}
	cmd.AddCommand(newUsersListCmd(gf))
	return cmd
}

func newUsersListCmd(gf *globalFlags) *cobra.Command {
	var lf listFlags
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List one page of users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd, gf, sinkStderr)
			if err != nil {
				return err
			}
			defer e.close()
			if err := e.requireSession(); err != nil {
				return err
			}

			st, err := pager.New("users", lf.size(e), e.api.Users).LoadNow(cmd.Context(), lf.page)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if lf.json {
				return writeJSON(out, st.Items)
			}
			rows := make([][]string, 0, len(st.Items))
			for _, u := range st.Items {
				rows = append(rows, []string{
					fmt.Sprint(u.ID), u.Username, u.DisplayName,
					theme.RoleBadge(u.IsAdmin), theme.StatusBadge(u.IsDisabled), format.Date(u.CreatedAt),
				})
			}
			return writeTable(out, []string{"ID", "USERNAME", "DISPLAY NAME", "ROLE", "STATUS", "CREATED"}, rows, st)
		},
	}
	lf.bind(cmd)
	return cmd
}

func newTeamsCmd(gf *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "teams",
		Short: "Inspect teams",
	}
	cmd.AddCommand(newTeamsListCmd(gf))
	return cmd
}

func newTeamsListCmd(gf *globalFlags) *cobra.Command {
	var lf listFlags
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List one page of teams",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd, gf, sinkStderr)
			if err != nil {
				return err
			}
			defer e.close()
			if err := e.requireSession(); err != nil {
				return err
			}

			st, err := pager.New("teams", lf.size(e), e.api.Teams).LoadNow(cmd.Context(), lf.page)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if lf.json {
				return writeJSON(out, st.Items)
			}
			rows := make([][]string, 0, len(st.Items))
			for _, t := range st.Items {
				rows = append(rows, []string{
					fmt.Sprint(t.ID), t.Name, t.Description, fmt.Sprint(t.MemberCount), fmt.Sprint(t.SharedScores),
				})
			}
			return writeTable(out, []string{"ID", "NAME", "DESCRIPTION", "MEMBERS", "SHARED SCORES"}, rows, st)
		},
	}
	lf.bind(cmd)
	return cmd
}

func newStatsCmd(gf *globalFlags) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show dashboard statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd, gf, sinkStderr)
			if err != nil {
				return err
			}
			defer e.close()
			if err := e.requireSession(); err != nil {
				return err
			}

			stats, err := e.api.DashboardStats(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, stats)
			}
			return writeStats(out, stats)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a summary")
	return cmd
}

func writeStats(w io.Writer, s *client.DashboardStats) error {
	summary := table.New().
		Border(lipgloss.HiddenBorder()).
		Rows(
			[]string{"Users", fmt.Sprint(s.TotalMembers)},
			[]string{"Active (7d)", fmt.Sprint(s.ActiveMembers7d)},
			[]string{"Teams", fmt.Sprint(s.TotalTeams)},
			[]string{"Scores", fmt.Sprint(s.TotalScores)},
			[]string{"Storage", format.Bytes(s.TotalStorageUsed)},
		)
	if _, err := fmt.Fprintln(w, summary.Render()); err != nil {
		return err
	}
	if len(s.Teams) == 0 {
		return nil
	}
	rows := make([][]string, 0, len(s.Teams))
	for _, t := range s.Teams {
		rows = append(rows, []string{t.Name, fmt.Sprint(t.MemberCount), fmt.Sprint(t.SharedScores)})
	}
	teams := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("TEAM", "MEMBERS", "SHARED SCORES").
		Rows(rows...)
	_, err := fmt.Fprintln(w, teams.Render())
	return err
}

func writeTable[T any](w io.Writer, headers []string, rows [][]string, st pager.PageState[T]) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "No results")
		return err
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...)
	if _, err := fmt.Fprintln(w, t.Render()); err != nil {
		return err
	}
	footer := fmt.Sprintf("Page %d", st.PageIndex+1)
	if st.HasMore {
		footer += fmt.Sprintf(" (more with --page %d)", st.PageIndex+1)
	}
	_, err := fmt.Fprintln(w, footer)
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
