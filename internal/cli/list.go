package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/rosterbot/internal/config"
	"github.com/rshade/rosterbot/internal/nav"
	"github.com/rshade/rosterbot/internal/pager"
	"github.com/rshade/rosterbot/internal/roster"
	"github.com/rshade/rosterbot/internal/store"
)

// newListCmd creates the one-shot list command. It prints pages to stdout
// exactly as the chat transport would receive them.
func newListCmd(getConfig func() *config.Config) *cobra.Command {
	var (
		roleFlag string
		allPages bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print roster pages to stdout",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := getConfig()

			filter := pager.FilterAll
			if roleFlag != "" {
				role := roster.Role(roleFlag)
				if !role.Valid() {
					return fmt.Errorf("%w: %q", roster.ErrUnknownRole, roleFlag)
				}
				filter = roster.RoleFilter(role)
			}

			st, err := store.Open(cfg.Source.Database, config.GetLogger())
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			manager, _ := newManager(cfg, st)
			sessionID := manager.NewSession()
			defer manager.EndSession(sessionID)

			ctx := cmd.Context()
			page, err := manager.RenderPage(ctx, sessionID, filter, nav.ActionStart)
			if err != nil {
				return describeSourceErr(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), page.Text)

			for allPages && page.HasNext {
				page, err = manager.RenderPage(ctx, sessionID, filter, nav.ActionNext)
				if err != nil {
					return describeSourceErr(err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "")
				fmt.Fprintln(cmd.OutOrStdout(), page.Text)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&roleFlag, "role", "", "only show participants with this role")
	cmd.Flags().BoolVar(&allPages, "all", false, "walk every page instead of just the first")

	return cmd
}

// describeSourceErr keeps the retryable outage message actionable on the
// command line.
func describeSourceErr(err error) error {
	if errors.Is(err, pager.ErrSourceUnavailable) {
		return fmt.Errorf("%w (the database may be locked; retry)", err)
	}
	return err
}
