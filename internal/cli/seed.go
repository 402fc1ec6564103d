package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/rosterbot/internal/config"
	"github.com/rshade/rosterbot/internal/roster"
	"github.com/rshade/rosterbot/internal/store"
)

// Sample data for seeded participants. Names cycle so seeded rosters are
// deterministic for a given count.
var (
	seedFirstNames = []string{ //nolint:gochecknoglobals // static seed data
		"Ada", "Grace", "Alan", "Edsger", "Barbara", "Donald", "Leslie", "Tony", "Radia", "Ken",
	}
	seedLastNames = []string{ //nolint:gochecknoglobals // static seed data
		"Lovelace", "Hopper", "Turing", "Dijkstra", "Liskov", "Knuth", "Lamport", "Hoare", "Perlman", "Thompson",
	}
)

// defaultSeedCount is how many participants seed inserts by default.
const defaultSeedCount = 45

// newSeedCmd creates the seed command, which populates a demo database.
func newSeedCmd(getConfig func() *config.Config) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Populate the participant database with demo data",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := getConfig()

			st, err := store.Open(cfg.Source.Database, config.GetLogger())
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			roles := roster.Roles()
			ctx := cmd.Context()
			for i := 0; i < count; i++ {
				p := &roster.Participant{
					FirstName: seedFirstNames[i%len(seedFirstNames)],
					LastName:  fmt.Sprintf("%s-%02d", seedLastNames[i%len(seedLastNames)], i),
					Role:      roles[i%len(roles)],
					Email:     fmt.Sprintf("participant%02d@example.com", i),
					Table:     i/8 + 1,
				}
				if i%7 == 0 {
					p.Notes = "Dietary restrictions: vegetarian"
				}
				if _, err := st.Insert(ctx, p); err != nil {
					return err
				}
			}

			logger.Info().Int("count", count).Str("database", cfg.Source.Database).Msg("seeded participants")
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d participants into %s\n", count, cfg.Source.Database)
			return nil
		},
	}

	cmd.Flags().IntVar(&count, "count", defaultSeedCount, "number of participants to insert")

	return cmd
}
