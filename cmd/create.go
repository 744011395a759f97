/*
Copyright © 2026 The gaia-project authors
*/
package cmd

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/boardgamers/gaia-project-sub000/internal/engine"
	"github.com/boardgamers/gaia-project-sub000/internal/federation"
)

// newCmd represents the new command
var newCmd = &cobra.Command{
	Use:   "new [name]",
	Short: "Create a new game",
	Long: `Stores a new game with the given options and prints its id. The map and
the tiles are drawn from the seed, so two games with the same options start
identically. Without --seed a random one is used.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		opts, err := optionsFromFlags(cmd)
		if err != nil {
			fail("%v", err)
		}
		name := opts.Seed
		if len(args) == 1 {
			name = args[0]
		}

		db, err := openDB()
		if err != nil {
			fail("opening database: %v", err)
		}
		defer db.Close()

		g, err := db.CreateGame(name, opts)
		if err != nil {
			fail("creating game: %v", err)
		}
		fmt.Printf("Created game %s (%s)\n", g.ID, g.Name)
		fmt.Printf("Players: %d, seed: %s, layout: %s\n", opts.Players, opts.Seed, opts.Layout)
	},
}

func optionsFromFlags(cmd *cobra.Command) (engine.Options, error) {
	players, _ := cmd.Flags().GetInt("players")
	seed, _ := cmd.Flags().GetString("seed")
	auction, _ := cmd.Flags().GetBool("auction")
	flexible, _ := cmd.Flags().GetBool("flexible_federations")
	layout, _ := cmd.Flags().GetString("layout")
	if seed == "" {
		seed = uuid.New().String()
	}
	opts := engine.Options{
		Players:             players,
		Seed:                seed,
		Auction:             auction,
		FlexibleFederations: flexible,
		FederationSearch:    federation.Mode(viper.GetString("federation_search")),
		AutoIncome:          viper.GetBool("auto_income"),
		Layout:              layout,
	}
	if err := opts.Validate(); err != nil {
		return opts, err
	}
	return opts, nil
}

func addOptionFlags(cmd *cobra.Command) {
	cmd.Flags().IntP("players", "p", 2, "number of players (2 to 5)")
	cmd.Flags().StringP("seed", "s", "", "seed for the map and tiles")
	cmd.Flags().Bool("auction", false, "auction the factions after picking them")
	cmd.Flags().Bool("flexible_federations", false, "allow any valid federation, not only the best ones")
	cmd.Flags().String("layout", engine.LayoutStandard, "map layout (standard or rotated)")
}

func init() {
	rootCmd.AddCommand(newCmd)
	addOptionFlags(newCmd)
}
