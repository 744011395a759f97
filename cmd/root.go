/*
Copyright © 2026 The gaia-project authors
*/
package cmd

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/boardgamers/gaia-project-sub000/internal/catalog"
	"github.com/boardgamers/gaia-project-sub000/internal/persistence"
	"github.com/boardgamers/gaia-project-sub000/internal/session"
)

var cfgFile string

// Build metadata, set through -ldflags at release time.
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "gaia",
	Short: "Gaia Project rules engine",
	Long: `gaia keeps Gaia Project games as logs of move text. Every move is
checked against the commands legal in the current state, and a game can be
rebuilt at any time by replaying its log.

Games live in a SQLite database (--db) and can be exported to or imported
from JSONL move logs.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging()
	},
	SilenceUsage: true,
	Version:      Version,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.SetVersionTemplate(fmt.Sprintf("gaia {{.Version}} (commit %s, built %s, %s/%s)\n",
		Commit, BuildDate, runtime.GOOS, runtime.GOARCH))

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.gaia.yaml)")
	flags.String("db", "gaia.db", "SQLite database holding the games")
	flags.String("log_level", "warn", "log level (debug, info, warn, error)")
	flags.StringSlice("catalog_dir", nil, "directories searched for catalog YAML before the built-in data")
	flags.String("federation_search", "heuristic", "federation search for new games (heuristic or exhaustive)")
	flags.Bool("auto_income", false, "order income automatically in new games")

	for _, key := range []string{"db", "log_level", "catalog_dir", "federation_search", "auto_income"} {
		cobra.CheckErr(viper.BindPFlag(key, flags.Lookup(key)))
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".gaia")
	}

	viper.SetEnvPrefix("gaia")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func setupLogging() error {
	level, err := zerolog.ParseLevel(viper.GetString("log_level"))
	if err != nil {
		return fmt.Errorf("bad log_level: %w", err)
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	return nil
}

func loadCatalog() (*catalog.Catalog, error) {
	dirs := viper.GetStringSlice("catalog_dir")
	if len(dirs) == 0 {
		return catalog.Default(), nil
	}
	return catalog.NewLoader(dirs).Load()
}

func openDB() (*persistence.DB, error) {
	return persistence.OpenDB(viper.GetString("db"))
}

// openGame rebuilds a stored game. The caller closes the database.
func openGame(id string) (*persistence.DB, *session.Session, error) {
	db, err := openDB()
	if err != nil {
		return nil, nil, err
	}
	if _, err := db.GetGame(id); err != nil {
		db.Close()
		return nil, nil, err
	}
	cat, err := loadCatalog()
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	s, err := session.NewSession(db.Log(id), cat)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return db, s, nil
}

func fail(format string, args ...any) {
	fmt.Printf("Error: "+format+"\n", args...)
	os.Exit(1)
}
