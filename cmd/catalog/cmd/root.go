package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Set at build time with -ldflags "-X github.com/bespokesol/catalog/cmd/catalog/cmd.version=...".
var version = "dev"

var rootCmd = &cobra.Command{
	Use:           "catalog",
	Short:         "Catalog API server",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the build version",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.AddCommand(versionCmd)
}

// initConfig loads an optional .env file and then lets the process
// environment override it.
func initConfig() {
	_ = godotenv.Load()
	viper.AutomaticEnv()
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
