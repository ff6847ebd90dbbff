package cmd

import (
	"fmt"
	"github.com/ValentinKolb/dEnv/cmd/serve"
	"github.com/ValentinKolb/dEnv/cmd/util"
	"github.com/ValentinKolb/dEnv/cmd/values"
	"github.com/spf13/cobra"
	"os"
)

const (
	Version = "1.0.0"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "denv",
		Short: "cache-accelerated persistent named values",
		Long: fmt.Sprintf(`dEnv (v%s)

Named configuration values persisted in a plain key=json file and
accelerated by a shared redis cache, so that several processes on
different machines agree on the latest value.`, Version),
		SilenceUsage: true,
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of dEnv",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("dEnv v%s\n", Version)
		},
	}
)

func init() {
	// initialize viper
	cobra.OnInitialize(util.InitConfig)

	// Add Commands
	RootCmd.AddCommand(serve.ServeCmd)
	RootCmd.AddCommand(values.EnvCommands)
	RootCmd.AddCommand(values.CacheCommands)
	RootCmd.AddCommand(versionCmd)

	// Add Flags
	util.SetupConfigFlags(RootCmd)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
