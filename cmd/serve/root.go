package serve

import (
	"github.com/ValentinKolb/dEnv/cmd/util"
	"github.com/ValentinKolb/dEnv/rpc/common"
	"github.com/ValentinKolb/dEnv/rpc/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	serveCmdConfig *common.Config
	ServeCmd       = &cobra.Command{
		Use:     "serve",
		Short:   "Start the dEnv HTTP api",
		Long:    `Start the dEnv HTTP api with the specified configuration. The configuration can be set via command line flags or environment variables. The format of the environment variables is DENV_<flag> (e.g. DENV_REDIS_ADDR=localhost:6379)`,
		PreRunE: processConfig,
		RunE:    run,
	}
)

func init() {
	// add flags
	key := "endpoint"
	ServeCmd.Flags().String(key, "0.0.0.0:8080", util.WrapString("The address on which the API will listen (e.g. localhost:8080)"))
}

// processConfig reads the configuration from the command line flags and environment variables
func processConfig(cmd *cobra.Command, _ []string) error {
	// bind the flags to viper
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	var err error
	serveCmdConfig, err = util.GetConfig()
	return err
}

// run opens the registry and serves it until the process is interrupted
func run(_ *cobra.Command, _ []string) error {
	registry, c, err := util.OpenRegistry(serveCmdConfig)
	if err != nil {
		return err
	}
	defer c.Close()

	return server.NewServer(*serveCmdConfig, registry).Serve()
}
