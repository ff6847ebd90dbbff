package values

import (
	"github.com/ValentinKolb/dEnv/cmd/util"
	"github.com/ValentinKolb/dEnv/lib/cache"
	"github.com/ValentinKolb/dEnv/lib/env"
	"github.com/spf13/cobra"
)

var (
	registry    *env.Registry
	sharedCache cache.ICache

	// EnvCommands represents the env command group
	EnvCommands = &cobra.Command{
		Use:                "env",
		Short:              "Read and write named values",
		PersistentPreRunE:  setupRegistry,
		PersistentPostRunE: closeCache,
	}

	// CacheCommands represents the cache command group
	CacheCommands = &cobra.Command{
		Use:                "cache",
		Short:              "Inspect and clear the shared cache",
		PersistentPreRunE:  setupCache,
		PersistentPostRunE: closeCache,
	}
)

func init() {
	// Add subcommands
	EnvCommands.AddCommand(getCmd)
	EnvCommands.AddCommand(setCmd)
	EnvCommands.AddCommand(listCmd)

	CacheCommands.AddCommand(cacheGetCmd)
	CacheCommands.AddCommand(cacheDelCmd)
}

// setupRegistry opens the durable store and the shared cache and constructs the built-in values
func setupRegistry(cmd *cobra.Command, _ []string) error {
	// Bind command flags to viper
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	config, err := util.GetConfig()
	if err != nil {
		return err
	}

	registry, sharedCache, err = util.OpenRegistry(config)
	return err
}

// setupCache only connects to the shared cache, the env file is not touched
func setupCache(cmd *cobra.Command, _ []string) error {
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	config, err := util.GetConfig()
	if err != nil {
		return err
	}

	sharedCache, err = util.NewCache(config)
	return err
}

func closeCache(_ *cobra.Command, _ []string) error {
	if sharedCache == nil {
		return nil
	}
	return sharedCache.Close()
}
