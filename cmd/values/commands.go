package values

import (
	"fmt"
	"github.com/ValentinKolb/dEnv/lib/env"
	"github.com/ValentinKolb/dEnv/lib/value"
	"github.com/spf13/cobra"
)

var (
	getCmd = &cobra.Command{
		Use:   "get [name]",
		Short: "Prints the current value of a name as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := open(args[0])
			if err != nil {
				return err
			}
			v, err := e.Get()
			if err != nil {
				return err
			}
			fmt.Println(v.String())
			return nil
		},
	}
	setCmd = &cobra.Command{
		Use:   "set [name] [value]",
		Short: "Sets the value of a name. The value is parsed as JSON, anything else is stored as a string",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := open(args[0])
			if err != nil {
				return err
			}
			if err := e.Set(ParseArg(args[1])); err != nil {
				return err
			}
			fmt.Println("set successfully")
			return nil
		},
	}
	listCmd = &cobra.Command{
		Use:   "list",
		Short: "Prints all built-in names with their current value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range registry.Names() {
				e, _ := registry.Lookup(name)
				v, err := e.Get()
				if err != nil {
					return err
				}
				fmt.Printf("%s=%s\n", name, v)
			}
			return nil
		},
	}
	cacheGetCmd = &cobra.Command{
		Use:   "get [name]",
		Short: "Prints the raw shared cache entry of a name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, ok, err := sharedCache.Get(args[0])
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println("not found")
				return nil
			}
			fmt.Println(raw)
			return nil
		},
	}
	cacheDelCmd = &cobra.Command{
		Use:   "del [name...]",
		Short: "Deletes shared cache entries so the next read falls back to the env file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range args {
				if err := sharedCache.Delete(name); err != nil {
					return err
				}
			}
			fmt.Println("deleted successfully")
			return nil
		},
	}
)

// open returns the registered value of name, names outside the built-in set
// are opened with a null default
func open(name string) (*env.Env, error) {
	return registry.Open(name, value.Null())
}

// ParseArg converts a command-line argument into a value. Valid JSON is decoded,
// everything else is taken as a plain string.
func ParseArg(arg string) value.Value {
	if v, err := value.DecodeString(arg); err == nil {
		return v
	}
	return value.String(arg)
}
