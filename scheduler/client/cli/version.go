package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/twitter/quotasched/common/client"
)

// Version of cpusched, set at link time with -X.
var Version = "dev"

type versionCmd struct{}

func (c *versionCmd) RegisterFlags() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the cpusched version",
		Args:  cobra.NoArgs,
	}
}

func (c *versionCmd) Run(cl *client.SimpleClient, cmd *cobra.Command, args []string) error {
	fmt.Fprintln(cl.Out, Version)
	return nil
}
