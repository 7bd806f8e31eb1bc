package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/twitter/quotasched/common/client"
	"github.com/twitter/quotasched/common/errors"
	"github.com/twitter/quotasched/scheduler/config"
)

type configsCmd struct{}

func (c *configsCmd) RegisterFlags() *cobra.Command {
	return &cobra.Command{
		Use:   "configs",
		Short: "List the scheduler configurations",
		Args:  cobra.NoArgs,
	}
}

func (c *configsCmd) Run(cl *client.SimpleClient, cmd *cobra.Command, args []string) error {
	for _, name := range config.Names() {
		cfg, err := config.GetConfig(name)
		if err != nil {
			return errors.NewError(err, errors.ConfigFailureExitCode)
		}
		asJson, err := json.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("Error converting config %s to JSON: %v", name, err)
		}
		fmt.Fprintf(cl.Out, "%s\t%s\n", name, asJson)
	}
	return nil
}
