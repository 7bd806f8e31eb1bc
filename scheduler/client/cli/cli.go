package cli

import (
	"io"

	uuid "github.com/nu7hatch/gouuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/twitter/quotasched/common/client"
	"github.com/twitter/quotasched/common/errors"
	"github.com/twitter/quotasched/common/log"
	"github.com/twitter/quotasched/common/stats"
)

// SchedCLIClient includes fields required for CLI client handling
type SchedCLIClient struct {
	client.SimpleClient
}

func (c *SchedCLIClient) Exec() error {
	return c.RootCmd.Execute()
}

// NewCLIClient builds the cpusched command tree writing results to out.
func NewCLIClient(out io.Writer) client.CLIClient {
	c := &SchedCLIClient{}
	c.Out = out

	c.RootCmd = &cobra.Command{
		Use:               "cpusched",
		Short:             "cpusched replays and checks quota priority CPU schedules",
		PersistentPreRunE: c.Init,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}
	c.RootCmd.SetOutput(out)
	c.RootCmd.PersistentFlags().StringVar(&c.LogLevel, "log_level", "info", "Log everything at this level and above (error|info|debug)")
	c.RootCmd.PersistentFlags().StringVar(&c.Config, "config", "default", "Scheduler configuration name or a JSON/YAML config file")

	c.addCmd(&replayCmd{})
	c.addCmd(&configsCmd{})
	c.addCmd(&versionCmd{})

	return c
}

// Can only be called from cobra command run or hook
func (c *SchedCLIClient) Init(cmd *cobra.Command, args []string) error {
	if err := log.SetLevel(c.LogLevel); err != nil {
		return errors.NewError(err, errors.UsageFailureExitCode)
	}

	id, err := uuid.NewV4()
	if err != nil {
		return err
	}
	c.Session = id.String()
	c.Stat = stats.NewCustomStatsReceiver(stats.NewFinagleStatsRegistry)
	log.WithFields(logrus.Fields{"session": c.Session}).Debugf("starting %s", cmd.Name())
	return nil
}

func (c *SchedCLIClient) addCmd(cmd client.Cmd) {
	cobraCmd := cmd.RegisterFlags()
	cobraCmd.RunE = func(innerCmd *cobra.Command, args []string) error {
		return cmd.Run(&c.SimpleClient, innerCmd, args)
	}
	c.RootCmd.AddCommand(cobraCmd)
}
