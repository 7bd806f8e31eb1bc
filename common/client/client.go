package client

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/twitter/quotasched/common/stats"
)

// Client interface that includes CLI handling
type CLIClient interface {
	Exec() error
}

// SimpleClient includes base fields required for implementing client
type SimpleClient struct {
	RootCmd  *cobra.Command
	LogLevel string
	// Config names a scheduler configuration or a config file
	Config string
	// Session identifies one invocation in logs and stats
	Session string
	Stat    stats.StatsReceiver
	Out     io.Writer
}

// Command interface used to run client commands
type Cmd interface {
	RegisterFlags() *cobra.Command
	Run(cl *SimpleClient, cmd *cobra.Command, args []string) error
}
