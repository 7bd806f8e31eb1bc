package cli

/**
implements the command line entry for the replay command
*/

import (
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/twitter/quotasched/common/client"
	"github.com/twitter/quotasched/common/errors"
	"github.com/twitter/quotasched/scheduler/config"
	"github.com/twitter/quotasched/scheduler/trace"
)

type replayCmd struct {
	dump       bool
	printStats bool
}

func (c *replayCmd) RegisterFlags() *cobra.Command {
	r := &cobra.Command{
		Use:   "replay <trace>",
		Short: "Replay a scheduler trace and report the expectations it misses",
		Args:  cobra.ExactArgs(1),
	}
	r.Flags().BoolVar(&c.dump, "dump", false, "Dump the final scheduler state")
	r.Flags().BoolVar(&c.printStats, "stats", false, "Print the scheduler stats as JSON")
	return r
}

func (c *replayCmd) Run(cl *client.SimpleClient, cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cl.Config)
	if err != nil {
		return errors.NewError(err, errors.ConfigFailureExitCode)
	}

	f, err := os.Open(args[0])
	if err != nil {
		return errors.NewError(err, errors.TraceReadFailureExitCode)
	}
	defer f.Close()
	script, err := trace.Parse(f)
	if err != nil {
		return errors.Errorf(errors.TraceParseFailureExitCode, "%s: %v", args[0], err)
	}

	res, err := trace.Run(script, cfg, cl.Stat.Scope(cl.Session))
	if err != nil {
		return errors.Errorf(errors.TraceParseFailureExitCode, "%s: %v", args[0], err)
	}
	for _, m := range res.Mismatches {
		fmt.Fprintln(cl.Out, m)
	}
	fmt.Fprintf(cl.Out, "%d checks, %d mismatches\n", res.Checks, len(res.Mismatches))
	if c.dump {
		fmt.Fprintln(cl.Out, res.Final)
		spew.Fdump(cl.Out, res.Final)
	}
	if c.printStats {
		fmt.Fprintf(cl.Out, "%s\n", cl.Stat.Render(true))
	}
	if !res.OK() {
		return errors.Errorf(errors.TraceMismatchExitCode, "%s: %d of %d checks failed", args[0], len(res.Mismatches), res.Checks)
	}
	return nil
}
