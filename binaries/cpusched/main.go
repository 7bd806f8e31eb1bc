package main

import (
	"os"

	"github.com/twitter/quotasched/common/errors"
	"github.com/twitter/quotasched/common/log"
	"github.com/twitter/quotasched/common/log/hooks"
	"github.com/twitter/quotasched/scheduler/client/cli"
)

// Replays scheduler traces, see cpusched --help
func main() {
	log.AddHook(hooks.NewContextHook("quotasched/"))

	err := cli.NewCLIClient(os.Stdout).Exec()
	if err != nil {
		log.Errorf("cpusched: %v", err)
	}
	os.Exit(int(errors.ExitCodeOf(err, errors.UsageFailureExitCode)))
}
