package cli

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twitter/quotasched/common/errors"
)

const kernelTrace = "../../trace/testdata/kernel.trace"

func execute(args ...string) (string, error) {
	out := &bytes.Buffer{}
	c := NewCLIClient(out).(*SchedCLIClient)
	c.RootCmd.SetArgs(args)
	err := c.Exec()
	return out.String(), err
}

func TestReplay_KernelTrace(t *testing.T) {
	out, err := execute("replay", "--config", "kernel", kernelTrace)
	require.NoError(t, err)
	assert.Contains(t, out, "134 checks, 0 mismatches")
}

func TestReplay_Dump(t *testing.T) {
	out, err := execute("replay", "--config", "kernel", "--dump", "--stats", kernelTrace)
	require.NoError(t, err)
	assert.Contains(t, out, "3'90 5'100")
	assert.Contains(t, out, "HeadQuota")
	assert.Contains(t, out, "replay/lineCounter")
}

func TestReplay_Mismatch(t *testing.T) {
	out, err := execute("replay", "--config", "default", kernelTrace)
	require.Error(t, err)
	assert.Equal(t, errors.TraceMismatchExitCode, errors.ExitCodeOf(err, errors.UsageFailureExitCode))
	assert.True(t, strings.Contains(out, "line "), out)
}

func TestReplay_Failures(t *testing.T) {
	dir, err := ioutil.TempDir("", "cpusched")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	bad := filepath.Join(dir, "bad.trace")
	require.NoError(t, ioutil.WriteFile(bad, []byte("share 1 2\nZ(1)\n"), 0644))
	badCfg := filepath.Join(dir, "bad.yaml")
	require.NoError(t, ioutil.WriteFile(badCfg, []byte("quota: 0\n"), 0644))

	tests := []struct {
		args []string
		code errors.ExitCode
	}{
		{[]string{"replay", filepath.Join(dir, "missing.trace")}, errors.TraceReadFailureExitCode},
		{[]string{"replay", bad}, errors.TraceParseFailureExitCode},
		{[]string{"replay", "--config", badCfg, kernelTrace}, errors.ConfigFailureExitCode},
		{[]string{"replay", "--config", "nosuchconfig", kernelTrace}, errors.ConfigFailureExitCode},
		{[]string{"--log_level", "loud", "configs"}, errors.UsageFailureExitCode},
	}
	for _, test := range tests {
		_, err := execute(test.args...)
		require.Error(t, err, "%v", test.args)
		assert.Equal(t, test.code, errors.ExitCodeOf(err, 0), "%v", test.args)
	}
}

func TestConfigs(t *testing.T) {
	out, err := execute("configs")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "batch\t"), lines[0])
	assert.Contains(t, lines[2], `"fill_policy":"priority"`)
}

func TestVersion(t *testing.T) {
	out, err := execute("version")
	require.NoError(t, err)
	assert.Equal(t, Version+"\n", out)
}
