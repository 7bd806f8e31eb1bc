package config

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twitter/quotasched/scheduler/cpu"
)

// Tests to ensure every configuration parses and validates
func TestGettingConfigurations(t *testing.T) {
	for _, configSelector := range Names() {
		_, err := GetConfig(configSelector)
		assert.Nil(t, err, fmt.Sprintf("error getting scheduler config %s: %v", configSelector, err))
	}

	selector := "invalid.selector"
	config, err := GetConfig(selector)
	if assert.NotNil(t, err, fmt.Sprintf("configuration returned for %s: %v", selector, config)) {
		assert.Contains(t, err.Error(), "supported values are [batch default kernel]")
	}
}

func TestDefaultMatchesPackageDefault(t *testing.T) {
	config, err := GetConfig("default")
	require.NoError(t, err)
	assert.Equal(t, cpu.DefaultConfig(), config)
}

// Configurations only name what they change, the rest comes from default.
func TestOverlay(t *testing.T) {
	config, err := GetConfig("kernel")
	require.NoError(t, err)
	assert.Equal(t, uint(1000), config.Quota)
	assert.Equal(t, uint(100), config.Fill)
	assert.Equal(t, cpu.DefaultMaxClaims, config.MaxClaims)
	assert.Equal(t, cpu.PriorityFill, config.FillPolicy)
	assert.True(t, config.Replenish)

	config, err = GetConfig("batch")
	require.NoError(t, err)
	assert.Equal(t, cpu.RoundRobinFill, config.FillPolicy)
	assert.False(t, config.Replenish)
}

func writeFile(t *testing.T, dir, name, content string) string {
	path := filepath.Join(dir, name)
	require.NoError(t, ioutil.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	dir, err := ioutil.TempDir("", "schedconfig")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	config, err := Load("kernel")
	require.NoError(t, err)
	assert.Equal(t, uint(1000), config.Quota)

	yamlPath := writeFile(t, dir, "sched.yaml", "quota: 5000\nfill: 250\nfill_policy: round-robin\n")
	config, err = Load(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, uint(5000), config.Quota)
	assert.Equal(t, uint(250), config.Fill)
	assert.Equal(t, cpu.RoundRobinFill, config.FillPolicy)
	assert.Equal(t, 4, config.Priorities)

	jsonPath := writeFile(t, dir, "sched.json", `{"max_claims": 8, "replenish": false}`)
	config, err = Load(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, 8, config.MaxClaims)
	assert.False(t, config.Replenish)
	assert.Equal(t, uint(cpu.DefaultQuota), config.Quota)
}

func TestLoadErrors(t *testing.T) {
	dir, err := ioutil.TempDir("", "schedconfig")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	cases := map[string]string{
		filepath.Join(dir, "missing.json"):                      "supported values are",
		writeFile(t, dir, "broken.json", `{"quota": `):          "couldn't parse config file",
		writeFile(t, dir, "broken.yml", "quota: [1, 2]\n"):      "couldn't parse config file",
		writeFile(t, dir, "zero.yaml", "fill: 0\n"):             "fill must be positive",
		writeFile(t, dir, "policy.json", `{"fill_policy": "x"}`): "unknown fill policy",
	}
	for path, msg := range cases {
		_, err := Load(path)
		if assert.Error(t, err, path) {
			assert.Contains(t, err.Error(), msg, path)
		}
	}
}
