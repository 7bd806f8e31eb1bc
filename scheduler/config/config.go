// Package config selects scheduler configurations, either one of the named
// SchedulerConfigs or a JSON or YAML file, laid over the default one.
package config

import (
	"encoding/json"
	"io/ioutil"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/twitter/quotasched/scheduler/cpu"
)

// Names returns the names of the available configurations, sorted.
func Names() []string {
	keys := make([]string, 0, len(SchedulerConfigs))
	for k := range SchedulerConfigs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func GetConfigText(configSelector string) ([]byte, error) {
	configText, ok := SchedulerConfigs[configSelector]
	if !ok {
		return nil, errors.Errorf("invalid configuration %s, supported values are %v", configSelector, Names())
	}
	return []byte(configText), nil
}

// GetConfig returns the named configuration with unset fields taken from
// the default one.
func GetConfig(configSelector string) (cpu.Config, error) {
	cfg, err := defaults()
	if err != nil {
		return cpu.Config{}, err
	}
	configText, err := GetConfigText(configSelector)
	if err != nil {
		return cpu.Config{}, err
	}
	if err := json.Unmarshal(configText, &cfg); err != nil {
		return cpu.Config{}, errors.Wrapf(err, "couldn't parse config %s", configSelector)
	}
	return cfg, validate(cfg, configSelector)
}

// Load resolves selector as a configuration name first and as a file path
// otherwise. Files ending in .yaml or .yml are read as YAML, others as JSON.
func Load(selector string) (cpu.Config, error) {
	if _, ok := SchedulerConfigs[selector]; ok {
		return GetConfig(selector)
	}
	data, err := ioutil.ReadFile(selector)
	if err != nil {
		return cpu.Config{}, errors.Wrapf(err, "invalid configuration %s, supported values are %v or a file", selector, Names())
	}
	cfg, err := defaults()
	if err != nil {
		return cpu.Config{}, err
	}
	switch strings.ToLower(filepath.Ext(selector)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return cpu.Config{}, errors.Wrapf(err, "couldn't parse config file %s", selector)
	}
	log.Infof("using scheduler config from %s", selector)
	return cfg, validate(cfg, selector)
}

func defaults() (cpu.Config, error) {
	cfg := cpu.Config{}
	if err := json.Unmarshal([]byte(defaultConfig), &cfg); err != nil {
		return cfg, errors.Wrap(err, "couldn't parse the default config")
	}
	return cfg, nil
}

func validate(cfg cpu.Config, name string) error {
	return errors.Wrapf(cfg.Validate(), "config %s", name)
}
