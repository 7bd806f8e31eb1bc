package config

// SchedulerConfigs the map of available configurations. Every entry is laid
// over "default", so an entry only names what it changes.
var SchedulerConfigs = map[string]string{
	"default": defaultConfig,
	"kernel":  kernelConfig,
	"batch":   batchConfig,
}

// defaultConfig rounds of 256ms with 10ms fill slices, in microseconds
const defaultConfig = `{
	"quota": 256000,
	"fill": 10000,
	"priorities": 4,
	"max_claims": 256,
	"fill_policy": "priority",
	"replenish": true
}`

// kernelConfig the round the kernel scheduler tests use, see testdata/kernel.trace of package trace
const kernelConfig = `{
	"quota": 1000,
	"fill": 100
}`

// batchConfig long rounds and slices, fills strictly in turn
const batchConfig = `{
	"quota": 1000000,
	"fill": 50000,
	"fill_policy": "round-robin",
	"replenish": false
}`
