// Package presets holds named cost schedules that overwrite the default config.
package presets

import (
	"fmt"
	"maps"
	"slices"

	"github.com/spacemeshos/go-costtables/config"
)

var presets = map[string]config.Config{}

func register(name string, conf config.Config) {
	if _, exist := presets[name]; exist {
		panic(fmt.Sprintf("preset %s is already registered", name))
	}
	presets[name] = conf
}

// Options returns names of all registered presets.
func Options() []string {
	return slices.Sorted(maps.Keys(presets))
}

// Get returns a copy of the preset registered under name.
func Get(name string) (config.Config, error) {
	conf, exist := presets[name]
	if !exist {
		return config.Config{}, fmt.Errorf("preset %s is not registered. select one of %v", name, Options())
	}
	conf.Costs = config.CostsConfig{
		InstructionTiers: maps.Clone(conf.Costs.InstructionTiers),
		StackHeightTiers: maps.Clone(conf.Costs.StackHeightTiers),
		StackSizeTiers:   maps.Clone(conf.Costs.StackSizeTiers),
	}
	return conf, nil
}
