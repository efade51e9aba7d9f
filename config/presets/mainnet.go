package presets

import (
	"github.com/spacemeshos/go-costtables/config"
)

func init() {
	register("mainnet", mainnet())
}

// mainnet charges more per unit as an execution runs longer and its stack grows.
func mainnet() config.Config {
	conf := config.DefaultConfig()
	conf.Costs.InstructionTiers = config.TierMap{
		0:       1,
		20_000:  2,
		50_000:  10,
		100_000: 50,
		200_000: 100,
	}
	conf.Costs.StackHeightTiers = config.TierMap{
		0:      1,
		1_000:  2,
		10_000: 10,
	}
	conf.Costs.StackSizeTiers = config.TierMap{
		0:         1,
		100_000:   2,
		500_000:   5,
		1_000_000: 100,
	}
	conf.Logging.Encoder = config.JSONLogEncoder
	return conf
}
