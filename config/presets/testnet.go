package presets

import (
	"github.com/spacemeshos/go-costtables/config"
)

func init() {
	register("testnet", testnet())
}

func testnet() config.Config {
	conf := mainnet()
	conf.Meter.Budget = 10 * config.DefaultBudget
	conf.Logging.Level = "debug"
	return conf
}
