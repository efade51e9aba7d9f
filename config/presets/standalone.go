package presets

import (
	"github.com/spacemeshos/go-costtables/config"
)

func init() {
	register("standalone", standalone())
}

// standalone charges default costs for every counter.
func standalone() config.Config {
	conf := config.DefaultConfig()
	conf.Meter.Budget = 1 << 40
	conf.Logging.Level = "debug"
	return conf
}
