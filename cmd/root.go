// Package cmd holds flags and config loading shared by command line tools.
package cmd

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/spacemeshos/go-costtables/config"
	"github.com/spacemeshos/go-costtables/config/presets"
)

var (
	// Version is the app's semantic version. Designed to be overwritten by make.
	Version string

	// Commit is the git commit used to build the app. Designed to be overwritten by make.
	Commit string
)

// Flags holds values of the persistent flags added by AddCommands.
// Values given on the command line override the preset and the config file.
type Flags struct {
	flags *pflag.FlagSet

	Preset     string
	ConfigFile string

	LogLevel   string
	LogEncoder string
	Budget     uint64

	InstructionTiers config.TierMap
	StackHeightTiers config.TierMap
	StackSizeTiers   config.TierMap
}

// AddCommands adds persistent flags shared by all subcommands of cmd.
func AddCommands(cmd *cobra.Command) *Flags {
	f := &Flags{flags: cmd.PersistentFlags()}
	defaults := config.DefaultConfig()

	f.flags.StringVarP(&f.Preset, "preset", "p", "",
		fmt.Sprintf("preset overwrites default values of the config. options %+s", presets.Options()))
	f.flags.StringVarP(&f.ConfigFile, "config", "c", "", "load configuration from file")

	f.flags.StringVar(&f.LogLevel, "log-level", defaults.Logging.Level, "logging level")
	f.flags.StringVar(&f.LogEncoder, "log-encoder", defaults.Logging.Encoder, "log as json or console")
	f.flags.Uint64Var(&f.Budget, "budget", defaults.Meter.Budget, "execution budget in gas")

	f.flags.Var(&f.InstructionTiers, "instruction-tiers", "instruction tiers as start:cost pairs")
	f.flags.Var(&f.StackHeightTiers, "stack-height-tiers", "stack height tiers as start:cost pairs")
	f.flags.Var(&f.StackSizeTiers, "stack-size-tiers", "stack size tiers as start:cost pairs")
	return f
}

// LoadConfig loads config in order: defaults, preset, config file, flags.
// The preset is taken from the flag or, if the flag is empty, from the config file.
func (f *Flags) LoadConfig(fs afero.Fs) (*config.Config, error) {
	vip := viper.New()
	vip.SetFs(fs)
	if err := config.LoadConfig(f.ConfigFile, vip); err != nil {
		return nil, err
	}

	conf := config.DefaultConfig()
	preset := f.Preset
	if len(preset) == 0 && vip.IsSet("preset") {
		preset = vip.GetString("preset")
	}
	if len(preset) > 0 {
		p, err := presets.Get(preset)
		if err != nil {
			return nil, err
		}
		conf = p
	}
	if err := config.Unmarshal(vip, &conf); err != nil {
		return nil, err
	}
	conf.Preset = preset

	if f.flags.Changed("log-level") {
		conf.Logging.Level = f.LogLevel
	}
	if f.flags.Changed("log-encoder") {
		conf.Logging.Encoder = f.LogEncoder
	}
	if f.flags.Changed("budget") {
		conf.Meter.Budget = f.Budget
	}
	if f.flags.Changed("instruction-tiers") {
		conf.Costs.InstructionTiers = f.InstructionTiers
	}
	if f.flags.Changed("stack-height-tiers") {
		conf.Costs.StackHeightTiers = f.StackHeightTiers
	}
	if f.flags.Changed("stack-size-tiers") {
		conf.Costs.StackSizeTiers = f.StackSizeTiers
	}
	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &conf, nil
}
