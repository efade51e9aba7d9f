// Package config contains cost schedule configuration definitions.
package config

import (
	"errors"
	"fmt"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/spacemeshos/go-costtables/costtable"
	"github.com/spacemeshos/go-costtables/pricing"
	"github.com/spacemeshos/go-costtables/units"
)

const defaultConfigFileName = "./costtables.toml"

// DefaultBudget is the default budget of a single execution in gas.
const DefaultBudget uint64 = 10_000_000

// Config defines the top level configuration of a cost schedule.
type Config struct {
	// Preset named in a config file is applied before the rest of the file.
	Preset  string        `mapstructure:"preset"`
	Costs   CostsConfig   `mapstructure:"costs"`
	Pricing PricingConfig `mapstructure:"pricing"`
	Meter   MeterConfig   `mapstructure:"meter"`
	Logging LoggerConfig  `mapstructure:"logging"`
}

// CostsConfig holds tier start -> cost mappings for every dimension.
type CostsConfig struct {
	InstructionTiers TierMap `mapstructure:"instruction-tiers"`
	StackHeightTiers TierMap `mapstructure:"stack-height-tiers"`
	StackSizeTiers   TierMap `mapstructure:"stack-size-tiers"`
}

// PricingConfig holds equations for operations priced by size.
type PricingConfig struct {
	PublishPerByte LinearConfig `mapstructure:"publish-per-byte"`
}

// LinearConfig is y = offset + slope*x bounded by [min, max].
type LinearConfig struct {
	Offset uint64 `mapstructure:"offset"`
	Slope  uint64 `mapstructure:"slope"`
	Min    uint64 `mapstructure:"min"`
	Max    uint64 `mapstructure:"max"`
}

// MeterConfig holds execution limits.
type MeterConfig struct {
	// Budget in gas.
	Budget uint64 `mapstructure:"budget"`
}

// DefaultConfig returns a flat schedule: every dimension charges its default cost.
func DefaultConfig() Config {
	publish := pricing.DefaultPublish()
	return Config{
		Costs: CostsConfig{
			InstructionTiers: TierMap{},
			StackHeightTiers: TierMap{},
			StackSizeTiers:   TierMap{},
		},
		Pricing: PricingConfig{
			PublishPerByte: LinearConfig{
				Offset: publish.Offset().Uint64(),
				Slope:  publish.Slope().Uint64(),
				Min:    publish.Min().Uint64(),
				Max:    publish.Max().Uint64(),
			},
		},
		Meter:   MeterConfig{Budget: DefaultBudget},
		Logging: DefaultLoggingConfig(),
	}
}

// Validate checks that the config describes a usable schedule.
func (cfg *Config) Validate() error {
	var errs []error
	for name, tiers := range map[string]TierMap{
		"instruction-tiers":  cfg.Costs.InstructionTiers,
		"stack-height-tiers": cfg.Costs.StackHeightTiers,
		"stack-size-tiers":   cfg.Costs.StackSizeTiers,
	} {
		if len(tiers) > costtable.MaxTiers {
			errs = append(errs, fmt.Errorf("%s: %d tiers, at most %d allowed", name, len(tiers), costtable.MaxTiers))
		}
	}
	if err := cfg.Equations().Validate(); err != nil {
		errs = append(errs, err)
	}
	if cfg.Meter.Budget == 0 {
		errs = append(errs, errors.New("meter budget must be positive"))
	}
	if err := cfg.Logging.validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Table builds the cost table described by the config.
func (cfg *Config) Table() *costtable.Table {
	return costtable.NewTable(
		cfg.Costs.InstructionTiers,
		cfg.Costs.StackHeightTiers,
		cfg.Costs.StackSizeTiers,
	)
}

// Equations builds the pricing equations described by the config.
func (cfg *Config) Equations() pricing.Equations {
	p := cfg.Pricing.PublishPerByte
	return pricing.Equations{
		Publish: pricing.NewLinearEquation(
			units.New[units.Per[units.InternalGasUnit, units.ByteUnit]](p.Slope),
			units.New[units.InternalGasUnit](p.Offset),
			units.New[units.InternalGasUnit](p.Min),
			units.New[units.InternalGasUnit](p.Max),
		),
	}
}

// Budget returns the meter budget in gas.
func (cfg *Config) Budget() units.Gas {
	return units.New[units.GasUnit](cfg.Meter.Budget)
}

// LoadConfig reads the config file at fileLocation into vip using the filesystem set on vip.
// An empty location reads the default config file, which is allowed to be missing.
func LoadConfig(fileLocation string, vip *viper.Viper) error {
	optional := fileLocation == ""
	if optional {
		fileLocation = defaultConfigFileName
	}
	vip.SetConfigFile(fileLocation)
	if err := vip.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if optional && (errors.As(err, &notFound) || errors.Is(err, afero.ErrFileNotFound)) {
			return nil
		}
		return fmt.Errorf("read config file %s: %w", fileLocation, err)
	}
	return nil
}

// Unmarshal decodes values loaded into vip on top of cfg.
// Keys that don't map to any config field are an error.
func Unmarshal(vip *viper.Viper, cfg *Config) error {
	hook := mapstructure.ComposeDecodeHookFunc(
		TierMapDecodeHook(),
		mapstructure.TextUnmarshallerHookFunc(),
	)
	opts := []viper.DecoderConfigOption{
		viper.DecodeHook(hook),
		WithZeroFields(),
		WithIgnoreUntagged(),
		WithErrorUnused(),
	}
	if err := vip.Unmarshal(cfg, opts...); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}
	return nil
}

func WithZeroFields() viper.DecoderConfigOption {
	return func(cfg *mapstructure.DecoderConfig) {
		cfg.ZeroFields = true
	}
}

func WithIgnoreUntagged() viper.DecoderConfigOption {
	return func(cfg *mapstructure.DecoderConfig) {
		cfg.IgnoreUntaggedFields = true
	}
}

func WithErrorUnused() viper.DecoderConfigOption {
	return func(cfg *mapstructure.DecoderConfig) {
		cfg.ErrorUnused = true
	}
}
