package config

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/spacemeshos/go-costtables/costtable"
	"github.com/spacemeshos/go-costtables/pricing"
	"github.com/spacemeshos/go-costtables/units"
)

func load(t *testing.T, name, content string) (Config, error) {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, name, []byte(content), 0o600))
	vip := viper.New()
	vip.SetFs(fs)
	if err := LoadConfig(name, vip); err != nil {
		return Config{}, err
	}
	cfg := DefaultConfig()
	err := Unmarshal(vip, &cfg)
	return cfg, err
}

func TestLoadFormats(t *testing.T) {
	expected := TierMap{0: 1, 1000: 2, 10000: 4}
	for _, tc := range []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "toml",
			file: "/costs.toml",
			content: `
[costs.instruction-tiers]
0 = 1
1000 = 2
10000 = 4

[meter]
budget = 500
`,
		},
		{
			name: "json",
			file: "/costs.json",
			content: `{
  "costs": {"instruction-tiers": {"0": 1, "1000": 2, "10000": 4}},
  "meter": {"budget": 500}
}`,
		},
		{
			name: "yaml",
			file: "/costs.yaml",
			content: `
costs:
  instruction-tiers:
    "0": 1
    "1000": 2
    "10000": 4
meter:
  budget: 500
`,
		},
		{
			name: "string",
			file: "/costs.toml",
			content: `
[costs]
instruction-tiers = "0:1, 1000:2, 10000:4"

[meter]
budget = 500
`,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := load(t, tc.file, tc.content)
			require.NoError(t, err)
			require.Empty(t, cmp.Diff(expected, cfg.Costs.InstructionTiers))
			require.Equal(t, uint64(500), cfg.Meter.Budget)
			require.Empty(t, cfg.Costs.StackHeightTiers)
			require.Equal(t, DefaultConfig().Pricing, cfg.Pricing)
			require.NoError(t, cfg.Validate())

			cost, next, bounded := cfg.Table().InstructionTier(500)
			require.Equal(t, uint64(1), cost)
			require.Equal(t, uint64(1000), next)
			require.True(t, bounded)
		})
	}
}

func TestLoadOverridesTiers(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/costs.toml", []byte(`
[costs.stack-size-tiers]
0 = 3
`), 0o600))
	vip := viper.New()
	vip.SetFs(fs)
	require.NoError(t, LoadConfig("/costs.toml", vip))

	cfg := DefaultConfig()
	cfg.Costs.StackSizeTiers = TierMap{0: 1, 100: 2}
	cfg.Costs.InstructionTiers = TierMap{0: 1, 5: 7}
	require.NoError(t, Unmarshal(vip, &cfg))
	require.Equal(t, TierMap{0: 3}, cfg.Costs.StackSizeTiers, "tiers from a file replace tiers")
	require.Equal(t, TierMap{0: 1, 5: 7}, cfg.Costs.InstructionTiers)
}

func TestLoadErrors(t *testing.T) {
	t.Run("unknown key", func(t *testing.T) {
		_, err := load(t, "/costs.toml", "[meter]\nbudgett = 1\n")
		require.ErrorContains(t, err, "budgett")
	})
	t.Run("negative cost", func(t *testing.T) {
		_, err := load(t, "/costs.toml", "[costs.stack-size-tiers]\n0 = -1\n")
		require.ErrorContains(t, err, "negative")
	})
	t.Run("bad start", func(t *testing.T) {
		_, err := load(t, "/costs.json", `{"costs": {"stack-height-tiers": {"x": 1}}}`)
		require.Error(t, err)
	})
	t.Run("fractional cost", func(t *testing.T) {
		_, err := load(t, "/costs.json", `{"costs": {"stack-height-tiers": {"1": 1.5}}}`)
		require.ErrorContains(t, err, "not an unsigned integer")
	})
	t.Run("duplicate start", func(t *testing.T) {
		content := "[costs.instruction-tiers]\n\"1000\" = 2\n\"01000\" = 9\n"
		for i := 0; i < 20; i++ {
			_, err := load(t, "/costs.toml", content)
			require.ErrorContains(t, err, "duplicate tier start 1000")
		}
	})
	t.Run("missing file", func(t *testing.T) {
		vip := viper.New()
		vip.SetFs(afero.NewMemMapFs())
		require.Error(t, LoadConfig("/missing.toml", vip))
	})
	t.Run("missing default file", func(t *testing.T) {
		vip := viper.New()
		vip.SetFs(afero.NewMemMapFs())
		require.NoError(t, LoadConfig("", vip))
	})
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	t.Run("bounds", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Pricing.PublishPerByte.Min = cfg.Pricing.PublishPerByte.Max + 1
		require.ErrorIs(t, cfg.Validate(), pricing.ErrInvalidBounds)
	})
	t.Run("too many tiers", func(t *testing.T) {
		cfg := DefaultConfig()
		for i := uint64(0); i <= costtable.MaxTiers; i++ {
			cfg.Costs.StackHeightTiers[i] = 1
		}
		require.ErrorContains(t, cfg.Validate(), "stack-height-tiers")
	})
	t.Run("budget", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Meter.Budget = 0
		require.ErrorContains(t, cfg.Validate(), "budget")
	})
	t.Run("logging", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Logging.Encoder = "xml"
		require.ErrorContains(t, cfg.Validate(), "xml")
		cfg.Logging = DefaultLoggingConfig()
		cfg.Logging.Level = "loud"
		require.ErrorContains(t, cfg.Validate(), "logging level")
	})
}

func TestEquations(t *testing.T) {
	cfg := DefaultConfig()
	require.Equal(t, pricing.DefaultEquations(), cfg.Equations())
	require.Equal(t, units.New[units.GasUnit](DefaultBudget), cfg.Budget())

	cfg.Pricing.PublishPerByte = LinearConfig{Offset: 100, Slope: 5, Min: 0, Max: 1000}
	cost, err := cfg.Equations().PublishCost(units.New[units.ByteUnit](50))
	require.NoError(t, err)
	require.Equal(t, uint64(350), cost.Uint64())
}

func TestTierMapText(t *testing.T) {
	var m TierMap
	require.NoError(t, m.Set("10000:4,0:1, 1000:2"))
	require.Equal(t, TierMap{0: 1, 1000: 2, 10000: 4}, m)
	require.Equal(t, "0:1,1000:2,10000:4", m.String())
	require.Equal(t, "tiers", m.Type())

	require.NoError(t, m.Set(""))
	require.Empty(t, m)

	require.ErrorContains(t, m.Set("1:2,1:3"), "duplicate")
	require.ErrorContains(t, m.Set("12"), "start:cost")
	require.Error(t, m.Set("a:1"))
	require.Error(t, m.Set("1:-1"))

	table := costtable.NewTable(TierMap{0: 1, 1000: 2}, nil, nil)
	require.Equal(t, 2, table.Instructions().Len())
}
