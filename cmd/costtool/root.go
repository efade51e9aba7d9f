package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spacemeshos/go-costtables/cmd"
	"github.com/spacemeshos/go-costtables/codec"
	"github.com/spacemeshos/go-costtables/config"
	"github.com/spacemeshos/go-costtables/costtable"
	"github.com/spacemeshos/go-costtables/log"
	"github.com/spacemeshos/go-costtables/meter"
	"github.com/spacemeshos/go-costtables/units"
)

const (
	dimInstruction = "instruction"
	dimStackHeight = "stack-height"
	dimStackSize   = "stack-size"
)

type app struct {
	fs    afero.Fs
	flags *cmd.Flags

	conf   *config.Config
	logger *zap.Logger
}

func newRootCmd(fs afero.Fs) *cobra.Command {
	a := &app{fs: fs}
	root := &cobra.Command{
		Use:           "costtool",
		Short:         "inspect cost tables and pricing equations",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       fmt.Sprintf("%s+%s", cmd.Version, cmd.Commit),
		PersistentPreRunE: func(c *cobra.Command, _ []string) error {
			conf, err := a.flags.LoadConfig(a.fs)
			if err != nil {
				return err
			}
			logger, err := log.NewWithWriter(c.ErrOrStderr(), "costtool", conf.Logging.Level, conf.Logging.Encoder)
			if err != nil {
				return err
			}
			fingerprint, err := conf.Table().Hash()
			if err != nil {
				logger.Error("invalid cost table", log.Err(err))
				return err
			}
			a.conf = conf
			a.logger = logger
			logger.Debug("loaded config",
				zap.String("preset", conf.Preset),
				zap.String("file", a.flags.ConfigFile),
				zap.String("table", fingerprint.ShortString()),
			)
			return nil
		},
	}
	a.flags = cmd.AddCommands(root)
	root.AddCommand(a.tierCmd(), a.priceCmd(), a.chargeCmd(), a.dumpCmd())
	return root
}

func (a *app) tierCmd() *cobra.Command {
	var (
		dimension string
		counter   uint64
	)
	c := &cobra.Command{
		Use:   "tier",
		Short: "print cost per unit at a counter value and where the next tier starts",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			table := a.conf.Table()
			var cost, next uint64
			var bounded bool
			switch dimension {
			case dimInstruction:
				cost, next, bounded = table.InstructionTier(counter)
			case dimStackHeight:
				cost, next, bounded = table.StackHeightTier(counter)
			case dimStackSize:
				cost, next, bounded = table.StackSizeTier(counter)
			default:
				return fmt.Errorf("unknown dimension %q. select one of %s, %s, %s",
					dimension, dimInstruction, dimStackHeight, dimStackSize)
			}
			fmt.Fprintf(c.OutOrStdout(), "cost: %d\nnext: %s\n", cost, formatNext(next, bounded))
			return nil
		},
	}
	c.Flags().StringVarP(&dimension, "dimension", "d", dimInstruction, "one of instruction, stack-height, stack-size")
	c.Flags().Uint64Var(&counter, "counter", 0, "counter value to look up")
	return c
}

func (a *app) priceCmd() *cobra.Command {
	var size uint64
	c := &cobra.Command{
		Use:   "price",
		Short: "print internal gas charged for publishing size bytes",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			cost, err := a.conf.Equations().PublishCost(units.New[units.ByteUnit](size))
			if err != nil {
				return err
			}
			fmt.Fprintf(c.OutOrStdout(), "internal gas: %s\ngas: %s\n", cost, units.ToGas(cost))
			return nil
		},
	}
	c.Flags().Uint64Var(&size, "size", 0, "size in bytes")
	return c
}

func (a *app) chargeCmd() *cobra.Command {
	var steps, instructions, pushes, pops, incr, decr uint64
	c := &cobra.Command{
		Use:   "charge",
		Short: "charge repeated execution steps against the configured budget",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			status := meter.New(a.conf.Table(), a.conf.Budget(), meter.WithLogger(a.logger.Named("meter")))
			var executed uint64
			var err error
			for ; executed < steps; executed++ {
				if err = status.Charge(instructions, pushes, pops, incr, decr); err != nil {
					a.logger.Debug("charge failed", zap.Uint64("step", executed), log.Err(err))
					break
				}
			}
			out := c.OutOrStdout()
			fmt.Fprintf(out, "steps: %d\n", executed)
			fmt.Fprintf(out, "used: %s\nremaining: %s\n", status.Used(), status.Remaining())
			fmt.Fprintf(out, "stack height high water mark: %d\n", status.StackHeightHighWaterMark())
			fmt.Fprintf(out, "stack size high water mark: %d\n", status.StackSizeHighWaterMark())
			return err
		},
	}
	c.Flags().Uint64Var(&steps, "steps", 1, "number of steps")
	c.Flags().Uint64Var(&instructions, "instructions", 1, "instructions executed in every step")
	c.Flags().Uint64Var(&pushes, "pushes", 0, "values pushed in every step")
	c.Flags().Uint64Var(&pops, "pops", 0, "values popped in every step")
	c.Flags().Uint64Var(&incr, "grow", 0, "bytes added to the stack in every step")
	c.Flags().Uint64Var(&decr, "shrink", 0, "bytes removed from the stack in every step")
	return c
}

func (a *app) dumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "print tiers, fingerprint and scale encoding of the cost table",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			table := a.conf.Table()
			out := c.OutOrStdout()
			for _, dim := range []struct {
				name  string
				def   uint64
				tiers costtable.Tiers
			}{
				{dimInstruction, costtable.InstructionTierDefault, table.Instructions()},
				{dimStackHeight, costtable.StackHeightTierDefault, table.StackHeight()},
				{dimStackSize, costtable.StackSizeTierDefault, table.StackSize()},
			} {
				fmt.Fprintf(out, "%s (default %d)\n", dim.name, dim.def)
				renderTiers(out, dim.tiers)
			}
			fingerprint, err := table.Hash()
			if err != nil {
				return err
			}
			encoded, err := codec.Encode(table)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "hash: %s\nscale: %s\n", fingerprint, hex.EncodeToString(encoded))
			return nil
		},
	}
}

func renderTiers(w io.Writer, tiers costtable.Tiers) {
	tw := tablewriter.NewWriter(w)
	tw.SetHeader([]string{"start", "cost", "next"})
	entries := tiers.Entries()
	for i, tier := range entries {
		next := "none"
		if i+1 < len(entries) {
			next = strconv.FormatUint(entries[i+1].Start, 10)
		}
		tw.Append([]string{
			strconv.FormatUint(tier.Start, 10),
			strconv.FormatUint(tier.Cost, 10),
			next,
		})
	}
	tw.Render()
}

func formatNext(next uint64, bounded bool) string {
	if !bounded {
		return "none"
	}
	return strconv.FormatUint(next, 10)
}
