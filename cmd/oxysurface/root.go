package main

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-surface/common"
	"github.com/Carmen-Shannon/oxy-surface/engine/config"
	"github.com/Carmen-Shannon/oxy-surface/engine/geometry"
	"github.com/spf13/cobra"
)

// cli carries state shared by every subcommand once the root pre-run has loaded it.
type cli struct {
	configPath string
	logLevel   string
	cfg        config.Config
}

func newRootCommand() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:          "oxysurface",
		Short:        "Generate, view and export tessellated spheres and tori",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.load(cmd)
		},
	}
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "oxysurface.toml", "TOML configuration file (missing file means defaults)")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "override the configured log level (debug, info, warn, error)")

	root.AddCommand(
		newViewCommand(c),
		newExportCommand(c),
		newCheckCommand(c),
		newInfoCommand(c),
		newConfigCommand(c),
	)
	return root
}

// load reads the configuration and installs the shared logger on stderr.
func (c *cli) load(cmd *cobra.Command) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}

	level := cfg.LogLevel
	if c.logLevel != "" {
		if err := level.UnmarshalText([]byte(c.logLevel)); err != nil {
			return fmt.Errorf("--log-level: %w", err)
		}
	}

	common.SetLogger(common.NewTextLogger(cmd.ErrOrStderr(), level))
	common.Logger().Debug("configuration loaded", "path", c.configPath, "level", level)
	c.cfg = cfg
	return nil
}

// surfaceFlags lets a subcommand override the configured surface.
type surfaceFlags struct {
	kind   geometry.Kind
	rings  int
	slices int
}

func (f *surfaceFlags) register(cmd *cobra.Command) {
	cmd.Flags().VarP(&f.kind, "kind", "k", "surface kind (sphere or torus)")
	cmd.Flags().IntVarP(&f.rings, "rings", "r", 0, "ring count (clamped to the kind's minimum)")
	cmd.Flags().IntVarP(&f.slices, "slices", "s", 0, "slice count (clamped to the minimum of 3)")
}

// params returns base with every flag the user actually set applied over it.
func (f *surfaceFlags) params(cmd *cobra.Command, base geometry.Params) geometry.Params {
	if cmd.Flags().Changed("kind") {
		base.Kind = f.kind
	}
	if cmd.Flags().Changed("rings") {
		base.Rings = f.rings
	}
	if cmd.Flags().Changed("slices") {
		base.Slices = f.slices
	}
	return base
}

