package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"

	"github.com/Carmen-Shannon/oxy-surface/common"
	"github.com/Carmen-Shannon/oxy-surface/engine/exporter"
	"github.com/Carmen-Shannon/oxy-surface/engine/geometry"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/spf13/cobra"
)

func newExportCommand(c *cli) *cobra.Command {
	var (
		flags surfaceFlags
		out   string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the surface as a binary glTF (.glb) file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p := flags.params(cmd, c.cfg.Params()).Clamped()
			path := out
			if path == "" {
				path = fmt.Sprintf("%s-%dx%d.glb", p.Kind, p.Rings, p.Slices)
			}

			m := p.Generate()
			if err := writeGLBFile(path, p.String(), m, mgl32.Vec3(c.cfg.Surface.Color)); err != nil {
				return err
			}

			common.Logger().Info("surface exported", "path", path, "surface", p)
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s: %d vertices, %d triangles, %s indices\n",
				path, m.VertexCount(), m.TriangleCount(), m.IndexFormat())
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", "", "output path (default <kind>-<rings>x<slices>.glb)")
	return cmd
}

// writeGLBFile writes m to path, removing a partially written file on failure.
func writeGLBFile(path, name string, m *geometry.Mesh, color mgl32.Vec3) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			err = errors.Join(err, os.Remove(path))
		}
	}()

	w := bufio.NewWriter(f)
	if err := exporter.WriteGLB(w, m, name, exporter.WithBaseColor(color)); err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	return w.Flush()
}
