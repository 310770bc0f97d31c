package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/Carmen-Shannon/oxy-surface/engine/batch"
	"github.com/Carmen-Shannon/oxy-surface/engine/exporter"
	"github.com/Carmen-Shannon/oxy-surface/engine/geometry"
	"github.com/spf13/cobra"
)

// ErrCheckFailed is returned when at least one inspected mesh is unsound.
var ErrCheckFailed = errors.New("mesh check failed")

func newCheckCommand(_ *cli) *cobra.Command {
	var (
		kinds     []string
		maxRings  int
		maxSlices int
		workers   int
		verbose   bool
	)
	cmd := &cobra.Command{
		Use:   "check [file.glb ...]",
		Short: "Inspect generated meshes, or .glb files, for structural defects",
		Long: `Without arguments, generates every ring and slice count from each kind's minimums up to
--max-rings and --max-slices and inspects each mesh. With arguments, inspects the given
.glb files instead. Exits non-zero when any mesh fails.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return checkFiles(cmd.OutOrStdout(), args)
			}

			var params []geometry.Params
			for _, name := range kinds {
				kind, err := geometry.ParseKind(name)
				if err != nil {
					return err
				}
				params = append(params, batch.Grid(kind, maxRings, maxSlices)...)
			}
			return checkSweep(cmd.OutOrStdout(), params, workers, verbose)
		},
	}
	cmd.Flags().StringSliceVar(&kinds, "kinds", []string{"sphere", "torus"}, "surface kinds to sweep")
	cmd.Flags().IntVar(&maxRings, "max-rings", 32, "largest ring count in the sweep")
	cmd.Flags().IntVar(&maxSlices, "max-slices", 32, "largest slice count in the sweep")
	cmd.Flags().IntVarP(&workers, "workers", "j", 0, "concurrent generators (0 uses every CPU)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print every mesh, not only failures")
	return cmd
}

func checkSweep(w io.Writer, params []geometry.Params, workers int, verbose bool) error {
	start := time.Now()
	results := batch.Sweep(params, workers)
	failed := batch.Failures(results)

	if verbose {
		printResults(w, results)
	} else if len(failed) > 0 {
		printResults(w, failed)
	}

	fmt.Fprintf(w, "checked %d meshes in %s: %d failed\n",
		len(results), time.Since(start).Round(time.Millisecond), len(failed))
	if len(failed) > 0 {
		return fmt.Errorf("%w: %d of %d meshes", ErrCheckFailed, len(failed), len(results))
	}
	return nil
}

func printResults(w io.Writer, results []batch.Result) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SURFACE\tINDICES\tREPORT")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Params, r.IndexFormat, r.Report)
	}
	tw.Flush()
}

func checkFiles(w io.Writer, paths []string) error {
	var failed int
	for _, path := range paths {
		name, report, err := inspectFile(path)
		if err != nil {
			return err
		}
		if !report.OK() {
			failed++
		}
		fmt.Fprintf(w, "%s (%s): %s\n", path, name, report)
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d files", ErrCheckFailed, failed, len(paths))
	}
	return nil
}

func inspectFile(path string) (string, geometry.Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", geometry.Report{}, err
	}
	defer f.Close()

	m, name, err := exporter.ReadGLB(f)
	if err != nil {
		return "", geometry.Report{}, fmt.Errorf("%s: %w", path, err)
	}
	return name, geometry.Inspect(m), nil
}
