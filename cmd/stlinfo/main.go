// Command stlinfo summarizes STL files.
//
// For each file it prints the variant, name, and triangle count. With
// --check it compares each stored facet normal with the normal computed
// from the facet's vertices, and with --hist it plots the distribution
// of that difference.
//
// Files ending in .zst are decompressed first.
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/DataDog/zstd"
	"github.com/aclements/stl"
	"github.com/spf13/cobra"
)

type options struct {
	recompute bool
	dump      bool
	check     bool
	tolerance float64
	hist      string
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("stlinfo: ")

	if err := newRootCmd().Execute(); err != nil {
		log.Fatal(err)
	}
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "stlinfo [flags] file.stl...",
		Short: "Summarize text and binary STL files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.hist != "" && len(args) != 1 {
				return fmt.Errorf("--hist requires exactly one file, got %d", len(args))
			}
			failed := 0
			for _, path := range args {
				if err := run(cmd.OutOrStdout(), path, &opts); err != nil {
					log.Print(err)
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files failed", failed, len(args))
			}
			return nil
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	f := cmd.Flags()
	f.BoolVar(&opts.recompute, "recompute", false, "replace stored normals with computed normals")
	f.BoolVar(&opts.dump, "dump", false, "print every triangle")
	f.BoolVar(&opts.check, "check", false, "check stored normals against computed normals")
	f.Float64Var(&opts.tolerance, "tolerance", 1, "allowed normal deviation for --check, in `degrees`")
	f.StringVar(&opts.hist, "hist", "", "write a histogram of normal deviation to `file` (.png, .svg, .pdf)")
	return cmd
}

func run(w io.Writer, path string, opts *options) error {
	dec := stl.Decoder{}
	if opts.recompute {
		dec.Normals = stl.RecomputeNormals
	}
	m, err := load(&dec, path)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%s: %s, %d triangles", path, m.Format(), m.Len())
	if m.Name() != "" {
		fmt.Fprintf(w, ", name %q", m.Name())
	}
	fmt.Fprintln(w)

	if opts.dump {
		it := m.Triangles()
		for i := 0; ; i++ {
			t, ok := it.Next()
			if !ok {
				break
			}
			fmt.Fprintf(w, "Triangle %d:\n", i)
			fmt.Fprintf(w, "  normal %v\n", t.Normal)
			for _, v := range t.Vertices {
				fmt.Fprintf(w, "  %v\n", v)
			}
		}
	}

	if !opts.check && opts.hist == "" {
		return nil
	}
	a := auditNormals(m, opts.tolerance)
	if opts.check {
		printAudit(w, path, a, opts.tolerance)
	}
	if opts.hist != "" {
		if len(a.deviation) == 0 {
			log.Printf("%s: no triangles with usable normals, not writing %s", path, opts.hist)
			return nil
		}
		if err := plotDeviation(a, path, opts.hist); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return nil
}

func printAudit(w io.Writer, path string, a *normalAudit, tolerance float64) {
	for _, i := range a.nonUnit {
		fmt.Fprintf(w, "%s: triangle %d: stored normal is not unit length\n", path, i)
	}
	for _, i := range a.deviant {
		fmt.Fprintf(w, "%s: triangle %d: stored normal is more than %g° from computed normal\n", path, i, tolerance)
	}
	for _, i := range a.degenerate {
		fmt.Fprintf(w, "%s: triangle %d: degenerate\n", path, i)
	}
	if a.ok() {
		fmt.Fprintf(w, "%s: all %d normals ok\n", path, a.n)
	}
}

// load reads an STL file, decompressing it first if it ends in .zst.
func load(dec *stl.Decoder, path string) (*stl.Mesh, error) {
	if !strings.HasSuffix(path, ".zst") {
		return dec.Load(path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, &stl.Error{Kind: stl.PathError, Path: path, Err: err}
	}
	defer f.Close()
	zr := zstd.NewReader(f)
	defer zr.Close()
	m, err := dec.Decode(zr)
	if err != nil {
		var se *stl.Error
		if errors.As(err, &se) && se.Path == "" {
			se.Path = path
		}
		return nil, err
	}
	return m, nil
}
