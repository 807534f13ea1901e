// rtintool is a CLI utility for building RTIN terrain meshes from heightmaps.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image/png"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"go.uber.org/zap"

	"github.com/Faultbox/rtin-terrain/internal/config"
	"github.com/Faultbox/rtin-terrain/internal/export"
	"github.com/Faultbox/rtin-terrain/internal/logger"
	"github.com/Faultbox/rtin-terrain/internal/terrain"
	"github.com/Faultbox/rtin-terrain/pkg/formats"
)

var errUsage = errors.New("usage")

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	name := os.Args[1]
	args := os.Args[2:]

	var err error
	switch name {
	case "info":
		err = cmdInfo(args)
	case "mesh":
		err = cmdMesh(args)
	case "sweep":
		err = cmdSweep(args)
	case "preview":
		err = cmdPreview(args)
	case "inspect":
		err = cmdInspect(args)
	case "convert":
		err = cmdConvert(args)
	case "init-config":
		err = cmdInitConfig(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", name)
		printUsage()
		os.Exit(1)
	}

	logger.Sync()
	if errors.Is(err, errUsage) {
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`rtintool - RTIN terrain mesh utility

Usage:
  rtintool <command> [options] <heightmap>

Commands:
  info <heightmap>                  Show heightmap and error tree statistics
  mesh [-o out] [-format obj|bin]   Build a mesh at -threshold and export it
  sweep [-thresholds list]          Triangle counts over a list of thresholds
  preview [-o out.png] [-size N]    Render a top-down PNG of the mesh
  inspect <mesh.bin>                Show the header of a binary mesh file
  convert -o out.png <heightmap>    Rewrite a heightmap as 16-bit PNG
  init-config [path]                Write the default config file

Common options:
  -threshold, -yscale, -wireframe, -config, -debug

Examples:
  rtintool info hills.png
  rtintool mesh -threshold 0.05 -o hills.obj hills.png
  rtintool sweep -thresholds 0.5,0.1,0.01,0 hills.png
  rtintool preview -wireframe -o hills.png.preview.png hills.png`)
}

// command is the parsed state shared by the heightmap subcommands.
type command struct {
	fs     *flag.FlagSet
	flags  *config.Flags
	cfg    *config.Config
	output string
	format string
	size   int
	work   int
}

// newCommand defines the shared flags for a subcommand. Extra flags may be
// added to c.fs before parse.
func newCommand(name string) *command {
	c := &command{fs: flag.NewFlagSet(name, flag.ContinueOnError)}
	c.flags = config.RegisterFlags(c.fs)
	c.fs.StringVar(&c.output, "o", "", "Output path (default from config, - for stdout)")
	c.fs.StringVar(&c.format, "format", "", "Export format: obj or bin")
	c.fs.IntVar(&c.size, "size", 0, "Preview image size in pixels")
	c.fs.IntVar(&c.work, "workers", 0, "Parallel workers for sweep")
	return c
}

// parse parses args, loads the config and opens the logger on stderr so
// stdout stays free for mesh output.
func (c *command) parse(args []string) error {
	if err := c.fs.Parse(args); err != nil {
		return errUsage
	}
	if c.fs.NArg() > 0 {
		c.flags.Heightmap = c.fs.Arg(0)
	}

	cfg, err := config.Load(c.flags)
	if err != nil {
		return err
	}
	if c.output != "" {
		cfg.Export.Output = c.output
	}
	if c.format != "" {
		cfg.Export.Format = c.format
	}
	if c.size > 0 {
		cfg.Export.PreviewSize = c.size
	}
	if c.work > 0 {
		cfg.Export.Workers = c.work
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.cfg = cfg

	opts := logger.Options{Level: cfg.Logging.Level, Console: true, Stderr: true}
	if cfg.Logging.LogFile != "" {
		opts.File = logger.DefaultFileOptions(cfg.Logging.LogFile)
	}
	if err := logger.Init(opts); err != nil {
		return err
	}

	if cfg.Terrain.Heightmap == "" {
		fmt.Fprintf(os.Stderr, "Usage: rtintool %s [options] <heightmap>\n", c.fs.Name())
		c.fs.PrintDefaults()
		return errUsage
	}
	return nil
}

func (c *command) open() (*terrain.Source, error) {
	return terrain.Open(c.cfg.Terrain.Heightmap)
}

func (c *command) build(src *terrain.Source) (*terrain.RenderMesh, error) {
	return src.Build(context.Background(), terrain.ParamsFromConfig(c.cfg.Terrain))
}

// createOutput opens path for writing, or stdout for "" and "-".
func createOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func cmdInfo(args []string) error {
	c := newCommand("info")
	if err := c.parse(args); err != nil {
		return err
	}
	src, err := c.open()
	if err != nil {
		return err
	}

	s := src.Stats()
	fmt.Printf("Heightmap:  %s\n", src.Name)
	fmt.Printf("Grid:       %dx%d pixels, %dx%d vertices\n", s.Side, s.Side, s.Side+1, s.Side+1)
	fmt.Printf("Samples:    %d..%d of %d\n", s.Low, s.High, s.MaxSample)
	fmt.Printf("Tree:       %d levels, %d triangles\n", s.Levels, s.TriangleCount)
	fmt.Printf("Max error:  %.6f\n", s.MaxError)
	return nil
}

func cmdMesh(args []string) error {
	c := newCommand("mesh")
	if err := c.parse(args); err != nil {
		return err
	}
	src, err := c.open()
	if err != nil {
		return err
	}
	mesh, err := c.build(src)
	if err != nil {
		return err
	}

	out, err := createOutput(c.cfg.Export.Output)
	if err != nil {
		return err
	}
	if err := export.Write(out, c.cfg.Export.Format, mesh); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	logger.Info("mesh written",
		zap.String("format", c.cfg.Export.Format),
		zap.String("output", c.cfg.Export.Output),
		zap.Int("triangles", mesh.Triangles),
		zap.Int("vertices", len(mesh.Vertices)))
	return nil
}

func cmdSweep(args []string) error {
	c := newCommand("sweep")
	list := c.fs.String("thresholds", "1,0.5,0.2,0.1,0.05,0.02,0.01,0.005,0.001,0",
		"Comma-separated error thresholds")
	if err := c.parse(args); err != nil {
		return err
	}
	thresholds, err := parseThresholds(*list)
	if err != nil {
		return err
	}
	src, err := c.open()
	if err != nil {
		return err
	}

	results, err := src.Sweep(context.Background(), thresholds, c.cfg.Export.Workers)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "threshold\ttriangles\tvertices\t")
	for _, r := range results {
		fmt.Fprintf(tw, "%g\t%d\t%d\t\n", r.Threshold, r.Triangles, r.Vertices)
	}
	return tw.Flush()
}

func cmdPreview(args []string) error {
	c := newCommand("preview")
	if err := c.parse(args); err != nil {
		return err
	}
	if c.cfg.Export.Output == "" || c.cfg.Export.Output == "-" {
		return errors.New("preview needs an output file (-o)")
	}
	src, err := c.open()
	if err != nil {
		return err
	}
	mesh, err := c.build(src)
	if err != nil {
		return err
	}

	f, err := os.Create(c.cfg.Export.Output)
	if err != nil {
		return err
	}
	if err := export.WritePreview(f, mesh, c.cfg.Export.PreviewSize); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	logger.Info("preview written", zap.String("output", c.cfg.Export.Output))
	return nil
}

func cmdInspect(args []string) error {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: rtintool inspect <mesh.bin>")
		return errUsage
	}
	m, err := formats.ParseMeshFile(args[0])
	if err != nil {
		return err
	}

	kind := "triangles"
	if m.Lines {
		kind = "lines"
	}
	fmt.Printf("File:       %s\n", args[0])
	fmt.Printf("Version:    %s\n", m.Version)
	fmt.Printf("Threshold:  %g\n", m.Threshold)
	fmt.Printf("Vertices:   %d\n", len(m.Positions))
	fmt.Printf("Primitives: %d %s\n", m.PrimitiveCount(), kind)
	return nil
}

func cmdConvert(args []string) error {
	c := newCommand("convert")
	if err := c.parse(args); err != nil {
		return err
	}
	if c.cfg.Export.Output == "" || c.cfg.Export.Output == "-" {
		return errors.New("convert needs an output file (-o)")
	}
	src, err := c.open()
	if err != nil {
		return err
	}

	f, err := os.Create(c.cfg.Export.Output)
	if err != nil {
		return err
	}
	if err := png.Encode(f, src.Heightmap().Image()); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", c.cfg.Export.Output, err)
	}
	return f.Close()
}

func cmdInitConfig(args []string) error {
	cfg := config.Default()
	if len(args) > 0 {
		return cfg.SaveTo(args[0])
	}
	return cfg.Save()
}

// parseThresholds parses a comma-separated list of non-negative thresholds.
func parseThresholds(s string) ([]float32, error) {
	var out []float32
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseFloat(part, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid threshold %q: %w", part, err)
		}
		if v < 0 {
			return nil, fmt.Errorf("threshold %q must not be negative", part)
		}
		out = append(out, float32(v))
	}
	if len(out) == 0 {
		return nil, errors.New("no thresholds given")
	}
	return out, nil
}
