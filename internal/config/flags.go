package config

import "flag"

// Flags are the command-line overrides shared by the rtin commands.
type Flags struct {
	fs *flag.FlagSet

	Config     string
	Debug      bool
	Heightmap  string
	Threshold  float64
	YScale     float64
	Wireframe  bool
	Fullscreen bool
	Width      int
	Height     int
}

// RegisterFlags defines the override flags on fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{fs: fs}
	fs.StringVar(&f.Config, "config", "", "Path to config file")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.StringVar(&f.Heightmap, "heightmap", "", "Heightmap image")
	fs.Float64Var(&f.Threshold, "threshold", 0, "Error threshold in normalized height units")
	fs.Float64Var(&f.YScale, "yscale", 0, "Vertical scale")
	fs.BoolVar(&f.Wireframe, "wireframe", false, "Emit line lists instead of triangles")
	fs.BoolVar(&f.Fullscreen, "fullscreen", false, "Run in fullscreen mode")
	fs.IntVar(&f.Width, "width", 0, "Window width")
	fs.IntVar(&f.Height, "height", 0, "Window height")
	return f
}

// apply copies every flag given on the command line into cfg.
func (f *Flags) apply(cfg *Config) {
	set := make(map[string]bool)
	if f.fs != nil {
		f.fs.Visit(func(fl *flag.Flag) { set[fl.Name] = true })
	}

	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.Heightmap != "" {
		cfg.Terrain.Heightmap = f.Heightmap
	}
	// Zero is a valid threshold, so only explicit flags override it.
	if set["threshold"] {
		cfg.Terrain.ErrorThreshold = float32(f.Threshold)
	}
	if f.YScale > 0 {
		cfg.Terrain.YScale = float32(f.YScale)
	}
	if set["wireframe"] {
		cfg.Terrain.Wireframe = f.Wireframe
	}
	if set["fullscreen"] {
		cfg.Viewer.Fullscreen = f.Fullscreen
	}
	if f.Width > 0 {
		cfg.Viewer.Width = f.Width
	}
	if f.Height > 0 {
		cfg.Viewer.Height = f.Height
	}
}
