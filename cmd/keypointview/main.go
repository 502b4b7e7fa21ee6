package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"keypointview/assets"
	"keypointview/internal/config"
	"keypointview/internal/logging"
	"keypointview/internal/render"
	"keypointview/internal/session"
	"keypointview/internal/source"
	"keypointview/internal/tui"
)

type options struct {
	configPath string
	pngPath    string
	verbose    bool
}

func main() {
	os.Exit(run(os.Args[1:]))
}

// run returns the process exit code so deferred cleanup, such as closing
// the log file, happens before exiting.
func run(args []string) int {
	cfg, opts, err := parseArgs(args, os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return fail("%v", err)
	}

	level, _ := logging.ParseLevel(cfg.Log.Level)
	if opts.verbose {
		level = slog.LevelDebug
	}
	// the viewer owns the terminal, so it only logs to a file; headless
	// exports fall back to stderr
	log, closer, err := logging.OpenFile(cfg.Log.File, level)
	if err != nil {
		return fail("%v", err)
	}
	if closer != nil {
		defer closer.Close()
	} else if opts.pngPath != "" {
		log = logging.New(os.Stderr, level)
	}

	sess := newSession(cfg, log)
	if opts.pngPath != "" {
		if err := exportPNG(sess, cfg, opts.pngPath); err != nil {
			log.Error("export failed", "err", err)
			return fail("export: %v", err)
		}
		return 0
	}
	m := tui.NewWithSource(sess, cfg.Source)
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run(); err != nil {
		log.Error("viewer exited", "err", err)
		return fail("%v", err)
	}
	return 0
}

// parseArgs loads the config file, if any, and lets explicitly set flags
// override it.
func parseArgs(args []string, stderr io.Writer) (config.Config, options, error) {
	var opts options
	fs := flag.NewFlagSet("keypointview", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", "", "YAML config file.")
	src := fs.String("source", "", "Source name to load at startup.")
	mode := fs.String("mode", "", "Render mode: 2d|3d.")
	zoom := fs.Float64("zoom", 0, "2D zoom factor (0-5).")
	dist := fs.Float64("distance", 0, "3D camera distance (0-40).")
	assetsDir := fs.String("assets", "", "Directory of keypoint sources; default is the embedded bundle.")
	fs.StringVar(&opts.pngPath, "png", "", "Render once to this PNG file instead of starting the viewer.")
	width := fs.Int("width", 0, "PNG width in pixels.")
	height := fs.Int("height", 0, "PNG height in pixels.")
	logFile := fs.String("log", "", "Log file.")
	fs.BoolVar(&opts.verbose, "v", false, "Debug logging.")
	if err := fs.Parse(args); err != nil {
		return config.Config{}, opts, err
	}

	cfg := config.Default()
	if opts.configPath != "" {
		c, err := config.Load(opts.configPath)
		if err != nil {
			return config.Config{}, opts, err
		}
		cfg = c
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "source":
			cfg.Source = *src
		case "mode":
			cfg.Render.Mode = *mode
		case "zoom":
			cfg.Render.Zoom = *zoom
		case "distance":
			cfg.Render.CameraDistance = *dist
		case "assets":
			cfg.Assets = *assetsDir
		case "width":
			cfg.Render.Width = *width
		case "height":
			cfg.Render.Height = *height
		case "log":
			cfg.Log.File = *logFile
		}
	})
	if err := cfg.Validate(); err != nil {
		return config.Config{}, opts, err
	}
	return cfg, opts, nil
}

func newSession(cfg config.Config, log *slog.Logger) *session.Session {
	var f source.Fetcher = source.NewFS(assets.FS)
	if cfg.Assets != "" {
		f = source.NewDir(cfg.Assets)
	}
	opts := []session.Option{
		session.WithLogger(log),
		session.WithState(session.State{
			Mode:           cfg.Mode(),
			Zoom:           cfg.Render.Zoom,
			CameraDistance: cfg.Render.CameraDistance,
		}),
	}
	for m, p := range cfg.Policies() {
		opts = append(opts, session.WithPolicy(m, p))
	}
	return session.New(f, opts...)
}

func exportPNG(sess *session.Session, cfg config.Config, path string) error {
	if err := sess.Load(context.Background(), cfg.Source, cfg.Mode()); err != nil {
		return err
	}
	c := render.NewPNGCanvas(cfg.Render.Width, cfg.Render.Height, cfg.BackgroundColor())
	n := sess.Render(c, c.Viewport(), 0)
	if err := c.SavePNG(path); err != nil {
		return err
	}
	fmt.Printf("%s: %d segments, %s\n", path, n, sess.State().Mode)
	return nil
}

func fail(format string, args ...any) int {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	return 2
}
