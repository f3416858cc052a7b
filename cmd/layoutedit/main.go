package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/example/layoutcanvas/internal/ai"
	"github.com/example/layoutcanvas/internal/config"
	"github.com/example/layoutcanvas/internal/editor"
	"github.com/example/layoutcanvas/internal/notify"
	"github.com/example/layoutcanvas/internal/theme"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

type runnable interface{ Run() error }

type root struct {
	fs          *flag.FlagSet
	program     string
	config      *config.Config
	notifier    *notify.Notifier
	themeName   string
	endpoint    string
	detector    string
	filler      string
	activeTheme *theme.Theme
}

func (r *root) Program() string {
	return r.program
}

func (r *root) FlagSet() *flag.FlagSet {
	return r.fs
}

func (r *root) subcommand(name string) string {
	return strings.TrimSpace(strings.Join([]string{r.program, name}, " "))
}

func newRoot() *root {
	loader := config.NewLoader(version, configPathOverride)
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load config: %v\n", err)
		cfg = config.New()
	}

	r := &root{
		fs:      flag.NewFlagSet("layoutedit", flag.ExitOnError),
		program: "layoutedit",
		config:  cfg,
	}
	r.fs.BoolVar(&cfg.Notify.Layout, "notify-layout", cfg.Notify.Layout, "show a desktop notification when layout detection finishes")
	r.fs.BoolVar(&cfg.Notify.Fill, "notify-fill", cfg.Notify.Fill, "show a desktop notification when a background fill finishes")
	r.fs.BoolVar(&cfg.Notify.Export, "notify-export", cfg.Notify.Export, "show a desktop notification after saving a PNG")
	r.fs.BoolVar(&cfg.Notify.Copy, "notify-copy", cfg.Notify.Copy, "show a desktop notification after copying to the clipboard")
	r.fs.BoolVar(&cfg.Notify.Error, "notify-error", cfg.Notify.Error, "show a desktop notification when an operation fails")

	// Precedence: CLI > Env > Config > Default
	r.fs.StringVar(&r.themeName, "theme", "", "color theme to use ("+strings.Join(theme.Names(), ", ")+")")
	r.fs.StringVar(&r.endpoint, "ai-endpoint", cfg.AI.Endpoint, "base URL of the layout detection and background fill service")
	r.fs.StringVar(&r.detector, "detector", cfg.AI.Detector, "layout detector: http, contour or none")
	r.fs.StringVar(&r.filler, "filler", cfg.AI.Filler, "background filler: http, blur or none")
	r.fs.Usage = usageFunc(r)
	return r
}

func (r *root) Run(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		return err
	}
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}
	r.notifier = notify.New(notify.LoadPreferences(r.config.Notify))
	r.activeTheme = r.resolveTheme()

	cmdName := r.fs.Arg(0)
	subArgs := r.fs.Args()[1:]

	var (
		cmd runnable
		err error
	)
	switch cmdName {
	case "edit":
		cmd, err = parseEditCmd(subArgs, r)
	case "import":
		cmd, err = parseImportCmd(subArgs, r)
	case "fill":
		cmd, err = parseFillCmd(subArgs, r)
	case "config":
		cmd, err = parseConfigCmd(subArgs, r)
	case "themes":
		cmd = &themesCmd{r: r}
	case "version":
		cmd = &versionCmd{r: r}
	default:
		err = &UsageError{of: r}
	}
	if err != nil {
		return err
	}
	return cmd.Run()
}

func (r *root) resolveTheme() *theme.Theme {
	name := r.themeName
	if name == "" {
		name = os.Getenv("LAYOUTEDIT_THEME")
	}
	if name == "" {
		name = r.config.Theme
	}
	if t, ok := r.config.LookupTheme(name); ok {
		return t
	}
	t, err := theme.NewLoader().Load(name)
	if err != nil {
		if name != "" && name != "default" {
			fmt.Fprintf(os.Stderr, "warning: failed to load theme '%s': %v. using default.\n", name, err)
		}
		return theme.Default()
	}
	return t
}

func (r *root) aiSettings() ai.Settings {
	return ai.Settings{
		Endpoint: r.endpoint,
		Timeout:  r.config.AI.Timeout,
		Detector: strings.ToLower(r.detector),
		Filler:   strings.ToLower(r.filler),
	}
}

// editorOptions turns configuration into editor options. The canvas flag
// overrides the configured canvas size when set.
func (r *root) editorOptions(canvas, background string) ([]editor.Option, error) {
	s := r.aiSettings()
	det, err := newDetectorFn(s)
	if err != nil {
		return nil, fmt.Errorf("layout detector: %w", err)
	}
	fil, err := newFillerFn(s)
	if err != nil {
		return nil, fmt.Errorf("background filler: %w", err)
	}
	opts := []editor.Option{
		editor.WithTheme(r.activeTheme),
		editor.WithPresets(editor.NewPresets(r.config.Presets...)),
		editor.WithTimeout(s.Timeout),
		editor.WithPlaceholderLabels(true),
	}
	if det != nil {
		opts = append(opts, editor.WithDetector(det))
	}
	if fil != nil {
		opts = append(opts, editor.WithFiller(fil))
	}
	if canvas == "" {
		canvas = r.config.Canvas
	}
	if canvas != "" {
		sz, err := editor.ParseSize(canvas)
		if err != nil {
			return nil, fmt.Errorf("canvas: %w", err)
		}
		opts = append(opts, editor.WithCanvasSize(float64(sz.Width), float64(sz.Height)))
	}
	if background != "" {
		c, err := theme.ParseColor(background)
		if err != nil {
			return nil, fmt.Errorf("background: %w", err)
		}
		opts = append(opts, editor.WithBackground(c))
	} else if r.config.Background != nil {
		opts = append(opts, editor.WithBackground(*r.config.Background))
	}
	return opts, nil
}

var (
	newDetectorFn = ai.NewDetector
	newFillerFn   = ai.NewFiller
)

func main() {
	r := newRoot()
	if err := r.Run(os.Args[1:]); err != nil {
		var uerr *UsageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(os.Stderr, uerr.Error())
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
