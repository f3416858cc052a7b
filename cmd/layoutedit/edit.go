package main

import (
	"errors"
	"flag"
	"fmt"

	"github.com/example/layoutcanvas/internal/ui"
)

type editCmd struct {
	r       *root
	fs      *flag.FlagSet
	canvas  string
	bg      string
	output  string
	layout  string
	program string
}

func (c *editCmd) Program() string        { return c.program }
func (c *editCmd) FlagSet() *flag.FlagSet { return c.fs }

func parseEditCmd(args []string, r *root) (*editCmd, error) {
	c := &editCmd{r: r, program: r.subcommand("edit")}
	c.fs = flag.NewFlagSet("edit", flag.ContinueOnError)
	c.fs.StringVar(&c.canvas, "canvas", "", "canvas size as WxH")
	c.fs.StringVar(&c.bg, "background", "", "canvas background color")
	c.fs.StringVar(&c.output, "o", "", "file written by Ctrl+S")
	c.fs.StringVar(&c.layout, "layout", "", "detect a layout from this image on start")
	c.fs.Usage = usageFunc(c)
	if err := c.fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, &UsageError{of: c}
		}
		return nil, err
	}
	if c.fs.NArg() > 0 {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (c *editCmd) Run() error {
	opts, err := c.r.editorOptions(c.canvas, c.bg)
	if err != nil {
		return err
	}
	w := ui.New(opts,
		ui.WithOutput(c.output),
		ui.WithSaveDir(c.r.config.SaveDir),
		ui.WithNotifier(c.r.notifier),
	)
	if c.layout != "" {
		img, err := loadImage(c.layout)
		if err != nil {
			return err
		}
		if err := w.Editor.ImportLayoutFromImage(img); err != nil {
			return fmt.Errorf("import layout: %w", err)
		}
	}
	w.Run()
	return nil
}
