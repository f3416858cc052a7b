package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/example/layoutcanvas/internal/layout"
)

type importCmd struct {
	r       *root
	fs      *flag.FlagSet
	src     imageSource
	canvas  string
	bg      string
	output  string
	asJSON  bool
	program string
	stdout  io.Writer
}

func (c *importCmd) Program() string        { return c.program }
func (c *importCmd) FlagSet() *flag.FlagSet { return c.fs }

func parseImportCmd(args []string, r *root) (*importCmd, error) {
	c := &importCmd{r: r, program: r.subcommand("import"), stdout: os.Stdout}
	c.fs = flag.NewFlagSet("import", flag.ContinueOnError)
	c.src.register(c.fs)
	c.fs.StringVar(&c.canvas, "canvas", "", "canvas size as WxH")
	c.fs.StringVar(&c.bg, "background", "", "canvas background color")
	c.fs.StringVar(&c.output, "o", "", "write the placeholder layout as a PNG")
	c.fs.BoolVar(&c.asJSON, "json", false, "print the placed boxes as JSON (default when -o is not set)")
	c.fs.Usage = usageFunc(c)
	if err := c.fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, &UsageError{of: c}
		}
		return nil, err
	}
	if err := c.src.validate(c.fs.Args()); err != nil {
		return nil, err
	}
	if c.output == "" {
		c.asJSON = true
	}
	return c, nil
}

func (c *importCmd) Run() error {
	img, err := c.src.load(c.fs.Args())
	if err != nil {
		return err
	}
	opts, err := c.r.editorOptions(c.canvas, c.bg)
	if err != nil {
		return err
	}
	s := newSession(c.r, opts)
	ctx, cancel := context.WithTimeout(context.Background(), c.r.config.AI.Timeout+timeoutSlack)
	defer cancel()
	if err := s.start(ctx, func() error { return s.e.ImportLayoutFromImage(img) }); err != nil {
		return fmt.Errorf("import layout: %w", err)
	}

	if c.output != "" {
		if err := writePNG(c.output, s.e.WritePNG); err != nil {
			return err
		}
		c.r.notifier.Saved(c.output)
		fmt.Fprintf(os.Stderr, "saved %s\n", c.output)
	}
	if c.asJSON {
		boxes := s.e.Boxes.Sorted()
		out := make([]layout.Rect, 0, len(boxes))
		for _, b := range boxes {
			out = append(out, layout.Rect{X: b.X, Y: b.Y, Width: b.Width, Height: b.Height})
		}
		enc := json.NewEncoder(c.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"canvas": map[string]float64{"width": s.e.Canvas.Width, "height": s.e.Canvas.Height},
			"boxes":  out,
		})
	}
	return nil
}

func writePNG(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
