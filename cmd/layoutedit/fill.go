package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/example/layoutcanvas/internal/editor"
)

// timeoutSlack lets the collaborator's own deadline fire before ours.
const timeoutSlack = 5 * time.Second

type fillCmd struct {
	r       *root
	fs      *flag.FlagSet
	src     imageSource
	size    string
	output  string
	program string
}

func (c *fillCmd) Program() string        { return c.program }
func (c *fillCmd) FlagSet() *flag.FlagSet { return c.fs }

func parseFillCmd(args []string, r *root) (*fillCmd, error) {
	c := &fillCmd{r: r, program: r.subcommand("fill")}
	c.fs = flag.NewFlagSet("fill", flag.ContinueOnError)
	c.src.register(c.fs)
	c.fs.StringVar(&c.size, "size", "", "box size as WxH (required)")
	c.fs.StringVar(&c.output, "o", "", "output PNG (required)")
	c.fs.Usage = usageFunc(c)
	if err := c.fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, &UsageError{of: c}
		}
		return nil, err
	}
	if c.size == "" || c.output == "" {
		return nil, errors.New("-size and -o are required")
	}
	if _, err := editor.ParseSize(c.size); err != nil {
		return nil, err
	}
	if err := c.src.validate(c.fs.Args()); err != nil {
		return nil, err
	}
	return c, nil
}

// Run places the image in a single box covering a canvas of the requested
// size. Small images go through the background filler first; when it fails
// the original image is used and a warning is printed.
func (c *fillCmd) Run() error {
	img, err := c.src.load(c.fs.Args())
	if err != nil {
		return err
	}
	opts, err := c.r.editorOptions(c.size, "")
	if err != nil {
		return err
	}
	s := newSession(c.r, opts)
	b, err := s.e.Boxes.Add(0, 0, s.e.Canvas.Width, s.e.Canvas.Height)
	if err != nil {
		return err
	}
	if err := s.e.Boxes.Select(b.ID); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.r.config.AI.Timeout+timeoutSlack)
	defer cancel()
	if err := s.start(ctx, func() error { return s.e.UploadImageToActiveBox(img) }); err != nil {
		if b.Fill == nil {
			return fmt.Errorf("fill: %w", err)
		}
		log.Printf("warning: %v", err)
	}
	if err := writePNG(c.output, s.e.WritePNG); err != nil {
		return err
	}
	c.r.notifier.Saved(c.output)
	fmt.Fprintf(os.Stderr, "saved %s\n", c.output)
	return nil
}
