package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/example/layoutcanvas/internal/config"
	"github.com/example/layoutcanvas/internal/theme"
)

type configCmd struct {
	r       *root
	fs      *flag.FlagSet
	program string
}

func (c *configCmd) Program() string        { return c.program }
func (c *configCmd) FlagSet() *flag.FlagSet { return c.fs }

func parseConfigCmd(args []string, r *root) (*configCmd, error) {
	c := &configCmd{r: r, program: r.subcommand("config")}
	c.fs = flag.NewFlagSet("config", flag.ContinueOnError)
	c.fs.Usage = usageFunc(c)
	if err := c.fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, &UsageError{of: c}
		}
		return nil, err
	}
	return c, nil
}

func (c *configCmd) Run() error {
	args := c.fs.Args()
	if len(args) < 1 {
		return &UsageError{of: c}
	}
	switch args[0] {
	case "print":
		fmt.Print(c.r.config.String())
		return nil
	case "path":
		path := config.NewLoader(version, configPathOverride).GetConfigPath()
		if path == "" {
			return errors.New("no configuration file found")
		}
		fmt.Println(path)
		return nil
	case "save":
		return c.runSave()
	}
	return fmt.Errorf("unknown config command: %s", args[0])
}

func (c *configCmd) runSave() error {
	loader := config.NewLoader(version, configPathOverride)
	if existing := loader.GetConfigPath(); existing != "" && loader.OverridePath == "" {
		loader.OverridePath = existing
	}
	path, err := loader.Save(c.r.config)
	if err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Configuration saved to %s\n", path)
	return nil
}

// themeNames lists built-in themes and those defined in the config.
func themeNames(r *root) []string {
	seen := map[string]bool{}
	var out []string
	for _, n := range theme.Names() {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	if r != nil && r.config != nil {
		for n := range r.config.Themes {
			if !seen[n] {
				seen[n] = true
				out = append(out, n)
			}
		}
	}
	sort.Strings(out)
	return out
}
