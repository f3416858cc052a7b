package main

import "fmt"

type versionCmd struct{ r *root }

func (v *versionCmd) Run() error {
	fmt.Printf("%s version %s", v.r.program, version)
	if commit != "" {
		fmt.Printf(" (%s)", commit)
	}
	if date != "" {
		fmt.Printf(" built %s", date)
	}
	fmt.Println()
	return nil
}

type themesCmd struct{ r *root }

func (t *themesCmd) Run() error {
	for _, name := range themeNames(t.r) {
		fmt.Println(name)
	}
	return nil
}
