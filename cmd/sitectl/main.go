// Package main runs the site operator CLI.
package main

import (
	"os"

	"github.com/kakascoaching/site/internal/cmd/sitectl"
	"github.com/kakascoaching/site/internal/platform/config"
)

func main() {
	if err := sitectl.Execute(os.Args[1:]); err != nil {
		config.Exitf("sitectl: %v", err)
	}
}
