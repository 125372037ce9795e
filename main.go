package main

import (
	"os"

	"github.com/Devon-White/sitemap-harvester/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
