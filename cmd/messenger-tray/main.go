// Package main is the entry point for messenger-tray.
package main

import (
	"log"
	"os"

	"github.com/SimplyPrint/messenger-tray/internal/cli"
)

func main() {
	log.SetPrefix("[messenger-tray] ")
	log.SetFlags(log.Ldate | log.Ltime)

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
