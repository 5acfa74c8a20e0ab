package main

import (
	"fmt"
	"os"

	"github.com/btc-alpha-stack/alpha-stack/cmd/alphastack/internal/cli"
)

func main() {
	app, err := cli.NewApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := app.Run(); err != nil {
		os.Exit(1)
	}
}
