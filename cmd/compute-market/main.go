package main

import (
	"os"

	"github.com/urfave/cli/v2"
)

const (
	FlagMarketRepo = "market-repo"

	Version = "0.1.0"
)

func main() {
	app := &cli.App{
		Name:                 "compute-market",
		Usage:                "A marketplace node connecting compute-resource providers and consumers, settling usage through token micropayments.",
		EnableBashCompletion: true,
		Version:              Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    FlagMarketRepo,
				EnvVars: []string{"MARKET_PATH"},
				Usage:   "market repo path",
				Value:   "~/.gridmarket",
			},
		},
		Commands: []*cli.Command{
			runCmd,
			resourceCmd,
			taskCmd,
		},
	}
	app.Setup()

	if err := app.Run(os.Args); err != nil {
		os.Stderr.WriteString("Error: " + err.Error() + "\n")
	}
}
