package main

import (
	"context"
	"fmt"
	"os"

	cmd_reconstruct "github.com/SirZenith/retex/cmd/reconstruct"
	"github.com/urfave/cli/v3"
)

func main() {
	cmd := &cli.Command{
		Name:    "retex",
		Usage:   "recover LaTeX source from documents containing rendered mathematics",
		Version: "0.1.0",
		Commands: []*cli.Command{
			cmd_reconstruct.Cmd(),
		},
	}

	err := cmd.Run(context.Background(), os.Args)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
