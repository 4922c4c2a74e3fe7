package reconstruct

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/SirZenith/retex/reconstruct"
	"github.com/charmbracelet/log"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"
)

type options struct {
	outputDir string
	fullLatex bool
}

func Cmd() *cli.Command {
	return &cli.Command{
		Name:  "reconstruct",
		Usage: "replace rendered math in HTML files with reconstructed LaTeX source",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "path to output directory, input files are overwritten in place when no value is given",
			},
			&cli.BoolFlag{
				Name:  "full",
				Usage: "convert whole documents into LaTeX bodies instead of keeping HTML structure",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			opts := options{
				outputDir: cmd.String("output"),
				fullLatex: cmd.Bool("full"),
			}

			targets := cmd.Args().Slice()
			if len(targets) == 0 {
				return fmt.Errorf("no input file is given")
			}

			return cmdMain(opts, targets)
		},
	}
}

func cmdMain(opts options, targets []string) error {
	if opts.outputDir != "" {
		if err := os.MkdirAll(opts.outputDir, 0o755); err != nil {
			return fmt.Errorf("failed to make output directory: %w", err)
		}
	}

	var bar *progressbar.ProgressBar
	if len(targets) > 1 {
		bar = progressbar.Default(int64(len(targets)), "reconstructing")
	}

	for _, target := range targets {
		if err := processFile(opts, target); err != nil {
			log.Errorf("%s: %s", target, err)
		}

		if bar != nil {
			bar.Add(1)
		}
	}

	return nil
}

func processFile(opts options, target string) error {
	data, err := os.ReadFile(target)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	total := 0
	pipeline := reconstruct.New(reconstruct.Options{
		HTMLOutput: !opts.fullLatex,
		Observe: func(_ *reconstruct.MathNode) {
			total++
		},
	})

	var output string
	outPath := target
	if opts.fullLatex {
		output = pipeline.ProcessToLatex(string(data))
		outPath = strings.TrimSuffix(outPath, filepath.Ext(outPath)) + ".tex"
	} else {
		output = pipeline.Process(string(data))
	}

	if opts.outputDir != "" {
		outPath = filepath.Join(opts.outputDir, filepath.Base(outPath))
	}

	log.Debugf("%s: %d math nodes reconstructed", target, total)

	if err := os.WriteFile(outPath, []byte(output), 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	return nil
}
