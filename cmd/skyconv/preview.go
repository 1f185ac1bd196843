package main

import (
	"flag"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"skyconv/envmap"
	"skyconv/skybox"
)

type previewArgs struct {
	commonArgs
	tonemapArgs
	reinhard bool
}

func createPreviewCommand() *command {

	args := previewArgs{
		tonemapArgs: tonemapArgs{
			gamma: 2.2,
			scale: 1.0,
		},
		reinhard: false,
	}

	flags := flag.NewFlagSet("preview", flag.ExitOnError)

	registerCommonFlags(flags, &args.commonArgs)
	registerTonemapFlags(flags, &args.tonemapArgs)

	flags.BoolVar(&args.reinhard, "reinhard", args.reinhard, "apply reinhard tonemapping")

	return &command{
		Name: "preview",
		Help: "render .skyenv cube maps to png cross sheets",
		Run: func(self *command) {
			if self.Flags.NArg() < 1 || args.gamma <= 0 {
				printCommandUsage(self, " file-glob...")
			}
			setCommonArgs(&args.commonArgs)

			runPreview(args, gatherInputFiles(self.Flags.Args()))
		},
		Flags: flags,
	}
}

func runPreview(args previewArgs, inputFiles []string) {
	success := 0
	start := time.Now()
	for i, p := range inputFiles {
		if !cargs.quiet {
			fmt.Printf("Processing file %d/%d %q ...\n", i+1, len(inputFiles), filepath.ToSlash(filepath.Clean(p)))
		}
		err := previewFile(args, p)
		softerr(err)
		if err == nil {
			success++
		}
	}
	if !cargs.quiet {
		took := float32(time.Since(start).Milliseconds()) / 1000
		fmt.Printf("Rendered %d/%d files in %.3f seconds\n", success, len(inputFiles), took)
	}
	if success < len(inputFiles) {
		os.Exit(1)
	}
}

func previewFile(args previewArgs, p string) error {
	inFile, err := os.Open(p)
	if err != nil {
		return err
	}
	defer close(inFile)

	env, err := envmap.DecodeEnvMap(inFile)
	if err != nil {
		return fmt.Errorf("%s: %w", p, err)
	}

	sheet := skybox.CrossFromEnvMap(env)
	if args.reinhard {
		for i := range sheet.Pix {
			sheet.Pix[i] = sheet.Pix[i] / (1 + sheet.Pix[i])
		}
	}
	rgba := sheet.ToIntImage(float32(args.gamma), float32(args.scale))

	if !cargs.quiet {
		fmt.Printf("Converting to %dx%d png ...\n", sheet.Width, sheet.Height)
	}

	outDir := cargs.out
	if outDir == "" {
		outDir = filepath.Dir(p)
	}
	outFilename := filepath.Join(outDir, strings.TrimSuffix(filepath.Base(p), filepath.Ext(p))+".png")
	outFile, err := os.OpenFile(outFilename, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0666)
	if err != nil {
		return err
	}
	defer close(outFile)

	if !cargs.quiet {
		fmt.Printf("Writing %q ...\n", filepath.ToSlash(filepath.Clean(outFilename)))
	}

	err = png.Encode(outFile, rgba.ToNRGBA())
	if err != nil {
		outFile.Close()
		os.Remove(outFilename)
		return err
	}

	return nil
}
