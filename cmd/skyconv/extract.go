package main

import (
	"flag"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"skyconv/libio"
	"skyconv/vtf"
)

type extractArgs struct {
	commonArgs
	tonemapArgs
	hdr bool
}

func createExtractCommand() *command {

	args := extractArgs{
		tonemapArgs: tonemapArgs{
			gamma: 1.0,
			scale: 1.0,
		},
	}

	flags := flag.NewFlagSet("extract", flag.ExitOnError)

	registerCommonFlags(flags, &args.commonArgs)
	registerTonemapFlags(flags, &args.tonemapArgs)

	flags.BoolVar(&args.hdr, "hdr", args.hdr, "write float textures as radiance hdr instead of png")

	return &command{
		Name: "extract",
		Help: "extract single vtf textures to png or radiance hdr",
		Run: func(self *command) {
			if self.Flags.NArg() < 1 || args.gamma <= 0 {
				printCommandUsage(self, " file-glob...")
			}
			setCommonArgs(&args.commonArgs)

			runExtract(args, gatherInputFiles(self.Flags.Args()))
		},
		Flags: flags,
	}
}

func runExtract(args extractArgs, inputFiles []string) {
	success := 0
	start := time.Now()
	for i, p := range inputFiles {
		if !cargs.quiet {
			fmt.Printf("Processing file %d/%d %q ...\n", i+1, len(inputFiles), filepath.ToSlash(filepath.Clean(p)))
		}
		err := extractFile(args, p)
		softerr(err)
		if err == nil {
			success++
		}
	}
	if !cargs.quiet {
		took := float32(time.Since(start).Milliseconds()) / 1000
		fmt.Printf("Extracted %d/%d files in %.3f seconds\n", success, len(inputFiles), took)
	}
	if success < len(inputFiles) {
		os.Exit(1)
	}
}

func extractFile(args extractArgs, p string) error {
	inFile, err := os.Open(p)
	if err != nil {
		return err
	}
	defer close(inFile)

	tex, err := vtf.Decode(inFile)
	if err != nil {
		return fmt.Errorf("%s: %w", p, err)
	}

	ext := ".png"
	if args.hdr {
		if !tex.IsHDR() {
			return fmt.Errorf("%s: %s is not a float format", p, tex.Header.Format)
		}
		ext = ".hdr"
	}

	outDir := cargs.out
	if outDir == "" {
		outDir = filepath.Dir(p)
	}
	outFilename := filepath.Join(outDir, strings.TrimSuffix(filepath.Base(p), filepath.Ext(p))+ext)
	outFile, err := os.OpenFile(outFilename, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0666)
	if err != nil {
		return err
	}
	defer close(outFile)

	if !cargs.quiet {
		fmt.Printf("Writing %q ...\n", filepath.ToSlash(filepath.Clean(outFilename)))
	}

	if args.hdr {
		err = libio.EncodeHdr(outFile, tex.Hdr.ToChannels(3))
	} else {
		rgba := tex.Rgba
		if tex.IsHDR() {
			rgba = tex.Hdr.ToChannels(3).ToIntImage(float32(args.gamma), float32(args.scale)).ToChannels(4, 0xff)
		}
		err = png.Encode(outFile, rgba.ToNRGBA())
	}
	if err != nil {
		outFile.Close()
		os.Remove(outFilename)
		return err
	}

	return nil
}
