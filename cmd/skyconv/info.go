package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"skyconv/envmap"
	"skyconv/vtf"
)

type infoArgs struct {
	commonArgs
}

func createInfoCommand() *command {
	args := infoArgs{}

	flags := flag.NewFlagSet("info", flag.ExitOnError)

	registerCommonFlags(flags, &args.commonArgs)

	return &command{
		Name: "info",
		Help: "print vtf and .skyenv header fields",
		Run: func(self *command) {
			if self.Flags.NArg() < 1 {
				printCommandUsage(self, " file-glob...")
			}
			setCommonArgs(&args.commonArgs)

			runInfo(args, gatherInputFiles(self.Flags.Args()))
		},
		Flags: flags,
	}
}

func runInfo(args infoArgs, inputFiles []string) {
	success := 0
	for _, p := range inputFiles {
		fmt.Printf("%s:\n", filepath.ToSlash(filepath.Clean(p)))
		err := infoFile(args, p)
		softerr(err)
		if err == nil {
			success++
		}
	}
	if success < len(inputFiles) {
		os.Exit(1)
	}
}

func infoFile(args infoArgs, p string) error {
	inFile, err := os.Open(p)
	if err != nil {
		return err
	}
	defer close(inFile)

	switch strings.ToLower(filepath.Ext(p)) {
	case ".vtf":
		header, err := vtf.DecodeHeader(inFile)
		if err != nil {
			return err
		}
		printVtfHeader(header)
	case ".skyenv":
		header, err := envmap.DecodeHeader(inFile)
		if err != nil {
			return err
		}
		printEnvMapHeader(header)
	default:
		return fmt.Errorf("%s holds no known header", p)
	}
	return nil
}

func printVtfHeader(h *vtf.Header) {
	fmt.Printf("    Version:      %s\n", h.Version())
	fmt.Printf("    Size:         %dx%dx%d\n", h.Width, h.Height, h.Depth)
	fmt.Printf("    Format:       %s\n", h.Format)
	fmt.Printf("    Mipmaps:      %d\n", h.MipmapCount)
	fmt.Printf("    Frames:       %d\n", h.Frames)
	fmt.Printf("    Faces:        %d\n", h.Faces())
	fmt.Printf("    Flags:        0x%08x\n", h.Flags)
	fmt.Printf("    Reflectivity: %.3f %.3f %.3f\n", h.Reflectivity[0], h.Reflectivity[1], h.Reflectivity[2])
	if h.LowResFormat != vtf.FormatNone {
		fmt.Printf("    Thumbnail:    %dx%d %s\n", h.LowResWidth, h.LowResHeight, h.LowResFormat)
	}
	if len(h.Resources) > 0 {
		fmt.Printf("    Resources:    %d\n", len(h.Resources))
	}
}

func printEnvMapHeader(h *envmap.EnvMapHeader) {
	compression := "none"
	switch h.Compression {
	case envmap.EnvMapCompressionLZ4Fast:
		compression = "lz4 fast"
	case envmap.EnvMapCompressionLZ4:
		compression = "lz4"
	}
	fmt.Printf("    Version:      %d\n", h.Version)
	fmt.Printf("    Face size:    %dx%d\n", h.Size, h.Size)
	fmt.Printf("    Compression:  %s\n", compression)
}
