package main

import (
	"flag"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"skyconv/envmap"
	"skyconv/libio"
	"skyconv/skybox"
)

// gamma used to linearize 8 bit sources before cube map encoding
const srgbGamma = 2.2

type convertArgs struct {
	commonArgs
	tonemapArgs
	name      string
	layout    layout
	orient    orient
	materials bool
	moondome  bool
	delete    bool
	envmap    bool
	compress  int
}

func createConvertCommand() *command {

	args := convertArgs{
		tonemapArgs: tonemapArgs{
			gamma: 1.0,
			scale: 1.0,
		},
		layout:   layoutFaces,
		orient:   orientAuto,
		compress: 2,
	}

	flags := flag.NewFlagSet("convert", flag.ExitOnError)

	registerCommonFlags(flags, &args.commonArgs)
	registerTonemapFlags(flags, &args.tonemapArgs)

	flags.StringVar(&args.name, "name", args.name, "the skybox name, defaults to the directory name")
	flags.StringVar(&args.name, "n", args.name, "shorthand for name")
	flags.Var(&args.layout, "layout", "the output layout; faces or cross")
	flags.Var(&args.orient, "orient", "the face orientation preset; auto, default or exr")
	flags.BoolVar(&args.materials, "materials", args.materials, "write the skybox material")
	flags.BoolVar(&args.moondome, "moondome", args.moondome, "write the moondome material")
	flags.BoolVar(&args.delete, "delete", args.delete, "remove vtf sources and their vmt materials on success")
	flags.BoolVar(&args.envmap, "envmap", args.envmap, "additionally write a .skyenv cube map")
	flags.IntVar(&args.compress, "compress", args.compress, "the cube map compression level from 0 (none) to 10 (high)")
	flags.IntVar(&args.compress, "c", args.compress, "shorthand for compress")

	return &command{
		Name: "convert",
		Help: "convert directories of skybox faces to engine skyboxes",
		Run: func(self *command) {
			if args.compress < 0 || args.compress > 10 || args.gamma <= 0 {
				printCommandUsage(self, " [directory-glob...]")
			}
			setCommonArgs(&args.commonArgs)

			runConvert(args, gatherInputDirs(self.Flags.Args()))
		},
		Flags: flags,
	}
}

func runConvert(args convertArgs, inputDirs []string) {
	success := 0
	start := time.Now()
	for i, p := range inputDirs {
		if !cargs.quiet {
			fmt.Printf("Processing skybox %d/%d %q ...\n", i+1, len(inputDirs), filepath.ToSlash(filepath.Clean(p)))
		}
		err := convertDir(args, p)
		softerr(err)
		if err == nil {
			success++
		}
	}
	if !cargs.quiet {
		took := float32(time.Since(start).Milliseconds()) / 1000
		fmt.Printf("Converted %d/%d skyboxes in %.3f seconds\n", success, len(inputDirs), took)
	}
	if success < len(inputDirs) {
		os.Exit(1)
	}
}

func convertDir(args convertArgs, dir string) error {
	set, err := skybox.Discover(dir)
	if err != nil {
		return fmt.Errorf("%s: %w", dir, err)
	}

	orientation := skybox.AutoOrientation(&set)
	if args.orient != orientAuto {
		named, ok := skybox.OrientationNamed(string(args.orient))
		if !ok {
			return fmt.Errorf("unknown orientation preset %q", args.orient)
		}
		orientation = named
	}
	if !cargs.quiet {
		fmt.Printf("Using the %s orientation ...\n", orientation.Name)
	}

	var faces [6]*skybox.FaceImage
	for face, p := range set {
		img, err := skybox.LoadFace(p)
		if err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
		faces[face] = img
	}

	name := args.name
	if name == "" {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return err
		}
		name = filepath.Base(abs)
	}
	base := "skybox_" + name

	outDir := cargs.out
	if outDir == "" {
		outDir = filepath.Join(dir, "skybox")
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return err
	}

	var flat [6]*libio.IntImage
	for face, img := range faces {
		flat[face] = img.Flatten(float32(args.gamma), float32(args.scale))
	}

	var outputs []skybox.OutputImage
	switch args.layout {
	case layoutCross:
		sheet, err := skybox.ComposeCross(base, flat, orientation)
		if err != nil {
			return fmt.Errorf("%s: %w", dir, err)
		}
		outputs = []skybox.OutputImage{sheet}
	default:
		outputs, err = skybox.ComposeFaces(base, flat, orientation)
		if err != nil {
			return fmt.Errorf("%s: %w", dir, err)
		}
	}

	for _, output := range outputs {
		if err := writePng(outDir, output); err != nil {
			return err
		}
	}

	if args.envmap {
		if err := writeEnvMap(args, outDir, base, faces, orientation); err != nil {
			return err
		}
	}

	if args.materials {
		text, err := skybox.SkyboxMaterial(name)
		if err != nil {
			return err
		}
		if err := writeText(filepath.Join(outDir, base+".vmat"), text); err != nil {
			return err
		}
	}
	if args.moondome {
		text, err := skybox.MoondomeMaterial(name)
		if err != nil {
			return err
		}
		if err := writeText(filepath.Join(outDir, "moondome_"+name+".vmat"), text); err != nil {
			return err
		}
	}

	if args.delete {
		deleted, err := skybox.CleanupSources(&set)
		warn(err)
		if !cargs.quiet {
			for _, p := range deleted {
				fmt.Printf("Removed %q\n", filepath.ToSlash(filepath.Clean(p)))
			}
		}
	}

	return nil
}

func writePng(outDir string, output skybox.OutputImage) error {
	outFilename := filepath.Join(outDir, output.Name)
	outFile, err := os.OpenFile(outFilename, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0666)
	if err != nil {
		return err
	}
	defer close(outFile)

	if !cargs.quiet {
		fmt.Printf("Writing %q ...\n", filepath.ToSlash(filepath.Clean(outFilename)))
	}

	err = png.Encode(outFile, output.Rgba.ToNRGBA())
	if err != nil {
		outFile.Close()
		os.Remove(outFilename)
		return err
	}
	return nil
}

func writeText(outFilename string, text string) error {
	if !cargs.quiet {
		fmt.Printf("Writing %q ...\n", filepath.ToSlash(filepath.Clean(outFilename)))
	}
	return os.WriteFile(outFilename, []byte(text), 0666)
}

func writeEnvMap(args convertArgs, outDir, base string, faces [6]*skybox.FaceImage, orientation *skybox.Orientation) error {
	var linear [6]*libio.FloatImage
	for face, img := range faces {
		linear[face] = img.Linear(srgbGamma)
	}

	env, err := skybox.ComposeEnvMap(linear, orientation)
	if err != nil {
		return err
	}

	outFilename := filepath.Join(outDir, base+".skyenv")
	outFile, err := os.OpenFile(outFilename, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0666)
	if err != nil {
		return err
	}
	defer close(outFile)

	if !cargs.quiet {
		fmt.Printf("Writing %q ...\n", filepath.ToSlash(filepath.Clean(outFilename)))
	}

	err = envmap.EncodeEnvMap(outFile, env, envmap.OptCompress(args.compress-1))
	if err != nil {
		outFile.Close()
		os.Remove(outFilename)
		return err
	}
	return nil
}
