package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/exp/slices"
)

type layout string

const (
	layoutFaces layout = "faces"
	layoutCross layout = "cross"
)

func (l *layout) String() string {
	return string(*l)
}

func (l *layout) Set(s string) error {
	switch layout(s) {
	case layoutFaces:
		*l = layoutFaces
	case layoutCross:
		*l = layoutCross
	default:
		return fmt.Errorf("%s is not a valid layout", s)
	}
	return nil
}

type orient string

const (
	orientAuto    orient = "auto"
	orientDefault orient = "default"
	orientExr     orient = "exr"
)

func (o *orient) String() string {
	return string(*o)
}

func (o *orient) Set(s string) error {
	switch orient(s) {
	case orientAuto:
		*o = orientAuto
	case orientDefault:
		*o = orientDefault
	case orientExr:
		*o = orientExr
	default:
		return fmt.Errorf("%s is not a valid orientation", s)
	}
	return nil
}

type commonArgs struct {
	out     string
	quiet   bool
	supress bool
}

type tonemapArgs struct {
	gamma float64
	scale float64
}

var cargs *commonArgs

type command struct {
	Run   func(self *command)
	Name  string
	Help  string
	Flags *flag.FlagSet
}

var commands = []*command{}

func printGeneralUsage() {
	exe := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [arguments]\n\n", exe)
	fmt.Fprintf(os.Stderr, "The commands are:\n\n")
	longest := slices.MaxFunc(commands, func(a, b *command) int {
		return len(a.Name) - len(b.Name)
	})
	for _, c := range commands {
		fmt.Fprintf(os.Stderr, "    %*s%s\n", -len(longest.Name)-4, c.Name, c.Help)
	}
	fmt.Fprintln(os.Stderr, "")
	os.Exit(1)
}

func printCommandUsage(cmd *command, suffix string) {
	exe := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "Usage: %s %s [arguments]%s\n\n", exe, cmd.Name, suffix)
	fmt.Fprintf(os.Stderr, "The arguments are:\n\n")
	cmd.Flags.SetOutput(os.Stderr)
	cmd.Flags.PrintDefaults()
	os.Exit(1)
}

func main() {
	commands = append(commands, createConvertCommand())
	commands = append(commands, createExtractCommand())
	commands = append(commands, createInfoCommand())
	commands = append(commands, createPreviewCommand())

	slices.SortFunc(commands, func(a, b *command) int {
		return strings.Compare(a.Name, b.Name)
	})

	if len(os.Args) < 2 {
		printGeneralUsage()
	}

	var cmd *command
	for _, c := range commands {
		if strings.EqualFold(c.Name, os.Args[1]) {
			cmd = c
			break
		}
	}
	if cmd == nil {
		printGeneralUsage()
	}

	err := cmd.Flags.Parse(os.Args[2:])
	harderr(err)

	cmd.Run(cmd)
}

func registerCommonFlags(flags *flag.FlagSet, args *commonArgs) {
	flags.StringVar(&args.out, "out", args.out, "the output directory")
	flags.StringVar(&args.out, "o", args.out, "shorthand for out")
	flags.BoolVar(&args.quiet, "quiet", args.quiet, "disables informational logging")
	flags.BoolVar(&args.quiet, "q", args.quiet, "shorthand for quiet")
	flags.BoolVar(&args.supress, "supress", args.supress, "disables soft error logging")
}

func registerTonemapFlags(flags *flag.FlagSet, args *tonemapArgs) {
	flags.Float64Var(&args.gamma, "gamma", args.gamma, "gamma correction value")
	flags.Float64Var(&args.scale, "scale", args.scale, "brightness scale factor")
}

// setCommonArgs validates the shared arguments. An empty out means
// every job picks its own output directory.
func setCommonArgs(args *commonArgs) {
	cargs = args
	if args.out == "" {
		return
	}

	_, err := os.Stat(args.out)
	if err != nil {
		harderr(fmt.Errorf("cannot stat output directory: %w", err))
	}
}

func gatherInputFiles(globs []string) []string {
	matched := []string{}

	for _, g := range globs {
		m, err := filepath.Glob(g)
		softerr(err)
		matched = append(matched, m...)
	}

	return matched
}

// gatherInputDirs resolves directory globs, defaulting to the working
// directory when none are given.
func gatherInputDirs(globs []string) []string {
	if len(globs) == 0 {
		return []string{"."}
	}

	matched := []string{}
	for _, g := range globs {
		m, err := filepath.Glob(g)
		softerr(err)
		for _, p := range m {
			info, err := os.Stat(p)
			if softerr(err) {
				continue
			}
			if info.IsDir() {
				matched = append(matched, p)
			}
		}
	}

	return matched
}

func close(closer io.Closer) {
	closer.Close()
}

func softerr(err error) bool {
	if err == nil {
		return false
	}
	if !cargs.supress {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return true
}

func warn(err error) {
	if err != nil && !cargs.supress {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
}

func harderr(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
