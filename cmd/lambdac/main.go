// Command lambdac runs the arith-through-system-F family of
// interpreters: one file or REPL session at a time, at a single
// chosen calculus level, in either evaluate or type-check mode.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/lambdac/lambdac/internal/calculi"
	"github.com/lambdac/lambdac/internal/config"
	"github.com/lambdac/lambdac/internal/driver"
	"github.com/lambdac/lambdac/internal/errors"
	"github.com/lambdac/lambdac/internal/repl"
)

// Version is set by ldflags during release builds.
var Version = "dev"

var (
	green = color.New(color.FgGreen).SprintFunc()
	red   = color.New(color.FgRed).SprintFunc()
	cyan  = color.New(color.FgCyan).SprintFunc()
	bold  = color.New(color.Bold).SprintFunc()
)

func main() {
	var (
		versionFlag = flag.Bool("version", false, "print version information")
		helpFlag    = flag.Bool("help", false, "show help")
		levelFlag   = flag.String("level", "", "calculus level (overrides .lambdac.yaml)")
	)
	flag.Parse()

	if *versionFlag {
		fmt.Printf("lambdac %s\n", bold(Version))
		return
	}
	if *helpFlag || flag.NArg() == 0 {
		printHelp()
		return
	}

	cfg, err := config.Discover()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
		os.Exit(1)
	}
	if !cfg.ColorEnabled() {
		color.NoColor = true
	}
	if *levelFlag != "" {
		lvl, ok := calculi.ParseLevel(*levelFlag)
		if !ok {
			fmt.Fprintf(os.Stderr, "%s: unknown level %q\n", red("Error"), *levelFlag)
			os.Exit(1)
		}
		cfg.Level = lvl.String()
	}

	switch cmd := flag.Arg(0); cmd {
	case "run":
		if flag.NArg() < 2 {
			fmt.Fprintln(os.Stderr, "Usage: lambdac run <file>")
			os.Exit(1)
		}
		runFile(cfg, flag.Arg(1), calculi.ModeEval)

	case "check":
		if flag.NArg() < 2 {
			fmt.Fprintln(os.Stderr, "Usage: lambdac check <file>")
			os.Exit(1)
		}
		runFile(cfg, flag.Arg(1), calculi.ModeType)

	case "repl":
		repl.New(cfg).Start(os.Stdout)

	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", red("Error"), cmd)
		printHelp()
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println(bold("lambdac — a family of typed lambda-calculus interpreters"))
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  lambdac <command> [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Printf("  %s <file>     evaluate a source file\n", cyan("run"))
	fmt.Printf("  %s <file>   type-check a source file without evaluating\n", cyan("check"))
	fmt.Printf("  %s            start the interactive REPL\n", cyan("repl"))
	fmt.Println()
	fmt.Println("Flags:")
	fmt.Println("  --level <name>   arith | untyped | simplebool | rcdsub | recon | systemf")
	fmt.Println("  --version        print version information")
	fmt.Println("  --help           show this help message")
	fmt.Println()
	fmt.Printf("Levels: %v\n", calculi.Levels)
}

func runFile(cfg *config.Config, filename string, mode calculi.Mode) {
	content, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot read file %q: %v\n", red("Error"), filename, err)
		os.Exit(1)
	}

	d := driver.New(cfg.ResolvedLevel(), mode)
	results, err := d.RunSource(string(content), filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
		os.Exit(1)
	}

	failed := false
	for _, res := range results {
		if res.Err != nil {
			failed = true
			if rep, ok := errors.As(res.Err); ok {
				fmt.Fprintf(os.Stderr, "%s: %s: %s\n", red("Error"), rep.Code, rep.Message)
			} else {
				fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), res.Err)
			}
			continue
		}
		fmt.Println(green(res.Line))
	}
	if failed {
		os.Exit(1)
	}
}
