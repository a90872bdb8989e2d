// Package repl implements an interactive read-eval-print loop over
// the six calculi: line editing and history via github.com/peterh/
// liner, colored output via github.com/fatih/color, one Level/Mode
// active per session.
package repl

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"

	"github.com/lambdac/lambdac/internal/calculi"
	"github.com/lambdac/lambdac/internal/config"
	"github.com/lambdac/lambdac/internal/driver"
	"github.com/lambdac/lambdac/internal/errors"
	"github.com/lambdac/lambdac/internal/term"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
	dim    = color.New(color.Faint).SprintFunc()
)

// REPL is one interactive session: a single Driver (level, mode,
// shared Context) plus the line-editing and coloring layered on top.
type REPL struct {
	d       *driver.Driver
	color   bool
	history []string
}

// New constructs a REPL whose initial level/mode come from cfg.
func New(cfg *config.Config) *REPL {
	return &REPL{
		d:     driver.New(cfg.ResolvedLevel(), cfg.ResolvedMode()),
		color: cfg.ColorEnabled(),
	}
}

func (r *REPL) prompt() string {
	modeTag := "eval"
	if r.d.Mode == calculi.ModeType {
		modeTag = "check"
	}
	return fmt.Sprintf("%s[%s]> ", r.d.Level, modeTag)
}

// Start runs the REPL loop against os.Stdin/out until EOF, ":quit", or
// Ctrl-D.
func (r *REPL) Start(out io.Writer) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	historyFile := filepath.Join(os.TempDir(), ".lambdac_history")
	if f, err := os.Open(historyFile); err == nil {
		_, _ = line.ReadHistory(f)
		f.Close()
	}

	line.SetCompleter(func(l string) (c []string) {
		if !strings.HasPrefix(l, ":") {
			return nil
		}
		for _, cmd := range []string{":help", ":quit", ":level", ":mode", ":context"} {
			if strings.HasPrefix(cmd, l) {
				c = append(c, cmd)
			}
		}
		return c
	})

	r.printColor(out, bold, fmt.Sprintf("lambdac — %s\n", r.d.Level))
	r.printColor(out, dim, "Type :help for help, :quit to exit\n\n")

	for {
		input, err := line.Prompt(r.prompt())
		if err == io.EOF {
			if f, err := os.Create(historyFile); err == nil {
				_, _ = line.WriteHistory(f)
				f.Close()
			}
			r.printColor(out, green, "\nGoodbye!\n")
			return
		}
		if err != nil {
			r.printColor(out, red, fmt.Sprintf("Error: %v\n", err))
			continue
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)
		r.history = append(r.history, input)

		if strings.HasPrefix(input, ":") {
			if r.handleMeta(input, out) {
				if f, err := os.Create(historyFile); err == nil {
					_, _ = line.WriteHistory(f)
					f.Close()
				}
				return
			}
			continue
		}

		r.evalLine(input, out)
	}
}

func (r *REPL) printColor(out io.Writer, fn func(a ...interface{}) string, s string) {
	if r.color {
		fmt.Fprint(out, fn(s))
		return
	}
	fmt.Fprint(out, s)
}

// evalLine runs one term/command through the active Driver and prints
// its outcome, matching §6's "one line per command" output contract.
func (r *REPL) evalLine(input string, out io.Writer) {
	if !strings.HasSuffix(strings.TrimSpace(input), ";") {
		input += ";"
	}
	results, err := r.d.RunSource(input, "<repl>")
	if err != nil {
		r.printColor(out, red, fmt.Sprintf("Error: %v\n", err))
		return
	}
	for _, res := range results {
		if res.Err != nil {
			if rep, ok := errors.As(res.Err); ok {
				r.printColor(out, red, fmt.Sprintf("%s: %s\n", rep.Code, rep.Message))
			} else {
				r.printColor(out, red, fmt.Sprintf("Error: %v\n", res.Err))
			}
			continue
		}
		r.printColor(out, green, res.Line+"\n")
	}
}

// handleMeta runs a ":"-prefixed REPL command. It returns true when
// the session should end.
func (r *REPL) handleMeta(input string, out io.Writer) bool {
	fields := strings.Fields(input)
	switch fields[0] {
	case ":quit", ":q", ":exit":
		r.printColor(out, green, "Goodbye!\n")
		return true

	case ":help", ":h":
		fmt.Fprintln(out, "Meta-commands:")
		fmt.Fprintln(out, "  :help              show this help")
		fmt.Fprintln(out, "  :quit              exit the REPL")
		fmt.Fprintln(out, "  :level [name]      show or switch the active calculus")
		fmt.Fprintln(out, "  :mode [eval|check] show or switch eval/typecheck mode")
		fmt.Fprintln(out, "  :context           list bound names and their types")
		fmt.Fprintf(out, "Levels: %v\n", calculi.Levels)

	case ":level":
		if len(fields) < 2 {
			fmt.Fprintln(out, r.d.Level)
			return false
		}
		lvl, ok := calculi.ParseLevel(fields[1])
		if !ok {
			r.printColor(out, red, fmt.Sprintf("unknown level %q\n", fields[1]))
			return false
		}
		r.d = driver.New(lvl, r.d.Mode)
		fmt.Fprintf(out, "switched to %s (context reset)\n", lvl)

	case ":mode":
		if len(fields) < 2 {
			fmt.Fprintln(out, modeName(r.d.Mode))
			return false
		}
		switch fields[1] {
		case "eval":
			r.d.Mode = calculi.ModeEval
		case "check":
			if !r.d.Level.HasChecking() {
				r.printColor(out, yellow, fmt.Sprintf("level %s has no type checker\n", r.d.Level))
				return false
			}
			r.d.Mode = calculi.ModeType
		default:
			r.printColor(out, red, "mode must be \"eval\" or \"check\"\n")
		}

	case ":context":
		r.printContext(out)

	default:
		r.printColor(out, red, fmt.Sprintf("unknown command %q (try :help)\n", fields[0]))
	}
	return false
}

func modeName(m calculi.Mode) string {
	if m == calculi.ModeType {
		return "check"
	}
	return "eval"
}

func (r *REPL) printContext(out io.Writer) {
	ctx := r.d.Ctx
	if ctx.Len() == 0 {
		fmt.Fprintln(out, "(empty)")
		return
	}
	for i := 0; i < ctx.Len(); i++ {
		idx := ctx.Len() - 1 - i
		name, _ := ctx.GetName(idx)
		b, _ := ctx.GetBinding(idx)
		fmt.Fprintf(out, "  %s : %s\n", name, describeBinding(b))
	}
}

func describeBinding(b term.Binding) string {
	switch bb := b.(type) {
	case term.VarBinding:
		return bb.Ty.String()
	case term.TyVarBinding:
		return "<type>"
	case term.OpaqueBinding:
		return "<opaque>"
	case term.SchemeBinding:
		return fmt.Sprintf("forall %v. %s", bb.QuantifiedVars, bb.BodyTy)
	default:
		return "?"
	}
}
