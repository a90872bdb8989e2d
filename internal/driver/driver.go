// Package driver implements the thin per-command pipeline: parse a
// source string into a sequence of top-level commands, build each one
// against a shared Context, and either install a binding or
// evaluate/typecheck a term, producing one output line per command. A
// failed command never poisons the ones after it, and a failed
// BindCmd never installs its binding.
package driver

import (
	"fmt"

	"github.com/lambdac/lambdac/internal/ast"
	"github.com/lambdac/lambdac/internal/calculi"
	"github.com/lambdac/lambdac/internal/eval"
	"github.com/lambdac/lambdac/internal/parser"
	"github.com/lambdac/lambdac/internal/term"
)

// Driver holds the state that persists across a sequence of commands
// run against one calculus: the level, the evaluation-vs-typing mode,
// and the shared Context every BindCmd extends.
type Driver struct {
	Level calculi.Level
	Mode  calculi.Mode
	Ctx   *term.Context
}

// New returns a Driver for level starting from an empty Context.
func New(level calculi.Level, mode calculi.Mode) *Driver {
	return &Driver{Level: level, Mode: mode, Ctx: term.NewContext()}
}

// Result is one command's outcome: exactly one of Line or Err is set.
type Result struct {
	Line string
	Err  error
}

// RunSource parses src as a full command sequence and runs each
// command in order against d's Context. A failing command's Result
// carries its error and processing continues with the next command.
func (d *Driver) RunSource(src, filename string) ([]Result, error) {
	cmds, err := parser.ParseProgram(src, filename)
	if err != nil {
		return nil, err
	}
	results := make([]Result, 0, len(cmds))
	for _, cmd := range cmds {
		results = append(results, d.RunCommand(cmd))
	}
	return results, nil
}

// RunCommand runs a single already-parsed command. BindCmd extends
// Ctx only on success; evaluation and typing commands never mutate
// Ctx (BuildTerm/TypeOf/Eval are all non-mutating with respect to the
// caller's view, modulo the scoped-add discipline internal to them).
func (d *Driver) RunCommand(cmd ast.Command) Result {
	opts := d.Level.BuildOptions()
	name, binding, built, err := term.BuildCommand(cmd, d.Ctx, opts)
	if err != nil {
		return Result{Err: err}
	}
	if binding != nil {
		d.Ctx.AddBinding(name, binding)
		return Result{Line: name}
	}
	return d.runTerm(built)
}

func (d *Driver) runTerm(t term.Term) Result {
	if d.Mode == calculi.ModeType {
		return d.typeCheck(t)
	}
	return d.runEval(t)
}

func (d *Driver) runEval(t term.Term) Result {
	normal, err := eval.Eval(t)
	if err != nil {
		return Result{Err: err}
	}
	scope := scopeNames(d.Ctx)
	line := calculi.PrintTerm(normal, scope)
	if d.Level == calculi.Recon {
		ty, tyErr := d.Level.TypeOf(t, d.Ctx)
		if tyErr == nil {
			line = fmt.Sprintf("%s\nPrincipal type: %s", line, calculi.PrintType(ty, scope))
		}
	}
	return Result{Line: line}
}

func (d *Driver) typeCheck(t term.Term) Result {
	ty, err := d.Level.TypeOf(t, d.Ctx)
	if err != nil {
		return Result{Err: err}
	}
	scope := scopeNames(d.Ctx)
	return Result{Line: calculi.PrintType(ty, scope)}
}

// scopeNames collects the bound names of d.Ctx, outermost first, for
// PrintTerm/PrintType to resolve de Bruijn indices against.
func scopeNames(ctx *term.Context) []string {
	scope := make([]string, ctx.Len())
	for i := 0; i < ctx.Len(); i++ {
		idx := ctx.Len() - 1 - i
		name, err := ctx.GetName(idx)
		if err != nil {
			name = "?"
		}
		scope[i] = name
	}
	return scope
}
