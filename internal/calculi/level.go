// Package calculi wires the shared term/subst/eval/check/recon
// machinery into the six progressively more expressive languages the
// rest of the system exposes: which constructs a level's builder
// accepts, whether typing is in play at all, and whether it is
// syntax-directed checking or full reconstruction.
package calculi

import (
	"fmt"

	"github.com/lambdac/lambdac/internal/check"
	"github.com/lambdac/lambdac/internal/errors"
	"github.com/lambdac/lambdac/internal/recon"
	"github.com/lambdac/lambdac/internal/term"
)

// Level names one of the six calculi, ordered by expressiveness.
type Level int

const (
	Arith Level = iota
	Untyped
	SimpleBool
	RecordSub
	Recon
	SystemF
)

func (l Level) String() string {
	switch l {
	case Arith:
		return "arith"
	case Untyped:
		return "untyped"
	case SimpleBool:
		return "simplebool"
	case RecordSub:
		return "rcdsub"
	case Recon:
		return "recon"
	case SystemF:
		return "systemf"
	default:
		return fmt.Sprintf("Level(%d)", int(l))
	}
}

// Levels enumerates every level in expressiveness order, for REPL
// tab-completion and help text.
var Levels = []Level{Arith, Untyped, SimpleBool, RecordSub, Recon, SystemF}

// ParseLevel maps a level's external name back to its Level value.
func ParseLevel(name string) (Level, bool) {
	for _, l := range Levels {
		if l.String() == name {
			return l, true
		}
	}
	return 0, false
}

// Mode selects what a command does with a term once it is built: for
// levels with no checker (arith, untyped) only evaluation makes
// sense; the typed levels support either.
type Mode int

const (
	ModeEval Mode = iota
	ModeType
)

// HasChecking reports whether l has a static type discipline at all.
func (l Level) HasChecking() bool {
	return l == SimpleBool || l == RecordSub || l == Recon || l == SystemF
}

// BuildOptions returns the term-builder configuration for l: whether
// Abs requires a type annotation, and whether a bare type identifier
// is a free-standing IdTy (reconstruction) rather than a
// Context-resolved TyVar (System F).
func (l Level) BuildOptions() term.BuildOptions {
	switch l {
	case SimpleBool, RecordSub, SystemF:
		return term.BuildOptions{RequireAbsType: true}
	case Recon:
		return term.BuildOptions{RequireAbsType: false, FreeTypeIdents: true}
	default:
		return term.BuildOptions{RequireAbsType: false}
	}
}

// TypeOf runs this level's typing discipline over t, or reports that
// the level has none.
func (l Level) TypeOf(t term.Term, ctx *term.Context) (term.Type, error) {
	switch l {
	case SimpleBool:
		return check.TypeOf(t, ctx, false)
	case RecordSub, SystemF:
		return check.TypeOf(t, ctx, true)
	case Recon:
		g := &recon.Gen{}
		ty, cs, err := recon.Recon(t, ctx, g)
		if err != nil {
			return nil, err
		}
		sub, err := recon.Unify(cs)
		if err != nil {
			return nil, err
		}
		return recon.ApplySubst(ty, sub), nil
	default:
		return nil, errors.New(errors.CHK001, "calculi", "", "level %s has no type checker", l)
	}
}
