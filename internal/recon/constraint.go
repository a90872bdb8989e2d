// Package recon implements Hindley-Milner type reconstruction with
// let-polymorphism: constraint generation over an unannotated (or
// partially annotated) term, followed by unification to a principal
// type.
package recon

import "github.com/lambdac/lambdac/internal/term"

// Constraint is an equality obligation between two types collected
// during reconstruction and discharged by Unify.
type Constraint struct {
	Left, Right term.Type
}

// Gen mints fresh IdTy unification variables during reconstruction. It
// has no counter of its own: every Gen draws from the process-wide
// counter behind term.NewFreshIdTy, which term.ResetFreshCounter resets.
type Gen struct{}

// Next mints a fresh unification variable.
func (Gen) Next() *term.IdTy { return term.NewFreshIdTy() }
