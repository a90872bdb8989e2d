// Package subst implements the de Bruijn shift/substitution engine that
// every calculus shares: Shift and Subst for terms, TypeShift and
// TypeSubst for types, and the two composition operators System F
// needs to thread a type into a term's variable positions.
package subst

import (
	"github.com/lambdac/lambdac/internal/errors"
	"github.com/lambdac/lambdac/internal/term"
)

// onVar rewrites a Var found at absolute depth c; onType rewrites
// every Type embedded directly in the term tree (Abs annotations,
// TypeApp arguments, ExisPack types). Walking both together in one
// pass keeps a term and the types nested inside it shifted in lockstep.
type onVar func(c, idx, ctxLen int) (term.Term, error)
type onType func(ty term.Type, c int) (term.Type, error)

func walkTerm(ov onVar, ot onType, t term.Term, c int) (term.Term, error) {
	switch n := t.(type) {
	case *term.Var:
		return ov(c, n.Index, n.CtxLen)
	case *term.Abs:
		var ty term.Type
		if n.Ty != nil {
			var err error
			ty, err = ot(n.Ty, c)
			if err != nil {
				return nil, err
			}
		}
		body, err := walkTerm(ov, ot, n.Body, c+1)
		if err != nil {
			return nil, err
		}
		return &term.Abs{Name: n.Name, Ty: ty, Body: body}, nil
	case *term.App:
		fn, err := walkTerm(ov, ot, n.Fn, c)
		if err != nil {
			return nil, err
		}
		arg, err := walkTerm(ov, ot, n.Arg, c)
		if err != nil {
			return nil, err
		}
		return &term.App{Fn: fn, Arg: arg}, nil
	case *term.If:
		cond, err := walkTerm(ov, ot, n.Cond, c)
		if err != nil {
			return nil, err
		}
		then, err := walkTerm(ov, ot, n.Then, c)
		if err != nil {
			return nil, err
		}
		els, err := walkTerm(ov, ot, n.Else, c)
		if err != nil {
			return nil, err
		}
		return &term.If{Cond: cond, Then: then, Else: els}, nil
	case *term.Let:
		init, err := walkTerm(ov, ot, n.Init, c)
		if err != nil {
			return nil, err
		}
		body, err := walkTerm(ov, ot, n.Body, c+1)
		if err != nil {
			return nil, err
		}
		return &term.Let{Name: n.Name, Init: init, Body: body}, nil
	case *term.Tuple:
		fields := make([]term.Term, len(n.Fields))
		for i, f := range n.Fields {
			w, err := walkTerm(ov, ot, f, c)
			if err != nil {
				return nil, err
			}
			fields[i] = w
		}
		return &term.Tuple{Fields: fields}, nil
	case *term.Record:
		fields := make([]term.Field, len(n.Fields))
		for i, f := range n.Fields {
			w, err := walkTerm(ov, ot, f.Value, c)
			if err != nil {
				return nil, err
			}
			fields[i] = term.Field{Label: f.Label, Value: w}
		}
		return &term.Record{Fields: fields}, nil
	case *term.Proj:
		rec, err := walkTerm(ov, ot, n.Rec, c)
		if err != nil {
			return nil, err
		}
		return &term.Proj{Rec: rec, Label: n.Label}, nil
	case term.True:
		return n, nil
	case term.False:
		return n, nil
	case term.Zero:
		return n, nil
	case *term.Succ:
		arg, err := walkTerm(ov, ot, n.Arg, c)
		if err != nil {
			return nil, err
		}
		return &term.Succ{Arg: arg}, nil
	case *term.Pred:
		arg, err := walkTerm(ov, ot, n.Arg, c)
		if err != nil {
			return nil, err
		}
		return &term.Pred{Arg: arg}, nil
	case *term.IsZero:
		arg, err := walkTerm(ov, ot, n.Arg, c)
		if err != nil {
			return nil, err
		}
		return &term.IsZero{Arg: arg}, nil
	case *term.TypeAbs:
		body, err := walkTerm(ov, ot, n.Body, c+1)
		if err != nil {
			return nil, err
		}
		return &term.TypeAbs{Name: n.Name, Body: body}, nil
	case *term.TypeApp:
		inner, err := walkTerm(ov, ot, n.Term, c)
		if err != nil {
			return nil, err
		}
		ty, err := ot(n.Ty, c)
		if err != nil {
			return nil, err
		}
		return &term.TypeApp{Term: inner, Ty: ty}, nil
	case *term.ExisPack:
		hidden, err := ot(n.Hidden, c)
		if err != nil {
			return nil, err
		}
		body, err := walkTerm(ov, ot, n.Body, c)
		if err != nil {
			return nil, err
		}
		as, err := ot(n.As, c)
		if err != nil {
			return nil, err
		}
		return &term.ExisPack{Hidden: hidden, Body: body, As: as}, nil
	case *term.ExisUnpack:
		init, err := walkTerm(ov, ot, n.Init, c)
		if err != nil {
			return nil, err
		}
		body, err := walkTerm(ov, ot, n.Body, c+2)
		if err != nil {
			return nil, err
		}
		return &term.ExisUnpack{TyName: n.TyName, VarName: n.VarName, Init: init, Body: body}, nil
	default:
		return nil, errors.New(errors.SUB001, "subst", "", "unreachable term form in shift/subst walk")
	}
}

// Shift adjusts every free Var in t by d, starting at cutoff c (0 for a
// top-level call). Bound variables (index < the running cutoff) keep
// their index; free variables have their index moved by d. Every Var,
// bound or free, has its CtxLen tag moved by d.
func Shift(t term.Term, d, c int) (term.Term, error) {
	ov := func(cc, idx, ctxLen int) (term.Term, error) {
		if idx < cc {
			return &term.Var{Index: idx, CtxLen: ctxLen + d}, nil
		}
		newIdx := idx + d
		if newIdx < 0 {
			return nil, errors.ScopingError("subst", "", "shift would produce a negative variable index")
		}
		return &term.Var{Index: newIdx, CtxLen: ctxLen + d}, nil
	}
	ot := func(ty term.Type, cc int) (term.Type, error) {
		return TypeShift(ty, d, cc)
	}
	return walkTerm(ov, ot, t, c)
}

// Subst replaces every free occurrence of the variable at index j
// (relative to cutoff c) with s, shifting s as it crosses binders so s
// stays correctly scoped at the substitution site. Type annotations
// embedded in the term are left untouched: substituting a term for a
// variable never rewrites a sibling type annotation.
func Subst(t term.Term, j int, s term.Term, c int) (term.Term, error) {
	ov := func(cc, idx, ctxLen int) (term.Term, error) {
		if idx == j+cc {
			return Shift(s, cc, 0)
		}
		return &term.Var{Index: idx, CtxLen: ctxLen}, nil
	}
	ot := func(ty term.Type, _ int) (term.Type, error) {
		return ty, nil
	}
	return walkTerm(ov, ot, t, c)
}

// SubstTop implements beta reduction's substitution step: replace the
// just-bound variable (index 0) in body with s, then shift the result
// down by one to account for the binder going away.
func SubstTop(s, body term.Term) (term.Term, error) {
	shiftedS, err := Shift(s, 1, 0)
	if err != nil {
		return nil, err
	}
	substituted, err := Subst(body, 0, shiftedS, 0)
	if err != nil {
		return nil, err
	}
	return Shift(substituted, -1, 0)
}
