package subst

import (
	"github.com/lambdac/lambdac/internal/errors"
	"github.com/lambdac/lambdac/internal/term"
)

type onTyVar func(c, idx, ctxLen int) (term.Type, error)

func walkType(ov onTyVar, ty term.Type, c int) (term.Type, error) {
	switch t := ty.(type) {
	case *term.TyVar:
		return ov(c, t.Index, t.CtxLen)
	case *term.ArrowTy:
		t1, err := walkType(ov, t.T1, c)
		if err != nil {
			return nil, err
		}
		t2, err := walkType(ov, t.T2, c)
		if err != nil {
			return nil, err
		}
		return &term.ArrowTy{T1: t1, T2: t2}, nil
	case *term.RecordTy:
		fields := make([]term.TyField, len(t.Fields))
		for i, f := range t.Fields {
			w, err := walkType(ov, f.Ty, c)
			if err != nil {
				return nil, err
			}
			fields[i] = term.TyField{Label: f.Label, Ty: w}
		}
		return &term.RecordTy{Fields: fields}, nil
	case *term.TupleTy:
		elems := make([]term.Type, len(t.Elements))
		for i, e := range t.Elements {
			w, err := walkType(ov, e, c)
			if err != nil {
				return nil, err
			}
			elems[i] = w
		}
		return &term.TupleTy{Elements: elems}, nil
	case *term.UnivTy:
		body, err := walkType(ov, t.Body, c+1)
		if err != nil {
			return nil, err
		}
		return &term.UnivTy{Name: t.Name, Body: body}, nil
	case *term.ExisTy:
		body, err := walkType(ov, t.Body, c+1)
		if err != nil {
			return nil, err
		}
		return &term.ExisTy{Name: t.Name, Body: body}, nil
	case term.BoolTy, term.NatTy, term.TopTy, term.BotTy, *term.IdTy:
		return ty, nil
	default:
		return nil, errors.New(errors.SUB001, "subst", "", "unreachable type form in shift/subst walk")
	}
}

// TypeShift adjusts every free TyVar in ty by d, starting at cutoff c.
func TypeShift(ty term.Type, d, c int) (term.Type, error) {
	return walkType(func(cc, idx, ctxLen int) (term.Type, error) {
		if idx < cc {
			return &term.TyVar{Index: idx, CtxLen: ctxLen + d}, nil
		}
		newIdx := idx + d
		if newIdx < 0 {
			return nil, errors.ScopingError("subst", "", "shift would produce a negative type-variable index")
		}
		return &term.TyVar{Index: newIdx, CtxLen: ctxLen + d}, nil
	}, ty, c)
}

// TypeSubst replaces every free TyVar at index j (relative to cutoff c)
// in ty with s.
func TypeSubst(ty, s term.Type, j, c int) (term.Type, error) {
	return walkType(func(cc, idx, ctxLen int) (term.Type, error) {
		if idx == j+cc {
			return TypeShift(s, cc, 0)
		}
		return &term.TyVar{Index: idx, CtxLen: ctxLen}, nil
	}, ty, c)
}

// TypeSubstTop implements the type-level analogue of SubstTop: used
// when a universal type is instantiated by a concrete type argument.
func TypeSubstTop(ty, s term.Type) (term.Type, error) {
	shiftedS, err := TypeShift(s, 1, 0)
	if err != nil {
		return nil, err
	}
	substituted, err := TypeSubst(ty, shiftedS, 0, 0)
	if err != nil {
		return nil, err
	}
	return TypeShift(substituted, -1, 0)
}

// TypeIntoTerm substitutes ty for every TyVar at index j found inside
// t's embedded type annotations, leaving t's term-variable structure
// untouched. This is how System F instantiates a type abstraction's
// body: the bound type variable appears only inside Abs/TypeApp/Pack
// type annotations nested in the term, never as a Var itself.
func TypeIntoTerm(t term.Term, ty term.Type, j int) (term.Term, error) {
	ov := func(_, idx, ctxLen int) (term.Term, error) {
		return &term.Var{Index: idx, CtxLen: ctxLen}, nil
	}
	ot := func(orig term.Type, c int) (term.Type, error) {
		return TypeSubst(orig, ty, 0, c)
	}
	return walkTerm(ov, ot, t, j)
}

// TypeIntoTermTop is TypeIntoTerm's top-level form: used when a
// TypeAbs's body is instantiated by a concrete type argument at a
// TypeApp redex.
func TypeIntoTermTop(ty term.Type, t term.Term) (term.Term, error) {
	shiftedTy, err := TypeShift(ty, 1, 0)
	if err != nil {
		return nil, err
	}
	substituted, err := TypeIntoTerm(t, shiftedTy, 0)
	if err != nil {
		return nil, err
	}
	return Shift(substituted, -1, 0)
}
