package recon

import (
	"github.com/lambdac/lambdac/internal/errors"
	"github.com/lambdac/lambdac/internal/term"
)

// Recon walks t, generating fresh unification variables at every
// binder that lacks an annotation and collecting the equality
// constraints those forms impose. It returns t's (not yet fully
// solved) type and the constraints Unify must discharge to ground it.
func Recon(t term.Term, ctx *term.Context, g *Gen) (term.Type, []Constraint, error) {
	switch n := t.(type) {
	case term.True, term.False:
		return term.BoolTy{}, nil, nil
	case term.Zero:
		return term.NatTy{}, nil, nil

	case *term.Succ:
		ty, cs, err := Recon(n.Arg, ctx, g)
		if err != nil {
			return nil, nil, err
		}
		return term.NatTy{}, append(cs, Constraint{ty, term.NatTy{}}), nil
	case *term.Pred:
		ty, cs, err := Recon(n.Arg, ctx, g)
		if err != nil {
			return nil, nil, err
		}
		return term.NatTy{}, append(cs, Constraint{ty, term.NatTy{}}), nil
	case *term.IsZero:
		ty, cs, err := Recon(n.Arg, ctx, g)
		if err != nil {
			return nil, nil, err
		}
		return term.BoolTy{}, append(cs, Constraint{ty, term.NatTy{}}), nil

	case *term.Var:
		ty, err := ctx.GetType(n.Index)
		if err != nil {
			return nil, nil, errors.New(errors.CHK001, "recon", "", "%s", err)
		}
		return ty, nil, nil

	case *term.Abs:
		paramTy := n.Ty
		if paramTy == nil {
			paramTy = g.Next()
		}
		res, err := term.WithBinding(ctx, n.Name, term.VarBinding{Ty: paramTy}, func() (reconResult, error) {
			return recon2(n.Body, ctx, g)
		})
		if err != nil {
			return nil, nil, err
		}
		return &term.ArrowTy{T1: paramTy, T2: res.ty}, res.cs, nil

	case *term.App:
		ty1, cs1, err := Recon(n.Fn, ctx, g)
		if err != nil {
			return nil, nil, err
		}
		ty2, cs2, err := Recon(n.Arg, ctx, g)
		if err != nil {
			return nil, nil, err
		}
		result := g.Next()
		cs := append(cs1, cs2...)
		cs = append(cs, Constraint{ty1, &term.ArrowTy{T1: ty2, T2: result}})
		return result, cs, nil

	case *term.If:
		condTy, cs1, err := Recon(n.Cond, ctx, g)
		if err != nil {
			return nil, nil, err
		}
		thenTy, cs2, err := Recon(n.Then, ctx, g)
		if err != nil {
			return nil, nil, err
		}
		elseTy, cs3, err := Recon(n.Else, ctx, g)
		if err != nil {
			return nil, nil, err
		}
		cs := append(cs1, cs2...)
		cs = append(cs, cs3...)
		cs = append(cs, Constraint{condTy, term.BoolTy{}}, Constraint{thenTy, elseTy})
		return thenTy, cs, nil

	case *term.Tuple:
		elems := make([]term.Type, len(n.Fields))
		var cs []Constraint
		for i, f := range n.Fields {
			ty, fcs, err := Recon(f, ctx, g)
			if err != nil {
				return nil, nil, err
			}
			elems[i] = ty
			cs = append(cs, fcs...)
		}
		return &term.TupleTy{Elements: elems}, cs, nil

	case *term.Let:
		initTy, initCs, err := Recon(n.Init, ctx, g)
		if err != nil {
			return nil, nil, err
		}
		sub, err := Unify(initCs)
		if err != nil {
			return nil, nil, err
		}
		groundInitTy := ApplySubst(initTy, sub)
		quantified := freeVars(groundInitTy, ctxFreeVars(ctx))

		scheme := term.SchemeBinding{QuantifiedVars: quantified, BodyTy: groundInitTy}
		res, err := term.WithBinding(ctx, n.Name, scheme, func() (reconResult, error) {
			return recon2(n.Body, ctx, g)
		})
		if err != nil {
			return nil, nil, err
		}
		return res.ty, res.cs, nil

	default:
		return nil, nil, errors.New(errors.CHK001, "recon", "", "unsupported term form for reconstruction")
	}
}

// reconResult bundles Recon's two return values so it can be produced
// from inside a term.WithBinding closure, which only carries a single
// generic result.
type reconResult struct {
	ty term.Type
	cs []Constraint
}

func recon2(t term.Term, ctx *term.Context, g *Gen) (reconResult, error) {
	ty, cs, err := Recon(t, ctx, g)
	if err != nil {
		return reconResult{}, err
	}
	return reconResult{ty: ty, cs: cs}, nil
}

// ctxFreeVars collects every IdTy name mentioned in a VarBinding or
// SchemeBinding's still-quantified-over body currently live in ctx,
// i.e. the variables generalization must NOT capture.
func ctxFreeVars(ctx *term.Context) map[string]bool {
	free := make(map[string]bool)
	for i := 0; i < ctx.Len(); i++ {
		b, err := ctx.GetBinding(i)
		if err != nil {
			continue
		}
		switch bb := b.(type) {
		case term.VarBinding:
			collectFreeVars(bb.Ty, free)
		case term.SchemeBinding:
			fv := make(map[string]bool)
			collectFreeVars(bb.BodyTy, fv)
			for _, q := range bb.QuantifiedVars {
				delete(fv, q)
			}
			for v := range fv {
				free[v] = true
			}
		}
	}
	return free
}

func collectFreeVars(ty term.Type, out map[string]bool) {
	switch t := ty.(type) {
	case *term.IdTy:
		out[t.Name] = true
	case *term.ArrowTy:
		collectFreeVars(t.T1, out)
		collectFreeVars(t.T2, out)
	case *term.RecordTy:
		for _, f := range t.Fields {
			collectFreeVars(f.Ty, out)
		}
	case *term.TupleTy:
		for _, e := range t.Elements {
			collectFreeVars(e, out)
		}
	}
}

// freeVars returns the IdTy names in ty that are not present in exclude,
// the set generalization is allowed to quantify over.
func freeVars(ty term.Type, exclude map[string]bool) []string {
	found := make(map[string]bool)
	collectFreeVars(ty, found)
	var result []string
	for v := range found {
		if !exclude[v] {
			result = append(result, v)
		}
	}
	return result
}
