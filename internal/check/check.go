package check

import (
	"github.com/lambdac/lambdac/internal/errors"
	"github.com/lambdac/lambdac/internal/subst"
	"github.com/lambdac/lambdac/internal/term"
)

// TypeOf computes t's type syntax-directedly against ctx. subtyping
// switches App/If between the level-3 equal-types rule and the
// level-4/6 subtype-and-join rule; it has no effect on the System F
// forms, which are only reachable once subtyping is already on.
func TypeOf(t term.Term, ctx *term.Context, subtyping bool) (term.Type, error) {
	switch n := t.(type) {
	case term.True, term.False:
		return term.BoolTy{}, nil
	case term.Zero:
		return term.NatTy{}, nil

	case *term.Succ:
		if err := requireNat(n.Arg, ctx, subtyping); err != nil {
			return nil, err
		}
		return term.NatTy{}, nil
	case *term.Pred:
		if err := requireNat(n.Arg, ctx, subtyping); err != nil {
			return nil, err
		}
		return term.NatTy{}, nil
	case *term.IsZero:
		if err := requireNat(n.Arg, ctx, subtyping); err != nil {
			return nil, err
		}
		return term.BoolTy{}, nil

	case *term.Var:
		return ctx.GetType(n.Index)

	case *term.Abs:
		var paramTy term.Type = n.Ty
		if paramTy == nil {
			return nil, errors.New(errors.CHK001, "check", "", "abstraction %q has no type annotation", n.Name)
		}
		retTy, err := term.WithBinding(ctx, n.Name, term.VarBinding{Ty: paramTy}, func() (term.Type, error) {
			return TypeOf(n.Body, ctx, subtyping)
		})
		if err != nil {
			return nil, err
		}
		return &term.ArrowTy{T1: paramTy, T2: retTy}, nil

	case *term.App:
		ty1, err := TypeOf(n.Fn, ctx, subtyping)
		if err != nil {
			return nil, err
		}
		ty2, err := TypeOf(n.Arg, ctx, subtyping)
		if err != nil {
			return nil, err
		}
		arrow, ok := ty1.(*term.ArrowTy)
		if !ok {
			return nil, errors.NotArrow("check", "", ty1.String())
		}
		if subtyping {
			if !Subtype(ty2, arrow.T1) {
				return nil, errors.ParamMismatch("check", "", arrow.T1.String(), ty2.String())
			}
		} else if !ty2.Equal(arrow.T1) {
			return nil, errors.ParamMismatch("check", "", arrow.T1.String(), ty2.String())
		}
		return arrow.T2, nil

	case *term.If:
		condTy, err := TypeOf(n.Cond, ctx, subtyping)
		if err != nil {
			return nil, err
		}
		if _, ok := condTy.(term.BoolTy); !ok {
			return nil, errors.New(errors.CHK001, "check", "", "if-condition must be Bool, got %s", condTy)
		}
		thenTy, err := TypeOf(n.Then, ctx, subtyping)
		if err != nil {
			return nil, err
		}
		elseTy, err := TypeOf(n.Else, ctx, subtyping)
		if err != nil {
			return nil, err
		}
		if subtyping {
			return Join(thenTy, elseTy), nil
		}
		if !thenTy.Equal(elseTy) {
			return nil, errors.IfBranchMismatch("check", "", thenTy.String(), elseTy.String())
		}
		return thenTy, nil

	case *term.Let:
		initTy, err := TypeOf(n.Init, ctx, subtyping)
		if err != nil {
			return nil, err
		}
		return term.WithBinding(ctx, n.Name, term.VarBinding{Ty: initTy}, func() (term.Type, error) {
			return TypeOf(n.Body, ctx, subtyping)
		})

	case *term.Tuple:
		elems := make([]term.Type, len(n.Fields))
		for i, f := range n.Fields {
			ty, err := TypeOf(f, ctx, subtyping)
			if err != nil {
				return nil, err
			}
			elems[i] = ty
		}
		return &term.TupleTy{Elements: elems}, nil

	case *term.Record:
		fields := make([]term.TyField, len(n.Fields))
		for i, f := range n.Fields {
			ty, err := TypeOf(f.Value, ctx, subtyping)
			if err != nil {
				return nil, err
			}
			fields[i] = term.TyField{Label: f.Label, Ty: ty}
		}
		return &term.RecordTy{Fields: fields}, nil

	case *term.Proj:
		recTy, err := TypeOf(n.Rec, ctx, subtyping)
		if err != nil {
			return nil, err
		}
		switch rt := recTy.(type) {
		case *term.RecordTy:
			fty, ok := rt.Lookup(n.Label)
			if !ok {
				return nil, errors.MissingLabel("check", "", n.Label, rt.String())
			}
			return fty, nil
		case *term.TupleTy:
			idx, err := tupleIndex(n.Label, len(rt.Elements))
			if err != nil {
				return nil, err
			}
			return rt.Elements[idx], nil
		default:
			return nil, errors.NotRecord("check", "", recTy.String())
		}

	case *term.TypeAbs:
		bodyTy, err := term.WithBinding(ctx, n.Name, term.TyVarBinding{}, func() (term.Type, error) {
			return TypeOf(n.Body, ctx, subtyping)
		})
		if err != nil {
			return nil, err
		}
		return &term.UnivTy{Name: n.Name, Body: bodyTy}, nil

	case *term.TypeApp:
		innerTy, err := TypeOf(n.Term, ctx, subtyping)
		if err != nil {
			return nil, err
		}
		univ, ok := innerTy.(*term.UnivTy)
		if !ok {
			return nil, errors.NotUniv("check", "", innerTy.String())
		}
		return subst.TypeSubstTop(univ.Body, n.Ty)

	case *term.ExisPack:
		asExis, ok := n.As.(*term.ExisTy)
		if !ok {
			return nil, errors.NotExis("check", "", n.As.String())
		}
		wantBodyTy, err := subst.TypeSubstTop(asExis.Body, n.Hidden)
		if err != nil {
			return nil, err
		}
		bodyTy, err := TypeOf(n.Body, ctx, subtyping)
		if err != nil {
			return nil, err
		}
		if !bodyTy.Equal(wantBodyTy) {
			return nil, errors.New(errors.CHK001, "check", "", "existential package body has type %s, want %s", bodyTy, wantBodyTy)
		}
		return n.As, nil

	case *term.ExisUnpack:
		initTy, err := TypeOf(n.Init, ctx, subtyping)
		if err != nil {
			return nil, err
		}
		exis, ok := initTy.(*term.ExisTy)
		if !ok {
			return nil, errors.NotExis("check", "", initTy.String())
		}
		ctx.AddBinding(n.TyName, term.TyVarBinding{})
		ctx.AddBinding(n.VarName, term.VarBinding{Ty: exis.Body})
		bodyTy, err := TypeOf(n.Body, ctx, subtyping)
		ctx.PopBinding()
		ctx.PopBinding()
		if err != nil {
			return nil, err
		}
		result, err := subst.TypeShift(bodyTy, -2, 0)
		if err != nil {
			return nil, errors.ScopingError("check", "", "existential unpack result type refers to the unpacked type variable")
		}
		return result, nil

	default:
		return nil, errors.New(errors.CHK001, "check", "", "unsupported term form for typing")
	}
}

func requireNat(arg term.Term, ctx *term.Context, subtyping bool) error {
	ty, err := TypeOf(arg, ctx, subtyping)
	if err != nil {
		return err
	}
	if _, ok := ty.(term.NatTy); !ok {
		return errors.New(errors.CHK001, "check", "", "expected Nat, got %s", ty)
	}
	return nil
}

func tupleIndex(label string, length int) (int, error) {
	n := 0
	for _, r := range label {
		if r < '0' || r > '9' {
			return 0, errors.NotRecord("check", "", "tuple projection label "+label)
		}
		n = n*10 + int(r-'0')
	}
	idx := n - 1
	if idx < 0 || idx >= length {
		return 0, errors.MissingLabel("check", "", label, "tuple")
	}
	return idx, nil
}
