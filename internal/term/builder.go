package term

import (
	"github.com/lambdac/lambdac/internal/ast"
	"github.com/lambdac/lambdac/internal/errors"
)

// BuildOptions parameterizes the builder over the handful of ways the
// six calculi's binder/type forms differ.
type BuildOptions struct {
	// RequireAbsType is true for the checked calculi (simplebool,
	// rcdsub, systemf), where BuildTerm rejects an Abs without a type
	// annotation.
	RequireAbsType bool
	// FreeTypeIdents is true only for level-5 reconstruction, where a
	// bare type identifier is always a free-standing IdTy (source
	// annotation or, later, a unification variable) rather than a
	// Context-resolved TyVar.
	FreeTypeIdents bool
}

// BuildCommand builds one top-level ast.Command. For a BindCmd it
// returns the (name, binding) pair for the driver to install; the
// builder itself never mutates ctx for a BindCmd so a failed
// declaration leaves no trace.
func BuildCommand(cmd ast.Command, ctx *Context, opts BuildOptions) (name string, binding Binding, t Term, err error) {
	switch c := cmd.(type) {
	case *ast.BindCmd:
		ty, err := BuildType(c.Ty, ctx, opts)
		if err != nil {
			return "", nil, nil, err
		}
		return c.Name, VarBinding{Ty: ty}, nil, nil
	case *ast.EvalCmd:
		built, err := BuildTerm(c.Term, ctx, opts)
		if err != nil {
			return "", nil, nil, err
		}
		return "", nil, built, nil
	default:
		return "", nil, nil, errors.New(errors.BLD001, "build", cmd.Position().String(), "unknown command form")
	}
}

// BuildTerm builds a nameless Term from a concrete ast.Term, resolving
// every Var against ctx and extending/restoring ctx around every binder.
func BuildTerm(t ast.Term, ctx *Context, opts BuildOptions) (Term, error) {
	switch n := t.(type) {
	case *ast.Var:
		idx, _, ok := ctx.FindBinding(n.Name)
		if !ok {
			return nil, errors.UnboundName("build", n.Pos.String(), n.Name)
		}
		return &Var{Index: idx, CtxLen: ctx.Len()}, nil

	case *ast.Abs:
		var ty Type
		if n.Ty != nil {
			var err error
			ty, err = BuildType(n.Ty, ctx, opts)
			if err != nil {
				return nil, err
			}
		}
		if ty == nil && opts.RequireAbsType {
			return nil, errors.New(errors.BLD001, "build", n.Pos.String(), "abstraction %q needs a type annotation at this level", n.Name)
		}
		var binding Binding
		if ty != nil {
			binding = VarBinding{Ty: ty}
		} else {
			binding = OpaqueBinding{}
		}
		body, err := WithBinding(ctx, n.Name, binding, func() (Term, error) {
			return BuildTerm(n.Body, ctx, opts)
		})
		if err != nil {
			return nil, err
		}
		return &Abs{Name: n.Name, Ty: ty, Body: body}, nil

	case *ast.App:
		fn, err := BuildTerm(n.Fn, ctx, opts)
		if err != nil {
			return nil, err
		}
		arg, err := BuildTerm(n.Arg, ctx, opts)
		if err != nil {
			return nil, err
		}
		return &App{Fn: fn, Arg: arg}, nil

	case *ast.If:
		cond, err := BuildTerm(n.Cond, ctx, opts)
		if err != nil {
			return nil, err
		}
		then, err := BuildTerm(n.Then, ctx, opts)
		if err != nil {
			return nil, err
		}
		els, err := BuildTerm(n.Else, ctx, opts)
		if err != nil {
			return nil, err
		}
		return &If{Cond: cond, Then: then, Else: els}, nil

	case *ast.Let:
		init, err := BuildTerm(n.Init, ctx, opts)
		if err != nil {
			return nil, err
		}
		body, err := WithBinding(ctx, n.Name, OpaqueBinding{}, func() (Term, error) {
			return BuildTerm(n.Body, ctx, opts)
		})
		if err != nil {
			return nil, err
		}
		return &Let{Name: n.Name, Init: init, Body: body}, nil

	case *ast.TupleLit:
		fields := make([]Term, len(n.Fields))
		for i, f := range n.Fields {
			built, err := BuildTerm(f, ctx, opts)
			if err != nil {
				return nil, err
			}
			fields[i] = built
		}
		return &Tuple{Fields: fields}, nil

	case *ast.RecordLit:
		seen := make(map[string]bool, len(n.Fields))
		fields := make([]Field, len(n.Fields))
		for i, f := range n.Fields {
			if seen[f.Label] {
				return nil, errors.DuplicateLabel("build", n.Pos.String(), f.Label)
			}
			seen[f.Label] = true
			built, err := BuildTerm(f.Value, ctx, opts)
			if err != nil {
				return nil, err
			}
			fields[i] = Field{Label: f.Label, Value: built}
		}
		return &Record{Fields: fields}, nil

	case *ast.Proj:
		rec, err := BuildTerm(n.Rec, ctx, opts)
		if err != nil {
			return nil, err
		}
		return &Proj{Rec: rec, Label: n.Label}, nil

	case *ast.True:
		return True{}, nil
	case *ast.False:
		return False{}, nil

	case *ast.IntLit:
		return expandNumeral(n.Value), nil

	case *ast.Succ:
		arg, err := BuildTerm(n.Arg, ctx, opts)
		if err != nil {
			return nil, err
		}
		return &Succ{Arg: arg}, nil

	case *ast.Pred:
		arg, err := BuildTerm(n.Arg, ctx, opts)
		if err != nil {
			return nil, err
		}
		return &Pred{Arg: arg}, nil

	case *ast.IsZero:
		arg, err := BuildTerm(n.Arg, ctx, opts)
		if err != nil {
			return nil, err
		}
		return &IsZero{Arg: arg}, nil

	case *ast.TypeAbs:
		body, err := WithBinding(ctx, n.Name, TyVarBinding{}, func() (Term, error) {
			return BuildTerm(n.Body, ctx, opts)
		})
		if err != nil {
			return nil, err
		}
		return &TypeAbs{Name: n.Name, Body: body}, nil

	case *ast.TypeApp:
		inner, err := BuildTerm(n.Term, ctx, opts)
		if err != nil {
			return nil, err
		}
		ty, err := BuildType(n.Ty, ctx, opts)
		if err != nil {
			return nil, err
		}
		return &TypeApp{Term: inner, Ty: ty}, nil

	case *ast.Pack:
		hidden, err := BuildType(n.HiddenTy, ctx, opts)
		if err != nil {
			return nil, err
		}
		body, err := BuildTerm(n.Body, ctx, opts)
		if err != nil {
			return nil, err
		}
		asTy, err := BuildType(n.AsTy, ctx, opts)
		if err != nil {
			return nil, err
		}
		return &ExisPack{Hidden: hidden, Body: body, As: asTy}, nil

	case *ast.Unpack:
		init, err := BuildTerm(n.Init, ctx, opts)
		if err != nil {
			return nil, err
		}
		ctx.AddBinding(n.TyName, TyVarBinding{})
		body, err := WithBinding(ctx, n.VarName, OpaqueBinding{}, func() (Term, error) {
			return BuildTerm(n.Body, ctx, opts)
		})
		ctx.PopBinding()
		if err != nil {
			return nil, err
		}
		return &ExisUnpack{TyName: n.TyName, VarName: n.VarName, Init: init, Body: body}, nil

	default:
		return nil, errors.New(errors.BLD001, "build", t.Position().String(), "unsupported term form")
	}
}

// expandNumeral expands a surface numeral n into nested Succ/Zero nodes.
func expandNumeral(n int) Term {
	if n <= 0 {
		return Zero{}
	}
	return &Succ{Arg: expandNumeral(n - 1)}
}

// BuildType builds a nameless Type from a concrete ast.Ty.
func BuildType(ty ast.Ty, ctx *Context, opts BuildOptions) (Type, error) {
	switch n := ty.(type) {
	case *ast.BoolTy:
		return BoolTy{}, nil
	case *ast.NatTy:
		return NatTy{}, nil
	case *ast.TopTy:
		return TopTy{}, nil
	case *ast.BotTy:
		return BotTy{}, nil
	case *ast.ArrowTy:
		t1, err := BuildType(n.T1, ctx, opts)
		if err != nil {
			return nil, err
		}
		t2, err := BuildType(n.T2, ctx, opts)
		if err != nil {
			return nil, err
		}
		return &ArrowTy{T1: t1, T2: t2}, nil
	case *ast.RecordTy:
		fields := make([]TyField, len(n.Fields))
		seen := make(map[string]bool, len(n.Fields))
		for i, f := range n.Fields {
			if seen[f.Label] {
				return nil, errors.DuplicateLabel("build", n.Pos.String(), f.Label)
			}
			seen[f.Label] = true
			fty, err := BuildType(f.Ty, ctx, opts)
			if err != nil {
				return nil, err
			}
			fields[i] = TyField{Label: f.Label, Ty: fty}
		}
		return &RecordTy{Fields: fields}, nil
	case *ast.TupleTy:
		elems := make([]Type, len(n.Elements))
		for i, e := range n.Elements {
			ety, err := BuildType(e, ctx, opts)
			if err != nil {
				return nil, err
			}
			elems[i] = ety
		}
		return &TupleTy{Elements: elems}, nil
	case *ast.IdentTy:
		if opts.FreeTypeIdents {
			return &IdTy{Name: n.Name}, nil
		}
		idx, b, ok := ctx.FindBinding(n.Name)
		if !ok {
			return nil, errors.UnboundName("build", n.Pos.String(), n.Name)
		}
		if _, isTyVar := b.(TyVarBinding); !isTyVar {
			return nil, errors.UnboundName("build", n.Pos.String(), n.Name)
		}
		return &TyVar{Index: idx, CtxLen: ctx.Len()}, nil
	case *ast.UnivTy:
		body, err := WithBinding(ctx, n.Name, TyVarBinding{}, func() (Type, error) {
			return BuildType(n.Body, ctx, opts)
		})
		if err != nil {
			return nil, err
		}
		return &UnivTy{Name: n.Name, Body: body}, nil
	case *ast.ExisTy:
		body, err := WithBinding(ctx, n.Name, TyVarBinding{}, func() (Type, error) {
			return BuildType(n.Body, ctx, opts)
		})
		if err != nil {
			return nil, err
		}
		return &ExisTy{Name: n.Name, Body: body}, nil
	default:
		return nil, errors.New(errors.BLD001, "build", ty.Position().String(), "unsupported type form")
	}
}
