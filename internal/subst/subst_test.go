package subst

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lambdac/lambdac/internal/term"
)

func TestShift_FreeVariableMovesByD(t *testing.T) {
	// lambda. (0 1) -- 0 is bound, 1 is free
	body := &term.App{Fn: &term.Var{Index: 0, CtxLen: 1}, Arg: &term.Var{Index: 1, CtxLen: 1}}
	abs := &term.Abs{Name: "x", Body: body}

	shifted, err := Shift(abs, 2, 0)
	require.NoError(t, err)

	app := shifted.(*term.Abs).Body.(*term.App)
	assert.Equal(t, 0, app.Fn.(*term.Var).Index, "bound variable must not move")
	assert.Equal(t, 3, app.Arg.(*term.Var).Index, "free variable moves by d")
}

func TestShift_NegativeResultIsScopingError(t *testing.T) {
	v := &term.Var{Index: 0, CtxLen: 1}
	_, err := Shift(v, -1, 0)
	require.Error(t, err)
}

func TestSubstTop_BetaReduction(t *testing.T) {
	// (lambda x. lambda y. x) applied to `true`: body after substTop is
	// lambda y. true (the outer bound var 0 becomes the argument, and
	// the binder disappears so indices below it stay in place).
	body := &term.Abs{Name: "y", Body: &term.Var{Index: 1, CtxLen: 2}}
	arg := term.True{}

	result, err := SubstTop(arg, body)
	require.NoError(t, err)

	inner, ok := result.(*term.Abs)
	require.True(t, ok)
	_, isTrue := inner.Body.(term.True)
	assert.True(t, isTrue, "substituted body should reduce to true")
}

func TestSubstTop_LeavesOtherFreeVarsShiftedDown(t *testing.T) {
	// lambda x. 1 (a reference to something one level further out)
	// substituting for x must shift the remaining free variable down
	// by one once the binder is removed.
	body := &term.Var{Index: 1, CtxLen: 2}
	arg := term.True{}

	result, err := SubstTop(arg, body)
	require.NoError(t, err)

	v, ok := result.(*term.Var)
	require.True(t, ok)
	assert.Equal(t, 0, v.Index)
}

func TestTypeShift_ArrowDistributesOverBothSides(t *testing.T) {
	ty := &term.ArrowTy{T1: &term.TyVar{Index: 0, CtxLen: 1}, T2: term.BoolTy{}}
	shifted, err := TypeShift(ty, 1, 0)
	require.NoError(t, err)

	arrow := shifted.(*term.ArrowTy)
	assert.Equal(t, 1, arrow.T1.(*term.TyVar).Index)
	assert.Equal(t, term.BoolTy{}, arrow.T2)
}

func TestTypeSubstTop_InstantiatesUniversal(t *testing.T) {
	// All X. X->X instantiated at Bool becomes Bool->Bool.
	univBody := &term.ArrowTy{T1: &term.TyVar{Index: 0, CtxLen: 1}, T2: &term.TyVar{Index: 0, CtxLen: 1}}
	result, err := TypeSubstTop(univBody, term.BoolTy{})
	require.NoError(t, err)

	arrow, ok := result.(*term.ArrowTy)
	require.True(t, ok)
	assert.Equal(t, term.BoolTy{}, arrow.T1)
	assert.Equal(t, term.BoolTy{}, arrow.T2)
}

func TestTypeIntoTermTop_RewritesEmbeddedAnnotations(t *testing.T) {
	// lambda X. lambda x:X. x, applied at type Bool, should rewrite the
	// Abs annotation to Bool without touching the Var it carries.
	inner := &term.Abs{Name: "x", Ty: &term.TyVar{Index: 0, CtxLen: 1}, Body: &term.Var{Index: 0, CtxLen: 1}}

	result, err := TypeIntoTermTop(term.BoolTy{}, inner)
	require.NoError(t, err)

	abs, ok := result.(*term.Abs)
	require.True(t, ok)
	assert.Equal(t, term.BoolTy{}, abs.Ty)
	assert.Equal(t, 0, abs.Body.(*term.Var).Index)
}
