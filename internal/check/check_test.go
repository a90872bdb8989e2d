package check

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lambdac/lambdac/internal/term"
)

func TestTypeOf_IdentityAbstraction(t *testing.T) {
	ctx := term.NewContext()
	abs := &term.Abs{Name: "x", Ty: term.BoolTy{}, Body: &term.Var{Index: 0, CtxLen: 1}}

	ty, err := TypeOf(abs, ctx, false)
	require.NoError(t, err)
	assert.Equal(t, &term.ArrowTy{T1: term.BoolTy{}, T2: term.BoolTy{}}, ty)
}

func TestTypeOf_AppParamMismatchWithoutSubtyping(t *testing.T) {
	ctx := term.NewContext()
	abs := &term.Abs{Name: "x", Ty: term.BoolTy{}, Body: &term.Var{Index: 0, CtxLen: 1}}
	app := &term.App{Fn: abs, Arg: term.Zero{}}

	_, err := TypeOf(app, ctx, false)
	require.Error(t, err)
}

func TestTypeOf_AppAcceptsSubtypeArgument(t *testing.T) {
	ctx := term.NewContext()
	paramTy := &term.RecordTy{Fields: []term.TyField{{Label: "x", Ty: term.BoolTy{}}}}
	abs := &term.Abs{Name: "r", Ty: paramTy, Body: &term.Var{Index: 0, CtxLen: 1}}
	argTy := &term.Record{Fields: []term.Field{
		{Label: "x", Value: term.True{}},
		{Label: "y", Value: term.Zero{}},
	}}
	app := &term.App{Fn: abs, Arg: argTy}

	ty, err := TypeOf(app, ctx, true)
	require.NoError(t, err)
	assert.Equal(t, paramTy, ty)
}

func TestTypeOf_IfRequiresEqualBranchesWithoutSubtyping(t *testing.T) {
	ctx := term.NewContext()
	ifTerm := &term.If{Cond: term.True{}, Then: term.Zero{}, Else: term.True{}}

	_, err := TypeOf(ifTerm, ctx, false)
	require.Error(t, err)
}

func TestTypeOf_IfJoinsBranchesWithSubtyping(t *testing.T) {
	ctx := term.NewContext()
	thenTy := &term.RecordTy{Fields: []term.TyField{{Label: "x", Ty: term.BoolTy{}}, {Label: "y", Ty: term.NatTy{}}}}
	elseTy := &term.RecordTy{Fields: []term.TyField{{Label: "x", Ty: term.BoolTy{}}}}
	ifTerm := &term.If{
		Cond: term.True{},
		Then: &term.Record{Fields: []term.Field{{Label: "x", Value: term.True{}}, {Label: "y", Value: term.Zero{}}}},
		Else: &term.Record{Fields: []term.Field{{Label: "x", Value: term.False{}}}},
	}
	_ = thenTy
	_ = elseTy

	ty, err := TypeOf(ifTerm, ctx, true)
	require.NoError(t, err)
	rt, ok := ty.(*term.RecordTy)
	require.True(t, ok)
	_, hasX := rt.Lookup("x")
	assert.True(t, hasX)
	_, hasY := rt.Lookup("y")
	assert.False(t, hasY, "join should drop the field only one branch has")
}

func TestTypeOf_ProjectionMissingLabel(t *testing.T) {
	ctx := term.NewContext()
	rec := &term.Record{Fields: []term.Field{{Label: "a", Value: term.True{}}}}
	proj := &term.Proj{Rec: rec, Label: "z"}

	_, err := TypeOf(proj, ctx, true)
	require.Error(t, err)
}

func TestTypeOf_SystemFAbstractionAndApplication(t *testing.T) {
	ctx := term.NewContext()
	poly := &term.TypeAbs{
		Name: "X",
		Body: &term.Abs{Name: "x", Ty: &term.TyVar{Index: 0, CtxLen: 1}, Body: &term.Var{Index: 0, CtxLen: 1}},
	}
	ty, err := TypeOf(poly, ctx, true)
	require.NoError(t, err)
	univ, ok := ty.(*term.UnivTy)
	require.True(t, ok)

	inst := &term.TypeApp{Term: poly, Ty: term.BoolTy{}}
	instTy, err := TypeOf(inst, ctx, true)
	require.NoError(t, err)
	assert.Equal(t, &term.ArrowTy{T1: term.BoolTy{}, T2: term.BoolTy{}}, instTy)
	_ = univ
}

func TestSubtype_TopIsSupertypeOfEverything(t *testing.T) {
	assert.True(t, Subtype(term.BoolTy{}, term.TopTy{}))
	assert.True(t, Subtype(term.BotTy{}, term.NatTy{}))
	assert.False(t, Subtype(term.TopTy{}, term.BoolTy{}))
}

func TestSubtype_ArrowIsContravariantInArgument(t *testing.T) {
	wideParam := &term.RecordTy{}
	narrowParam := &term.RecordTy{Fields: []term.TyField{{Label: "a", Ty: term.BoolTy{}}}}

	s := &term.ArrowTy{T1: wideParam, T2: term.BoolTy{}}
	t2 := &term.ArrowTy{T1: narrowParam, T2: term.BoolTy{}}

	assert.True(t, Subtype(s, t2), "a function accepting a wider record is a subtype of one accepting a narrower record")
	assert.False(t, Subtype(t2, s))
}

func TestJoin_RecordsIntersectLabels(t *testing.T) {
	a := &term.RecordTy{Fields: []term.TyField{{Label: "x", Ty: term.BoolTy{}}, {Label: "y", Ty: term.NatTy{}}}}
	b := &term.RecordTy{Fields: []term.TyField{{Label: "x", Ty: term.BoolTy{}}}}

	joined := Join(a, b).(*term.RecordTy)
	assert.Len(t, joined.Fields, 1)
}

func TestMeet_RecordsUnionLabels(t *testing.T) {
	a := &term.RecordTy{Fields: []term.TyField{{Label: "x", Ty: term.BoolTy{}}}}
	b := &term.RecordTy{Fields: []term.TyField{{Label: "y", Ty: term.NatTy{}}}}

	m, ok := Meet(a, b)
	require.True(t, ok)
	rt := m.(*term.RecordTy)
	assert.Len(t, rt.Fields, 2)
}
