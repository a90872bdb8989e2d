package recon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lambdac/lambdac/internal/term"
)

func TestRecon_UnannotatedIdentity(t *testing.T) {
	term.ResetFreshCounter()
	ctx := term.NewContext()
	g := &Gen{}

	// lambda x. x
	abs := &term.Abs{Name: "x", Body: &term.Var{Index: 0, CtxLen: 1}}
	ty, cs, err := Recon(abs, ctx, g)
	require.NoError(t, err)

	sub, err := Unify(cs)
	require.NoError(t, err)

	ground := ApplySubst(ty, sub)
	arrow, ok := ground.(*term.ArrowTy)
	require.True(t, ok)
	assert.True(t, arrow.T1.Equal(arrow.T2), "identity's parameter and result types must unify to the same variable")
}

func TestRecon_IfUnifiesBranches(t *testing.T) {
	term.ResetFreshCounter()
	ctx := term.NewContext()
	g := &Gen{}

	// lambda x. if true then x else 0 forces x : Nat
	abs := &term.Abs{
		Name: "x",
		Body: &term.If{Cond: term.True{}, Then: &term.Var{Index: 0, CtxLen: 1}, Else: term.Zero{}},
	}
	ty, cs, err := Recon(abs, ctx, g)
	require.NoError(t, err)

	sub, err := Unify(cs)
	require.NoError(t, err)

	ground := ApplySubst(ty, sub).(*term.ArrowTy)
	assert.Equal(t, term.NatTy{}, ground.T1)
	assert.Equal(t, term.NatTy{}, ground.T2)
}

func TestUnify_OccursCheckFails(t *testing.T) {
	alpha := term.NewFreshIdTy()
	cs := []Constraint{{alpha, &term.ArrowTy{T1: alpha, T2: term.BoolTy{}}}}

	_, err := Unify(cs)
	require.Error(t, err)
}

func TestUnify_ArrowMismatchFails(t *testing.T) {
	cs := []Constraint{{term.BoolTy{}, &term.ArrowTy{T1: term.BoolTy{}, T2: term.BoolTy{}}}}
	_, err := Unify(cs)
	require.Error(t, err)
}

func TestRecon_LetGeneralizesOverUnconstrainedVariable(t *testing.T) {
	term.ResetFreshCounter()
	ctx := term.NewContext()
	g := &Gen{}

	// let id = lambda x. x in (id true, id would also work on Nat --
	// test only the first use here, covering that a polymorphic
	// binding instantiates fresh variables rather than reusing the
	// same unification variable as the next use would need).
	idAbs := &term.Abs{Name: "x", Body: &term.Var{Index: 0, CtxLen: 1}}
	letTerm := &term.Let{
		Name: "id",
		Init: idAbs,
		Body: &term.App{Fn: &term.Var{Index: 0, CtxLen: 1}, Arg: term.True{}},
	}

	ty, cs, err := Recon(letTerm, ctx, g)
	require.NoError(t, err)

	sub, err := Unify(cs)
	require.NoError(t, err)

	ground := ApplySubst(ty, sub)
	assert.Equal(t, term.BoolTy{}, ground)
}

func TestUnify_TupleComponentwise(t *testing.T) {
	alpha := term.NewFreshIdTy()
	cs := []Constraint{{
		&term.TupleTy{Elements: []term.Type{alpha, term.NatTy{}}},
		&term.TupleTy{Elements: []term.Type{term.BoolTy{}, term.NatTy{}}},
	}}
	sub, err := Unify(cs)
	require.NoError(t, err)
	assert.Equal(t, term.BoolTy{}, sub[alpha.Name])
}
