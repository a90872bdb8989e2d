package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lambdac/lambdac/internal/term"
)

func TestEval_IdentityApplication(t *testing.T) {
	// (lambda x. x) true
	id := &term.Abs{Name: "x", Body: &term.Var{Index: 0, CtxLen: 1}}
	app := &term.App{Fn: id, Arg: term.True{}}

	result, err := Eval(app)
	require.NoError(t, err)
	assert.Equal(t, term.True{}, result)
}

func TestEval_IfTrue(t *testing.T) {
	ifTerm := &term.If{Cond: term.True{}, Then: term.Zero{}, Else: &term.Succ{Arg: term.Zero{}}}
	result, err := Eval(ifTerm)
	require.NoError(t, err)
	assert.Equal(t, term.Zero{}, result)
}

func TestEval_PredSuccCancel(t *testing.T) {
	// pred (succ 0) -> 0
	p := &term.Pred{Arg: &term.Succ{Arg: term.Zero{}}}
	result, err := Eval(p)
	require.NoError(t, err)
	assert.Equal(t, term.Zero{}, result)
}

func TestEval_PredZeroStaysZero(t *testing.T) {
	p := &term.Pred{Arg: term.Zero{}}
	result, err := Eval(p)
	require.NoError(t, err)
	assert.Equal(t, term.Zero{}, result)
}

func TestEval_IsZero(t *testing.T) {
	result, err := Eval(&term.IsZero{Arg: term.Zero{}})
	require.NoError(t, err)
	assert.Equal(t, term.True{}, result)

	result, err = Eval(&term.IsZero{Arg: &term.Succ{Arg: term.Zero{}}})
	require.NoError(t, err)
	assert.Equal(t, term.False{}, result)
}

func TestEval_ProjectionOnRecord(t *testing.T) {
	rec := &term.Record{Fields: []term.Field{{Label: "a", Value: term.True{}}, {Label: "b", Value: term.Zero{}}}}
	proj := &term.Proj{Rec: rec, Label: "b"}

	result, err := Eval(proj)
	require.NoError(t, err)
	assert.Equal(t, term.Zero{}, result)
}

func TestEval_MissingLabelErrors(t *testing.T) {
	rec := &term.Record{Fields: []term.Field{{Label: "a", Value: term.True{}}}}
	proj := &term.Proj{Rec: rec, Label: "z"}

	_, err := Eval(proj)
	require.Error(t, err)
}

func TestEval_LetBindsAndEvaluatesBody(t *testing.T) {
	// let x = true in if x then 0 else succ 0
	letTerm := &term.Let{
		Name: "x",
		Init: term.True{},
		Body: &term.If{Cond: &term.Var{Index: 0, CtxLen: 1}, Then: term.Zero{}, Else: &term.Succ{Arg: term.Zero{}}},
	}
	result, err := Eval(letTerm)
	require.NoError(t, err)
	assert.Equal(t, term.Zero{}, result)
}

func TestEval_TupleProjection(t *testing.T) {
	tup := &term.Tuple{Fields: []term.Term{term.True{}, term.Zero{}}}
	proj := &term.Proj{Rec: tup, Label: "2"}

	result, err := Eval(proj)
	require.NoError(t, err)
	assert.Equal(t, term.Zero{}, result)
}

func TestEval_CongruenceStepsLeftArgumentFirst(t *testing.T) {
	// (if true then (lambda x. x) else (lambda x. x)) true
	chooser := &term.If{
		Cond: term.True{},
		Then: &term.Abs{Name: "x", Body: &term.Var{Index: 0, CtxLen: 1}},
		Else: &term.Abs{Name: "x", Body: &term.Var{Index: 0, CtxLen: 1}},
	}
	app := &term.App{Fn: chooser, Arg: term.True{}}
	result, err := Eval(app)
	require.NoError(t, err)
	assert.Equal(t, term.True{}, result)
}

func TestEval_TypeApplicationInstantiatesBody(t *testing.T) {
	// (lambda X. lambda x:X. x) [Bool] applied gives back the identity at Bool
	poly := &term.TypeAbs{
		Name: "X",
		Body: &term.Abs{Name: "x", Ty: &term.TyVar{Index: 0, CtxLen: 1}, Body: &term.Var{Index: 0, CtxLen: 1}},
	}
	inst := &term.TypeApp{Term: poly, Ty: term.BoolTy{}}

	result, err := Eval(inst)
	require.NoError(t, err)

	abs, ok := result.(*term.Abs)
	require.True(t, ok)
	assert.Equal(t, term.BoolTy{}, abs.Ty)
}

func TestIsValue_NumeralsAndAggregates(t *testing.T) {
	assert.True(t, IsValue(term.Zero{}))
	assert.True(t, IsValue(&term.Succ{Arg: term.Zero{}}))
	assert.False(t, IsValue(&term.Succ{Arg: &term.Var{Index: 0, CtxLen: 1}}))
	assert.True(t, IsValue(&term.Tuple{Fields: []term.Term{term.True{}, term.Zero{}}}))
	assert.False(t, IsValue(&term.Tuple{Fields: []term.Term{term.True{}, &term.Var{Index: 0, CtxLen: 1}}}))
}
