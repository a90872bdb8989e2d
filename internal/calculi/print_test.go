package calculi

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lambdac/lambdac/internal/term"
)

func TestPrintTerm_IdentityAbstraction(t *testing.T) {
	abs := &term.Abs{Name: "x", Body: &term.Var{Index: 0, CtxLen: 1}}
	assert.Equal(t, "(lambda x. x)", PrintTerm(abs, nil))
}

func TestPrintTerm_ShadowedBinderGetsPrime(t *testing.T) {
	// lambda x. lambda x. x  --  inner x shadows outer x and must print x'
	inner := &term.Abs{Name: "x", Body: &term.Var{Index: 0, CtxLen: 2}}
	outer := &term.Abs{Name: "x", Body: inner}
	assert.Equal(t, "(lambda x. (lambda x'. x'))", PrintTerm(outer, nil))
}

func TestPrintTerm_FreeVariableReferencesOuterScopeName(t *testing.T) {
	// lambda x. lambda y. x, with y freshly bound and x referencing the outer name
	body := &term.Abs{Name: "y", Body: &term.Var{Index: 1, CtxLen: 2}}
	outer := &term.Abs{Name: "x", Body: body}
	assert.Equal(t, "(lambda x. (lambda y. x))", PrintTerm(outer, nil))
}

func TestPrintTerm_ScopingMismatchIsReportedNotPanicked(t *testing.T) {
	v := &term.Var{Index: 5, CtxLen: 1}
	assert.Contains(t, PrintTerm(v, nil), "scoping error")
}

func TestPrintTerm_NumeralsPrintAsSuccChain(t *testing.T) {
	three := &term.Succ{Arg: &term.Succ{Arg: &term.Succ{Arg: term.Zero{}}}}
	assert.Equal(t, "succ succ succ 0", PrintTerm(three, nil))
}

func TestPrintTerm_RecordLiteral(t *testing.T) {
	rec := &term.Record{Fields: []term.Field{{Label: "a", Value: term.True{}}, {Label: "b", Value: term.Zero{}}}}
	assert.Equal(t, "{a=true, b=0}", PrintTerm(rec, nil))
}

func TestPrintType_ArrowIsRightAssociativeInPrinting(t *testing.T) {
	ty := &term.ArrowTy{T1: &term.ArrowTy{T1: term.BoolTy{}, T2: term.BoolTy{}}, T2: term.NatTy{}}
	assert.Equal(t, "(Bool->Bool)->Nat", PrintType(ty, nil))
}

func TestPrintType_UniversalBindsAFreshName(t *testing.T) {
	univ := &term.UnivTy{Name: "X", Body: &term.TyVar{Index: 0, CtxLen: 1}}
	assert.Equal(t, "All X.X", PrintType(univ, nil))
}
