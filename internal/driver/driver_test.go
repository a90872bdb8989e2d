package driver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lambdac/lambdac/internal/calculi"
	"github.com/lambdac/lambdac/internal/term"
)

func TestDriver_ArithScenario(t *testing.T) {
	d := New(calculi.Arith, calculi.ModeEval)
	results, err := d.RunSource(
		"true; if false then true else false; 0; succ (pred 0); iszero (pred (succ (succ 0)));",
		"<test>",
	)
	require.NoError(t, err)
	want := []string{"true", "false", "0", "succ 0", "false"}
	require.Len(t, results, len(want))
	for i, r := range results {
		require.NoError(t, r.Err)
		assert.Equal(t, want[i], r.Line)
	}
}

func TestDriver_UntypedScenario(t *testing.T) {
	d := New(calculi.Untyped, calculi.ModeEval)
	results, err := d.RunSource("(lambda x. x) (lambda x. x x);", "<test>")
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.NoError(t, results[0].Err)
	assert.Equal(t, "(lambda x. (x x))", results[0].Line)
}

func TestDriver_SimpleBoolTypeMode(t *testing.T) {
	d := New(calculi.SimpleBool, calculi.ModeType)
	results, err := d.RunSource(
		"lambda x:Bool. x; (lambda x:Bool->Bool. if x false then true else false) (lambda x:Bool. if x then false else true);",
		"<test>",
	)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "Bool->Bool", results[0].Line)
	assert.Equal(t, "Bool", results[1].Line)
}

func TestDriver_RecordSubNestedProjection(t *testing.T) {
	d := New(calculi.RecordSub, calculi.ModeEval)
	results, err := d.RunSource(
		"{x=lambda z:Top.z, y=lambda z:Top.z, w={x1=lambda m:Top.m}}.w.x1;",
		"<test>",
	)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.NoError(t, results[0].Err)
	assert.Equal(t, "(lambda m:Top. m)", results[0].Line)
}

func TestDriver_ReconOccursCheckFails(t *testing.T) {
	d := New(calculi.Recon, calculi.ModeType)
	results, err := d.RunSource("lambda x. x x;", "<test>")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Error(t, results[0].Err)
}

func TestDriver_SystemFTypeApplication(t *testing.T) {
	d := New(calculi.SystemF, calculi.ModeEval)
	results, err := d.RunSource("(lambda X. lambda x:X. x) [Nat] 0;", "<test>")
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.NoError(t, results[0].Err)
	assert.Equal(t, "0", results[0].Line)
}

func TestDriver_BindCmdExtendsContextAndFailedBindDoesNotInstall(t *testing.T) {
	d := New(calculi.SimpleBool, calculi.ModeEval)
	results, err := d.RunSource("undefinedPrefix : Bool; undefinedPrefix; badBind : Missing;", "<test>")
	require.NoError(t, err)
	require.Len(t, results, 3)
	require.NoError(t, results[0].Err)
	assert.Equal(t, "undefinedPrefix", results[0].Line)
	require.NoError(t, results[1].Err)
	assert.Error(t, results[2].Err)

	assert.Equal(t, 1, d.Ctx.Len())
}

func TestDriver_FailedCommandDoesNotPoisonContext(t *testing.T) {
	d := New(calculi.SimpleBool, calculi.ModeEval)
	results, err := d.RunSource("x;", "<test>")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Error(t, results[0].Err)
	assert.Equal(t, 0, d.Ctx.Len())
}

func TestDriver_FreshCounterResetBetweenRuns(t *testing.T) {
	term.ResetFreshCounter()
	d1 := New(calculi.Recon, calculi.ModeType)
	r1, err := d1.RunSource("lambda x. x;", "<test>")
	require.NoError(t, err)
	require.NoError(t, r1[0].Err)

	term.ResetFreshCounter()
	d2 := New(calculi.Recon, calculi.ModeType)
	r2, err := d2.RunSource("lambda x. x;", "<test>")
	require.NoError(t, err)
	require.NoError(t, r2[0].Err)

	assert.Equal(t, r1[0].Line, r2[0].Line)
}
