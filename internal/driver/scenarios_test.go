package driver_test

import (
	"testing"

	"github.com/lambdac/lambdac/internal/calculi"
	"github.com/lambdac/lambdac/testutil"
)

// TestEndToEndScenarios runs one representative command sequence per
// calculus level, covering evaluation mode, type-check mode, and the
// failure cases each level's semantics require.
func TestEndToEndScenarios(t *testing.T) {
	testutil.RunAll(t, []testutil.Script{
		{
			Name:   "level1_arith",
			Level:  calculi.Arith,
			Mode:   calculi.ModeEval,
			Source: "true; if false then true else false; 0; succ (pred 0); iszero (pred (succ (succ 0)));",
			Want:   []string{"true", "false", "0", "succ 0", "false"},
		},
		{
			Name:   "level2_untyped",
			Level:  calculi.Untyped,
			Mode:   calculi.ModeEval,
			Source: "(lambda x. x) (lambda x. x x);",
			Want:   []string{"(lambda x. (x x))"},
		},
		{
			Name:  "level3_simplebool_type_mode",
			Level: calculi.SimpleBool,
			Mode:  calculi.ModeType,
			Source: "lambda x:Bool. x; " +
				"(lambda x:Bool->Bool. if x false then true else false) (lambda x:Bool. if x then false else true);",
			Want: []string{"Bool->Bool", "Bool"},
		},
		{
			Name:   "level4_rcdsub_eval_mode",
			Level:  calculi.RecordSub,
			Mode:   calculi.ModeEval,
			Source: "{x=lambda z:Top.z, y=lambda z:Top.z, w={x1=lambda m:Top.m}}.w.x1;",
			Want:   []string{"(lambda m:Top. m)"},
		},
		{
			Name:    "level5_recon_occurs_check",
			Level:   calculi.Recon,
			Mode:    calculi.ModeType,
			Source:  "lambda x. x x;",
			Want:    []string{""},
			WantErr: []bool{true},
		},
		{
			Name:   "level6_systemf_type_application",
			Level:  calculi.SystemF,
			Mode:   calculi.ModeEval,
			Source: "(lambda X. lambda x:X. x) [Nat] 0;",
			Want:   []string{"0"},
		},
	})
}
