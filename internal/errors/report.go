package errors

import (
	"errors"
	"fmt"
)

// Report is the structured diagnostic every phase raises instead of a
// bare string error, so the driver and REPL can render position,
// phase, and code uniformly.
type Report struct {
	Code    string
	Phase   string
	Message string
	Pos     string // formatted source position, empty if not applicable
}

// Error implements the error interface.
func (r *Report) Error() string {
	if r.Pos != "" {
		return fmt.Sprintf("%s: %s: %s", r.Pos, r.Code, r.Message)
	}
	return fmt.Sprintf("%s: %s", r.Code, r.Message)
}

// New builds a Report.
func New(code, phase, pos, format string, args ...interface{}) *Report {
	return &Report{Code: code, Phase: phase, Pos: pos, Message: fmt.Sprintf(format, args...)}
}

// As extracts a *Report from an error chain, mirroring errors.As.
func As(err error) (*Report, bool) {
	var r *Report
	if errors.As(err, &r) {
		return r, true
	}
	return nil, false
}

// UnboundName, DuplicateLabel, MissingLabel, ParamMismatch, NotArrow,
// NotRecord, NotUniv, NotExis, IfBranchMismatch, ScopingError,
// UnifyFail, and OccursCheckFail are constructors for the error
// taxonomy above. NoRuleApplies is intentionally absent: it is a
// loop-exit sentinel (see internal/eval) and must never surface here.

func UnboundName(phase, pos, name string) *Report {
	return New(BLD001, phase, pos, "unbound name %q", name)
}

func DuplicateLabel(phase, pos, label string) *Report {
	return New(BLD002, phase, pos, "duplicate record label %q", label)
}

func MissingLabel(phase, pos, label, recordText string) *Report {
	code := EVL001
	if phase == "check" {
		code = CHK008
	}
	return New(code, phase, pos, "no label %q in record %s", label, recordText)
}

func ParamMismatch(phase, pos, expected, got string) *Report {
	return New(CHK002, phase, pos, "parameter type mismatch: expected %s, got %s", expected, got)
}

func NotArrow(phase, pos, got string) *Report {
	return New(CHK003, phase, pos, "expected an arrow type, got %s", got)
}

func NotRecord(phase, pos, got string) *Report {
	return New(CHK004, phase, pos, "expected a record type, got %s", got)
}

func NotUniv(phase, pos, got string) *Report {
	return New(CHK005, phase, pos, "expected a universal type, got %s", got)
}

func NotExis(phase, pos, got string) *Report {
	return New(CHK006, phase, pos, "expected an existential type, got %s", got)
}

func IfBranchMismatch(phase, pos, thenTy, elseTy string) *Report {
	return New(CHK007, phase, pos, "if-branches have different types: %s vs %s", thenTy, elseTy)
}

func ScopingError(phase, pos, reason string) *Report {
	code := SUB001
	if phase == "check" {
		code = CHK009
	}
	return New(code, phase, pos, "%s", reason)
}

func UnifyFail(pos, left, right string) *Report {
	return New(REC001, "recon", pos, "cannot unify %s with %s", left, right)
}

func OccursCheckFail(pos, tvar, other string) *Report {
	return New(REC002, "recon", pos, "occurs check failed: %s occurs in %s", tvar, other)
}
