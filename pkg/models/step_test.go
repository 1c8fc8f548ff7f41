package models

import "testing"

func TestStepStatusValid(t *testing.T) {
	for _, s := range []StepStatus{
		StepStatusPending,
		StepStatusRunning,
		StepStatusDone,
		StepStatusFailed,
		StepStatusBlocked,
	} {
		if !s.Valid() {
			t.Errorf("%q should be valid", s)
		}
	}
	if StepStatus("finished").Valid() {
		t.Error("unknown status should be invalid")
	}
	if StepStatus("").Valid() {
		t.Error("empty status should be invalid")
	}
}

func TestStepResultFailed(t *testing.T) {
	if (StepResult{Summary: "ok"}).Failed() {
		t.Error("result without error should not be failed")
	}
	if !(StepResult{Err: "boom"}).Failed() {
		t.Error("result with error should be failed")
	}
}
