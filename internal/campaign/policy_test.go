package campaign

import "testing"

func intp(v int) *int { return &v }

func TestDefaultDialPolicyIsValid(t *testing.T) {
	p := DefaultDialPolicy()
	if errs := p.Validate(); len(errs) != 0 {
		t.Fatalf("defaults must validate, got %v", errs)
	}
	if p.MaxConcurrentCalls != 5 || p.CallsPerMinute != 10 || p.MaxRetries != 3 || p.RetryDelayMinutes != 30 {
		t.Fatalf("unexpected defaults: %+v", p)
	}
}

func TestDialPolicy_PerFieldViolations(t *testing.T) {
	p := DialPolicy{
		MaxConcurrentCalls: 5,
		CallsPerMinute:     150,
		MaxRetries:         3,
		RetryDelayMinutes:  30,
	}
	errs := p.Validate()
	if len(errs) != 1 {
		t.Fatalf("expected exactly one violation, got %v", errs)
	}
	if errs[0].Field != "calls_per_minute" {
		t.Fatalf("expected calls_per_minute error, got %v", errs[0])
	}
}

func TestDialPolicy_Bounds(t *testing.T) {
	cases := []struct {
		name string
		p    DialPolicy
		bad  string
	}{
		{"concurrent low", DialPolicy{0, 10, 3, 30}, "max_concurrent_calls"},
		{"concurrent high", DialPolicy{101, 10, 3, 30}, "max_concurrent_calls"},
		{"cpm low", DialPolicy{5, 0, 3, 30}, "calls_per_minute"},
		{"retries high", DialPolicy{5, 10, 11, 30}, "max_retries"},
		{"delay low", DialPolicy{5, 10, 3, 0}, "retry_delay_minutes"},
		{"delay high", DialPolicy{5, 10, 3, 1441}, "retry_delay_minutes"},
	}
	for _, tc := range cases {
		errs := tc.p.Validate()
		if len(errs) != 1 || errs[0].Field != tc.bad {
			t.Fatalf("%s: expected single %s error, got %v", tc.name, tc.bad, errs)
		}
	}
	edge := DialPolicy{1, 100, 0, 1440}
	if errs := edge.Validate(); len(errs) != 0 {
		t.Fatalf("boundary values must pass, got %v", errs)
	}
}

func TestDialPolicyPatch_NilMeansUnchanged(t *testing.T) {
	base := DefaultDialPolicy()
	patch := DialPolicyPatch{CallsPerMinute: intp(42)}

	if errs := patch.Validate(); len(errs) != 0 {
		t.Fatalf("expected valid patch, got %v", errs)
	}
	out := patch.ApplyTo(base)
	if out.CallsPerMinute != 42 {
		t.Fatalf("expected calls_per_minute updated, got %+v", out)
	}
	if out.MaxConcurrentCalls != base.MaxConcurrentCalls || out.MaxRetries != base.MaxRetries || out.RetryDelayMinutes != base.RetryDelayMinutes {
		t.Fatalf("nil fields must stay unchanged, got %+v", out)
	}
}

func TestDialPolicyPatch_ValidatesOnlySetFields(t *testing.T) {
	patch := DialPolicyPatch{CallsPerMinute: intp(150)}
	errs := patch.Validate()
	if len(errs) != 1 || errs[0].Field != "calls_per_minute" {
		t.Fatalf("expected single calls_per_minute error, got %v", errs)
	}

	if !(DialPolicyPatch{}).Empty() {
		t.Fatalf("zero patch must be empty")
	}
	if patch.Empty() {
		t.Fatalf("patch with a set field must not be empty")
	}
}
