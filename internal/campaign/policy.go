package campaign

import "fmt"

// DialPolicy bounds how a campaign may dial. These are advisory contracts
// validated at the editing boundary; the execution backend applies its own
// admission control on top and may run below these numbers at any time.
type DialPolicy struct {
	MaxConcurrentCalls int `json:"max_concurrent_calls"`
	CallsPerMinute     int `json:"calls_per_minute"`
	MaxRetries         int `json:"max_retries"`
	RetryDelayMinutes  int `json:"retry_delay_minutes"`
}

// Dial policy bounds.
const (
	MinConcurrentCalls      = 1
	MaxConcurrentCallsLimit = 100
	MinCallsPerMinute       = 1
	MaxCallsPerMinute       = 100
	MinRetries              = 0
	MaxRetriesLimit         = 10
	MinRetryDelayMin        = 1
	MaxRetryDelayMin        = 1440
)

// DefaultDialPolicy is applied when a create request leaves policy fields
// unset.
func DefaultDialPolicy() DialPolicy {
	return DialPolicy{
		MaxConcurrentCalls: 5,
		CallsPerMinute:     10,
		MaxRetries:         3,
		RetryDelayMinutes:  30,
	}
}

func rangeErr(field string, v, lo, hi int) FieldError {
	return FieldError{field, fmt.Sprintf("must be between %d and %d, got %d", lo, hi, v)}
}

// Validate checks every field independently and reports each violation on its
// own field, so a form can highlight exactly the offending control.
func (p DialPolicy) Validate() []FieldError {
	var errs []FieldError
	if p.MaxConcurrentCalls < MinConcurrentCalls || p.MaxConcurrentCalls > MaxConcurrentCallsLimit {
		errs = append(errs, rangeErr("max_concurrent_calls", p.MaxConcurrentCalls, MinConcurrentCalls, MaxConcurrentCallsLimit))
	}
	if p.CallsPerMinute < MinCallsPerMinute || p.CallsPerMinute > MaxCallsPerMinute {
		errs = append(errs, rangeErr("calls_per_minute", p.CallsPerMinute, MinCallsPerMinute, MaxCallsPerMinute))
	}
	if p.MaxRetries < MinRetries || p.MaxRetries > MaxRetriesLimit {
		errs = append(errs, rangeErr("max_retries", p.MaxRetries, MinRetries, MaxRetriesLimit))
	}
	if p.RetryDelayMinutes < MinRetryDelayMin || p.RetryDelayMinutes > MaxRetryDelayMin {
		errs = append(errs, rangeErr("retry_delay_minutes", p.RetryDelayMinutes, MinRetryDelayMin, MaxRetryDelayMin))
	}
	return errs
}

// DialPolicyPatch is a partial update. A nil field means "leave unchanged",
// never "reset to default".
type DialPolicyPatch struct {
	MaxConcurrentCalls *int `json:"max_concurrent_calls,omitempty"`
	CallsPerMinute     *int `json:"calls_per_minute,omitempty"`
	MaxRetries         *int `json:"max_retries,omitempty"`
	RetryDelayMinutes  *int `json:"retry_delay_minutes,omitempty"`
}

func (p DialPolicyPatch) Empty() bool {
	return p.MaxConcurrentCalls == nil && p.CallsPerMinute == nil &&
		p.MaxRetries == nil && p.RetryDelayMinutes == nil
}

// Validate checks only the fields the patch sets.
func (p DialPolicyPatch) Validate() []FieldError {
	var errs []FieldError
	if v := p.MaxConcurrentCalls; v != nil && (*v < MinConcurrentCalls || *v > MaxConcurrentCallsLimit) {
		errs = append(errs, rangeErr("max_concurrent_calls", *v, MinConcurrentCalls, MaxConcurrentCallsLimit))
	}
	if v := p.CallsPerMinute; v != nil && (*v < MinCallsPerMinute || *v > MaxCallsPerMinute) {
		errs = append(errs, rangeErr("calls_per_minute", *v, MinCallsPerMinute, MaxCallsPerMinute))
	}
	if v := p.MaxRetries; v != nil && (*v < MinRetries || *v > MaxRetriesLimit) {
		errs = append(errs, rangeErr("max_retries", *v, MinRetries, MaxRetriesLimit))
	}
	if v := p.RetryDelayMinutes; v != nil && (*v < MinRetryDelayMin || *v > MaxRetryDelayMin) {
		errs = append(errs, rangeErr("retry_delay_minutes", *v, MinRetryDelayMin, MaxRetryDelayMin))
	}
	return errs
}

// ApplyTo merges set fields onto a policy.
func (p DialPolicyPatch) ApplyTo(base DialPolicy) DialPolicy {
	out := base
	if p.MaxConcurrentCalls != nil {
		out.MaxConcurrentCalls = *p.MaxConcurrentCalls
	}
	if p.CallsPerMinute != nil {
		out.CallsPerMinute = *p.CallsPerMinute
	}
	if p.MaxRetries != nil {
		out.MaxRetries = *p.MaxRetries
	}
	if p.RetryDelayMinutes != nil {
		out.RetryDelayMinutes = *p.RetryDelayMinutes
	}
	return out
}
