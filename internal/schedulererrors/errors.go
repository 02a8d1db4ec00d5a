// Package schedulererrors defines the scheduler's three fatal failure kinds.
package schedulererrors

import "fmt"

// Kind enumerates the failure categories the scheduling core can surface.
// Every failure is fatal to the current run; the core never partially
// returns a schedule.
type Kind string

const (
	KindInvalidGraph          Kind = "invalid_graph"
	KindInfeasibleMemoryClass Kind = "infeasible_memory_class"
	KindMalformedWarmStart    Kind = "malformed_warm_start"
)

// SchedulerError is the structured error type returned by the core and its
// callers. It carries just enough context to let a caller decide how to
// react — reconfigure availability, fix the input document, or drop a stale
// warm-start binding — without the retry/severity/HTTP metadata a
// multi-service distributed error type would need.
type SchedulerError struct {
	Code    string
	Message string
	Type    Kind
	Cause   error
}

func (e *SchedulerError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap supports errors.Is/errors.As against the underlying cause.
func (e *SchedulerError) Unwrap() error {
	return e.Cause
}

// Is reports equivalence by code and kind, ignoring message and cause, so
// callers can match with errors.Is(err, &SchedulerError{Code: ..., Type: ...}).
func (e *SchedulerError) Is(target error) bool {
	t, ok := target.(*SchedulerError)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Type == t.Type
}

// InvalidGraph reports a cycle, dangling predecessor, or out-of-range
// duration/memory value, detected before any placement occurs.
func InvalidGraph(message string, cause error) *SchedulerError {
	return &SchedulerError{Code: "E_INVALID_GRAPH", Message: message, Type: KindInvalidGraph, Cause: cause}
}

// InfeasibleMemoryClass reports that, at Tier 3, no active processor is
// memory-compatible with the task named by taskID.
func InfeasibleMemoryClass(taskID int) *SchedulerError {
	return &SchedulerError{
		Code:    "E_INFEASIBLE_MEMORY_CLASS",
		Message: fmt.Sprintf("task %d: no active processor is memory-compatible at its start time", taskID),
		Type:    KindInfeasibleMemoryClass,
	}
}

// MalformedWarmStart reports that the supplied binding does not cover
// exactly the current graph's node set, or that its UB is non-positive.
func MalformedWarmStart(message string) *SchedulerError {
	return &SchedulerError{Code: "E_MALFORMED_WARM_START", Message: message, Type: KindMalformedWarmStart}
}
