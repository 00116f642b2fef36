// util/error.go
// Copyright(c) 2025 vfrkit contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"fmt"
	"slices"
	"strings"
)

// ErrorLogger is a small utility class used to accumulate problems found
// while validating inputs and running a calculation. It tracks context
// about what is currently being looked at and accumulates multiple errors
// and warnings, making it possible to report them while still continuing
// the calculation so that partial results can be shown.
type ErrorLogger struct {
	// Tracked via Push()/Pop() calls to remember what we're looking at if
	// an error is found.
	hierarchy []string
	// Actual messages to report.
	errors   []string
	warnings []string
}

func (e *ErrorLogger) Push(s string) {
	e.hierarchy = append(e.hierarchy, s)
}

func (e *ErrorLogger) Pop() {
	e.hierarchy = e.hierarchy[:len(e.hierarchy)-1]
}

func (e *ErrorLogger) context() string {
	if len(e.hierarchy) == 0 {
		return ""
	}
	return strings.Join(e.hierarchy, " / ") + ": "
}

func (e *ErrorLogger) ErrorString(s string, args ...any) {
	e.errors = append(e.errors, e.context()+fmt.Sprintf(s, args...))
}

func (e *ErrorLogger) Error(err error) {
	e.errors = append(e.errors, e.context()+err.Error())
}

func (e *ErrorLogger) WarningString(s string, args ...any) {
	e.warnings = append(e.warnings, e.context()+fmt.Sprintf(s, args...))
}

func (e *ErrorLogger) HaveErrors() bool {
	return len(e.errors) > 0
}

func (e *ErrorLogger) HaveWarnings() bool {
	return len(e.warnings) > 0
}

// Errors returns a copy of the accumulated error messages.
func (e *ErrorLogger) Errors() []string {
	return slices.Clone(e.errors)
}

// Warnings returns a copy of the accumulated warning messages.
func (e *ErrorLogger) Warnings() []string {
	return slices.Clone(e.warnings)
}

func (e *ErrorLogger) String() string {
	return strings.Join(e.errors, "\n")
}

// CheckDepth panics if the Push/Pop calls made since depth d was recorded
// are unbalanced; use as defer e.CheckDepth(e.CurrentDepth()).
func (e *ErrorLogger) CheckDepth(d int) {
	if e == nil || e.CurrentDepth() == d {
		return
	}
	if r := recover(); r != nil {
		// Don't hide the original panic.
		panic(r)
	}
	panic(fmt.Sprintf("ErrorLogger: initial depth %d, final %d", d, e.CurrentDepth()))
}

func (e *ErrorLogger) CurrentDepth() int {
	if e == nil {
		return 0
	}
	return len(e.hierarchy)
}
