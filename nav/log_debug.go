//go:build navlog

// nav/log_debug.go
// Copyright(c) 2025 vfrkit contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package nav

import (
	"fmt"
	"strings"
)

// Trace logging configuration
var (
	navlogEnabled    bool
	navlogCategories map[string]bool
)

// InitNavLog initializes the calculation trace; categories is a comma
// separated list or "all".
func InitNavLog(enabled bool, categories string) {
	navlogEnabled = enabled
	navlogCategories = make(map[string]bool)

	if !enabled {
		return
	}

	if categories == "" || categories == "all" {
		for _, cat := range allNavLogCategories {
			navlogCategories[cat] = true
		}
	} else {
		for _, cat := range strings.Split(categories, ",") {
			navlogCategories[strings.TrimSpace(cat)] = true
		}
	}
}

// NavLog prints a trace message for the given category.
func NavLog(category string, format string, args ...any) {
	if !navlogEnabled || !navlogCategories[category] {
		return
	}
	fmt.Printf("[%s] %s\n", category, fmt.Sprintf(format, args...))
}

// NavLogEnabled returns whether trace logging is enabled for a given category
func NavLogEnabled(category string) bool {
	return navlogEnabled && navlogCategories[category]
}
