package core

import "strconv"

// RootField addresses the config itself.
const RootField = "root"

// Report accumulates issues for one validation pass.
type Report struct {
	errors   []Issue
	warnings []Issue
}

func (r *Report) Error(field, msg string) {
	r.errors = append(r.errors, Issue{Field: field, Message: msg, Severity: SeverityError})
}

func (r *Report) Warn(field, msg string) {
	r.warnings = append(r.warnings, Issue{Field: field, Message: msg, Severity: SeverityWarning})
}

// Result snapshots the report. Slices are never nil so JSON output shows [].
func (r *Report) Result() Result {
	errs := append([]Issue{}, r.errors...)
	warns := append([]Issue{}, r.warnings...)
	return Result{Valid: len(errs) == 0, Errors: errs, Warnings: warns}
}

// Index returns base[i].
func Index(base string, i int) string {
	return base + "[" + strconv.Itoa(i) + "]"
}

// Join returns base.name, or name when base is empty.
func Join(base, name string) string {
	if base == "" {
		return name
	}
	return base + "." + name
}
