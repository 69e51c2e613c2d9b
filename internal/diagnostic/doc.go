// Package diagnostic collects the findings of a dry-run map check: members that
// cannot be resolved, values that cannot be assigned, and the pairs that will
// be copied.
package diagnostic
