// Package match provides edit distance and "did you mean" suggestions for
// member names that failed to resolve.
package match
