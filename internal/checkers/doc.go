// Package checkers drives a verification run: it validates the method
// signatures, probes a few whole-object examples, runs every field check on
// every field and finally probes subtypes. The first failure ends the run.
package checkers
