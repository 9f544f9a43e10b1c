// Package patterns derives insights from daily wellness records.
//
// Every analyzer is a pure function of its inputs and an explicit reference
// day. Windows are rebuilt from calendar dates, so input order does not matter
// and missing days are simply absent (or clean, for smoke-free statuses).
// Engine is the only place that reads a clock.
package patterns
