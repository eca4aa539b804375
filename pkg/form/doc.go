// Package form owns the editing state of a single form: current values,
// per-field error messages and per-field touched flags. A Schema lists the
// typed fields of a record T, each with exactly one validator; the Schema also
// exposes every operation as a pure State-in/State-out transition. Controller
// wraps those transitions for callers that prefer a mutable owner wired to UI
// events (change, blur, submit, reset).
//
// Error timing follows two rules. A field is only validated on change after it
// has been touched (blurred) once, and a submit attempt marks every field as
// touched whether or not validation passed, so messages become visible for
// fields the user never visited. An empty message means "no error".
package form
