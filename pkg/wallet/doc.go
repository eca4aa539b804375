// Package wallet declares the typed forms of the wallet app: sign in,
// registration, password recovery, one-time code verification and the two
// money transfer flows. Each form exposes its values type, its fields, the
// schema built from them and the initial values, using the same messages the
// mobile screens show.
package wallet
