// Copyright (c) 2025 Michael D Henderson. All rights reserved.

// Package cerrs defines constant error types using a custom Error string
// type. It centralizes the programming-error sentinels used across this
// module — conditions that indicate a caller or combinator violated an
// internal invariant, as opposed to an ordinary syntax problem in the
// parsed source, which is always reported as a Diagnostic event, never
// as a Go error. The Error type supports comparison via errors.Is().
package cerrs
