// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package parser

import "log"

// Option configures a Parser at construction time. There is no other
// configuration surface: spec.md §6 rules out environment variables,
// CLI flags, and persistent state for this library.
type Option func(*Parser)

// WithFuel overrides the default fuel budget (100,000,000), mostly
// useful in tests that want to observe OutOfFuel behavior without
// constructing pathological input.
func WithFuel(n uint64) Option {
	return func(p *Parser) {
		p.fuel = n
	}
}

// WithLogger attaches a debug logger that traces each begin (kind,
// depth, remaining fuel) and fuel exhaustion, mirroring the Rust original's
// `#[cfg(feature = "logging")]` trace. Logging is off by default.
func WithLogger(l *log.Logger) Option {
	return func(p *Parser) {
		p.logger = l
	}
}
