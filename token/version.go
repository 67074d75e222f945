// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package token

import "github.com/maloquacious/semver"

// GrammarVersion identifies the grammar revision that the Kind
// enumeration in this package implements, following the teacher's own
// version.go convention of stamping a semver.Version on the build.
var GrammarVersion = semver.Version{
	Major: 1,
	Minor: 0,
	Patch: 0,
	Build: semver.Commit(),
}
