// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

//go:build arm64 && !appengine
// +build arm64,!appengine

package biosimd

import "golang.org/x/sys/cpu"

// selectEngine picks SWAR on arm64.  base/simd has no NEON kernels, so its
// nibble lookups would run lane by lane.
func selectEngine() Engine {
	if cpu.ARM64.HasASIMD {
		return SWAR
	}
	return Portable
}
