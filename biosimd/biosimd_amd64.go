// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

//go:build amd64 && !appengine
// +build amd64,!appengine

package biosimd

import "golang.org/x/sys/cpu"

// selectEngine prefers the PSHUFB-backed nibble engine.
func selectEngine() Engine {
	if cpu.X86.HasSSSE3 {
		return Nibble
	}
	return SWAR
}
