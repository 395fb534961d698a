// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package biosimd

import (
	"fmt"
	"sort"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
)

var (
	engines = map[string]Engine{}

	// defaultEngine is chosen once per process by selectEngine, which is
	// defined in the architecture-specific biosimd_*.go files.
	defaultEngine Engine
)

func register(e Engine) {
	if _, ok := engines[e.Name()]; ok {
		panic(fmt.Sprintf("biosimd: engine %s registered twice", e.Name()))
	}
	engines[e.Name()] = e
}

func init() {
	register(Portable)
	register(SWAR)
	register(Nibble)
	defaultEngine = selectEngine()
	log.Debug.Printf("biosimd: using %s engine", defaultEngine.Name())
}

// Default returns the engine selected for this build and CPU.
func Default() Engine {
	return defaultEngine
}

// Lookup returns the engine with the given name.  The empty name selects
// Default().
func Lookup(name string) (Engine, error) {
	if name == "" {
		return defaultEngine, nil
	}
	e, ok := engines[name]
	if !ok {
		return nil, errors.E(errors.NotExist, fmt.Sprintf("biosimd: unknown engine %q, want one of %v", name, Engines()))
	}
	return e, nil
}

// Engines returns the names of all engines, sorted.
func Engines() []string {
	names := make([]string, 0, len(engines))
	for name := range engines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
