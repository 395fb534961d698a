// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package biosimd provides the 16-lane vector form of the dinucleotide
// fingerprint seeding algorithm in package seed, plus a few byte-array
// kernels on ASCII nucleotide sequences.
//
// The seeding step is expressed against Engine, a small capability interface
// over a 16-byte vector (Vec): a table lookup (Shuffle), a diagonal
// realignment of the looked-up bits (ShiftLanes), a per-lane population count
// compared against a threshold (FillSeedLanes), and a scan for the first
// accepted lane (Find).  Locate drives any Engine over a reference; Locator
// wraps it as a resumable iterator.
//
// Several engines are provided.  Portable emulates each lane in plain Go and
// is always available; SWAR operates on two 64-bit words per vector; Nibble
// uses the nibble lookup tables of github.com/grailbio/base/simd, which
// compile to PSHUFB on amd64.  Default() returns the engine selected for the
// current build and CPU.  All engines return bit-identical results.
package biosimd
