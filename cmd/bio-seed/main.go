// Copyright 2020 Grail Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/simdna/biosimd"
	"github.com/grailbio/simdna/search"
)

var (
	pattern         = flag.String("pattern", search.DefaultOpts.Pattern, "Query pattern, 2-16 bases (2-15 with -mode=scalar); required")
	sensitivity     = flag.Int("sensitivity", search.DefaultOpts.Sensitivity, "Scalar seed sensitivity; larger values accept weaker seeds")
	locateThreshold = flag.Int("locate-threshold", search.DefaultOpts.LocateThreshold, "Number of fingerprint positions a vector seed must match (1-8)")
	minMatches      = flag.Int("min-matches", search.DefaultOpts.MinMatches, "Minimum number of matching bases per hit; 0 = len(pattern)-1")
	engine          = flag.String("engine", search.DefaultOpts.Engine, "Vector engine: one of "+strings.Join(biosimd.Engines(), ", ")+"; default is the best one for this CPU")
	mode            = flag.String("mode", search.DefaultOpts.Mode, "Seeding mode, 'vector' or 'scalar'")
	bothStrands     = flag.Bool("both-strands", search.DefaultOpts.BothStrands, "Also search for the reverse complement of the pattern")
	format          = flag.String("format", search.DefaultOpts.Format, "Input format, 'fasta', 'fastq' or 'bam'; inferred from the input path by default")
	parallelism     = flag.Int("parallelism", search.DefaultOpts.Parallelism, "Maximum number of records searched concurrently; 0 = runtime.NumCPU()")
	matchedOut      = flag.String("matched-out", search.DefaultOpts.MatchedOut, "If set, write reads with at least one hit to this FASTQ path")
	outPath         = flag.String("out", "-", "Output TSV path; '-' = stdout.  A .gz suffix compresses the output")
)

func bioSeedUsage() {
	fmt.Printf("Usage: %s [OPTIONS] -pattern PATTERN inpath\n", os.Args[0])
	fmt.Printf("Other options:\n")
	flag.PrintDefaults()
}

func main() {
	flag.Usage = bioSeedUsage
	shutdown := grail.Init()
	defer shutdown()

	if flag.NArg() != 1 {
		log.Fatalf("Expected exactly one input path, got %d: '%s'", flag.NArg(), strings.Join(flag.Args(), " "))
	}
	if *pattern == "" {
		log.Fatalf("-pattern is required")
	}
	ctx := vcontext.Background()
	opts := search.Opts{
		Pattern:         *pattern,
		Sensitivity:     *sensitivity,
		LocateThreshold: *locateThreshold,
		MinMatches:      *minMatches,
		Engine:          *engine,
		Mode:            *mode,
		BothStrands:     *bothStrands,
		Format:          *format,
		Parallelism:     *parallelism,
		MatchedOut:      *matchedOut,
	}
	if err := search.RunFiles(ctx, opts, flag.Arg(0), *outPath); err != nil {
		log.Fatalf("%v", err)
	}
	log.Debug.Printf("exiting")
}
