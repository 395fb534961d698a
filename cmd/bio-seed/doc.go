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

/*
Given a short nucleotide pattern and a FASTA, FASTQ or BAM file, bio-seed
reports every position where the pattern occurs with at most a few
mismatches.  Candidate positions are found with a dinucleotide-fingerprint
seed filter (16-lane vector scan by default, or the scalar scan with
-mode=scalar) and confirmed with an exact Hamming count.

Sample usage:
bio-seed \
    -pattern CAGAGC \
    -both-strands \
    -out hits.tsv \
    reads.fq.gz

The output is a TSV file with the columns NAME, STRAND, POS (0-based) and
MATCHES.  With -matched-out, reads with at least one hit are also written in
FASTQ format, so bio-seed can serve as a pre-filter in front of an aligner.
*/
package main
