// lseqbench measures LSEQ allocation throughput and identifier depth
// growth under a long interleaved insert/delete stream split across two
// replicas, the in-process equivalent of the convergence scenario
// exercised by pkg/sequence's tests.
//
// Usage:
//
//	lseqbench [flags]
//
// Flags:
//
//	-n, --ops          Number of operations to generate (default 100000)
//	-i, --insert-rate  Percentage of generated ops that insert (default 60)
//	    --seed          Deterministic seed byte (default 1)
package main

import (
	"fmt"
	"os"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/lseqkit/lseq/internal/testutil"
	"github.com/lseqkit/lseq/pkg/allocator"
	"github.com/lseqkit/lseq/pkg/sequence"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	flags := flag.NewFlagSet("lseqbench", flag.ContinueOnError)

	ops := flags.IntP("ops", "n", 100000, "number of operations to generate")
	insertRate := flags.IntP("insert-rate", "i", 60, "percentage of generated ops that insert")
	seed := flags.Uint8("seed", 1, "deterministic seed byte")

	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: lseqbench [flags]\n\nFlags:\n")
		flags.PrintDefaults()
	}

	if err := flags.Parse(os.Args[1:]); err != nil {
		return err //nolint:wrapcheck
	}

	fuzzBytes := make([]byte, *ops*4)
	for i := range fuzzBytes {
		fuzzBytes[i] = byte(i)*31 + *seed
	}

	a, err := sequence.NewReplica[rune](1, allocator.NewSeededSource(uint64(*seed)))
	if err != nil {
		return fmt.Errorf("creating replica A: %w", err)
	}

	b, err := sequence.NewReplica[rune](2, allocator.NewSeededSource(uint64(*seed)+1))
	if err != nil {
		return fmt.Errorf("creating replica B: %w", err)
	}

	gen := testutil.NewOpGenerator(fuzzBytes, testutil.OpGenConfig{InsertRate: *insertRate})
	picker := testutil.NewByteStream(fuzzBytes)

	start := time.Now()
	count := 0

	for count < *ops && gen.HasMore() {
		origin, other := a, b
		if !picker.NextBool() {
			origin, other = b, a
		}

		op := gen.NextOp(origin.Len())

		result, ok := op.Apply(origin)
		if ok {
			other.Apply(result)
		}

		count++
	}

	elapsed := time.Since(start)

	fmt.Printf("Ops:          %d\n", count)
	fmt.Printf("Elapsed:      %v (%.0f ops/sec)\n", elapsed.Round(time.Millisecond), float64(count)/elapsed.Seconds())
	fmt.Printf("Final length: A=%d B=%d\n", a.Len(), b.Len())
	fmt.Printf("Max depth A:  %d\n", maxDepth(a))
	fmt.Printf("Max depth B:  %d\n", maxDepth(b))

	return nil
}

func maxDepth(r *sequence.Replica[rune]) int {
	max := 0

	for _, e := range r.Entries() {
		if d := e.ID.Depth(); d > max {
			max = d
		}
	}

	return max
}
