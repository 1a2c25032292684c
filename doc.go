// Package cogs evaluates predicted COGS logical forms against gold ones.
//
// # Quick Start
//
//	p := parser.New()
//	pairs, err := corpus.LoadPairs(ctx, p, "gold.tsv", "system.tsv", 0)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ev, err := cogs.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := ev.Run(ctx, pairs, nil); err != nil {
//	    log.Fatal(err)
//	}
//	for _, r := range ev.Results() {
//	    fmt.Printf("%-40s : %6.2f\n", r.Name, r.Score)
//	}
//
// # Pairing
//
// Gold and system instances are paired by position. Every pair is checked
// for identical sentences before any metric sees it; a mismatch fails with
// ErrSentenceMismatch unless WithSkipMismatched is set.
//
// # Thread Safety
//
// An Evaluator is not safe for concurrent use. Parsing is: corpus.ParsePairs
// parses rows in parallel before the sequential metric pass.
package cogs
