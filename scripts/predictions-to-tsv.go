//go:build ignore

// Build a system TSV file from a gold TSV file and a plain predictions file
// holding one logical form per line, in gold order.
// Usage: go run ./scripts/predictions-to-tsv.go GOLD PREDICTIONS > system.tsv
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/jamesainslie/go-cogs/corpus"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintln(os.Stderr, "usage: predictions-to-tsv GOLD PREDICTIONS")
		os.Exit(2)
	}
	if err := run(os.Args[1], os.Args[2]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(goldPath, predPath string) error {
	gold, err := corpus.ReadRowsFile(goldPath)
	if err != nil {
		return err
	}
	preds, err := readLines(predPath)
	if err != nil {
		return err
	}
	if len(preds) != len(gold) {
		return fmt.Errorf("%w: %d gold rows, %d predictions", corpus.ErrLengthMismatch, len(gold), len(preds))
	}

	w := bufio.NewWriter(os.Stdout)
	for i, row := range gold {
		row.LogicalForm = preds[i]
		if _, err := fmt.Fprintln(w, row.String()); err != nil {
			return err
		}
	}
	return w.Flush()
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.ContainsRune(line, '\t') {
			return nil, fmt.Errorf("%s: line %d: prediction contains a tab", path, len(lines)+1)
		}
		lines = append(lines, line)
	}
	return lines, scanner.Err()
}
