// Package ingest reads access-log sources line by line and collects the
// records the parser produces. Lines that match no pattern are reported
// and skipped; they never abort the scan.
package ingest

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/oleksandr38kebab342/log-csv-git/internal/model"
	"github.com/oleksandr38kebab342/log-csv-git/internal/parser"
)

// Stdin is the source sentinel for reading from standard input.
const Stdin = "-"

// Result summarizes one ingestion pass.
type Result struct {
	Records       []model.LogRecord
	LinesRead     int
	ParseFailures int
}

// Ingest reads the source in a single forward pass and parses each line.
// The source is Stdin ("-"), a file path, or a glob pattern matching one
// or more files. Missing files and read errors are fatal; parse failures
// are logged per line and skipped.
func Ingest(p *parser.LineParser, source string) (Result, error) {
	var res Result

	if source == Stdin {
		if err := scan(p, os.Stdin, &res); err != nil {
			return Result{}, fmt.Errorf("reading stdin: %w", err)
		}
		return res, nil
	}

	paths, err := expand(source)
	if err != nil {
		return Result{}, err
	}

	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return Result{}, fmt.Errorf("opening %s: %w", path, err)
		}
		err = scan(p, f, &res)
		f.Close()
		if err != nil {
			return Result{}, fmt.Errorf("reading %s: %w", path, err)
		}
	}

	return res, nil
}

// expand resolves a path or glob pattern to concrete files.
// A plain path that exists is returned as-is even if it contains
// glob metacharacters in its name.
func expand(source string) ([]string, error) {
	if _, err := os.Stat(source); err == nil {
		return []string{source}, nil
	}

	matches, err := doublestar.FilepathGlob(source, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("expanding pattern %q: %w", source, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("input file not found: %s", source)
	}
	return matches, nil
}

// scan reads r line by line, appending parsed records to res in input order.
func scan(p *parser.LineParser, r io.Reader, res *Result) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		res.LinesRead++

		rec, err := p.Parse(scanner.Text())
		if err != nil {
			if errors.Is(err, parser.ErrEmptyLine) {
				continue
			}
			var noMatch *parser.NoMatchError
			if errors.As(err, &noMatch) {
				res.ParseFailures++
				log.Printf("warning: could not parse line: %s", noMatch.Snippet)
				continue
			}
			return err
		}
		res.Records = append(res.Records, *rec)
	}

	return scanner.Err()
}
