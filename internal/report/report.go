// Package report writes machine-readable evaluation results and checks
// pass/fail gates against them.
package report

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/google/uuid"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	cogs "github.com/jamesainslie/go-cogs"
)

// ErrUnknownFormat indicates a report path with an unsupported extension.
var ErrUnknownFormat = errors.New("report: unknown format")

// Format is a report encoding.
type Format int

const (
	JSON   Format = iota // protojson, indented
	YAML                 // goccy/go-yaml
	Binary               // wire-format google.protobuf.Struct
)

func (f Format) String() string {
	switch f {
	case JSON:
		return "json"
	case YAML:
		return "yaml"
	case Binary:
		return "pb"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// FormatFor picks the encoding from a file extension: .json, .yaml/.yml or
// .pb (binary google.protobuf.Struct).
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSON, nil
	case ".yaml", ".yml":
		return YAML, nil
	case ".pb":
		return Binary, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, path)
}

// Score is one aggregate metric value.
type Score struct {
	Key          string  `yaml:"key"`
	Name         string  `yaml:"name"`
	Abbreviation string  `yaml:"abbreviation"`
	Value        float64 `yaml:"value"`
	Ratio        bool    `yaml:"ratio"`
}

// Report is the outcome of one evaluation run.
type Report struct {
	ID      string  `yaml:"id"`
	Created string  `yaml:"created"`
	Gold    string  `yaml:"gold"`
	System  string  `yaml:"system"`
	Seen    int     `yaml:"seen"`
	Skipped int     `yaml:"skipped"`
	Scores  []Score `yaml:"scores"`
}

// New builds a report with a fresh run ID.
func New(gold, system string, seen, skipped int, results []cogs.Result) *Report {
	r := &Report{
		ID:      uuid.NewString(),
		Created: time.Now().UTC().Format(time.RFC3339),
		Gold:    gold,
		System:  system,
		Seen:    seen,
		Skipped: skipped,
		Scores:  make([]Score, len(results)),
	}
	for i, res := range results {
		r.Scores[i] = Score{
			Key:          res.Key,
			Name:         res.Name,
			Abbreviation: res.Abbreviation,
			Value:        res.Score,
			Ratio:        res.Ratio,
		}
	}
	return r
}

// Struct converts the report to a google.protobuf.Struct.
func (r *Report) Struct() (*structpb.Struct, error) {
	scores := make([]any, len(r.Scores))
	for i, s := range r.Scores {
		scores[i] = map[string]any{
			"key":          s.Key,
			"name":         s.Name,
			"abbreviation": s.Abbreviation,
			"value":        s.Value,
			"ratio":        s.Ratio,
		}
	}
	return structpb.NewStruct(map[string]any{
		"id":      r.ID,
		"created": r.Created,
		"gold":    r.Gold,
		"system":  r.System,
		"seen":    r.Seen,
		"skipped": r.Skipped,
		"scores":  scores,
	})
}

// Encode writes the report to w.
func (r *Report) Encode(w io.Writer, f Format) error {
	var (
		data []byte
		err  error
	)
	switch f {
	case YAML:
		data, err = yaml.Marshal(r)
	case JSON, Binary:
		var st *structpb.Struct
		st, err = r.Struct()
		if err != nil {
			return fmt.Errorf("building struct: %w", err)
		}
		if f == JSON {
			data, err = protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(st)
		} else {
			data, err = proto.Marshal(st)
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, f)
	}
	if err != nil {
		return fmt.Errorf("encoding %s report: %w", f, err)
	}
	_, err = w.Write(data)
	return err
}

// WriteFile writes the report to path in the format its extension selects.
func (r *Report) WriteFile(path string) (err error) {
	f, err := FormatFor(path)
	if err != nil {
		return err
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report: %w", err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil {
			err = errors.Join(err, cerr)
		}
	}()
	return r.Encode(out, f)
}

// Env returns the variables visible to gate expressions: every score by
// key, plus seen and skipped.
func (r *Report) Env() map[string]any {
	env := make(map[string]any, len(r.Scores)+2)
	for _, s := range r.Scores {
		env[s.Key] = s.Value
	}
	env["seen"] = r.Seen
	env["skipped"] = r.Skipped
	return env
}
