package report

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	cogs "github.com/jamesainslie/go-cogs"
)

func testReport() *Report {
	return New("gold.tsv", "system.tsv", 4, 1, []cogs.Result{
		{Key: "exact_match", Name: "Exact match accuracy", Abbreviation: "EM", Score: 0.75, Ratio: true},
		{Key: "token_edit_distance", Name: "Avg. token-level edit distance", Abbreviation: "TED", Score: 1.5},
	})
}

func TestNew(t *testing.T) {
	r := testReport()
	if _, err := uuid.Parse(r.ID); err != nil {
		t.Errorf("ID %q is not a UUID: %v", r.ID, err)
	}
	if other := testReport(); other.ID == r.ID {
		t.Error("two reports share an ID")
	}
	want := []Score{
		{Key: "exact_match", Name: "Exact match accuracy", Abbreviation: "EM", Value: 0.75, Ratio: true},
		{Key: "token_edit_distance", Name: "Avg. token-level edit distance", Abbreviation: "TED", Value: 1.5},
	}
	if diff := cmp.Diff(want, r.Scores); diff != "" {
		t.Errorf("Scores mismatch (-want +got):\n%s", diff)
	}
}

func TestFormatFor(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"out.json", JSON, false},
		{"out.YAML", YAML, false},
		{"dir/out.yml", YAML, false},
		{"out.pb", Binary, false},
		{"out.txt", 0, true},
		{"out", 0, true},
	}
	for _, tt := range tests {
		got, err := FormatFor(tt.path)
		if (err != nil) != tt.wantErr {
			t.Errorf("FormatFor(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			continue
		}
		if err != nil && !errors.Is(err, ErrUnknownFormat) {
			t.Errorf("FormatFor(%q) error = %v, want ErrUnknownFormat", tt.path, err)
		}
		if got != tt.want {
			t.Errorf("FormatFor(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func checkStruct(t *testing.T, st *structpb.Struct, r *Report) {
	t.Helper()
	m := st.AsMap()
	if m["id"] != r.ID || m["gold"] != "gold.tsv" || m["seen"] != 4.0 || m["skipped"] != 1.0 {
		t.Errorf("unexpected header fields: %v", m)
	}
	scores, ok := m["scores"].([]any)
	if !ok || len(scores) != 2 {
		t.Fatalf("scores = %v", m["scores"])
	}
	em := scores[0].(map[string]any)
	if em["key"] != "exact_match" || em["value"] != 0.75 || em["ratio"] != true {
		t.Errorf("scores[0] = %v", em)
	}
}

func TestWriteFile_JSON(t *testing.T) {
	r := testReport()
	path := filepath.Join(t.TempDir(), "report.json")
	if err := r.WriteFile(path); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var st structpb.Struct
	if err := protojson.Unmarshal(data, &st); err != nil {
		t.Fatalf("protojson.Unmarshal() error = %v", err)
	}
	checkStruct(t, &st, r)
}

func TestWriteFile_Binary(t *testing.T) {
	r := testReport()
	path := filepath.Join(t.TempDir(), "report.pb")
	if err := r.WriteFile(path); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var st structpb.Struct
	if err := proto.Unmarshal(data, &st); err != nil {
		t.Fatalf("proto.Unmarshal() error = %v", err)
	}
	checkStruct(t, &st, r)
}

func TestEncode_YAML(t *testing.T) {
	r := testReport()
	var buf bytes.Buffer
	if err := r.Encode(&buf, YAML); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	var got Report
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("yaml.Unmarshal() error = %v\n%s", err, buf.String())
	}
	if diff := cmp.Diff(*r, got, cmpopts.IgnoreFields(Report{}, "Created")); diff != "" {
		t.Errorf("YAML report mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteFile_UnknownFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.csv")
	if err := testReport().WriteFile(path); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("WriteFile() error = %v, want ErrUnknownFormat", err)
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Error("WriteFile() created a file for an unknown format")
	}
}

func TestGate(t *testing.T) {
	keys := []string{"exact_match", "token_edit_distance"}
	r := testReport()

	tests := []struct {
		src      string
		wantFail bool
	}{
		{"exact_match >= 0.7", false},
		{"exact_match >= 0.9", true},
		{"exact_match > 0.5 && token_edit_distance < 2", false},
		{"skipped == 0", true},
		{"seen >= 4", false},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			g, err := CompileGate(tt.src, keys)
			if err != nil {
				t.Fatalf("CompileGate() error = %v", err)
			}
			err = g.Check(r)
			if tt.wantFail != errors.Is(err, ErrGateFailed) {
				t.Errorf("Check() error = %v, wantFail %v", err, tt.wantFail)
			}
		})
	}
}

func TestCompileGate_Errors(t *testing.T) {
	keys := []string{"exact_match"}
	for _, src := range []string{
		"term_f1 > 0.5", // not evaluated
		"exact_match +",
		"exact_match * 2", // not boolean
	} {
		if _, err := CompileGate(src, keys); err == nil {
			t.Errorf("CompileGate(%q) succeeded, want error", src)
		}
	}
}
