package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--color", "never"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		name    string
		formula string
		want    string
	}{
		{
			name:    "iotas",
			formula: "* cat ( x _ 1 ) ; run . agent ( x _ 2 , x _ 1 )",
			want: `Formula:     * cat ( x _ 1 ) ; run . agent ( x _ 2 , x _ 1 )
Tokens:      20
Well-formed: yes
Type:        iotas
Iotas (1):
  * cat ( x _ 1 ) ;
Conjuncts (1):
  run . agent ( x _ 2 , x _ 1 )
`,
		},
		{
			name:    "name",
			formula: "Emma",
			want: `Formula:     Emma
Tokens:      1
Well-formed: yes
Type:        name
Name:        Emma
`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, "", tt.formula)
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, out); diff != "" {
				t.Errorf("output mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDescribe_IllFormed(t *testing.T) {
	out, err := execute(t, "", "cat ( x _ 1")
	if !errors.Is(err, errIllFormed) {
		t.Fatalf("Execute() error = %v, want errIllFormed", err)
	}
	if !strings.Contains(out, "Well-formed: no") || !strings.Contains(out, "Error:       syntax error") {
		t.Errorf("output:\n%s", out)
	}
}

func TestDescribe_Stdin(t *testing.T) {
	out, err := execute(t, "Emma\n\nLiam\n")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if strings.Count(out, "Well-formed: yes") != 2 {
		t.Errorf("want two formulas described:\n%s", out)
	}
}

func TestDescribe_Tree(t *testing.T) {
	out, err := execute(t, "", "--tree", "Emma")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out, "Tree:\n") || !strings.Contains(out, "  Emma\n") {
		t.Errorf("missing tree:\n%s", out)
	}
}
