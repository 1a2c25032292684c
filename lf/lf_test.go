package lf

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jamesainslie/go-cogs/parser"
)

var testParser = parser.New()

func TestParse_Formula(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Formula
	}{
		{
			name:  "iota form",
			input: "* cat ( x _ 1 ) ; run . agent ( x _ 2 , x _ 1 )",
			want: IotaForm{
				Iotas:       []Iota{{Noun: "cat", Var: Index(1)}},
				Conjunction: []Term{NewTerm("run.agent", Index(2), Index(1))},
			},
		},
		{
			name:  "bare conjunction is an iota form without iotas",
			input: "woman ( x _ 1 ) AND love . agent ( x _ 2 , x _ 1 )",
			want: IotaForm{
				Iotas: []Iota{},
				Conjunction: []Term{
					NewTerm("woman", Index(1)),
					NewTerm("love.agent", Index(2), Index(1)),
				},
			},
		},
		{
			name:  "lambda form",
			input: "LAMBDA a . LAMBDA b . LAMBDA e . touch . agent ( e , b ) AND touch . theme ( e , a )",
			want: LambdaForm{
				Vars: []string{"a", "b", "e"},
				Conjunction: []Term{
					NewTerm("touch.agent", Bound("e"), Bound("b")),
					NewTerm("touch.theme", Bound("e"), Bound("a")),
				},
			},
		},
		{
			name:  "name",
			input: "Layla",
			want:  Name{Value: "Layla"},
		},
		{
			name:  "constants and three part predicate",
			input: "genie . nmod . in ( x _ 4 , Emma )",
			want: IotaForm{
				Iotas:       []Iota{},
				Conjunction: []Term{NewTerm("genie.nmod.in", Index(4), Const("Emma"))},
			},
		},
		{
			name:  "leading zeros normalize",
			input: "cat ( x _ 007 )",
			want: IotaForm{
				Iotas:       []Iota{},
				Conjunction: []Term{NewTerm("cat", Index(7))},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := Parse(testParser, tt.input)
			if !form.IsWellFormed() {
				t.Fatalf("Parse(%q) ill-formed: %v", tt.input, form.Err())
			}
			got, err := form.Formula()
			if err != nil {
				t.Fatalf("Formula() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Formula() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTypeOfFormula(t *testing.T) {
	tests := []struct {
		input string
		want  Kind
	}{
		{"* cat ( x _ 1 ) ; run . agent ( x _ 2 , x _ 1 )", KindIotas},
		{"cat ( x _ 1 )", KindIotas},
		{"LAMBDA a . ball ( a )", KindLambdas},
		{"Layla", KindName},
	}
	for _, tt := range tests {
		got, err := Parse(testParser, tt.input).TypeOfFormula()
		if err != nil {
			t.Fatalf("TypeOfFormula(%q) error = %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("TypeOfFormula(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestAccessors_Defaults(t *testing.T) {
	name := Parse(testParser, "Layla")
	if got, _ := name.Name(); got != "Layla" {
		t.Errorf("Name() = %q, want Layla", got)
	}
	if got, _ := name.Conjuncts(); got != nil {
		t.Errorf("Conjuncts() of name = %v, want nil", got)
	}
	if got, _ := name.Terms(); len(got) != 0 {
		t.Errorf("Terms() of name = %v, want empty", got)
	}

	lambda := Parse(testParser, "LAMBDA a . LAMBDA e . giggle . agent ( e , a )")
	if got, _ := lambda.Iotas(); got != nil {
		t.Errorf("Iotas() of lambda form = %v, want nil", got)
	}
	if got, _ := lambda.Name(); got != "" {
		t.Errorf("Name() of lambda form = %q, want empty", got)
	}
	if diff := cmp.Diff([]string{"a", "e"}, mustLambdas(t, lambda)); diff != "" {
		t.Errorf("Lambdas() mismatch (-want +got):\n%s", diff)
	}

	iota := Parse(testParser, "* cat ( x _ 1 ) ; run . agent ( x _ 2 , x _ 1 )")
	if got, _ := iota.Lambdas(); got != nil {
		t.Errorf("Lambdas() of iota form = %v, want nil", got)
	}
}

func mustLambdas(t *testing.T, l *LogicalForm) []string {
	t.Helper()
	v, err := l.Lambdas()
	if err != nil {
		t.Fatalf("Lambdas() error = %v", err)
	}
	return v
}

func TestTermsAndProjections(t *testing.T) {
	form := Parse(testParser, "* cat ( x _ 1 ) ; * dog ( x _ 3 ) ; chase . agent ( x _ 2 , x _ 1 ) AND chase . theme ( x _ 2 , Emma )")

	terms, err := form.Terms()
	if err != nil {
		t.Fatalf("Terms() error = %v", err)
	}
	wantTerms := []Term{
		NewTerm("cat", Index(1)),
		NewTerm("dog", Index(3)),
		NewTerm("chase.agent", Index(2), Index(1)),
		NewTerm("chase.theme", Index(2), Const("Emma")),
	}
	if diff := cmp.Diff(wantTerms, terms); diff != "" {
		t.Errorf("Terms() mismatch (-want +got):\n%s", diff)
	}

	preds, err := form.PredicateNames()
	if err != nil {
		t.Fatalf("PredicateNames() error = %v", err)
	}
	wantPreds := []Predicate{"cat", "dog", "chase.agent", "chase.theme"}
	if diff := cmp.Diff(wantPreds, preds); diff != "" {
		t.Errorf("PredicateNames() mismatch (-want +got):\n%s", diff)
	}

	args, err := form.Arguments()
	if err != nil {
		t.Fatalf("Arguments() error = %v", err)
	}
	wantArgs := []Argument{Index(1), Index(3), Index(2), Index(1), Index(2), Const("Emma")}
	if diff := cmp.Diff(wantArgs, args); diff != "" {
		t.Errorf("Arguments() mismatch (-want +got):\n%s", diff)
	}
}

func TestIllFormed(t *testing.T) {
	form := Parse(testParser, "* cat ( x _ 1 ) ; run . agent ( x _ 2 , x _ 1 ")
	if form.IsWellFormed() {
		t.Fatal("expected ill-formed logical form")
	}
	var synErr *parser.SyntaxError
	if !errors.As(form.Err(), &synErr) {
		t.Errorf("Err() = %v, want *parser.SyntaxError", form.Err())
	}
	if form.String() != "* cat ( x _ 1 ) ; run . agent ( x _ 2 , x _ 1 " {
		t.Errorf("String() = %q, want the source", form.String())
	}
	if got := len(form.Tokens()); got != 19 {
		t.Errorf("len(Tokens()) = %d, want 19", got)
	}

	accessors := map[string]func() error{
		"Formula":        func() error { _, err := form.Formula(); return err },
		"TypeOfFormula":  func() error { _, err := form.TypeOfFormula(); return err },
		"Name":           func() error { _, err := form.Name(); return err },
		"Iotas":          func() error { _, err := form.Iotas(); return err },
		"Lambdas":        func() error { _, err := form.Lambdas(); return err },
		"Conjuncts":      func() error { _, err := form.Conjuncts(); return err },
		"Terms":          func() error { _, err := form.Terms(); return err },
		"PredicateNames": func() error { _, err := form.PredicateNames(); return err },
		"Arguments":      func() error { _, err := form.Arguments(); return err },
	}
	for name, call := range accessors {
		if err := call(); !errors.Is(err, ErrIllFormedAccess) {
			t.Errorf("%s() error = %v, want ErrIllFormedAccess", name, err)
		}
	}
}

func TestTransform_MalformedTree(t *testing.T) {
	_, err := Transform(&parser.Node{Rule: parser.RuleConjunct})
	if !errors.Is(err, ErrMalformedTree) {
		t.Errorf("Transform() error = %v, want ErrMalformedTree", err)
	}
}

func TestStrings(t *testing.T) {
	term := NewTerm("run.agent", Index(2), Const("Emma"))
	if got := term.String(); got != "run . agent ( x _ 2 , Emma )" {
		t.Errorf("Term.String() = %q", got)
	}
	iota := Iota{Noun: "cat", Var: Index(1)}
	if got := iota.String(); got != "* cat ( x _ 1 ) ;" {
		t.Errorf("Iota.String() = %q", got)
	}
	if got := KindLambdas.String(); got != "lambdas" {
		t.Errorf("KindLambdas.String() = %q", got)
	}
}

func TestNewTerm_PanicsOnArity(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewTerm with three arguments did not panic")
		}
	}()
	NewTerm("cat", Index(1), Index(2), Index(3))
}

func TestFromFormula(t *testing.T) {
	form := FromFormula("Emma", Name{Value: "Emma"})
	if !form.IsWellFormed() {
		t.Fatal("FromFormula() gave ill-formed form")
	}
	if got, _ := form.Name(); got != "Emma" {
		t.Errorf("Name() = %q, want Emma", got)
	}
}

func TestAccessors_ReturnCopies(t *testing.T) {
	const src = "* cat ( x _ 1 ) ; run . agent ( x _ 2 , x _ 1 )"
	form := Parse(testParser, src)
	want, err := form.Terms()
	if err != nil {
		t.Fatalf("Terms() error = %v", err)
	}

	iotas, _ := form.Iotas()
	iotas[0].Noun = "horse"
	conj, _ := form.Conjuncts()
	conj[0] = NewTerm("dog", Index(9))
	tokens := form.Tokens()
	tokens[0] = "#"
	f, _ := form.Formula()
	f.(IotaForm).Conjunction[0] = NewTerm("dog", Index(9))

	got, _ := form.Terms()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Terms() changed after writing to accessor results (-want +got):\n%s", diff)
	}
	if got := form.Tokens()[0]; got != "*" {
		t.Errorf("Tokens()[0] = %q, want *", got)
	}

	lambda := Parse(testParser, "LAMBDA a . LAMBDA e . giggle . agent ( e , a )")
	vars, _ := lambda.Lambdas()
	vars[0] = "z"
	if got, _ := lambda.Lambdas(); got[0] != "a" {
		t.Errorf("Lambdas()[0] = %q, want a", got[0])
	}
}

func TestFromFormula_Copies(t *testing.T) {
	conj := []Term{NewTerm("ball", Bound("a"))}
	form := FromFormula("LAMBDA a . ball ( a )", LambdaForm{Vars: []string{"a"}, Conjunction: conj})
	conj[0] = NewTerm("cup", Bound("a"))
	if got, _ := form.Conjuncts(); got[0].Pred != "ball" {
		t.Errorf("Conjuncts()[0].Pred = %q, want ball", got[0].Pred)
	}
}
