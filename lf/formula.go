package lf

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Kind discriminates the three formula variants.
type Kind int

const (
	KindIotas Kind = iota
	KindLambdas
	KindName
)

func (k Kind) String() string {
	switch k {
	case KindIotas:
		return "iotas"
	case KindLambdas:
		return "lambdas"
	case KindName:
		return "name"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ArgKind discriminates argument variants.
type ArgKind int

const (
	// IndexVar is an indexed variable such as "x _ 3".
	IndexVar ArgKind = iota
	// BoundVar is one of the lambda symbols a, b, e.
	BoundVar
	// Constant is a proper name such as "Emma".
	Constant
)

// Argument is a term argument. Arguments are comparable.
type Argument struct {
	Kind  ArgKind
	Index int    // IndexVar only
	Text  string // BoundVar symbol or Constant name
}

// Index returns the argument for the variable x _ i.
func Index(i int) Argument { return Argument{Kind: IndexVar, Index: i} }

// Bound returns the argument for a lambda-bound symbol.
func Bound(sym string) Argument { return Argument{Kind: BoundVar, Text: sym} }

// Const returns the argument for a proper name.
func Const(name string) Argument { return Argument{Kind: Constant, Text: name} }

func (a Argument) String() string {
	if a.Kind == IndexVar {
		return "x _ " + strconv.Itoa(a.Index)
	}
	return a.Text
}

// Predicate is a dot-joined predicate name such as "run.agent".
type Predicate string

// Parts returns the 1 to 3 segments of the name.
func (p Predicate) Parts() []string { return strings.Split(string(p), ".") }

func (p Predicate) String() string { return strings.Join(p.Parts(), " . ") }

// Term is a predicate applied to one or two arguments. Terms are comparable
// and can be used as map keys.
type Term struct {
	Pred  Predicate
	Arity int
	Args  [2]Argument
}

// NewTerm builds a term. It panics if given other than one or two arguments.
func NewTerm(pred Predicate, args ...Argument) Term {
	if len(args) < 1 || len(args) > 2 {
		panic(fmt.Sprintf("lf: term %s with %d arguments", pred, len(args)))
	}
	t := Term{Pred: pred, Arity: len(args)}
	copy(t.Args[:], args)
	return t
}

// Arguments returns the term's arguments in order.
func (t Term) Arguments() []Argument { return t.Args[:t.Arity] }

func (t Term) String() string {
	args := make([]string, t.Arity)
	for i, a := range t.Arguments() {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s ( %s )", t.Pred, strings.Join(args, " , "))
}

// Iota is a unique-existence prefix assertion "* noun ( var ) ;".
type Iota struct {
	Noun string
	Var  Argument
}

// Term returns the iota as a unary term, so prefix assertions and
// conjunction terms can be compared uniformly.
func (i Iota) Term() Term { return NewTerm(Predicate(i.Noun), i.Var) }

func (i Iota) String() string { return fmt.Sprintf("* %s ( %s ) ;", i.Noun, i.Var) }

// Formula is the structure of a well-formed logical form. Exactly one of
// Name, LambdaForm and IotaForm implements it.
type Formula interface {
	Kind() Kind
	isFormula()
}

// Name is a bare proper noun, such as the primitive "Layla".
type Name struct {
	Value string
}

// LambdaForm binds one to three symbols over a conjunction.
type LambdaForm struct {
	Vars        []string
	Conjunction []Term
}

// IotaForm is zero or more iotas followed by a conjunction.
type IotaForm struct {
	Iotas       []Iota
	Conjunction []Term
}

func (Name) Kind() Kind       { return KindName }
func (LambdaForm) Kind() Kind { return KindLambdas }
func (IotaForm) Kind() Kind   { return KindIotas }

func (Name) isFormula()       {}
func (LambdaForm) isFormula() {}
func (IotaForm) isFormula()   {}

// cloneFormula copies the slices of f so the result shares no memory with
// it.
func cloneFormula(f Formula) Formula {
	switch f := f.(type) {
	case LambdaForm:
		return LambdaForm{Vars: slices.Clone(f.Vars), Conjunction: slices.Clone(f.Conjunction)}
	case IotaForm:
		return IotaForm{Iotas: slices.Clone(f.Iotas), Conjunction: slices.Clone(f.Conjunction)}
	}
	return f
}
