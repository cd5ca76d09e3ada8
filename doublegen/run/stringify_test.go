package run_test

import (
	"testing"

	"github.com/dave/dst"
	"github.com/dave/dst/decorator"

	"github.com/mclancy96/stuntdouble/doublegen/run"
)

// typeExprs parses a source snippet declaring a struct named Probe and
// returns its field type expressions by field name.
func typeExprs(t *testing.T, source string) map[string]dst.Expr {
	t.Helper()

	file, err := decorator.Parse("package p\n" + source)
	if err != nil {
		t.Fatalf("failed to parse test source: %v", err)
	}

	exprs := map[string]dst.Expr{}

	for _, decl := range file.Decls {
		genDecl, ok := decl.(*dst.GenDecl)
		if !ok {
			continue
		}

		for _, spec := range genDecl.Specs {
			typeSpec, ok := spec.(*dst.TypeSpec)
			if !ok {
				continue
			}

			structType, ok := typeSpec.Type.(*dst.StructType)
			if !ok {
				continue
			}

			for _, field := range structType.Fields.List {
				for _, name := range field.Names {
					exprs[name.Name] = field.Type
				}
			}
		}
	}

	return exprs
}

func TestStringifier_Expr(t *testing.T) {
	t.Parallel()

	exprs := typeExprs(t, `
import "io"

type Probe struct {
	A int
	B *string
	C []byte
	D [4]rune
	E map[string]int
	F chan int
	G chan<- int
	H <-chan int
	I io.Reader
	J interface{}
	K func(int, string) (bool, error)
	L *io.Reader
}
`)

	want := map[string]string{
		"A": "int",
		"B": "*string",
		"C": "[]byte",
		"D": "[4]rune",
		"E": "map[string]int",
		"F": "chan int",
		"G": "chan<- int",
		"H": "<-chan int",
		"I": "io.Reader",
		"J": "any",
		"K": "func(int, string) (bool, error)",
		"L": "*io.Reader",
	}

	stringifier := &run.Stringifier{}

	for name, wantType := range want {
		expr, ok := exprs[name]
		if !ok {
			t.Fatalf("field %s missing from parsed probe struct", name)
		}

		if got := stringifier.Expr(expr); got != wantType {
			t.Errorf("field %s: expected %q, got %q", name, wantType, got)
		}
	}
}

// TestStringifier_QualifyHook verifies bare identifiers run through the
// qualify hook while selector expressions keep their own prefix.
func TestStringifier_QualifyHook(t *testing.T) {
	t.Parallel()

	exprs := typeExprs(t, `
import "io"

type Probe struct {
	Local  Ticket
	Slice  []Ticket
	Std    io.Reader
	Basic  int
}
`)

	stringifier := &run.Stringifier{
		Qualify: func(name string) string {
			if name == "Ticket" {
				return "boxoffice.Ticket"
			}

			return name
		},
	}

	cases := map[string]string{
		"Local": "boxoffice.Ticket",
		"Slice": "[]boxoffice.Ticket",
		"Std":   "io.Reader",
		"Basic": "int",
	}

	for name, wantType := range cases {
		if got := stringifier.Expr(exprs[name]); got != wantType {
			t.Errorf("field %s: expected %q, got %q", name, wantType, got)
		}
	}
}
