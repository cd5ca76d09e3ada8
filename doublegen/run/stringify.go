package run

import (
	"fmt"
	"strings"

	"github.com/dave/dst"
)

// Stringifier renders DST type expressions back to Go source. The decorator
// only restores whole files, so method signature types are rebuilt here.
//
// Qualify, when set, is consulted for bare identifiers; it lets the generator
// prefix types declared in the source package with a package qualifier when
// the generated double lives in an external test package.
type Stringifier struct {
	Qualify func(name string) string
}

// Expr converts a DST type expression to its string representation.
//
//nolint:cyclop // Type-switch dispatcher handling the supported DST expression types
func (s *Stringifier) Expr(expr dst.Expr) string {
	if expr == nil {
		return ""
	}

	switch typedExpr := expr.(type) {
	case *dst.Ident:
		if s.Qualify != nil {
			return s.Qualify(typedExpr.Name)
		}

		return typedExpr.Name
	case *dst.BasicLit:
		return typedExpr.Value
	case *dst.SelectorExpr:
		// Qualified references keep their own package prefix untouched.
		return (&Stringifier{}).Expr(typedExpr.X) + "." + typedExpr.Sel.Name
	case *dst.StarExpr:
		return "*" + s.Expr(typedExpr.X)
	case *dst.ArrayType:
		if typedExpr.Len != nil {
			return "[" + s.Expr(typedExpr.Len) + "]" + s.Expr(typedExpr.Elt)
		}

		return "[]" + s.Expr(typedExpr.Elt)
	case *dst.MapType:
		return "map[" + s.Expr(typedExpr.Key) + "]" + s.Expr(typedExpr.Value)
	case *dst.ChanType:
		switch typedExpr.Dir {
		case dst.SEND:
			return "chan<- " + s.Expr(typedExpr.Value)
		case dst.RECV:
			return "<-chan " + s.Expr(typedExpr.Value)
		default:
			return "chan " + s.Expr(typedExpr.Value)
		}
	case *dst.InterfaceType:
		if typedExpr.Methods == nil || len(typedExpr.Methods.List) == 0 {
			return "any"
		}

		return fmt.Sprintf("%T", expr)
	case *dst.FuncType:
		return s.funcType(typedExpr)
	case *dst.Ellipsis:
		return "..." + s.Expr(typedExpr.Elt)
	case *dst.IndexExpr:
		return s.Expr(typedExpr.X) + "[" + s.Expr(typedExpr.Index) + "]"
	case *dst.IndexListExpr:
		indices := make([]string, len(typedExpr.Indices))
		for i, idx := range typedExpr.Indices {
			indices[i] = s.Expr(idx)
		}

		return s.Expr(typedExpr.X) + "[" + strings.Join(indices, ", ") + "]"
	case *dst.ParenExpr:
		return "(" + s.Expr(typedExpr.X) + ")"
	default:
		return fmt.Sprintf("%T", expr)
	}
}

// FieldTypes expands a field list into individual type strings. For fields
// with multiple names (e.g., "a, b int"), the type appears once per name; for
// unnamed fields, once.
func (s *Stringifier) FieldTypes(fields []*dst.Field) []string {
	var parts []string

	for _, field := range fields {
		typeStr := s.Expr(field.Type)

		count := len(field.Names)
		if count == 0 {
			count = 1
		}

		for range count {
			parts = append(parts, typeStr)
		}
	}

	return parts
}

// funcType converts a DST FuncType to its string representation.
func (s *Stringifier) funcType(funcType *dst.FuncType) string {
	var buf strings.Builder
	buf.WriteString("func")

	if funcType.Params != nil {
		buf.WriteString("(")
		buf.WriteString(strings.Join(s.FieldTypes(funcType.Params.List), ", "))
		buf.WriteString(")")
	}

	if funcType.Results != nil && len(funcType.Results.List) > 0 {
		buf.WriteString(" ")

		resultParts := s.FieldTypes(funcType.Results.List)
		if len(resultParts) > 1 {
			buf.WriteString("(")
			buf.WriteString(strings.Join(resultParts, ", "))
			buf.WriteString(")")
		} else {
			buf.WriteString(resultParts[0])
		}
	}

	return buf.String()
}
