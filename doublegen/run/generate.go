package run

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"path"
	"strings"
	"text/template"

	"github.com/dave/dst"
)

// facadeImportPath is the package the generated code dispatches through.
const facadeImportPath = "github.com/mclancy96/stuntdouble"

// facadePkg is the import alias for the facade. Underscore prefix avoids
// colliding with user package names.
const facadePkg = "_stuntdouble"

// ImportInfo holds an import carried into the generated file for external
// types used in method signatures.
type ImportInfo struct {
	Alias string // package name as referenced (e.g., "io")
	Path  string // full import path
}

// GenerateData holds everything the file template and method renderer need.
type GenerateData struct {
	PkgName          string // package clause of the generated file
	DoubleName       string // generated struct name (e.g., "TicketStoreDouble")
	InterfaceName    string // local interface name (e.g., "TicketStore")
	InterfaceType    string // possibly qualified (e.g., "boxoffice.TicketStore")
	Qualifier        string // source package qualifier, "" when same package
	SourceImportPath string // import path backing the qualifier
	ExtraImports     []ImportInfo
	Methods          []string // pre-rendered method sources
	FacadePkg        string
	FacadePath       string
}

// methodInfo is one interface method pulled out of the DST.
type methodInfo struct {
	Name     string
	FuncType *dst.FuncType
}

// Generate renders the typed double source for the given interface and
// gofmt-formats it.
func Generate(files []*dst.File, info GeneratorInfo, qualifier, sourceImportPath string) (string, error) {
	iface, err := findInterface(files, info.LocalInterfaceName)
	if err != nil {
		return "", err
	}

	methods, err := interfaceMethods(iface, files)
	if err != nil {
		return "", fmt.Errorf("interface %s: %w", info.LocalInterfaceName, err)
	}

	if len(methods) == 0 {
		return "", fmt.Errorf("%w: %s", errEmptyInterface, info.LocalInterfaceName)
	}

	stringifier := &Stringifier{}
	if qualifier != "" {
		declared := declaredTypeNames(files)
		stringifier.Qualify = func(name string) string {
			if declared[name] {
				return qualifier + "." + name
			}

			return name
		}
	}

	interfaceType := info.LocalInterfaceName
	if qualifier != "" {
		interfaceType = qualifier + "." + info.LocalInterfaceName
	}

	data := GenerateData{
		PkgName:          info.PkgName,
		DoubleName:       info.DoubleName,
		InterfaceName:    info.LocalInterfaceName,
		InterfaceType:    interfaceType,
		Qualifier:        qualifier,
		SourceImportPath: sourceImportPath,
		ExtraImports:     collectSelectorImports(methods, files),
		FacadePkg:        facadePkg,
		FacadePath:       facadeImportPath,
	}

	for _, method := range methods {
		data.Methods = append(data.Methods, renderMethod(info.DoubleName, method, stringifier))
	}

	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute file template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return "", fmt.Errorf("generated code for %s does not format: %w", info.DoubleName, err)
	}

	return string(formatted), nil
}

// collectSelectorImports finds pkg.Type references in method signatures and
// maps them back to the source files' import specs, so the generated file can
// import them too.
func collectSelectorImports(methods []methodInfo, files []*dst.File) []ImportInfo {
	qualifiers := map[string]bool{}

	for _, method := range methods {
		collectQualifiers(method.FuncType, qualifiers)
	}

	var imports []ImportInfo

	seen := map[string]bool{}

	for _, file := range files {
		for _, spec := range file.Imports {
			importPath := strings.Trim(spec.Path.Value, `"`)

			alias := path.Base(importPath)
			if spec.Name != nil {
				alias = spec.Name.Name
			}

			if qualifiers[alias] && !seen[alias] {
				seen[alias] = true

				imports = append(imports, ImportInfo{Alias: alias, Path: importPath})
			}
		}
	}

	return imports
}

// collectQualifiers records the package names of selector-qualified types in
// a signature.
func collectQualifiers(node dst.Node, qualifiers map[string]bool) {
	dst.Inspect(node, func(n dst.Node) bool {
		if sel, ok := n.(*dst.SelectorExpr); ok {
			if ident, ok := sel.X.(*dst.Ident); ok {
				qualifiers[ident.Name] = true

				return false
			}
		}

		return true
	})
}

// declaredTypeNames collects the type names declared across the package
// files, so the qualify hook knows which bare identifiers need prefixing.
func declaredTypeNames(files []*dst.File) map[string]bool {
	declared := map[string]bool{}

	for _, file := range files {
		for _, decl := range file.Decls {
			genDecl, ok := decl.(*dst.GenDecl)
			if !ok {
				continue
			}

			for _, spec := range genDecl.Specs {
				if typeSpec, ok := spec.(*dst.TypeSpec); ok {
					declared[typeSpec.Name.Name] = true
				}
			}
		}
	}

	return declared
}

// findInterface locates the named interface type declaration.
func findInterface(files []*dst.File, name string) (*dst.InterfaceType, error) {
	for _, file := range files {
		for _, decl := range file.Decls {
			genDecl, ok := decl.(*dst.GenDecl)
			if !ok {
				continue
			}

			for _, spec := range genDecl.Specs {
				typeSpec, ok := spec.(*dst.TypeSpec)
				if !ok || typeSpec.Name.Name != name {
					continue
				}

				iface, ok := typeSpec.Type.(*dst.InterfaceType)
				if !ok {
					return nil, fmt.Errorf("%w: %s is not an interface", errNotAnInterface, name)
				}

				if typeSpec.TypeParams != nil && len(typeSpec.TypeParams.List) > 0 {
					return nil, fmt.Errorf("%w: %s", errGenericInterface, name)
				}

				return iface, nil
			}
		}
	}

	return nil, fmt.Errorf("%w: %s", errInterfaceNotFound, name)
}

// interfaceMethods flattens an interface's method set, resolving embedded
// interfaces declared in the same package.
func interfaceMethods(iface *dst.InterfaceType, files []*dst.File) ([]methodInfo, error) {
	var methods []methodInfo

	if iface.Methods == nil {
		return methods, nil
	}

	for _, field := range iface.Methods.List {
		if len(field.Names) > 0 {
			funcType, ok := field.Type.(*dst.FuncType)
			if !ok {
				return nil, fmt.Errorf("%w: %s", errUnsupportedElement, field.Names[0].Name)
			}

			methods = append(methods, methodInfo{Name: field.Names[0].Name, FuncType: funcType})

			continue
		}

		// Embedded interface - only same-package embeds can be resolved
		// without type checking.
		ident, ok := field.Type.(*dst.Ident)
		if !ok {
			return nil, fmt.Errorf("%w: embedded %T", errUnsupportedElement, field.Type)
		}

		embedded, err := findInterface(files, ident.Name)
		if err != nil {
			return nil, err
		}

		embeddedMethods, err := interfaceMethods(embedded, files)
		if err != nil {
			return nil, err
		}

		methods = append(methods, embeddedMethods...)
	}

	return methods, nil
}

// renderMethod emits one typed dispatch method.
func renderMethod(doubleName string, method methodInfo, stringifier *Stringifier) string {
	var buf strings.Builder

	paramsDecl, argNames, variadicName := renderParams(method.FuncType, stringifier)

	var resultTypes []string
	if method.FuncType.Results != nil {
		resultTypes = stringifier.FieldTypes(method.FuncType.Results.List)
	}

	fmt.Fprintf(&buf, "// %s dispatches to the stub table entry for %q.\n", method.Name, method.Name)
	fmt.Fprintf(&buf, "func (d *%s) %s(%s)%s {\n", doubleName, method.Name, paramsDecl, renderResultsDecl(resultTypes))

	call := fmt.Sprintf("d.MustInvoke(%q%s)", method.Name, renderCallArgs(argNames))
	if variadicName != "" {
		fmt.Fprintf(&buf, "\targs := []any{%s}\n", strings.Join(argNames, ", "))
		fmt.Fprintf(&buf, "\tfor _, v := range %s {\n\t\targs = append(args, v)\n\t}\n\n", variadicName)

		call = fmt.Sprintf("d.MustInvoke(%q, args...)", method.Name)
	}

	switch len(resultTypes) {
	case 0:
		fmt.Fprintf(&buf, "\t%s\n", call)
	case 1:
		fmt.Fprintf(&buf, "\treturn %s.As[%s](d.t, %s)\n", facadePkg, resultTypes[0], call)
	default:
		fmt.Fprintf(&buf, "\tvalues := %s.Results(d.t, %s, %d)\n\n", facadePkg, call, len(resultTypes))
		buf.WriteString("\treturn ")

		for i, resultType := range resultTypes {
			if i > 0 {
				buf.WriteString(", ")
			}

			fmt.Fprintf(&buf, "%s.As[%s](d.t, values[%d])", facadePkg, resultType, i)
		}

		buf.WriteString("\n")
	}

	buf.WriteString("}\n")

	return buf.String()
}

// renderCallArgs joins argument names for a plain MustInvoke call.
func renderCallArgs(argNames []string) string {
	if len(argNames) == 0 {
		return ""
	}

	return ", " + strings.Join(argNames, ", ")
}

// renderParams builds the parameter declaration and the positional argument
// names (a0, a1, ...). For a variadic method, the variadic parameter's name
// is returned separately and excluded from argNames.
func renderParams(funcType *dst.FuncType, stringifier *Stringifier) (string, []string, string) {
	var (
		decls        []string
		argNames     []string
		variadicName string
	)

	if funcType.Params == nil {
		return "", nil, ""
	}

	index := 0

	for _, field := range funcType.Params.List {
		count := len(field.Names)
		if count == 0 {
			count = 1
		}

		for range count {
			name := fmt.Sprintf("a%d", index)
			index++

			if _, isVariadic := field.Type.(*dst.Ellipsis); isVariadic {
				variadicName = name
			} else {
				argNames = append(argNames, name)
			}

			decls = append(decls, name+" "+stringifier.Expr(field.Type))
		}
	}

	return strings.Join(decls, ", "), argNames, variadicName
}

// renderResultsDecl renders the result list of a method signature.
func renderResultsDecl(resultTypes []string) string {
	switch len(resultTypes) {
	case 0:
		return ""
	case 1:
		return " " + resultTypes[0]
	default:
		return " (" + strings.Join(resultTypes, ", ") + ")"
	}
}

// unexported variables.
var (
	errEmptyInterface     = errors.New("interface has no methods")
	errGenericInterface   = errors.New("generic interfaces are not supported")
	errInterfaceNotFound  = errors.New("interface not found")
	errNotAnInterface     = errors.New("not an interface")
	errUnsupportedElement = errors.New("unsupported interface element")

	//nolint:gochecknoglobals // Parsed once; template text cannot fail at runtime
	fileTemplate = template.Must(template.New("double").Parse(`// Code generated by doublegen. DO NOT EDIT.

package {{.PkgName}}

import (
	{{.FacadePkg}} "{{.FacadePath}}"
{{- if .Qualifier}}
	{{.Qualifier}} "{{.SourceImportPath}}"
{{- end}}
{{- range .ExtraImports}}
	{{.Alias}} "{{.Path}}"
{{- end}}
)

// {{.DoubleName}} is a typed stunt double standing in for {{.InterfaceType}}.
// Each method dispatches through the embedded Double's stub table; an
// unstubbed call fails the test.
type {{.DoubleName}} struct {
	*{{.FacadePkg}}.Double

	t {{.FacadePkg}}.TestReporter
}

// New{{.DoubleName}} creates a {{.DoubleName}} registered to t, with any
// initial stubs installed.
func New{{.DoubleName}}(t {{.FacadePkg}}.TestReporter, stubs ...{{.FacadePkg}}.Stubs) *{{.DoubleName}} {
	return &{{.DoubleName}}{
		Double: {{.FacadePkg}}.NewDouble(t, "{{.InterfaceName}}", stubs...),
		t:      t,
	}
}

var _ {{.InterfaceType}} = (*{{.DoubleName}})(nil)

{{range .Methods}}{{.}}
{{end}}`))
)
