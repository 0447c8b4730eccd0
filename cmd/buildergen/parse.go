package main

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/parser"
	"go/printer"
	"go/token"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dave/jennifer/jen"
)

// builderImportPath is the runtime package generated code registers with.
const builderImportPath = "github.com/sghaida/builderbuilder/builder"

// sourceFile carries what type rendering needs from one parsed file.
type sourceFile struct {
	path    string
	imports map[string]string // local name -> import path
}

type ifaceDecl struct {
	name string
	typ  *ast.InterfaceType
	file *sourceFile
}

// pkgInfo is the subset of a Go package the generator works with.
type pkgInfo struct {
	name   string
	ifaces map[string]ifaceDecl
}

// method is one forwarding method to generate.
type method struct {
	name         string
	params       []jen.Code
	variadic     bool
	result       jen.Code
	returnsError bool
}

// loadPackage parses every non-test, non-generated Go file in dir.
func loadPackage(dir string) (*pkgInfo, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	pkg := &pkgInfo{ifaces: map[string]ifaceDecl{}}
	fileSet := token.NewFileSet()

	for _, entry := range dirEntries {
		if entry.IsDir() {
			continue
		}

		fileName := entry.Name()
		if !strings.HasSuffix(fileName, ".go") ||
			strings.HasSuffix(fileName, "_test.go") ||
			strings.HasSuffix(fileName, ".gen.go") {
			continue
		}

		filePath := filepath.Join(dir, fileName)
		parsedFile, err := parser.ParseFile(fileSet, filePath, nil, parser.SkipObjectResolution)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", filePath, err)
		}

		if pkg.name == "" {
			pkg.name = parsedFile.Name.Name
		} else if pkg.name != parsedFile.Name.Name {
			return nil, fmt.Errorf("%s: package %s, expected %s", filePath, parsedFile.Name.Name, pkg.name)
		}

		src := &sourceFile{path: filePath, imports: fileImports(parsedFile)}
		for _, declaration := range parsedFile.Decls {
			genDecl, ok := declaration.(*ast.GenDecl)
			if !ok || genDecl.Tok != token.TYPE {
				continue
			}
			for _, spec := range genDecl.Specs {
				typeSpec := spec.(*ast.TypeSpec)
				ifaceType, ok := typeSpec.Type.(*ast.InterfaceType)
				if !ok || typeSpec.TypeParams != nil {
					continue
				}
				pkg.ifaces[typeSpec.Name.Name] = ifaceDecl{name: typeSpec.Name.Name, typ: ifaceType, file: src}
			}
		}
	}

	if pkg.name == "" {
		return nil, fmt.Errorf("no Go files in %s", dir)
	}
	return pkg, nil
}

func fileImports(f *ast.File) map[string]string {
	imports := make(map[string]string, len(f.Imports))
	for _, importDecl := range f.Imports {
		importPath, err := strconv.Unquote(importDecl.Path.Value)
		if err != nil {
			continue
		}
		localName := path.Base(importPath)
		if importDecl.Name != nil {
			localName = importDecl.Name.Name
		}
		if localName == "_" || localName == "." {
			continue
		}
		imports[localName] = importPath
	}
	return imports
}

// methods returns the method set of the named interface, embedded interfaces
// flattened, in declaration order.
func (p *pkgInfo) methods(name string) ([]method, error) {
	decl, ok := p.ifaces[name]
	if !ok {
		return nil, fmt.Errorf("interface %s not found in package %s", name, p.name)
	}

	var out []method
	seen := map[string]bool{}
	if err := p.collect(decl, map[string]bool{}, seen, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return out, nil
}

func (p *pkgInfo) collect(decl ifaceDecl, visiting, seen map[string]bool, out *[]method) error {
	if visiting[decl.name] {
		return fmt.Errorf("interface %s embeds itself", decl.name)
	}
	visiting[decl.name] = true
	defer delete(visiting, decl.name)

	add := func(m method) {
		if seen[m.name] {
			return
		}
		seen[m.name] = true
		*out = append(*out, m)
	}

	for _, field := range decl.typ.Methods.List {
		if len(field.Names) > 0 {
			funcType, ok := field.Type.(*ast.FuncType)
			if !ok {
				return fmt.Errorf("unexpected member %s", field.Names[0].Name)
			}
			for _, ident := range field.Names {
				m, err := funcMethod(ident.Name, funcType, decl.file)
				if err != nil {
					return err
				}
				add(m)
			}
			continue
		}

		switch embedded := field.Type.(type) {
		case *ast.Ident:
			inner, ok := p.ifaces[embedded.Name]
			if !ok {
				return fmt.Errorf("embedded %s is not an interface of package %s", embedded.Name, p.name)
			}
			if err := p.collect(inner, visiting, seen, out); err != nil {
				return err
			}
		case *ast.IndexExpr:
			if !isBaseBuilder(embedded.X, decl.file) {
				return fmt.Errorf("unsupported embedded interface %s", exprString(embedded))
			}
			result, err := typeCode(embedded.Index, decl.file)
			if err != nil {
				return err
			}
			add(method{name: "Build", result: result, returnsError: true})
		default:
			return fmt.Errorf("unsupported embedded interface %s", exprString(field.Type))
		}
	}
	return nil
}

// isBaseBuilder reports whether x names builder.Builder.
func isBaseBuilder(x ast.Expr, file *sourceFile) bool {
	sel, ok := x.(*ast.SelectorExpr)
	if !ok || sel.Sel.Name != "Builder" {
		return false
	}
	pkgIdent, ok := sel.X.(*ast.Ident)
	return ok && file.imports[pkgIdent.Name] == builderImportPath
}

func funcMethod(name string, funcType *ast.FuncType, file *sourceFile) (method, error) {
	m := method{name: name}

	for _, field := range funcType.Params.List {
		typeExpr := field.Type
		if ellipsis, ok := typeExpr.(*ast.Ellipsis); ok {
			m.variadic = true
			typeExpr = ellipsis.Elt
		}
		code, err := typeCode(typeExpr, file)
		if err != nil {
			return m, fmt.Errorf("method %s: %w", name, err)
		}
		for i := 0; i < max(1, len(field.Names)); i++ {
			m.params = append(m.params, code)
		}
	}

	var results []ast.Expr
	if funcType.Results != nil {
		for _, field := range funcType.Results.List {
			for i := 0; i < max(1, len(field.Names)); i++ {
				results = append(results, field.Type)
			}
		}
	}

	switch {
	case len(results) == 0:
	case len(results) == 1 && isErrorIdent(results[0]):
		m.returnsError = true
	case len(results) == 1:
		code, err := typeCode(results[0], file)
		if err != nil {
			return m, fmt.Errorf("method %s: %w", name, err)
		}
		m.result = code
	case len(results) == 2 && isErrorIdent(results[1]):
		code, err := typeCode(results[0], file)
		if err != nil {
			return m, fmt.Errorf("method %s: %w", name, err)
		}
		m.result = code
		m.returnsError = true
	default:
		return m, fmt.Errorf("method %s: unsupported results %s", name, exprString(funcType.Results))
	}
	return m, nil
}

func isErrorIdent(x ast.Expr) bool {
	ident, ok := x.(*ast.Ident)
	return ok && ident.Name == "error"
}

// typeCode renders a type expression, qualifying package selectors with the
// import paths of the file the expression comes from.
func typeCode(x ast.Expr, file *sourceFile) (*jen.Statement, error) {
	switch t := x.(type) {
	case *ast.Ident:
		return jen.Id(t.Name), nil
	case *ast.SelectorExpr:
		pkgIdent, ok := t.X.(*ast.Ident)
		if !ok {
			return nil, fmt.Errorf("unsupported type %s", exprString(t))
		}
		importPath, ok := file.imports[pkgIdent.Name]
		if !ok {
			return nil, fmt.Errorf("%s: no import for %s", file.path, pkgIdent.Name)
		}
		return jen.Qual(importPath, t.Sel.Name), nil
	case *ast.StarExpr:
		return wrapType(jen.Op("*"), t.X, file)
	case *ast.ParenExpr:
		return typeCode(t.X, file)
	case *ast.ArrayType:
		if t.Len == nil {
			return wrapType(jen.Index(), t.Elt, file)
		}
		lit, ok := t.Len.(*ast.BasicLit)
		if !ok {
			return nil, fmt.Errorf("unsupported array length in %s", exprString(t))
		}
		return wrapType(jen.Index(jen.Id(lit.Value)), t.Elt, file)
	case *ast.MapType:
		key, err := typeCode(t.Key, file)
		if err != nil {
			return nil, err
		}
		return wrapType(jen.Map(key), t.Value, file)
	case *ast.ChanType:
		switch t.Dir {
		case ast.SEND:
			return wrapType(jen.Chan().Op("<-"), t.Value, file)
		case ast.RECV:
			return wrapType(jen.Op("<-").Chan(), t.Value, file)
		default:
			return wrapType(jen.Chan(), t.Value, file)
		}
	case *ast.InterfaceType:
		if len(t.Methods.List) > 0 {
			return nil, fmt.Errorf("unsupported inline interface %s", exprString(t))
		}
		return jen.Interface(), nil
	case *ast.StructType:
		if len(t.Fields.List) > 0 {
			return nil, fmt.Errorf("unsupported inline struct %s", exprString(t))
		}
		return jen.Struct(), nil
	case *ast.FuncType:
		return funcTypeCode(t, file)
	case *ast.IndexExpr:
		return instantiate(t.X, []ast.Expr{t.Index}, file)
	case *ast.IndexListExpr:
		return instantiate(t.X, t.Indices, file)
	}
	return nil, fmt.Errorf("unsupported type %s", exprString(x))
}

func wrapType(prefix *jen.Statement, elem ast.Expr, file *sourceFile) (*jen.Statement, error) {
	code, err := typeCode(elem, file)
	if err != nil {
		return nil, err
	}
	return prefix.Add(code), nil
}

func instantiate(base ast.Expr, args []ast.Expr, file *sourceFile) (*jen.Statement, error) {
	code, err := typeCode(base, file)
	if err != nil {
		return nil, err
	}
	typeArgs := make([]jen.Code, 0, len(args))
	for _, arg := range args {
		argCode, err := typeCode(arg, file)
		if err != nil {
			return nil, err
		}
		typeArgs = append(typeArgs, argCode)
	}
	return code.Types(typeArgs...), nil
}

func funcTypeCode(t *ast.FuncType, file *sourceFile) (*jen.Statement, error) {
	fieldCodes := func(list *ast.FieldList) ([]jen.Code, error) {
		if list == nil {
			return nil, nil
		}
		var codes []jen.Code
		for _, field := range list.List {
			prefix := jen.Null()
			typeExpr := field.Type
			if ellipsis, ok := typeExpr.(*ast.Ellipsis); ok {
				prefix = jen.Op("...")
				typeExpr = ellipsis.Elt
			}
			code, err := wrapType(prefix, typeExpr, file)
			if err != nil {
				return nil, err
			}
			for i := 0; i < max(1, len(field.Names)); i++ {
				codes = append(codes, code)
			}
		}
		return codes, nil
	}

	params, err := fieldCodes(t.Params)
	if err != nil {
		return nil, err
	}
	results, err := fieldCodes(t.Results)
	if err != nil {
		return nil, err
	}

	code := jen.Func().Params(params...)
	switch len(results) {
	case 0:
	case 1:
		code.Add(results[0])
	default:
		code.Params(results...)
	}
	return code, nil
}

func exprString(node ast.Node) string {
	var buf bytes.Buffer
	if err := printer.Fprint(&buf, token.NewFileSet(), node); err != nil {
		return fmt.Sprintf("%T", node)
	}
	return buf.String()
}
