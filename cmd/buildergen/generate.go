package main

import (
	"bytes"
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/dave/jennifer/jen"
)

// render produces the generated file for every interface of target.
func render(pkg *pkgInfo, target Target) ([]byte, error) {
	f := jen.NewFile(pkg.name)
	f.HeaderComment("Code generated by buildergen; DO NOT EDIT.")
	f.ImportName(builderImportPath, "builder")

	for _, name := range target.Types {
		methods, err := pkg.methods(name)
		if err != nil {
			return nil, err
		}
		renderProxy(f, name, methods, strategyOption(target))
	}

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", target.Out, err)
	}
	return buf.Bytes(), nil
}

// strategyOption returns the builder.WithStrategy(...) argument for the
// registration call, or nil for the default shape strategy.
func strategyOption(target Target) jen.Code {
	if target.Strategy != strategyGetter {
		return nil
	}
	strategy := jen.Qual(builderImportPath, "GetterStrategy")
	if target.Prefix != "" && target.Prefix != defaultGetterPrefix {
		strategy = jen.Qual(builderImportPath, "PrefixStrategy").Call(jen.Lit(target.Prefix))
	}
	return jen.Qual(builderImportPath, "WithStrategy").Call(strategy)
}

func renderProxy(f *jen.File, iface string, methods []method, option jen.Code) {
	proxyType := proxyTypeName(iface)
	proxyPtr := func() *jen.Statement { return jen.Op("*").Qual(builderImportPath, "Proxy") }
	recv := func() *jen.Statement { return jen.Id("b").Op("*").Id(proxyType) }

	f.Line()
	f.Commentf("%s implements %s by forwarding every call to a builder.Proxy.", proxyType, iface)
	f.Type().Id(proxyType).Struct(jen.Id("p").Add(proxyPtr()))

	registerArgs := []jen.Code{
		jen.Func().Params(jen.Id("p").Add(proxyPtr())).Id(iface).Block(
			jen.Return(jen.Op("&").Id(proxyType).Values(jen.Id("p").Op(":").Id("p"))),
		),
	}
	if option != nil {
		registerArgs = append(registerArgs, option)
	}
	f.Line()
	f.Func().Id("init").Params().Block(
		jen.Qual(builderImportPath, "MustRegister").Types(jen.Id(iface)).Call(registerArgs...),
	)

	f.Line()
	f.Comment("BuilderProxy returns the proxy backing b.")
	f.Func().Params(recv()).Id("BuilderProxy").Params().Add(proxyPtr()).Block(
		jen.Return(jen.Id("b").Dot("p")),
	)

	for _, m := range methods {
		renderMethod(f, recv(), m)
	}
}

func renderMethod(f *jen.File, recv *jen.Statement, m method) {
	params := make([]jen.Code, 0, len(m.params))
	callArgs := []jen.Code{jen.Lit(m.name)}
	for i, paramType := range m.params {
		argName := fmt.Sprintf("v%d", i)
		param := jen.Id(argName)
		if m.variadic && i == len(m.params)-1 {
			param.Op("...")
		}
		params = append(params, param.Add(paramType))
		callArgs = append(callArgs, jen.Id(argName))
	}

	call := func(via string) *jen.Statement {
		return jen.Id("b").Dot("p").Dot(via).Call(callArgs...)
	}
	as := func(v jen.Code) *jen.Statement {
		return jen.Qual(builderImportPath, "As").Types(m.result).Call(v)
	}

	f.Line()
	sig := f.Func().Params(recv).Id(m.name).Params(params...)
	switch {
	case m.result == nil && !m.returnsError:
		sig.Block(call("MustCall"))
	case m.result == nil:
		sig.Error().Block(
			jen.List(jen.Id("_"), jen.Err()).Op(":=").Add(call("Call")),
			jen.Return(jen.Err()),
		)
	case !m.returnsError:
		sig.Add(m.result).Block(jen.Return(as(call("MustCall"))))
	default:
		sig.Params(m.result, jen.Error()).Block(
			jen.List(jen.Id("res"), jen.Err()).Op(":=").Add(call("Call")),
			jen.Return(as(jen.Id("res")), jen.Err()),
		)
	}
}

// proxyTypeName derives the unexported forwarding type name: PersonBuilder
// becomes personBuilderProxy.
func proxyTypeName(iface string) string {
	r, size := utf8.DecodeRuneInString(iface)
	return string(unicode.ToLower(r)) + iface[size:] + "Proxy"
}
