package main

import (
	"go/ast"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

const directivePrefix = "//framestep:system"

// systemDecl is one type marked for the descriptor table.
type systemDecl struct {
	TypeName string
	Name     string
	Priority int
	Pos      string
}

// parseDirective reads a `//framestep:system [priority=N] [name=S]` line.
// ok is false when the line is not a system directive.
func parseDirective(line string) (decl systemDecl, ok bool, err error) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, directivePrefix) {
		return decl, false, nil
	}
	rest := strings.TrimPrefix(line, directivePrefix)
	if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
		// e.g. //framestep:systems
		return decl, false, nil
	}

	for _, field := range strings.Fields(rest) {
		key, value, found := strings.Cut(field, "=")
		if !found || value == "" {
			return decl, true, eris.Errorf("malformed directive argument %q", field)
		}
		switch key {
		case "priority":
			p, err := strconv.Atoi(value)
			if err != nil {
				return decl, true, eris.Wrapf(err, "invalid priority %q", value)
			}
			decl.Priority = p
		case "name":
			decl.Name = value
		default:
			return decl, true, eris.Errorf("unknown directive argument %q", key)
		}
	}
	return decl, true, nil
}

// scanFile collects every type declaration in file whose doc comment
// carries a system directive. pos formats a node position for errors.
func scanFile(file *ast.File, pos func(ast.Node) string) ([]systemDecl, error) {
	var decls []systemDecl
	for _, d := range file.Decls {
		gen, ok := d.(*ast.GenDecl)
		if !ok {
			continue
		}
		for _, spec := range gen.Specs {
			ts, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}
			doc := ts.Doc
			if doc == nil && len(gen.Specs) == 1 {
				doc = gen.Doc
			}
			if doc == nil {
				continue
			}
			for _, c := range doc.List {
				decl, ok, err := parseDirective(c.Text)
				if err != nil {
					return nil, eris.Wrapf(err, "%s: type %s", pos(ts), ts.Name.Name)
				}
				if !ok {
					continue
				}
				if ts.TypeParams != nil {
					return nil, eris.Errorf("%s: generic type %s cannot be a system", pos(ts), ts.Name.Name)
				}
				decl.TypeName = ts.Name.Name
				if decl.Name == "" {
					decl.Name = ts.Name.Name
				}
				decl.Pos = pos(ts)
				decls = append(decls, decl)
				break
			}
		}
	}
	return decls, nil
}
