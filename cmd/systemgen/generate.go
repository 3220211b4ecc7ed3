package main

import (
	"bytes"
	"cmp"
	"go/format"
	"slices"
	"strings"
	"text/template"

	"github.com/rotisserie/eris"
)

const ecsImportPath = "github.com/plus3/framestep/ecs"

type tableData struct {
	Package string
	Var     string
	Import  string
	Qualify string
	Systems []systemDecl
}

var tableTemplate = template.Must(template.New("table").Parse(`// Code generated by systemgen. DO NOT EDIT.

package {{.Package}}

import "{{.Import}}"

// {{.Var}} lists every system marked with //framestep:system, in priority order.
var {{.Var}} = []{{.Qualify}}SystemDescriptor{
{{- range .Systems}}
	{Name: {{printf "%q" .Name}}, Priority: {{.Priority}}, New: func() {{$.Qualify}}System { return &{{.TypeName}}{} }},
{{- end}}
}
`))

// generate renders the descriptor table for package pkgName. Two systems
// with the same name are an error.
func generate(pkgName, varName string, systems []systemDecl) ([]byte, error) {
	seen := make(map[string]string, len(systems))
	for _, s := range systems {
		if prev, ok := seen[s.Name]; ok {
			return nil, eris.Errorf("%s: system name %q already used at %s", s.Pos, s.Name, prev)
		}
		seen[s.Name] = s.Pos
	}

	systems = slices.Clone(systems)
	slices.SortStableFunc(systems, func(a, b systemDecl) int {
		if a.Priority != b.Priority {
			return cmp.Compare(a.Priority, b.Priority)
		}
		return strings.Compare(a.Name, b.Name)
	})

	data := tableData{
		Package: pkgName,
		Var:     varName,
		Import:  ecsImportPath,
		Qualify: "ecs.",
		Systems: systems,
	}

	var buf bytes.Buffer
	if err := tableTemplate.Execute(&buf, data); err != nil {
		return nil, eris.Wrap(err, "failed to render system table")
	}
	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, eris.Wrap(err, "generated code does not parse")
	}
	return formatted, nil
}
