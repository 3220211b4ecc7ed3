package main

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDirective(t *testing.T) {
	for _, tc := range []struct {
		line     string
		ok       bool
		priority int
		name     string
		wantErr  bool
	}{
		{line: "//framestep:system", ok: true},
		{line: "//framestep:system priority=10", ok: true, priority: 10},
		{line: "//framestep:system priority=-5 name=Early", ok: true, priority: -5, name: "Early"},
		{line: "  //framestep:system\tpriority=3", ok: true, priority: 3},
		{line: "// framestep:system", ok: false},
		{line: "//framestep:systems", ok: false},
		{line: "// Movement integrates velocity.", ok: false},
		{line: "//framestep:system priority=high", ok: true, wantErr: true},
		{line: "//framestep:system priority", ok: true, wantErr: true},
		{line: "//framestep:system order=1", ok: true, wantErr: true},
	} {
		t.Run(tc.line, func(t *testing.T) {
			decl, ok, err := parseDirective(tc.line)
			assert.Equal(t, tc.ok, ok)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.priority, decl.Priority)
			assert.Equal(t, tc.name, decl.Name)
		})
	}
}

const source = `package game

// Movement integrates velocity.
//
//framestep:system priority=10
type Movement struct{}

type (
	//framestep:system priority=-1 name=Input
	inputSystem struct{}

	helper struct{}
)

//framestep:system
type Render struct{}

// not a system
type Other struct{}
`

func parseSource(t *testing.T, src string) ([]systemDecl, error) {
	t.Helper()
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "game.go", src, parser.ParseComments)
	require.NoError(t, err)
	return scanFile(file, func(n ast.Node) string {
		return fset.Position(n.Pos()).String()
	})
}

func TestScanFile(t *testing.T) {
	decls, err := parseSource(t, source)
	require.NoError(t, err)
	require.Len(t, decls, 3)

	assert.Equal(t, "Movement", decls[0].TypeName)
	assert.Equal(t, 10, decls[0].Priority)
	assert.Equal(t, "inputSystem", decls[1].TypeName)
	assert.Equal(t, "Input", decls[1].Name)
	assert.Equal(t, "Render", decls[2].Name)
	assert.Contains(t, decls[2].Pos, "game.go:16")
}

func TestScanFileErrors(t *testing.T) {
	_, err := parseSource(t, "package game\n\n//framestep:system priority=x\ntype Bad struct{}\n")
	assert.ErrorContains(t, err, "Bad")

	_, err = parseSource(t, "package game\n\n//framestep:system\ntype Box[T any] struct{ v T }\n")
	assert.ErrorContains(t, err, "generic")
}

func TestGenerate(t *testing.T) {
	decls, err := parseSource(t, source)
	require.NoError(t, err)

	src, err := generate("game", "Systems", decls)
	require.NoError(t, err)

	out := string(src)
	assert.Contains(t, out, "// Code generated by systemgen. DO NOT EDIT.")
	assert.Contains(t, out, `import "github.com/plus3/framestep/ecs"`)
	assert.Contains(t, out, "var Systems = []ecs.SystemDescriptor{")
	assert.Contains(t, out, `{Name: "Input", Priority: -1, New: func() ecs.System { return &inputSystem{} }},`)

	input := strings.Index(out, `"Input"`)
	render := strings.Index(out, `"Render"`)
	movement := strings.Index(out, `"Movement"`)
	assert.Less(t, input, render)
	assert.Less(t, render, movement)

	_, err = generate("game", "Systems", append(decls, systemDecl{TypeName: "Dup", Name: "Render"}))
	assert.ErrorContains(t, err, "already used")
}

func TestGenerateExtremePriorities(t *testing.T) {
	decls := []systemDecl{
		{TypeName: "lateSystem", Name: "Late", Priority: math.MaxInt},
		{TypeName: "middleSystem", Name: "Middle", Priority: 0},
		{TypeName: "earlySystem", Name: "Early", Priority: math.MinInt},
	}

	src, err := generate("game", "Systems", decls)
	require.NoError(t, err)

	out := string(src)
	assert.Contains(t, out, fmt.Sprintf("Priority: %d,", math.MinInt))
	early := strings.Index(out, `"Early"`)
	middle := strings.Index(out, `"Middle"`)
	late := strings.Index(out, `"Late"`)
	assert.Less(t, early, middle)
	assert.Less(t, middle, late)
}
