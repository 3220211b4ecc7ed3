// Command systemgen writes the static system table for a package. It loads
// the package with go/packages, finds every type whose doc comment carries
//
//	//framestep:system priority=N
//
// checks that a pointer to it has an Execute method, and emits a
// []ecs.SystemDescriptor variable that can be passed to ecs.WithDescriptors.
//
// Typical use:
//
//	//go:generate go run github.com/plus3/framestep/cmd/systemgen -o systems_gen.go
package main

import (
	"go/ast"
	"go/types"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"golang.org/x/tools/go/packages"
)

func main() {
	output := pflag.StringP("output", "o", "systems_gen.go", "file to write, relative to the package directory")
	varName := pflag.String("var", "Systems", "name of the generated descriptor table")
	verbose := pflag.BoolP("verbose", "v", false, "log every discovered system")
	pflag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	if !*verbose {
		logger = logger.Level(zerolog.InfoLevel)
	}

	pattern := "."
	if pflag.NArg() > 0 {
		pattern = pflag.Arg(0)
	}

	if err := run(logger, pattern, *output, *varName); err != nil {
		logger.Fatal().Err(err).Msg("systemgen failed")
	}
}

func run(logger zerolog.Logger, pattern, output, varName string) error {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedSyntax | packages.NeedTypes,
	}
	pkgs, err := packages.Load(cfg, pattern)
	if err != nil {
		return eris.Wrapf(err, "failed to load %s", pattern)
	}
	if packages.PrintErrors(pkgs) > 0 {
		return eris.Errorf("package %s has errors", pattern)
	}
	if len(pkgs) != 1 {
		return eris.Errorf("pattern %s matched %d packages, want 1", pattern, len(pkgs))
	}
	pkg := pkgs[0]

	pos := func(n ast.Node) string {
		return pkg.Fset.Position(n.Pos()).String()
	}

	var systems []systemDecl
	for _, file := range pkg.Syntax {
		decls, err := scanFile(file, pos)
		if err != nil {
			return err
		}
		systems = append(systems, decls...)
	}

	for _, s := range systems {
		if err := checkSystem(pkg.Types, s); err != nil {
			return err
		}
		logger.Debug().
			Str("system", s.Name).
			Int("priority", s.Priority).
			Str("pos", s.Pos).
			Msg("system found")
	}

	src, err := generate(pkg.Name, varName, systems)
	if err != nil {
		return err
	}

	if len(pkg.GoFiles) > 0 && !filepath.IsAbs(output) {
		output = filepath.Join(filepath.Dir(pkg.GoFiles[0]), output)
	}
	if err := os.WriteFile(output, src, 0o644); err != nil {
		return eris.Wrapf(err, "failed to write %s", output)
	}

	logger.Info().
		Str("package", pkg.PkgPath).
		Int("systems", len(systems)).
		Str("output", output).
		Msg("system table written")
	return nil
}

// checkSystem verifies that *T has an Execute method.
func checkSystem(pkg *types.Package, s systemDecl) error {
	obj := pkg.Scope().Lookup(s.TypeName)
	if obj == nil {
		return eris.Errorf("%s: type %s not found", s.Pos, s.TypeName)
	}
	methods := types.NewMethodSet(types.NewPointer(obj.Type()))
	if methods.Lookup(pkg, "Execute") == nil {
		return eris.Errorf("%s: *%s has no Execute method", s.Pos, s.TypeName)
	}
	return nil
}
