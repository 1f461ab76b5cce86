package doctest

import (
	"go/ast"
	goparser "go/parser"
	"go/token"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// publicPkgNames lists the packages whose symbols doc comment examples may use.
var publicPkgNames = []string{
	"apierrors", "caser", "casing", "document", "filter", "formatter", "sorter", "walker",
}

// internalPkgs lists packages that must not appear in doc comment examples.
// Value is the suggested public package to use instead (empty if no direct equivalent).
var internalPkgs = map[string]string{
	"nodeutil": "document",
	"pathutil": "",
	"config":   "formatter",
	"cliutil":  "",
	"textdiff": "",
	"testutil": "",
}

// TestDocCommentExampleAPISync verifies that Go code examples in doc comments
// reference symbols that actually exist in the apiformat public packages.
//
// This catches:
//   - References to renamed or removed functions (e.g., WithParsed → WithDocument)
//   - References to nonexistent types or constants (e.g., formatter.WithSortRules)
//   - References to internal packages in user-facing examples (e.g., nodeutil.Get)
func TestDocCommentExampleAPISync(t *testing.T) {
	_, thisFile, _, ok := runtime.Caller(0)
	require.True(t, ok, "runtime.Caller(0) failed")
	repoRoot := filepath.Join(filepath.Dir(thisFile), "..", "..")

	symbols := make(map[string]map[string]bool, len(publicPkgNames))
	for _, pkg := range publicPkgNames {
		syms, _ := parsePackage(t, filepath.Join(repoRoot, pkg))
		symbols[pkg] = syms
	}

	allPkgNames := make([]string, 0, len(publicPkgNames)+len(internalPkgs))
	allPkgNames = append(allPkgNames, publicPkgNames...)
	for pkg := range internalPkgs {
		allPkgNames = append(allPkgNames, pkg)
	}
	sort.Strings(allPkgNames)
	refRe := regexp.MustCompile(`\b(` + strings.Join(allPkgNames, "|") + `)\.([A-Z][a-zA-Z0-9]*)`)

	dirs := append([]string{"."}, publicPkgNames...)
	var checked int
	for _, dir := range dirs {
		_, blocks := parsePackage(t, filepath.Join(repoRoot, dir))
		for _, block := range blocks {
			checked++
			for lineIdx, line := range strings.Split(block.code, "\n") {
				for _, match := range refRe.FindAllStringSubmatch(line, -1) {
					pkg, sym := match[1], match[2]
					where := block.file + ":" + strconv.Itoa(block.startLine+lineIdx)

					if alt, isInternal := internalPkgs[pkg]; isInternal {
						if alt != "" {
							t.Errorf("%s: references internal package %s.%s (use %s instead)", where, pkg, sym, alt)
						} else {
							t.Errorf("%s: references internal package %s.%s", where, pkg, sym)
						}
						continue
					}
					assert.True(t, symbols[pkg][sym],
						"%s: references %s.%s but no such exported symbol exists in the %s package",
						where, pkg, sym, pkg)
				}
			}
		}
	}
	assert.NotZero(t, checked, "no doc comment code examples found")
}

// exampleBlock is a code example taken from a doc comment: the indented
// lines of the comment text.
type exampleBlock struct {
	file      string
	code      string
	startLine int
}

// parsePackage returns the exported symbols of the package in dir and the
// code examples in its doc comments, excluding test files. Methods are
// included because doc comments use the godoc-style package.Method syntax.
func parsePackage(t *testing.T, dir string) (map[string]bool, []exampleBlock) {
	t.Helper()

	fset := token.NewFileSet()
	pkgs, err := goparser.ParseDir(fset, dir, func(fi os.FileInfo) bool {
		return !strings.HasSuffix(fi.Name(), "_test.go")
	}, goparser.ParseComments)
	require.NoError(t, err, "parsing package dir %s", dir)

	syms := make(map[string]bool)
	var blocks []exampleBlock
	for _, pkg := range pkgs {
		for name, file := range pkg.Files {
			for _, cg := range file.Comments {
				blocks = append(blocks, extractExamples(filepath.Base(name), fset.Position(cg.Pos()).Line, cg)...)
			}
			for _, decl := range file.Decls {
				switch d := decl.(type) {
				case *ast.FuncDecl:
					if d.Name.IsExported() {
						syms[d.Name.Name] = true
					}
				case *ast.GenDecl:
					for _, spec := range d.Specs {
						switch s := spec.(type) {
						case *ast.TypeSpec:
							if s.Name.IsExported() {
								syms[s.Name.Name] = true
							}
						case *ast.ValueSpec:
							for _, name := range s.Names {
								if name.IsExported() {
									syms[name.Name] = true
								}
							}
						}
					}
				}
			}
		}
	}
	return syms, blocks
}

// extractExamples collects runs of tab-indented lines from a comment group.
func extractExamples(file string, firstLine int, cg *ast.CommentGroup) []exampleBlock {
	var blocks []exampleBlock
	var current []string
	start := 0
	flush := func() {
		if len(current) > 0 {
			blocks = append(blocks, exampleBlock{file: file, code: strings.Join(current, "\n"), startLine: start})
			current = nil
		}
	}
	for i, c := range cg.List {
		text, ok := strings.CutPrefix(c.Text, "//")
		if !ok {
			flush()
			continue
		}
		if strings.HasPrefix(text, "\t") {
			if len(current) == 0 {
				start = firstLine + i
			}
			current = append(current, text)
			continue
		}
		flush()
	}
	flush()
	return blocks
}
