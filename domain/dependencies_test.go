package domain_test

import (
	"go/parser"
	"go/token"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const modulePath = "github.com/modelfusion/llamacpp-bindings"

// TestDomainImportsOnlyDomain keeps entities, errors and ports free of the
// registry, the runtimes and the inference library.
func TestDomainImportsOnlyDomain(t *testing.T) {
	fset := token.NewFileSet()

	for _, pkg := range []string{"entities", "errors", "ports"} {
		t.Run(pkg, func(t *testing.T) {
			files, err := filepath.Glob(filepath.Join(pkg, "*.go"))
			require.NoError(t, err)
			require.NotEmpty(t, files, "domain/%s should contain Go files", pkg)

			for _, file := range files {
				f, err := parser.ParseFile(fset, file, nil, parser.ImportsOnly)
				require.NoError(t, err, "failed to parse %s", file)

				for _, imp := range f.Imports {
					path := strings.Trim(imp.Path.Value, `"`)
					if path != modulePath && !strings.HasPrefix(path, modulePath+"/") {
						continue
					}
					assert.True(t, strings.HasPrefix(path, modulePath+"/domain/"),
						"%s imports non-domain package %s", file, path)
				}
			}
		})
	}
}
