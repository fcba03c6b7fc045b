package entrypoint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guardrail-go/guardrail/graph/callgraph/builder"
)

func sampleResult() builder.Result {
	return builder.Result{
		Defs: []builder.FileDefs{
			{
				Path: "src/Controller/OrderController.php",
				Classes: []builder.ClassDef{
					{
						FQCN: "App\\Controller\\OrderController",
						Methods: []builder.MethodDef{
							{Name: "checkout", HasBody: true},
							{Name: "__construct", HasBody: true},
						},
					},
				},
			},
			{
				Path: "src/Service/PaymentGateway.php",
				Classes: []builder.ClassDef{
					{
						FQCN: "App\\Service\\PaymentGateway",
						Methods: []builder.MethodDef{
							{Name: "charge", HasBody: true},
						},
					},
				},
			},
			{
				Path: "vendor/lib/Skip.php",
				Classes: []builder.ClassDef{
					{
						FQCN: "Vendor\\Lib\\Skip",
						Methods: []builder.MethodDef{{Name: "run", HasBody: true}},
					},
				},
			},
		},
	}
}

func TestGlob_ClassPatternNarrowsToController(t *testing.T) {
	entries := Glob(sampleResult(), GlobConfig{ClassPattern: "App/Controller/*"})
	require.Len(t, entries, 2)
	assert.Equal(t, "App\\Controller\\OrderController", entries[0].Class)
}

func TestGlob_MethodPatternNarrows(t *testing.T) {
	entries := Glob(sampleResult(), GlobConfig{ClassPattern: "App/Controller/*", MethodPattern: "checkout"})
	require.Len(t, entries, 1)
	assert.Equal(t, "checkout", entries[0].Method)
	assert.Equal(t, "src/Controller/OrderController.php", entries[0].File)
}

func TestGlob_EmptyPatternMatchesEverything(t *testing.T) {
	entries := Glob(sampleResult(), GlobConfig{})
	assert.Len(t, entries, 4)
}

func TestGlob_PathExcludesSkipVendor(t *testing.T) {
	entries := Glob(sampleResult(), GlobConfig{PathExcludes: []string{"vendor/*/*.php"}})
	for _, e := range entries {
		assert.NotContains(t, e.Class, "Vendor")
	}
	assert.Len(t, entries, 3)
}
