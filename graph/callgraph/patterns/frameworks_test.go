package patterns

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsKnownFramework_Laravel(t *testing.T) {
	ok, fw := IsKnownFramework("Illuminate\\Support\\Collection")
	require.True(t, ok)
	assert.Equal(t, "Laravel", fw.Name)
	assert.Equal(t, "web", fw.Category)
}

func TestIsKnownFramework_Unknown(t *testing.T) {
	ok, fw := IsKnownFramework("App\\Services\\Billing")
	assert.False(t, ok)
	assert.Nil(t, fw)
}

func TestGetFrameworkCategory(t *testing.T) {
	assert.Equal(t, "orm", GetFrameworkCategory("Doctrine\\ORM\\EntityManager"))
	assert.Equal(t, "", GetFrameworkCategory("App\\Models\\User"))
}

func TestGetFrameworkName(t *testing.T) {
	assert.Equal(t, "PHPUnit", GetFrameworkName("PHPUnit\\Framework\\TestCase"))
	assert.Equal(t, "", GetFrameworkName("App\\Models\\User"))
}

func TestIsKnownFramework_PSR(t *testing.T) {
	ok, fw := IsKnownFramework("Psr\\Http\\Server\\RequestHandlerInterface")
	require.True(t, ok)
	assert.Equal(t, "http", fw.Category)
}
