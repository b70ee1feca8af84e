package datefmt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParentFallbackResolver(t *testing.T) {
	t.Parallel()

	var r ParentFallbackResolver
	assert.Equal(t, []string{"es-419", "es"}, r.Resolve("es_MX"))
	assert.Empty(t, r.Resolve("de"))
}

func TestStaticFallbackResolver(t *testing.T) {
	t.Parallel()

	r := NewStaticFallbackResolver(ParentFallbackResolver{})
	r.Set("ca_ES", "es", "ca-ES", " ", "es", "fr")
	r.Set("fr-CA")

	assert.Equal(t, []string{"es", "fr"}, r.Resolve("ca-ES"))
	assert.Empty(t, r.Resolve("fr-CA"))
	assert.Equal(t, []string{"de"}, r.Resolve("de-AT"))

	chain := r.Resolve("ca-ES")
	chain[0] = "changed"
	assert.Equal(t, "es", r.Resolve("ca-ES")[0])

	assert.Nil(t, NewStaticFallbackResolver(nil).Resolve("de-AT"))
}
