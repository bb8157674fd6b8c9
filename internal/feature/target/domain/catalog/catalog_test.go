package catalog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"treasure_backend/internal/feature/target/domain"
	"treasure_backend/internal/feature/target/domain/entity"
)

func TestLoad_EmbeddedCatalog(t *testing.T) {
	t.Parallel()

	c, err := Load()
	require.NoError(t, err)

	ids := make([]string, 0)
	for _, tg := range c.Targets() {
		ids = append(ids, tg.ID)
	}
	assert.Equal(t, []string{"leaf", "blue-door", "big-tree", "water", "animal"}, ids)

	leaf, ok := c.Target("leaf")
	require.True(t, ok)
	assert.Equal(t, entity.ColorName("red"), leaf.ExpectedColor)
	assert.Equal(t, "Hoja Roja", leaf.Name)

	animal, ok := c.Target("animal")
	require.True(t, ok)
	assert.False(t, animal.HasExpectedColor())
	assert.True(t, c.IsColorIrrelevant("animal"))
	assert.False(t, c.IsColorIrrelevant("leaf"))
}

func TestCatalog_ObjectKeywords(t *testing.T) {
	t.Parallel()

	c := MustLoad()

	door := c.ObjectKeywords("blue-door")
	assert.Contains(t, door, "door")
	assert.Contains(t, door, "puerta")
	assert.Contains(t, door, "doorway")

	animal := c.ObjectKeywords("animal")
	assert.Contains(t, animal, "pavo real")
	assert.Contains(t, animal, "serpiente")

	// duplicates in the source list are collapsed
	count := 0
	for _, k := range animal {
		if k == "primate" {
			count++
		}
	}
	assert.Equal(t, 1, count)

	assert.Empty(t, c.ObjectKeywords("unknown-target"))
}

func TestCatalog_ReturnsCopies(t *testing.T) {
	t.Parallel()

	c := MustLoad()
	kw := c.ObjectKeywords("leaf")
	kw[0] = "mutated"

	assert.Equal(t, "leaf", c.ObjectKeywords("leaf")[0])
}

func TestCatalog_Colors(t *testing.T) {
	t.Parallel()

	c := MustLoad()

	syn, ok := c.ColorSynonyms("RED")
	require.True(t, ok)
	assert.Equal(t, []string{"red", "rojo"}, syn)

	_, ok = c.ColorSynonyms("magenta")
	assert.False(t, ok)

	assert.Equal(t, "azul", c.ColorDisplay("blue", "es"))
	assert.Equal(t, "", c.ColorDisplay("magenta", "es"))
	assert.Equal(t, "verde o marrón", c.TargetColorDisplay("big-tree", "es"))
	assert.Equal(t, "any color", c.TargetColorDisplay("animal", "en"))
	assert.Contains(t, c.DefaultColors("leaf"), "amarillo")
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
	}{
		{name: "malformed yaml", data: "targets: [:"},
		{name: "missing id", data: "targets:\n  - name: nameless\n"},
		{name: "duplicate id", data: "targets:\n  - id: a\n  - id: a\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Parse([]byte(tt.data))
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidCatalog))
		})
	}
}
