package diplomacy

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCatalog = `
Paris:
  type: land
  supply_center: true
  neighbors: [Brest, Burgundy]
Brest:
  type: land
  coastal: true
  supply_center: true
  neighbors: [Paris, EnglishChannel]
Burgundy:
  type: land
  neighbors: [Paris]
  units: []
  owner: null
EnglishChannel:
  type: sea
  neighbors: [Brest]
Switzerland:
  type: unmovable
`

func TestDecodeCatalog(t *testing.T) {
	c, err := DecodeCatalog(strings.NewReader(sampleCatalog))
	require.NoError(t, err)

	assert.Equal(t, []string{"Paris", "Brest", "Burgundy", "EnglishChannel", "Switzerland"}, c.Names())

	brest, ok := c.Territory("Brest")
	require.True(t, ok)
	assert.Equal(t, Land, brest.Kind)
	assert.True(t, brest.Coastal)
	assert.True(t, brest.SupplyCenter)
	assert.Equal(t, []string{"Paris", "EnglishChannel"}, brest.Neighbors)

	sw, _ := c.Territory("Switzerland")
	assert.Equal(t, Unmovable, sw.Kind)
	assert.False(t, sw.Coastal)
	assert.Empty(t, sw.Neighbors)
}

func TestDecodeCatalog_JSON(t *testing.T) {
	doc := `{"Kiel": {"type": "land", "coastal": true, "neighbors": ["BalticSea"]}, "BalticSea": {"type": "sea", "neighbors": ["Kiel"]}}`
	c, err := DecodeCatalog(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, []string{"Kiel", "BalticSea"}, c.Names())
}

func TestDecodeCatalog_Rejects(t *testing.T) {
	cases := map[string]string{
		"empty":            ``,
		"not a mapping":    `- Paris`,
		"unknown type":     "Atlantis:\n  type: underwater\n",
		"missing type":     "Paris:\n  coastal: false\n",
		"dangling":         "Paris:\n  type: land\n  neighbors: [Nowhere]\n",
		"bad detail shape": "Paris: [land]\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeCatalog(strings.NewReader(doc))
			assert.ErrorIs(t, err, ErrMalformedCatalog)
		})
	}
}

func TestNewCatalog_Rejects(t *testing.T) {
	_, err := NewCatalog([]Territory{{Name: "", Kind: Land}})
	assert.ErrorIs(t, err, ErrMalformedCatalog)

	_, err = NewCatalog([]Territory{{Name: "Paris", Kind: Land}, {Name: "Paris", Kind: Sea}})
	assert.ErrorIs(t, err, ErrMalformedCatalog)

	_, err = NewCatalog([]Territory{{Name: "Paris", Kind: TerritoryKind(7)}})
	assert.ErrorIs(t, err, ErrMalformedCatalog)
}

// borders reports whether other appears in t's declared neighbor list.
func borders(t *Territory, other string) bool {
	for _, n := range t.Neighbors {
		if n == other {
			return true
		}
	}
	return false
}

func TestNewCatalog_DropsRepeatedNeighbors(t *testing.T) {
	c, err := NewCatalog([]Territory{
		{Name: "Paris", Kind: Land, Neighbors: []string{"Brest", "Burgundy", "Brest", "Burgundy"}},
		{Name: "Brest", Kind: Land, Coastal: true, Neighbors: []string{"Paris"}},
		{Name: "Burgundy", Kind: Land, Neighbors: []string{"Paris", "Paris"}},
	})
	require.NoError(t, err)

	paris, _ := c.Territory("Paris")
	assert.Equal(t, []string{"Brest", "Burgundy"}, paris.Neighbors)
	burgundy, _ := c.Territory("Burgundy")
	assert.Equal(t, []string{"Paris"}, burgundy.Neighbors)
}

func TestNewCatalog_CopiesInput(t *testing.T) {
	defs := []Territory{
		{Name: "A", Kind: Land, Neighbors: []string{"B"}},
		{Name: "B", Kind: Land},
	}
	c, err := NewCatalog(defs)
	require.NoError(t, err)

	defs[0].Neighbors[0] = "mutated"
	a, _ := c.Territory("A")
	assert.Equal(t, []string{"B"}, a.Neighbors)

	out := c.Territories()
	out[0].Neighbors[0] = "mutated"
	a, _ = c.Territory("A")
	assert.Equal(t, []string{"B"}, a.Neighbors)
}

func TestCatalog_AsymmetricNeighbors(t *testing.T) {
	c, err := DecodeCatalog(strings.NewReader(sampleCatalog))
	require.NoError(t, err)

	paris, _ := c.Territory("Paris")
	burgundy, _ := c.Territory("Burgundy")
	assert.True(t, borders(paris, "Burgundy"))
	assert.True(t, borders(burgundy, "Paris"))

	sw, _ := c.Territory("Switzerland")
	assert.False(t, borders(sw, "Paris"))
}

func TestEncodeCatalog_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeCatalog(&buf, StandardCatalog()))

	decoded, err := DecodeCatalog(&buf)
	require.NoError(t, err)
	assert.Equal(t, StandardCatalog().Territories(), decoded.Territories())
}

func TestStandardCatalog(t *testing.T) {
	c := StandardCatalog()
	assert.Same(t, c, StandardCatalog())

	paris, ok := c.Territory("Paris")
	require.True(t, ok)
	assert.Equal(t, Land, paris.Kind)
	assert.False(t, paris.Coastal)

	brest, _ := c.Territory("Brest")
	assert.True(t, brest.Coastal)

	ch, _ := c.Territory("EnglishChannel")
	assert.Equal(t, Sea, ch.Kind)

	sw, _ := c.Territory("Switzerland")
	assert.Equal(t, Unmovable, sw.Kind)
	for _, n := range sw.Neighbors {
		other, _ := c.Territory(n)
		assert.False(t, borders(other, "Switzerland"), "%s should not border Switzerland back", n)
	}
}

func TestStandardCatalog_SymmetricExceptSwitzerland(t *testing.T) {
	c := StandardCatalog()
	for _, terr := range c.Territories() {
		if terr.Kind == Unmovable {
			continue
		}
		seen := make(map[string]bool)
		for _, n := range terr.Neighbors {
			assert.False(t, seen[n], "%s lists %s twice", terr.Name, n)
			seen[n] = true
			other, _ := c.Territory(n)
			assert.True(t, borders(other, terr.Name), "%s -> %s has no reverse edge", terr.Name, n)
		}
	}
}

func TestParseTerritoryKind(t *testing.T) {
	for _, k := range []TerritoryKind{Land, Sea, Unmovable} {
		got, err := ParseTerritoryKind(strings.ToUpper(k.String()))
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	_, err := ParseTerritoryKind("swamp")
	assert.Error(t, err)

	_, err = TerritoryKind(9).MarshalText()
	assert.Error(t, err)
}
