package pricing

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTable_Valid(t *testing.T) {
	require.NoError(t, DefaultTable().Validate())
}

func TestTable_Validate_Failures(t *testing.T) {
	t.Run("missing method", func(t *testing.T) {
		table := DefaultTable()
		delete(table.Rules, MethodEmbroidery)
		assert.ErrorContains(t, table.Validate(), "embroidery")
	})

	t.Run("missing size", func(t *testing.T) {
		table := DefaultTable()
		delete(table.Rules[MethodDTF], SizeA3)
		assert.ErrorContains(t, table.Validate(), "A3")
	})

	t.Run("missing currency", func(t *testing.T) {
		table := DefaultTable()
		table.Currency = ""
		assert.Error(t, table.Validate())
	})

	t.Run("flat method with tiered rule", func(t *testing.T) {
		table := DefaultTable()
		table.Rules[MethodDTF][Size10x10] = Rule{Base: 1000, BaseQty: 10, PerPiece: 10}
		assert.Error(t, table.Validate())
	})

	t.Run("tiered method without base quantity", func(t *testing.T) {
		table := DefaultTable()
		table.Rules[MethodApplique][SizeA4] = Rule{Base: 1000}
		assert.Error(t, table.Validate())
	})
}

func TestTable_Price(t *testing.T) {
	table := DefaultTable()

	t.Run("flat ignores quantity", func(t *testing.T) {
		assert.Equal(t, 5000.0, table.Price(MethodDTF, SizeA4, 1))
		assert.Equal(t, 5000.0, table.Price(MethodDTF, SizeA4, 5000))
	})

	t.Run("tiered base covers base quantity", func(t *testing.T) {
		assert.Equal(t, 60000.0, table.Price(MethodEmbroidery, Size10x10, 1))
		assert.Equal(t, 60000.0, table.Price(MethodEmbroidery, Size10x10, 100))
	})

	t.Run("tiered overage is linear", func(t *testing.T) {
		assert.Equal(t, 60600.0, table.Price(MethodEmbroidery, Size10x10, 101))
		assert.Equal(t, 66000.0, table.Price(MethodEmbroidery, Size10x10, 110))
	})
}

func TestLoadTable(t *testing.T) {
	t.Run("valid file", func(t *testing.T) {
		path := writeTable(t, DefaultTable())

		table, err := LoadTable(path)
		require.NoError(t, err)
		assert.Equal(t, "KRW", table.Currency)
		assert.Equal(t, 60000.0, table.Price(MethodEmbroidery, Size10x10, 100))
	})

	t.Run("incomplete file fails fast", func(t *testing.T) {
		broken := DefaultTable()
		delete(broken.Rules, MethodScreenPrinting)
		path := writeTable(t, broken)

		_, err := LoadTable(path)
		assert.ErrorContains(t, err, "invalid price table")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadTable(filepath.Join(t.TempDir(), "nope.json"))
		assert.Error(t, err)
	})
}

func writeTable(t *testing.T, table *Table) string {
	t.Helper()
	data, err := json.Marshal(table)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "table.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}
