package csvdir

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTable(t *testing.T) {
	dir := t.TempDir()
	data := "circuit_ref,name,location\nmonza,Monza,\nspa,\"Circuit de Spa-Francorchamps\",Belgium\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "f1_circuits.csv"), []byte(data), 0o644))

	tbl, err := NewSource(dir).LoadTable(context.Background(), "f1_circuits")
	require.NoError(t, err)

	assert.Equal(t, []string{"circuit_ref", "name", "location"}, tbl.Columns)
	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, "Monza", tbl.Rows[0]["name"])
	_, hasLocation := tbl.Rows[0]["location"]
	assert.False(t, hasLocation)
	assert.Equal(t, "Circuit de Spa-Francorchamps", tbl.Rows[1]["name"])
}

func TestLoadMissingTable(t *testing.T) {
	tbl, err := NewSource(t.TempDir()).LoadTable(context.Background(), "ac_laps")
	require.NoError(t, err)
	assert.True(t, tbl.IsEmpty())
	assert.Empty(t, tbl.Columns)
}

func TestLoadTableRejectsPaths(t *testing.T) {
	_, err := NewSource(t.TempDir()).LoadTable(context.Background(), "../secrets")
	assert.Error(t, err)
}
