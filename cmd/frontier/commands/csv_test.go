package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "returns.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadReturnsCSV(t *testing.T) {
	path := writeTempCSV(t, "GROWTH,BOND\n0.02,0.01\n-0.01,0.005\n0.03,-0.002\n")

	m, err := loadReturnsCSV(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"GROWTH", "BOND"}, m.Assets)
	assert.Equal(t, 3, m.Periods)
	assert.InDelta(t, -0.01, m.Column(0)[1], 1e-12)
	assert.InDelta(t, -0.002, m.Column(1)[2], 1e-12)
}

func TestLoadReturnsCSVMissingFile(t *testing.T) {
	_, err := loadReturnsCSV(filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "absent.csv")
}

func TestLoadReturnsCSVHeaderOnly(t *testing.T) {
	path := writeTempCSV(t, "GROWTH,BOND\n")

	_, err := loadReturnsCSV(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "header row")
}

func TestLoadReturnsCSVSinglePeriod(t *testing.T) {
	path := writeTempCSV(t, "GROWTH,BOND\n0.02,0.01\n")

	_, err := loadReturnsCSV(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "two return periods")
}

func TestLoadReturnsCSVBadCell(t *testing.T) {
	path := writeTempCSV(t, "GROWTH,BOND\n0.02,0.01\n0.03,oops\n")

	_, err := loadReturnsCSV(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BOND")
}

func TestLoadReturnsCSVRaggedRow(t *testing.T) {
	path := writeTempCSV(t, "GROWTH,BOND\n0.02,0.01\n0.03\n")

	_, err := loadReturnsCSV(path)
	require.Error(t, err)
}
