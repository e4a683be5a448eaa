package catalogsource

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizblocks/bizblocks/internal/domain/catalog"
	"github.com/bizblocks/bizblocks/internal/shared/logger"
)

const sampleCatalog = `
blocks:
  - name: website
    category: presence
    subtitle: One page site
  - name: bank
    category: finance
    is_affiliate: true
    affiliate_link: https://bank.example.com/?ref=bizblocks
  - name: logo
    category: brand
`

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestYAMLSource_LoadKeepsFileOrder(t *testing.T) {
	src := NewYAMLSource(writeCatalog(t, sampleCatalog), logger.NewNopLogger())

	_, err := src.Entries(context.Background())
	assert.ErrorIs(t, err, catalog.ErrCatalogUnavailable)

	require.NoError(t, src.Load())
	entries, err := src.Entries(context.Background())
	require.NoError(t, err)

	require.Len(t, entries, 3)
	assert.Equal(t, "website", entries[0].Name)
	assert.Equal(t, "One page site", entries[0].Subtitle)
	assert.True(t, entries[1].IsAffiliate)
	assert.Equal(t, "https://bank.example.com/?ref=bizblocks", entries[1].AffiliateLink)
	assert.Equal(t, "logo", entries[2].Name)
}

func TestYAMLSource_InvalidFileKeepsPreviousEntries(t *testing.T) {
	path := writeCatalog(t, sampleCatalog)
	src := NewYAMLSource(path, logger.NewNopLogger())
	require.NoError(t, src.Load())

	require.NoError(t, os.WriteFile(path, []byte("blocks:\n  - name: logo\n  - name: logo\n"), 0o600))
	err := src.Load()
	assert.ErrorIs(t, err, catalog.ErrDuplicateCatalogEntry)

	entries, err := src.Entries(context.Background())
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestParse_Rejections(t *testing.T) {
	_, err := Parse([]byte("blocks:\n  - category: brand\n"))
	assert.ErrorIs(t, err, catalog.ErrBlockNameRequired)

	_, err = Parse([]byte("blocks:\n  - name: bank\n    is_affiliate: true\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("blocks: [unterminated"))
	assert.Error(t, err)

	_, err = NewYAMLSource(filepath.Join(t.TempDir(), "missing.yaml"), logger.NewNopLogger()).Entries(context.Background())
	assert.ErrorIs(t, err, catalog.ErrCatalogUnavailable)
}
