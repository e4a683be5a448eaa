// Package catalogsource loads the block catalog from a YAML file.
package catalogsource

import (
	"context"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/bizblocks/bizblocks/internal/domain/catalog"
	"github.com/bizblocks/bizblocks/internal/shared/logger"
)

type fileFormat struct {
	Blocks []blockEntry `yaml:"blocks"`
}

type blockEntry struct {
	Name          string `yaml:"name"`
	Category      string `yaml:"category"`
	Subtitle      string `yaml:"subtitle"`
	Description   string `yaml:"description"`
	IsAffiliate   bool   `yaml:"is_affiliate"`
	AffiliateLink string `yaml:"affiliate_link"`
	LogoURL       string `yaml:"logo_url"`
}

// YAMLSource serves catalog entries read from a YAML file, in file order.
// The file is read by Load; Entries never touches the disk.
type YAMLSource struct {
	path    string
	entries []catalog.CatalogEntry
	mu      sync.RWMutex
	logger  logger.Interface
}

var _ catalog.Source = (*YAMLSource)(nil)

func NewYAMLSource(path string, logger logger.Interface) *YAMLSource {
	return &YAMLSource{
		path:   path,
		logger: logger,
	}
}

// Load reads and validates the catalog file, replacing the served entries
// only when the whole file is valid.
func (s *YAMLSource) Load() error {
	content, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("failed to read catalog file %s: %w", s.path, err)
	}

	entries, err := Parse(content)
	if err != nil {
		return fmt.Errorf("catalog file %s: %w", s.path, err)
	}

	s.mu.Lock()
	s.entries = entries
	s.mu.Unlock()

	s.logger.Infow("catalog loaded", "path", s.path, "blocks", len(entries))
	return nil
}

// Entries returns a copy of the loaded entries. Before a successful Load it
// returns catalog.ErrCatalogUnavailable.
func (s *YAMLSource) Entries(ctx context.Context) ([]catalog.CatalogEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.entries == nil {
		return nil, catalog.ErrCatalogUnavailable
	}
	out := make([]catalog.CatalogEntry, len(s.entries))
	copy(out, s.entries)
	return out, nil
}

// Parse decodes catalog YAML. Entries are validated and names must be unique.
func Parse(content []byte) ([]catalog.CatalogEntry, error) {
	var file fileFormat
	if err := yaml.Unmarshal(content, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog yaml: %w", err)
	}

	seen := make(map[string]struct{}, len(file.Blocks))
	entries := make([]catalog.CatalogEntry, 0, len(file.Blocks))
	for _, b := range file.Blocks {
		entry := catalog.CatalogEntry{
			Name:          b.Name,
			Category:      b.Category,
			Subtitle:      b.Subtitle,
			Description:   b.Description,
			IsAffiliate:   b.IsAffiliate,
			AffiliateLink: b.AffiliateLink,
			LogoURL:       b.LogoURL,
		}
		if err := entry.Validate(); err != nil {
			return nil, err
		}
		if _, dup := seen[entry.Name]; dup {
			return nil, fmt.Errorf("%w: %s", catalog.ErrDuplicateCatalogEntry, entry.Name)
		}
		seen[entry.Name] = struct{}{}
		entries = append(entries, entry)
	}
	return entries, nil
}
