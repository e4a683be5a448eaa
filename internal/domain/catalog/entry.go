package catalog

import "fmt"

// CatalogEntry is the static description of a block. Entries are loaded once
// from the catalog source and never mutated.
type CatalogEntry struct {
	Name          string
	Category      string
	Subtitle      string
	Description   string
	IsAffiliate   bool
	AffiliateLink string
	LogoURL       string
}

// Validate checks the fields every entry must carry.
func (e CatalogEntry) Validate() error {
	if e.Name == "" {
		return ErrBlockNameRequired
	}
	if e.IsAffiliate && e.AffiliateLink == "" {
		return fmt.Errorf("catalog entry %q: affiliate blocks need an affiliate link", e.Name)
	}
	return nil
}
