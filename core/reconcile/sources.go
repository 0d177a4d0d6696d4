package reconcile

import "context"

// SchemaEntry is one achievement definition from the authenticated schema endpoint.
type SchemaEntry struct {
	ID          string
	DisplayName string
	Description string
	Hidden      bool
	Icon        string
	IconGray    string
}

// PercentageEntry is one global unlock rate.
type PercentageEntry struct {
	ID         string
	Percentage float64
}

// ScrapedEntry is one row parsed from the public catalog page.
type ScrapedEntry struct {
	ID          string  `json:"id"`
	DisplayName string  `json:"display_name"`
	Description string  `json:"description"`
	Percentage  float64 `json:"percentage"`
	Icon        string  `json:"icon"`
}

// MetadataSource returns achievement definitions in the order the API lists them.
type MetadataSource interface {
	Schema(ctx context.Context, titleID, apiKey string) ([]SchemaEntry, error)
}

// PercentageSource returns global unlock rates.
type PercentageSource interface {
	Percentages(ctx context.Context, titleID string) ([]PercentageEntry, error)
}

// CatalogSource returns the rows of the public catalog page.
type CatalogSource interface {
	Scrape(ctx context.Context, titleID string) ([]ScrapedEntry, error)
}

// LocalSource returns the ids recorded in a title's local progress file.
// It returns nil when no file is registered for the title.
type LocalSource interface {
	LocalIDs(titleID string) []string
}
