package reconcile

import (
	"math"
	"sort"
)

// Source identifies where a record's data came from.
type Source string

const (
	// SourcePrimaryAPI marks records built from the authenticated schema endpoint.
	SourcePrimaryAPI Source = "PRIMARY_API"
	// SourceSecondaryScrape marks records parsed from the public catalog page.
	SourceSecondaryScrape Source = "SECONDARY_SCRAPE"
	// SourceLocalFile marks local-only records added by the keyless strategy.
	SourceLocalFile Source = "LOCAL_FILE"
	// SourceLocalCombined marks local-only records added by the keyed strategy.
	SourceLocalCombined Source = "LOCAL_COMBINED"
)

// Record is one achievement of a title after reconciliation.
type Record struct {
	// ID is unique within a title.
	ID string `json:"id"`

	// DisplayName is the human-readable name.
	DisplayName string `json:"display_name"`

	Description string `json:"description"`

	Hidden bool `json:"hidden"`

	// Percentage is the global unlock rate, clamped to [0, 100].
	Percentage float64 `json:"percentage"`

	Icon     string `json:"icon,omitempty"`
	IconGray string `json:"icon_gray,omitempty"`

	Source Source `json:"source"`
}

// Rarity returns the rarity tier of the record's percentage.
func (r Record) Rarity() Rarity {
	return RarityOf(r.Percentage)
}

// Catalog is the merged achievement set of one title. Records keep their
// insertion (or sorted) order, which survives a JSON round trip.
type Catalog struct {
	TitleID string   `json:"title_id"`
	Records []Record `json:"records"`

	index map[string]int
}

// NewCatalog returns an empty catalog for titleID.
func NewCatalog(titleID string) *Catalog {
	return &Catalog{TitleID: titleID, Records: []Record{}}
}

// Len returns the number of records.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Records)
}

// Empty reports whether the catalog holds no records.
func (c *Catalog) Empty() bool {
	return c.Len() == 0
}

// Get returns the record with the given id.
func (c *Catalog) Get(id string) (Record, bool) {
	if c == nil {
		return Record{}, false
	}
	i, ok := c.lookup()[id]
	if !ok {
		return Record{}, false
	}
	return c.Records[i], true
}

// Has reports whether id is present.
func (c *Catalog) Has(id string) bool {
	_, ok := c.Get(id)
	return ok
}

// Put appends r, or replaces the record with the same id in place.
func (c *Catalog) Put(r Record) {
	r.Percentage = clampPercentage(r.Percentage)
	idx := c.lookup()
	if i, ok := idx[r.ID]; ok {
		c.Records[i] = r
		return
	}
	c.Records = append(c.Records, r)
	idx[r.ID] = len(c.Records) - 1
}

// IDs returns the record ids in catalog order.
func (c *Catalog) IDs() []string {
	ids := make([]string, 0, c.Len())
	if c == nil {
		return ids
	}
	for _, r := range c.Records {
		ids = append(ids, r.ID)
	}
	return ids
}

// SortByPercentage orders records by descending percentage. Ties keep their
// previous relative order.
func (c *Catalog) SortByPercentage() {
	if c == nil {
		return
	}
	sort.SliceStable(c.Records, func(i, j int) bool {
		return c.Records[i].Percentage > c.Records[j].Percentage
	})
	c.index = nil
}

func (c *Catalog) lookup() map[string]int {
	if c.index == nil || len(c.index) != len(c.Records) {
		c.index = make(map[string]int, len(c.Records))
		for i, r := range c.Records {
			c.index[r.ID] = i
		}
	}
	return c.index
}

func clampPercentage(p float64) float64 {
	switch {
	case math.IsNaN(p):
		return 0
	case p < 0:
		return 0
	case p > 100:
		return 100
	default:
		return p
	}
}
