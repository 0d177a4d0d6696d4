package reconcile

// Rarity is a bucket of the global unlock percentage.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityVeryRare  Rarity = "very_rare"
	RarityUltraRare Rarity = "ultra_rare"
)

// Rarities lists every tier from most to least common.
var Rarities = []Rarity{RarityCommon, RarityUncommon, RarityRare, RarityVeryRare, RarityUltraRare}

// RarityOf classifies a percentage. Bounds are inclusive on the lower side.
func RarityOf(percentage float64) Rarity {
	switch {
	case percentage >= 50:
		return RarityCommon
	case percentage >= 25:
		return RarityUncommon
	case percentage >= 10:
		return RarityRare
	case percentage >= 5:
		return RarityVeryRare
	default:
		return RarityUltraRare
	}
}

// Breakdown counts records per rarity. Every tier is present in the result.
func Breakdown(records []Record) map[Rarity]int {
	out := make(map[Rarity]int, len(Rarities))
	for _, r := range Rarities {
		out[r] = 0
	}
	for _, rec := range records {
		out[rec.Rarity()]++
	}
	return out
}
