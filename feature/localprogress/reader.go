package localprogress

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"achievement-tracker/core/errs"
	"achievement-tracker/core/utils"

	"github.com/go-ini/ini"
)

// aggregateSection holds summary values such as the unlocked count; it is never a record.
const aggregateSection = "SteamAchievements"

var (
	numericSection     = regexp.MustCompile(`^\d+$`)
	achievementSection = regexp.MustCompile(`(?i)^(ach|achiev|achievement)[_\-]?[a-z0-9_\-]+$|^[A-Za-z0-9]+(_[A-Za-z0-9]+)+$`)
)

// Record is the local unlock state of one achievement.
type Record struct {
	ID         string `json:"id"`
	Earned     bool   `json:"earned"`
	EarnedTime int64  `json:"earned_time"`
}

// document is the full content of a progress file, unearned entries included.
type document struct {
	records    map[string]Record
	count      int
	hasCount   bool
	structured bool
}

func (d *document) relevant() bool {
	return len(d.records) > 0 || d.hasCount
}

func (d *document) earned() map[string]Record {
	out := make(map[string]Record, len(d.records))
	for id, r := range d.records {
		if r.Earned {
			out[id] = r
		}
	}
	return out
}

// Parse reads a progress file and returns its records keyed by id.
// Files ending in .json use the structured format, where unearned entries are
// dropped; anything else is read as INI sections and keeps every record with
// its Achieved state. Any failure yields an empty map.
func Parse(path string) map[string]Record {
	doc, err := load(path)
	if err != nil {
		return map[string]Record{}
	}
	if doc.structured {
		return doc.earned()
	}
	return doc.records
}

// Count returns the unlocked count stored in the aggregate section, or the
// number of earned records when the file has none. Failures count as 0.
func Count(path string) int {
	doc, err := load(path)
	if err != nil {
		return 0
	}
	if doc.hasCount {
		return doc.count
	}
	return len(doc.earned())
}

func load(path string) (*document, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return loadJSON(path)
	}
	return loadINI(path)
}

func loadJSON(path string) (*document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.E(errs.KindLocalParse, "read progress file", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errs.E(errs.KindLocalParse, "decode progress file", err)
	}

	doc := &document{records: make(map[string]Record, len(raw)), structured: true}
	for id, value := range raw {
		var entry map[string]any
		if err := json.Unmarshal(value, &entry); err != nil || entry == nil {
			continue
		}
		doc.records[id] = Record{
			ID:         id,
			Earned:     utils.ToBool(entry["earned"]),
			EarnedTime: utils.ToInt64(entry["earned_time"]),
		}
	}
	return doc, nil
}

func loadINI(path string) (*document, error) {
	file, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment:     true,
		SkipUnrecognizableLines: true,
	}, path)
	if err != nil {
		return nil, errs.E(errs.KindLocalParse, "load progress file", err)
	}

	doc := &document{records: make(map[string]Record)}
	for _, section := range file.Sections() {
		name := strings.TrimSpace(section.Name())
		switch {
		case name == ini.DefaultSection:
			continue
		case strings.EqualFold(name, aggregateSection):
			if section.HasKey("Count") {
				doc.count = utils.ToInt(section.Key("Count").String())
				doc.hasCount = true
			}
			continue
		case !numericSection.MatchString(name) && !achievementSection.MatchString(name):
			continue
		}

		doc.records[name] = Record{
			ID:         name,
			Earned:     utils.ToBool(section.Key("Achieved").String()),
			EarnedTime: utils.ToInt64(section.Key("UnlockTime").String()),
		}
	}
	return doc, nil
}
