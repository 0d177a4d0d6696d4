package steam

import (
	"bytes"
	"context"
	"io"
	"net/url"
	"strings"
	"unicode"

	"achievement-tracker/core/cache"
	"achievement-tracker/core/errs"
	"achievement-tracker/core/fetch"
	"achievement-tracker/core/logger"
	"achievement-tracker/core/reconcile"
	"achievement-tracker/core/utils"

	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// Scraper reads the public achievement statistics page of a title.
// It implements reconcile.CatalogSource.
type Scraper struct {
	fetcher *fetch.Fetcher
	cache   *cache.Cache
	cfg     Config
	logger  *zap.Logger
}

// NewScraper creates a Scraper. c may be nil, which disables page caching.
func NewScraper(f *fetch.Fetcher, c *cache.Cache, cfg Config, log *zap.Logger) *Scraper {
	cfg.Normalize()
	return &Scraper{fetcher: f, cache: c, cfg: cfg, logger: logger.Component(log, "steam-scraper")}
}

// Scrape returns the rows of titleID's statistics page. Parsed rows are kept
// in the steam_store namespace for the request TTL.
func (s *Scraper) Scrape(ctx context.Context, titleID string) ([]reconcile.ScrapedEntry, error) {
	key := titleID + "_" + s.cfg.Language

	if s.cache != nil {
		var rows []reconcile.ScrapedEntry
		if s.cache.Load(cache.NamespaceSteamStore, key, &rows) {
			return rows, nil
		}
	}

	params := url.Values{}
	params.Set("l", languageName(s.cfg.Language))

	body, err := s.fetcher.FetchRaw(ctx, s.cfg.CommunityBaseURL+"/stats/"+url.PathEscape(titleID)+"/achievements/", params)
	if err != nil {
		return nil, err
	}

	rows, err := ParseCatalogPage(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Catalog page scraped", zap.String("title_id", titleID), zap.Int("rows", len(rows)))
	if s.cache != nil && len(rows) > 0 {
		s.cache.Set(cache.NamespaceSteamStore, key, rows, s.cfg.RequestTTL())
	}
	return rows, nil
}

// ParseCatalogPage extracts achievement rows (div.achieveRow) from a
// statistics page. Missing or non-numeric percentages parse as 0.
func ParseCatalogPage(r io.Reader) ([]reconcile.ScrapedEntry, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, errs.E(errs.KindRemoteDecode, "parse catalog page", err)
	}

	var rows []reconcile.ScrapedEntry
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if isElement(n, "div") && hasClass(n, "achieveRow") {
			if row, ok := parseRow(n); ok {
				rows = append(rows, row)
			}
			return
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)
	return rows, nil
}

func parseRow(row *html.Node) (reconcile.ScrapedEntry, bool) {
	entry := reconcile.ScrapedEntry{}

	if h3 := find(row, func(n *html.Node) bool { return isElement(n, "h3") }); h3 != nil {
		entry.DisplayName = text(h3)
	}
	if h5 := find(row, func(n *html.Node) bool { return isElement(n, "h5") }); h5 != nil {
		entry.Description = text(h5)
	}
	if pct := find(row, func(n *html.Node) bool { return isElement(n, "div") && hasClass(n, "achievePercent") }); pct != nil {
		entry.Percentage = parsePercent(text(pct))
	}
	if img := find(row, func(n *html.Node) bool { return isElement(n, "img") }); img != nil {
		entry.Icon = attr(img, "src")
	}

	entry.ID = attr(row, "data-apiname")
	if entry.ID == "" {
		entry.ID = IDFromName(entry.DisplayName)
	}
	return entry, entry.ID != ""
}

// IDFromName derives an identifier from a display name when the page carries
// none: "First Blood!" becomes "FIRST_BLOOD".
func IDFromName(name string) string {
	var b strings.Builder
	pendingSep := false
	for _, r := range strings.TrimSpace(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(unicode.ToUpper(r))
			continue
		}
		pendingSep = true
	}
	return b.String()
}

func parsePercent(s string) float64 {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	s = strings.ReplaceAll(s, ",", ".")
	v, ok := utils.ToFloat(s)
	if !ok {
		return 0
	}
	return v
}

func isElement(n *html.Node, tag string) bool {
	return n.Type == html.ElementNode && n.Data == tag
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

func find(n *html.Node, match func(*html.Node) bool) *html.Node {
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if match(child) {
			return child
		}
		if found := find(child, match); found != nil {
			return found
		}
	}
	return nil
}

func text(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(b.String()), " ")
}

// languageName maps a short locale onto the name the community site expects.
func languageName(code string) string {
	switch strings.ToLower(code) {
	case "fr":
		return "french"
	case "en":
		return "english"
	case "de":
		return "german"
	case "es":
		return "spanish"
	case "it":
		return "italian"
	case "pt":
		return "portuguese"
	case "ru":
		return "russian"
	default:
		return code
	}
}
