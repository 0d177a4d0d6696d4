package export

import (
	"context"
	"encoding/json"
	"time"

	"achievement-tracker/core/errs"
	"achievement-tracker/core/logger"
	"achievement-tracker/core/reconcile"

	"go.uber.org/zap"
)

// CatalogProvider returns merged catalogs.
type CatalogProvider interface {
	GetBestAchievements(ctx context.Context, titleID, apiKey string) *reconcile.Catalog
	Strategy(apiKey string) reconcile.Strategy
}

// Document is the exported form of a catalog.
type Document struct {
	AppID           string                   `json:"app_id"`
	ExportedAt      time.Time                `json:"exported_at"`
	Strategy        reconcile.Strategy       `json:"strategy"`
	Total           int                      `json:"total"`
	RarityBreakdown map[reconcile.Rarity]int `json:"rarity_breakdown"`
	Records         []reconcile.Record       `json:"records"`
}

// Result describes one finished export.
type Result struct {
	AppID    string `json:"app_id"`
	Location string `json:"location"`
	Records  int    `json:"records"`
}

// Service writes merged catalogs to a Sink.
type Service struct {
	catalogs CatalogProvider
	sink     Sink
	now      func() time.Time
	logger   *zap.Logger
}

// NewService creates a new export service.
func NewService(catalogs CatalogProvider, sink Sink, log *zap.Logger) *Service {
	return &Service{
		catalogs: catalogs,
		sink:     sink,
		now:      time.Now,
		logger:   logger.Component(log, "export"),
	}
}

// FileName returns the document name used for a title.
func FileName(titleID string) string {
	return titleID + "_achievements.json"
}

// Export merges the catalog of titleID and writes it to the sink.
func (s *Service) Export(ctx context.Context, titleID string) (*Result, error) {
	cat := s.catalogs.GetBestAchievements(ctx, titleID, "")
	if cat.Empty() {
		return nil, errs.Ef(errs.KindNotFound, "export", "no achievements found for game %s", titleID)
	}

	doc := Document{
		AppID:           titleID,
		ExportedAt:      s.now().UTC(),
		Strategy:        s.catalogs.Strategy(""),
		Total:           cat.Len(),
		RarityBreakdown: reconcile.Breakdown(cat.Records),
		Records:         cat.Records,
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, errs.E(errs.KindInternal, "encode export", err)
	}

	location, err := s.sink.Write(ctx, FileName(titleID), data)
	if err != nil {
		return nil, errs.E(errs.KindInternal, "write export", err)
	}

	s.logger.Info("Catalog exported", zap.String("app_id", titleID), zap.String("location", location))
	return &Result{AppID: titleID, Location: location, Records: cat.Len()}, nil
}

// List returns the names of previous exports.
func (s *Service) List(ctx context.Context) ([]string, error) {
	names, err := s.sink.List(ctx)
	if err != nil {
		return nil, errs.E(errs.KindInternal, "list exports", err)
	}
	return names, nil
}
