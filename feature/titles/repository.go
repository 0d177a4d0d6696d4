package titles

import (
	"context"
	"errors"
	"fmt"
	"time"

	"achievement-tracker/core/database"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Record is the persisted form of a Title.
type Record struct {
	ID           string `gorm:"column:id;primaryKey;size:32"`
	Name         string `gorm:"column:name;size:255"`
	InstallPath  string `gorm:"column:install_path;size:1024"`
	Team         string `gorm:"column:team;size:128"`
	Location     string `gorm:"column:location;size:128"`
	ProgressPath string `gorm:"column:progress_path;size:1024"`
	UpdatedAt    time.Time
}

// TableName implements gorm's Tabler.
func (Record) TableName() string {
	return "titles"
}

// Columns are the columns the repository reads and writes.
var Columns = []string{"id", "name", "install_path", "team", "location", "progress_path", "updated_at"}

// ErrNoDatabase is returned by operations that need a connection when none is configured.
var ErrNoDatabase = errors.New("titles: no database configured")

// Repository persists scanned titles. A Repository without a database is a
// no-op: writes succeed and reads return nothing.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a Repository. db may be nil.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Enabled reports whether a database is attached.
func (r *Repository) Enabled() bool {
	return r != nil && r.db != nil
}

// Migrate creates or updates the titles table.
func (r *Repository) Migrate(ctx context.Context) error {
	if !r.Enabled() {
		return nil
	}
	return r.db.WithContext(ctx).AutoMigrate(&Record{})
}

// CheckSchema returns the repository columns missing from the live table.
func (r *Repository) CheckSchema() ([]string, error) {
	if !r.Enabled() {
		return nil, ErrNoDatabase
	}
	return database.MissingColumns(r.db, Record{}.TableName(), Columns)
}

// SaveAll upserts titles by id. progress maps title ids to their progress file.
func (r *Repository) SaveAll(ctx context.Context, titles []Title, progress map[string]string) error {
	if !r.Enabled() || len(titles) == 0 {
		return nil
	}

	records := make([]Record, 0, len(titles))
	for _, t := range titles {
		records = append(records, Record{
			ID:           t.ID,
			Name:         t.Name,
			InstallPath:  t.InstallPath,
			Team:         t.Team,
			Location:     t.Location,
			ProgressPath: progress[t.ID],
		})
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&records).Error
	if err != nil {
		return fmt.Errorf("failed to save titles: %w", err)
	}
	return nil
}

// List returns every stored title ordered by id.
func (r *Repository) List(ctx context.Context) ([]Record, error) {
	if !r.Enabled() {
		return nil, nil
	}
	var records []Record
	if err := r.db.WithContext(ctx).Order("id").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list titles: %w", err)
	}
	return records, nil
}

// Names returns the stored name of every title.
func (r *Repository) Names(ctx context.Context) (map[string]string, error) {
	records, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(records))
	for _, rec := range records {
		if rec.Name != "" {
			names[rec.ID] = rec.Name
		}
	}
	return names, nil
}
