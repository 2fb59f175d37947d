package database

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/sandeepkv93/catalog-api/internal/domain"
	"github.com/sandeepkv93/catalog-api/internal/observability"
)

// catalogModels is ordered so referenced tables are created first.
func catalogModels() []any {
	return []any{&domain.Category{}, &domain.Product{}}
}

func Migrate(db *gorm.DB) error {
	ctx := context.Background()
	start := time.Now()
	defer func() {
		observability.RecordDatabaseStartupDuration(ctx, "migrate", time.Since(start))
	}()

	if err := db.AutoMigrate(catalogModels()...); err != nil {
		observability.RecordDatabaseStartupEvent(ctx, "migrate", "error")
		return fmt.Errorf("auto migrate catalog: %w", err)
	}
	observability.RecordDatabaseStartupEvent(ctx, "migrate", "success")
	return nil
}

// TableStatus describes how far one table is from the current models.
type TableStatus struct {
	Table          string   `json:"table"`
	Exists         bool     `json:"exists"`
	MissingColumns []string `json:"missing_columns,omitempty"`
}

func (s TableStatus) UpToDate() bool {
	return s.Exists && len(s.MissingColumns) == 0
}

// Status inspects the schema without changing it.
func Status(db *gorm.DB) ([]TableStatus, error) {
	m := db.Migrator()
	out := make([]TableStatus, 0, 2)
	for _, model := range catalogModels() {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(model); err != nil {
			return nil, fmt.Errorf("parse model %T: %w", model, err)
		}
		status := TableStatus{Table: stmt.Schema.Table, Exists: m.HasTable(model)}
		if status.Exists {
			for _, column := range stmt.Schema.DBNames {
				if !m.HasColumn(model, column) {
					status.MissingColumns = append(status.MissingColumns, column)
				}
			}
		}
		out = append(out, status)
	}
	return out, nil
}

// Plan lists the changes Migrate would make.
func Plan(db *gorm.DB) ([]string, error) {
	statuses, err := Status(db)
	if err != nil {
		return nil, err
	}
	var steps []string
	for _, s := range statuses {
		switch {
		case !s.Exists:
			steps = append(steps, "create table "+s.Table)
		default:
			for _, col := range s.MissingColumns {
				steps = append(steps, "add column "+s.Table+"."+col)
			}
		}
	}
	return steps, nil
}
