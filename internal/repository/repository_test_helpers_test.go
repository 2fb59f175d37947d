package repository

import (
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/sandeepkv93/catalog-api/internal/domain"
)

func newRepositoryDBForTest(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "catalog.db") + "?_foreign_keys=on"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&domain.Category{}, &domain.Product{}); err != nil {
		t.Fatalf("migrate catalog: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func seedCategoryForTest(t *testing.T, repo CategoryRepository, name string) *domain.Category {
	t.Helper()
	c := &domain.Category{Name: name, Description: name + " description"}
	if err := repo.Create(t.Context(), c); err != nil {
		t.Fatalf("create category %q: %v", name, err)
	}
	return c
}
