package database

import (
	"context"
	"path/filepath"
	"testing"

	"gorm.io/gorm"

	"github.com/sandeepkv93/catalog-api/internal/config"
	"github.com/sandeepkv93/catalog-api/internal/domain"
)

func openSQLiteForTest(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Open(&config.Config{
		DatabaseDriver: config.DriverSQLite,
		DatabaseURL:    filepath.Join(t.TempDir(), "catalog.db"),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = Close(db) })
	return db
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	if _, err := Open(&config.Config{DatabaseDriver: "mysql", DatabaseURL: "x"}); err == nil {
		t.Fatal("expected unsupported driver error")
	}
}

func TestSQLiteDSNEnablesForeignKeys(t *testing.T) {
	cases := map[string]string{
		"file.db":                      "file.db?_foreign_keys=on",
		"file.db?cache=shared":         "file.db?cache=shared&_foreign_keys=on",
		"file.db?_foreign_keys=off":    "file.db?_foreign_keys=off",
		"file:memdb?mode=memory&_fk=1": "file:memdb?mode=memory&_fk=1",
	}
	for in, want := range cases {
		if got := sqliteDSN(in); got != want {
			t.Fatalf("sqliteDSN(%q)=%q want %q", in, got, want)
		}
	}
}

func TestMigrateStatusAndPlan(t *testing.T) {
	db := openSQLiteForTest(t)

	steps, err := Plan(db)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if len(steps) != 2 || steps[0] != "create table categories" || steps[1] != "create table products" {
		t.Fatalf("unexpected plan before migrate: %v", steps)
	}

	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	// Idempotent.
	if err := Migrate(db); err != nil {
		t.Fatalf("second migrate: %v", err)
	}

	statuses, err := Status(db)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	for _, s := range statuses {
		if !s.UpToDate() {
			t.Fatalf("expected %s up to date, got %+v", s.Table, s)
		}
	}
	steps, err = Plan(db)
	if err != nil || len(steps) != 0 {
		t.Fatalf("expected empty plan after migrate, got %v err=%v", steps, err)
	}
}

func TestMigrateCascadesCategoryDelete(t *testing.T) {
	db := openSQLiteForTest(t)
	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	c := domain.Category{Name: "Books"}
	if err := db.Create(&c).Error; err != nil {
		t.Fatalf("create category: %v", err)
	}
	if err := db.Create(&domain.Product{CategoryID: c.ID, Name: "Go", Price: 10}).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	if err := db.Delete(&domain.Category{}, c.ID).Error; err != nil {
		t.Fatalf("delete category: %v", err)
	}
	var count int64
	db.Model(&domain.Product{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected products removed with category, got %d", count)
	}
}

func TestSeedCatalogIsIdempotentAndHonoursDryRun(t *testing.T) {
	db := openSQLiteForTest(t)
	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	ctx := context.Background()

	dry, err := SeedCatalog(ctx, db, true)
	if err != nil {
		t.Fatalf("dry run: %v", err)
	}
	if !dry.DryRun || dry.CreatedCategories != len(sampleCatalog) || dry.Noop {
		t.Fatalf("unexpected dry-run report: %+v", dry)
	}
	var count int64
	db.Model(&domain.Category{}).Count(&count)
	if count != 0 {
		t.Fatalf("dry run must not persist rows, found %d categories", count)
	}

	first, err := SeedCatalog(ctx, db, false)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	wantProducts := 0
	for _, c := range sampleCatalog {
		wantProducts += len(c.Products)
	}
	if first.CreatedCategories != len(sampleCatalog) || first.CreatedProducts != wantProducts {
		t.Fatalf("unexpected first report: %+v", first)
	}

	second, err := SeedCatalog(ctx, db, false)
	if err != nil {
		t.Fatalf("reseed: %v", err)
	}
	if !second.Noop {
		t.Fatalf("expected second seed to be a no-op, got %+v", second)
	}
}

func TestSampleCatalogMirrorsSeedData(t *testing.T) {
	got := SampleCatalog()
	if len(got) != len(sampleCatalog) {
		t.Fatalf("expected %d categories, got %d", len(sampleCatalog), len(got))
	}
	for i, c := range got {
		if c.Name != sampleCatalog[i].Name || len(c.Products) != len(sampleCatalog[i].Products) {
			t.Fatalf("category %d mismatch: %+v", i, c)
		}
	}
}
