package domain

import (
	"testing"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite (no CGO)
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newDomainDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:domain_models?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	return db
}

func TestCallRecord_TableName(t *testing.T) {
	if (CallRecord{}).TableName() != "glue_calls" {
		t.Fatalf("CallRecord.TableName() = %q", (CallRecord{}).TableName())
	}
}

func TestCallRecord_MigrateAndVariantCheck(t *testing.T) {
	db := newDomainDB(t)
	if err := db.AutoMigrate(&CallRecord{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	m := db.Migrator()
	if !m.HasTable(&CallRecord{}) {
		t.Fatalf("expected glue_calls table")
	}
	if !m.HasIndex(&CallRecord{}, "idx_calls_op_time") {
		t.Fatalf("expected idx_calls_op_time index")
	}

	ok := CallRecord{ID: "11111111-1111-1111-1111-111111111111", Operation: "GetCrawler", Variant: "success", Status: 200}
	if err := db.Create(&ok).Error; err != nil {
		t.Fatalf("insert valid record: %v", err)
	}
	bad := CallRecord{ID: "22222222-2222-2222-2222-222222222222", Operation: "GetCrawler", Variant: "weird", Status: 200}
	if err := db.Create(&bad).Error; err == nil {
		t.Fatalf("expected CHECK constraint violation for variant")
	}
}

func TestCatalogCrawler_WithDefaults(t *testing.T) {
	c := CatalogCrawler{Tables: "t"}.WithDefaults()
	if c.UpdateBehavior != BehaviorLog || c.DeleteBehavior != BehaviorLog {
		t.Fatalf("defaults not applied: %+v", c)
	}

	c = CatalogCrawler{UpdateBehavior: BehaviorUpdateInDatabase, DeleteBehavior: BehaviorDeprecateInDatabase}.WithDefaults()
	if c.UpdateBehavior != BehaviorUpdateInDatabase || c.DeleteBehavior != BehaviorDeprecateInDatabase {
		t.Fatalf("explicit behaviors overwritten: %+v", c)
	}
}
