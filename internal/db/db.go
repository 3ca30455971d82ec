package db

import (
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/polarbear333/rag-llm-based-recommender/internal/catalog"
	"github.com/polarbear333/rag-llm-based-recommender/internal/chat"
)

// Connect opens the catalog/job database and migrates the schema. A MySQL
// DSN uses the mysql driver; anything else (including empty) is treated as a
// sqlite path.
func Connect(dsn string) (*gorm.DB, error) {
	var dial gorm.Dialector
	switch {
	case dsn == "":
		dial = sqlite.Open("storefront.db")
	case strings.Contains(dsn, "@tcp("):
		dial = mysql.Open(dsn)
	default:
		dial = sqlite.Open(dsn)
	}

	gdb, err := gorm.Open(dial, &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := gdb.AutoMigrate(&catalog.Product{}, &catalog.Category{}, &chat.SearchJob{}); err != nil {
		return nil, err
	}
	return gdb, nil
}
