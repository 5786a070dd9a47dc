package database

import (
	"fmt"

	"gorm.io/gorm"

	"coursehub/internal/models"
)

// PersistentModels returns the authoritative set of schema-managed GORM models.
// Order matters: referenced tables come first.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Course{},
		&models.Comment{},
		&models.Feedback{},
		&models.Like{},
		&models.Rating{},
	}
}

// TableStatus reports whether the table backing a persistent model exists.
type TableStatus struct {
	Table  string
	Exists bool
}

// SchemaStatus inspects the tables for every persistent model.
func SchemaStatus(db *gorm.DB) ([]TableStatus, error) {
	entries := PersistentModels()
	out := make([]TableStatus, 0, len(entries))
	for _, m := range entries {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(m); err != nil {
			return nil, fmt.Errorf("parse model %T: %w", m, err)
		}
		out = append(out, TableStatus{
			Table:  stmt.Schema.Table,
			Exists: db.Migrator().HasTable(m),
		})
	}
	return out, nil
}
