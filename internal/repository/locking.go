package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// forUpdate takes a row lock so a concurrent check-then-write on the same
// product cannot race past the sufficiency check. SQLite rejects FOR
// UPDATE and serializes writers anyway, so the clause is Postgres-only.
func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}
