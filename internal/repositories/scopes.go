package repositories

import (
	"strings"

	"gorm.io/gorm"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a lower-cased LIKE pattern matching q anywhere.
func containsPattern(q string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(q)) + "%"
}

// ilike matches column case-insensitively against a containsPattern.
// LOWER ... LIKE keeps the query portable across Postgres and SQLite.
func ilike(column string) string {
	return "LOWER(COALESCE(" + column + ", '')) LIKE ? ESCAPE '\\'"
}

// paginate applies offset/limit when limit is positive.
func paginate(offset, limit int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if limit <= 0 {
			return db
		}
		return db.Offset(offset).Limit(limit)
	}
}

// authorSummary trims preloaded authors to their public fields.
func authorSummary(db *gorm.DB) *gorm.DB {
	return db.Select("id", "name", "bio", "image", "created_at")
}
