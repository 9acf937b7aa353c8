package repositories

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// toggleRow flips presence of a uniqueness-constrained relationship row.
// Returns true when the end state is "present", false when "removed".
//
// The delete runs first; a row deleted means the toggle removed it. Otherwise
// an insert with ON CONFLICT DO NOTHING runs: losing a race to a concurrent
// toggle reads as "already added", never as an error, so two sequential
// toggles always restore the prior state regardless of interleaving.
func toggleRow[T any](db *gorm.DB, query string, args []interface{}, row *T) (bool, error) {
	res := db.Where(query, args...).Delete(new(T))
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		return false, nil
	}

	res = db.Clauses(clause.OnConflict{DoNothing: true}).Create(row)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return true, nil
		}
		return false, res.Error
	}
	return true, nil
}
