package repo

import (
	"errors"

	"gorm.io/gorm"
)

// ErrEmptyUpdate is returned when a partial update carries no recognized
// fields; nothing is executed against the store in that case.
var ErrEmptyUpdate = errors.New("no fields to update")

type GormRepo struct {
	DB *gorm.DB
}
