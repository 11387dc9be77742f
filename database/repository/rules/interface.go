package rulesRepo

import "shutterbook/models"

// BookingRulesRepository defines persistence for per-photographer rule documents.
type BookingRulesRepository interface {
	GetByPhotographer(photographerID string) (*models.BookingRules, error)
	Upsert(rules *models.BookingRules) error
	Delete(photographerID string) error
	EnsureIndexes() error
}
