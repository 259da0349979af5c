package repositories

import (
	"errors"
	"fmt"

	"github.com/poetscorner/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrProfileNotFound is returned when a profile id has no row.
var ErrProfileNotFound = errors.New("profile not found")

// ProfileRepository defines the interface for profile data operations.
// Points and badges only ever grow; the write operations enforce that.
type ProfileRepository interface {
	GetProfileByID(id string) (*models.Profile, error)
	TopByPoints(limit int) ([]models.Profile, error)
	AddPoints(id string, delta int) error
	GrantBadge(id string, badge string) error
}

// PostgresProfileRepository implements ProfileRepository for PostgreSQL
type PostgresProfileRepository struct {
	db *gorm.DB
}

// NewPostgresProfileRepository creates a new PostgresProfileRepository
func NewPostgresProfileRepository(db *gorm.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

// GetProfileByID retrieves a profile by its Firebase UID.
func (r *PostgresProfileRepository) GetProfileByID(id string) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.First(&profile, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// TopByPoints retrieves profiles ordered by points descending, id
// ascending as the stable tie-break.
func (r *PostgresProfileRepository) TopByPoints(limit int) ([]models.Profile, error) {
	var profiles []models.Profile
	if err := r.db.Order("points DESC, id ASC").Limit(limit).Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

// AddPoints increases a profile's points. Points are monotone: a
// non-positive delta is rejected before touching the row.
func (r *PostgresProfileRepository) AddPoints(id string, delta int) error {
	if delta <= 0 {
		return fmt.Errorf("points delta must be positive, got %d", delta)
	}
	res := r.db.Model(&models.Profile{}).Where("id = ?", id).
		Update("points", gorm.Expr("points + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

// GrantBadge adds a badge to a profile if it is not already present.
// Granting an already-held badge is a no-op, so the badge set only grows.
func (r *PostgresProfileRepository) GrantBadge(id string, badge string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var profile models.Profile
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&profile, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProfileNotFound
			}
			return err
		}
		if profile.HasBadge(badge) {
			return nil
		}
		profile.Badges = append(profile.Badges, badge)
		return tx.Model(&profile).Update("badges", profile.Badges).Error
	})
}
