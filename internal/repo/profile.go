package repo

import (
	"errors"
	"freeform-backend/internal/errs"
	"freeform-backend/internal/models"
	"freeform-backend/internal/utils"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const apiTokenPrefix = "fbt"

type ProfileRepo struct {
	db *gorm.DB
}

type ProfileRepoInterface interface {
	GetByAPIToken(token string) (*models.Profile, error)
	GetOrCreateProfile(userID uuid.UUID) (*models.Profile, error)
}

func NewProfileRepository(db *gorm.DB) ProfileRepoInterface {
	return &ProfileRepo{db: db}
}

// GetByAPIToken looks a profile up by exact token match
func (r *ProfileRepo) GetByAPIToken(token string) (*models.Profile, error) {
	if token == "" {
		return nil, errs.ErrProfileNotFound
	}
	var profile models.Profile
	err := r.db.Where("api_token = ?", token).Take(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetOrCreateProfile returns the user's profile, issuing a fresh api token on first use
func (r *ProfileRepo) GetOrCreateProfile(userID uuid.UUID) (*models.Profile, error) {
	now := time.Now()
	candidate := &models.Profile{
		ID:        userID,
		APIToken:  utils.NewToken(apiTokenPrefix),
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoNothing: true,
	}).Create(candidate).Error
	if err != nil {
		return nil, err
	}

	var profile models.Profile
	if err := r.db.Where("id = ?", userID).Take(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}
