package repo

import (
	"errors"
	"freeform-backend/internal/errs"
	"freeform-backend/internal/models"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BoardRepo represents the repository for the board model
type BoardRepo struct {
	db *gorm.DB
}

type BoardRepoInterface interface {
	GetLatestBoard(userID uuid.UUID) (*models.Board, error)
	UpsertBoard(userID uuid.UUID, snapshot datatypes.JSON, snapshotURL models.NullableString) error
}

func NewBoardRepository(db *gorm.DB) BoardRepoInterface {
	return &BoardRepo{db: db}
}

// GetLatestBoard returns the most recently updated board owned by userID.
// errs.ErrBoardNotFound is returned when the user has not saved yet.
func (r *BoardRepo) GetLatestBoard(userID uuid.UUID) (*models.Board, error) {
	var board models.Board
	err := r.db.Where("user_id = ?", userID).
		Order("updated_at DESC").
		Take(&board).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.ErrBoardNotFound
	}
	if err != nil {
		return nil, err
	}
	return &board, nil
}

// UpsertBoard writes the user's board in one statement, keyed by user_id.
// snapshotURL is only touched on update when it was explicitly provided.
func (r *BoardRepo) UpsertBoard(userID uuid.UUID, snapshot datatypes.JSON, snapshotURL models.NullableString) error {
	now := time.Now()
	board := &models.Board{
		ID:          uuid.New(),
		UserID:      userID,
		Snapshot:    snapshot,
		SnapshotURL: snapshotURL.Value,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	updates := map[string]interface{}{
		"snapshot":   snapshot,
		"updated_at": now,
	}
	if snapshotURL.Set {
		updates["snapshot_url"] = snapshotURL.Value
	}

	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(updates),
	}).Create(board).Error
}
