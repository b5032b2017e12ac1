package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/desperadoclub/desperado/internal/model"
	"github.com/jmoiron/sqlx"
)

var ErrFeedbackNotFound = errors.New("feedback item not found")

type FeedbackRepository interface {
	Create(item *model.FeedbackItem) error
	ByID(id string) (*model.FeedbackItem, error)
	List() ([]*model.FeedbackItem, error)
	UpdateStatus(id, status, pipelineStatus string) error

	// Queued returns items visible to the pipeline: lifecycle status planned
	// and pipeline status queued, oldest first.
	Queued() ([]*model.FeedbackItem, error)

	DeleteVote(feedbackID, userID string) (bool, error)
	InsertVote(vote *model.FeedbackVote) (bool, error)
	VoteCount(feedbackID string) (int, error)
}

type feedbackRepository struct {
	db *sqlx.DB
}

func NewFeedbackRepository(db *sqlx.DB) FeedbackRepository {
	return &feedbackRepository{db: db}
}

func (r *feedbackRepository) Create(item *model.FeedbackItem) error {
	query := `INSERT INTO feedback_items (id, user_id, type, body, priority, tags, status, pipeline_status, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.Exec(query,
		item.ID,
		item.UserID,
		item.Type,
		item.Body,
		item.Priority,
		item.Tags,
		item.Status,
		item.PipelineStatus,
		item.CreatedAt,
		item.UpdatedAt,
	)

	return err
}

func (r *feedbackRepository) ByID(id string) (*model.FeedbackItem, error) {
	item := &model.FeedbackItem{}
	query := `SELECT * FROM feedback_items WHERE id = $1`

	err := r.db.Get(item, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrFeedbackNotFound
	}

	return item, err
}

func (r *feedbackRepository) List() ([]*model.FeedbackItem, error) {
	var items []*model.FeedbackItem
	query := `SELECT * FROM feedback_items ORDER BY created_at DESC`

	err := r.db.Select(&items, query)
	if err != nil {
		return nil, err
	}

	return items, nil
}

func (r *feedbackRepository) UpdateStatus(id, status, pipelineStatus string) error {
	query := `UPDATE feedback_items SET status = $1, pipeline_status = $2, updated_at = $3 WHERE id = $4`

	result, err := r.db.Exec(query, status, pipelineStatus, time.Now(), id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrFeedbackNotFound
	}

	return nil
}

func (r *feedbackRepository) Queued() ([]*model.FeedbackItem, error) {
	var items []*model.FeedbackItem
	query := `SELECT * FROM feedback_items WHERE status = $1 AND pipeline_status = $2 ORDER BY created_at ASC`

	err := r.db.Select(&items, query, model.FeedbackStatusPlanned, model.PipelineStatusQueued)
	if err != nil {
		return nil, err
	}

	return items, nil
}

// DeleteVote removes the vote for (feedback, user) and reports whether a row
// existed. Combined with the conditional insert below this makes the toggle
// safe against concurrent double-toggles.
func (r *feedbackRepository) DeleteVote(feedbackID, userID string) (bool, error) {
	result, err := r.db.Exec(`DELETE FROM feedback_votes WHERE feedback_id = $1 AND user_id = $2`, feedbackID, userID)
	if err != nil {
		return false, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rows > 0, nil
}

// InsertVote inserts a vote unless one already exists for (feedback, user).
// The unique constraint absorbs the race; a lost insert reports false.
func (r *feedbackRepository) InsertVote(vote *model.FeedbackVote) (bool, error) {
	query := `INSERT INTO feedback_votes (id, feedback_id, user_id, created_at)
	          VALUES ($1, $2, $3, $4)
	          ON CONFLICT (feedback_id, user_id) DO NOTHING`

	result, err := r.db.Exec(query, vote.ID, vote.FeedbackID, vote.UserID, vote.CreatedAt)
	if err != nil {
		return false, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rows > 0, nil
}

func (r *feedbackRepository) VoteCount(feedbackID string) (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM feedback_votes WHERE feedback_id = $1`, feedbackID).Scan(&count)
	return count, err
}
