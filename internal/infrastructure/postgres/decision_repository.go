package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/domain/apperrors"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/domain/model"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/domain/port"
	pgpkg "github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/pkg/postgres"
)

// Compile-time interface check.
var _ port.DecisionRepository = (*DecisionRepository)(nil)

const selectDecision = `
	SELECT id, kind, subject_id, phone_number, score, tier, outcome,
		factors, actions, created_at
	FROM decisions
`

// DecisionRepository implements port.DecisionRepository using PostgreSQL.
type DecisionRepository struct {
	db pgpkg.Querier
}

// NewDecisionRepository creates a repository over a pool or a transaction.
func NewDecisionRepository(db pgpkg.Querier) *DecisionRepository {
	return &DecisionRepository{db: db}
}

// Save inserts a decision record. Records are immutable; saving the same
// id twice is an error.
func (r *DecisionRepository) Save(ctx context.Context, record *model.DecisionRecord) error {
	query := `
		INSERT INTO decisions (
			id, kind, subject_id, phone_number, score, tier, outcome,
			factors, actions, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.Exec(ctx, query,
		record.ID(),
		string(record.Kind()),
		record.SubjectID(),
		record.PhoneNumber(),
		record.Score(),
		record.Tier(),
		record.Outcome(),
		record.Factors(),
		record.Actions(),
		record.CreatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to save decision: %w", err)
	}
	return nil
}

// FindByID retrieves a decision by its unique identifier.
func (r *DecisionRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.DecisionRecord, error) {
	record, err := scanDecision(r.db.QueryRow(ctx, selectDecision+` WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return record, nil
}

// ListByPhone returns the most recent decisions for a phone number.
func (r *DecisionRepository) ListByPhone(ctx context.Context, phoneNumber string, limit int) ([]*model.DecisionRecord, error) {
	rows, err := r.db.Query(ctx,
		selectDecision+` WHERE phone_number = $1 ORDER BY created_at DESC LIMIT $2`,
		phoneNumber, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query decisions: %w", err)
	}
	defer rows.Close()

	records := make([]*model.DecisionRecord, 0)
	for rows.Next() {
		record, err := scanDecision(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate decisions: %w", err)
	}

	return records, nil
}

// scanDecision reads one decision from a pgx.Row or pgx.Rows.
func scanDecision(row pgx.Row) (*model.DecisionRecord, error) {
	var (
		id          uuid.UUID
		kindStr     string
		subjectID   string
		phoneNumber string
		score       int
		tier        string
		outcome     string
		factors     []string
		actions     []string
		createdAt   time.Time
	)

	err := row.Scan(
		&id, &kindStr, &subjectID, &phoneNumber, &score, &tier, &outcome,
		&factors, &actions, &createdAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan decision: %w", err)
	}

	kind, err := model.ParseDecisionKind(kindStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse decision kind: %w", err)
	}

	return model.ReconstructDecisionRecord(
		id, kind, subjectID, phoneNumber, score, tier, outcome,
		factors, actions, createdAt.UTC(),
	), nil
}
