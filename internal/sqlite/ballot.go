package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rpggio/ballotdesk/internal/domain/ballot"
	"github.com/rpggio/ballotdesk/internal/repository"
)

// BallotRepository implements ballot.Repository for SQLite
type BallotRepository struct {
	db *DB
}

// NewBallotRepository creates a new BallotRepository
func NewBallotRepository(db *DB) *BallotRepository {
	return &BallotRepository{db: db}
}

var _ ballot.Repository = (*BallotRepository)(nil)

// Create stores a ballot with its motions and attachments in one transaction.
func (r *BallotRepository) Create(ctx context.Context, b *ballot.Ballot) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO ballots (id, corporation, title, description, status, participation, deadline, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		b.ID,
		b.Corporation,
		b.Title,
		b.Description,
		string(b.Status),
		b.Participation,
		b.Deadline,
		b.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicateID
		}
		return fmt.Errorf("failed to create ballot: %w", err)
	}

	for i, m := range b.Motions {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO ballot_motions (ballot_id, position, id, title, description, hurdle_rate)
			VALUES (?, ?, ?, ?, ?, ?)
		`, b.ID, i, m.ID, m.Title, m.Description, m.HurdleRate)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("motion %s: %w", m.ID, repository.ErrDuplicateID)
			}
			return fmt.Errorf("failed to create motion: %w", err)
		}
		if err := insertAttachments(ctx, tx, b.ID, m.ID, m.Attachments); err != nil {
			return err
		}
	}

	if err := insertAttachments(ctx, tx, b.ID, "", b.Attachments); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit ballot: %w", err)
	}
	return nil
}

func insertAttachments(ctx context.Context, tx *sql.Tx, ballotID, motionID string, atts []ballot.Attachment) error {
	for i, a := range atts {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO ballot_attachments (ballot_id, motion_id, position, name, size)
			VALUES (?, ?, ?, ?, ?)
		`, ballotID, motionID, i, a.Name, a.Size)
		if err != nil {
			if isForeignKeyViolation(err) {
				return repository.ErrNotFound
			}
			return fmt.Errorf("failed to create attachment: %w", err)
		}
	}
	return nil
}

// Get retrieves a ballot by ID
func (r *BallotRepository) Get(ctx context.Context, id string) (*ballot.Ballot, error) {
	var b ballot.Ballot
	var status string
	err := r.db.QueryRowContext(ctx, `
		SELECT id, corporation, title, description, status, participation, deadline, created_at
		FROM ballots
		WHERE id = ?
	`, id).Scan(
		&b.ID,
		&b.Corporation,
		&b.Title,
		&b.Description,
		&status,
		&b.Participation,
		&b.Deadline,
		&b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get ballot: %w", err)
	}
	b.Status = ballot.Status(status)

	list := []ballot.Ballot{b}
	if err := r.loadChildren(ctx, list, "WHERE ballot_id = ?", id); err != nil {
		return nil, err
	}
	return &list[0], nil
}

// List returns all ballots in insertion order
func (r *BallotRepository) List(ctx context.Context) ([]ballot.Ballot, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, corporation, title, description, status, participation, deadline, created_at
		FROM ballots
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list ballots: %w", err)
	}

	ballots := []ballot.Ballot{}
	for rows.Next() {
		var b ballot.Ballot
		var status string
		if err := rows.Scan(
			&b.ID,
			&b.Corporation,
			&b.Title,
			&b.Description,
			&status,
			&b.Participation,
			&b.Deadline,
			&b.CreatedAt,
		); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan ballot: %w", err)
		}
		b.Status = ballot.Status(status)
		ballots = append(ballots, b)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("error iterating ballot rows: %w", err)
	}
	// The pool has one connection; release it before the child queries.
	rows.Close()

	if err := r.loadChildren(ctx, ballots, ""); err != nil {
		return nil, err
	}
	return ballots, nil
}

// loadChildren fills motions and attachments for the given ballots.
func (r *BallotRepository) loadChildren(ctx context.Context, ballots []ballot.Ballot, where string, args ...any) error {
	index := make(map[string]int, len(ballots))
	for i := range ballots {
		index[ballots[i].ID] = i
		ballots[i].Motions = []ballot.Motion{}
		ballots[i].Attachments = []ballot.Attachment{}
	}

	motionRows, err := r.db.QueryContext(ctx, `
		SELECT ballot_id, id, title, description, hurdle_rate
		FROM ballot_motions `+where+`
		ORDER BY ballot_id, position
	`, args...)
	if err != nil {
		return fmt.Errorf("failed to list motions: %w", err)
	}
	for motionRows.Next() {
		var ballotID string
		var m ballot.Motion
		if err := motionRows.Scan(&ballotID, &m.ID, &m.Title, &m.Description, &m.HurdleRate); err != nil {
			motionRows.Close()
			return fmt.Errorf("failed to scan motion: %w", err)
		}
		if i, ok := index[ballotID]; ok {
			m.Attachments = []ballot.Attachment{}
			ballots[i].Motions = append(ballots[i].Motions, m)
		}
	}
	if err := motionRows.Err(); err != nil {
		motionRows.Close()
		return fmt.Errorf("error iterating motion rows: %w", err)
	}
	motionRows.Close()

	attRows, err := r.db.QueryContext(ctx, `
		SELECT ballot_id, motion_id, name, size
		FROM ballot_attachments `+where+`
		ORDER BY ballot_id, motion_id, position
	`, args...)
	if err != nil {
		return fmt.Errorf("failed to list attachments: %w", err)
	}
	defer attRows.Close()

	for attRows.Next() {
		var ballotID, motionID string
		var a ballot.Attachment
		if err := attRows.Scan(&ballotID, &motionID, &a.Name, &a.Size); err != nil {
			return fmt.Errorf("failed to scan attachment: %w", err)
		}
		i, ok := index[ballotID]
		if !ok {
			continue
		}
		if motionID == "" {
			ballots[i].Attachments = append(ballots[i].Attachments, a)
			continue
		}
		for j := range ballots[i].Motions {
			if ballots[i].Motions[j].ID == motionID {
				ballots[i].Motions[j].Attachments = append(ballots[i].Motions[j].Attachments, a)
				break
			}
		}
	}
	if err := attRows.Err(); err != nil {
		return fmt.Errorf("error iterating attachment rows: %w", err)
	}
	return nil
}
