package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// db is the slice of pgxpool.Pool the repository needs; pgxmock satisfies
// it in tests.
type db interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Store is the persistence port of the fan-out service.
type Store interface {
	GetPatient(ctx context.Context, patientID string) (*Patient, error)
	GetPreferredChannels(ctx context.Context, patientID string) ([]Channel, error)
	CreateRecord(ctx context.Context, rec *Record) error
	MarkSent(ctx context.Context, recordID string, sentChannels []string) error
}

// PostgresRepository stores notification records and reads patient contact
// info from the relational database.
type PostgresRepository struct {
	db db
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(db db) *PostgresRepository {
	if db == nil {
		panic("notification: db required")
	}
	return &PostgresRepository{db: db}
}

var _ Store = (*PostgresRepository)(nil)

// GetPatient fetches the contact slice of one patient.
func (r *PostgresRepository) GetPatient(ctx context.Context, patientID string) (*Patient, error) {
	query := `
		SELECT id, name, contact, email
		FROM patients
		WHERE id = $1
	`
	var p Patient
	if err := r.db.QueryRow(ctx, query, patientID).Scan(&p.ID, &p.Name, &p.Contact, &p.Email); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPatientNotFound
		}
		return nil, fmt.Errorf("notification: select patient: %w", err)
	}
	return &p, nil
}

// GetPreferredChannels returns the patient's notification preferences,
// defaulting to all channels when no preference row exists or it cannot be
// read.
func (r *PostgresRepository) GetPreferredChannels(ctx context.Context, patientID string) ([]Channel, error) {
	query := `
		SELECT notification_preferences
		FROM patient_preferences
		WHERE patient_id = $1
	`
	var raw []string
	if err := r.db.QueryRow(ctx, query, patientID).Scan(&raw); err != nil {
		// Missing or unreadable preferences fall back to every channel.
		return AllChannels(), nil
	}
	if len(raw) == 0 {
		return AllChannels(), nil
	}
	channels := make([]Channel, 0, len(raw))
	for _, c := range raw {
		channels = append(channels, Channel(c))
	}
	return channels, nil
}

// CreateRecord inserts a pending notification row and fills in the record's
// ID and creation time.
func (r *PostgresRepository) CreateRecord(ctx context.Context, rec *Record) error {
	data, err := json.Marshal(rec.Data)
	if err != nil {
		return fmt.Errorf("notification: marshal data: %w", err)
	}

	id := uuid.New()
	query := `
		INSERT INTO notifications (id, patient_id, campaign_id, type, status, data, created_at)
		VALUES ($1, $2, $3, $4, 'pending', $5, $6)
		RETURNING created_at
	`
	createdAt := time.Now().UTC()
	if err := r.db.QueryRow(ctx, query, id, rec.PatientID, rec.CampaignID, string(rec.Kind), data, createdAt).Scan(&rec.CreatedAt); err != nil {
		return fmt.Errorf("notification: insert record: %w", err)
	}
	rec.ID = id.String()
	rec.Status = "pending"
	return nil
}

// MarkSent flips a notification row to sent and records which channels
// accepted it.
func (r *PostgresRepository) MarkSent(ctx context.Context, recordID string, sentChannels []string) error {
	query := `
		UPDATE notifications
		SET status = 'sent', sent_channels = $2, updated_at = $3
		WHERE id = $1
	`
	tag, err := r.db.Exec(ctx, query, recordID, sentChannels, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("notification: update record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("notification: record %s not found", recordID)
	}
	return nil
}
