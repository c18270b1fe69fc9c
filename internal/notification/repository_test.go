package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPatient(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT id, name, contact, email`).
		WithArgs("p-1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "contact", "email"}).
			AddRow("p-1", "Asha", "+919876543210", "asha@example.com"))

	repo := NewPostgresRepository(mock)
	patient, err := repo.GetPatient(context.Background(), "p-1")
	require.NoError(t, err)

	assert.Equal(t, "Asha", patient.Name)
	assert.Equal(t, "+919876543210", patient.Contact)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetPatientNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT id, name, contact, email`).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	repo := NewPostgresRepository(mock)
	_, err = repo.GetPatient(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrPatientNotFound)
}

func TestGetPreferredChannels(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT notification_preferences`).
		WithArgs("p-1").
		WillReturnRows(pgxmock.NewRows([]string{"notification_preferences"}).
			AddRow([]string{"sms", "email"}))

	repo := NewPostgresRepository(mock)
	channels, err := repo.GetPreferredChannels(context.Background(), "p-1")
	require.NoError(t, err)
	assert.Equal(t, []Channel{ChannelSMS, ChannelEmail}, channels)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetPreferredChannelsMissingRowDefaultsToAll(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT notification_preferences`).
		WithArgs("p-2").
		WillReturnError(errors.New("no rows in result set"))

	repo := NewPostgresRepository(mock)
	channels, err := repo.GetPreferredChannels(context.Background(), "p-2")
	require.NoError(t, err)
	assert.ElementsMatch(t, AllChannels(), channels)
}

func TestCreateRecord(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	createdAt := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`INSERT INTO notifications`).
		WithArgs(pgxmock.AnyArg(), "p-1", (*string)(nil), "health_check_reminder", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(createdAt))

	repo := NewPostgresRepository(mock)
	rec := &Record{PatientID: "p-1", Kind: KindHealthCheckReminder, Data: map[string]any{"check_type": "eye exam"}}
	require.NoError(t, repo.CreateRecord(context.Background(), rec))

	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, "pending", rec.Status)
	assert.Equal(t, createdAt, rec.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkSent(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`UPDATE notifications`).
		WithArgs("rec-1", []string{"sms", "email"}, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	repo := NewPostgresRepository(mock)
	require.NoError(t, repo.MarkSent(context.Background(), "rec-1", []string{"sms", "email"}))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkSentUnknownRecord(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`UPDATE notifications`).
		WithArgs("ghost", []string{}, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	repo := NewPostgresRepository(mock)
	err = repo.MarkSent(context.Background(), "ghost", []string{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
