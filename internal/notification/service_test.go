package notification

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	patient     *Patient
	patientErr  error
	channels    []Channel
	channelsErr error
	createErr   error
	created     []*Record
	marked      map[string][]string
	markErr     error
}

func (f *fakeStore) GetPatient(ctx context.Context, patientID string) (*Patient, error) {
	if f.patientErr != nil {
		return nil, f.patientErr
	}
	return f.patient, nil
}

func (f *fakeStore) GetPreferredChannels(ctx context.Context, patientID string) ([]Channel, error) {
	if f.channelsErr != nil {
		return nil, f.channelsErr
	}
	if f.channels == nil {
		return AllChannels(), nil
	}
	return f.channels, nil
}

func (f *fakeStore) CreateRecord(ctx context.Context, rec *Record) error {
	if f.createErr != nil {
		return f.createErr
	}
	rec.ID = "rec-1"
	rec.Status = "pending"
	f.created = append(f.created, rec)
	return nil
}

func (f *fakeStore) MarkSent(ctx context.Context, recordID string, sentChannels []string) error {
	if f.markErr != nil {
		return f.markErr
	}
	if f.marked == nil {
		f.marked = make(map[string][]string)
	}
	f.marked[recordID] = sentChannels
	return nil
}

type fakeChannel struct {
	err   error
	calls int
	last  string
}

func (f *fakeChannel) SendMessage(ctx context.Context, phone, message string) error {
	f.calls++
	f.last = message
	return f.err
}

func (f *fakeChannel) SendSMS(ctx context.Context, phone, body string) error {
	f.calls++
	f.last = body
	return f.err
}

func (f *fakeChannel) SendEmail(ctx context.Context, to, subject, message string) error {
	f.calls++
	f.last = message
	return f.err
}

func testPatient() *Patient {
	return &Patient{ID: "p-1", Name: "Asha", Contact: "+91 98765-43210", Email: "asha@example.com"}
}

func TestSendFansOutToAllChannelsByDefault(t *testing.T) {
	store := &fakeStore{patient: testPatient()}
	wa, sms, email := &fakeChannel{}, &fakeChannel{}, &fakeChannel{}
	svc := NewService(store, wa, sms, email, nil, nil)

	res, err := svc.Send(context.Background(), Input{
		PatientID: "p-1",
		Kind:      KindHealthCheckReminder,
		Data:      map[string]any{"check_type": "blood test", "due_date": "2025-06-01"},
	})
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, "rec-1", res.NotificationID)
	assert.ElementsMatch(t, []Channel{ChannelWhatsApp, ChannelSMS, ChannelEmail}, res.Channels)
	assert.Empty(t, res.Failed)
	assert.Equal(t, 1, wa.calls)
	assert.Equal(t, 1, sms.calls)
	assert.Equal(t, 1, email.calls)
	assert.Contains(t, sms.last, "blood test")
	assert.ElementsMatch(t, []string{"whatsapp", "sms", "email"}, store.marked["rec-1"])
}

func TestSendRespectsPreferences(t *testing.T) {
	store := &fakeStore{patient: testPatient(), channels: []Channel{ChannelSMS}}
	wa, sms, email := &fakeChannel{}, &fakeChannel{}, &fakeChannel{}
	svc := NewService(store, wa, sms, email, nil, nil)

	res, err := svc.Send(context.Background(), Input{PatientID: "p-1", Kind: KindBillingReminder,
		Data: map[string]any{"message": "Hello [NAME], your invoice is due."}})
	require.NoError(t, err)

	assert.Equal(t, []Channel{ChannelSMS}, res.Channels)
	assert.Equal(t, 0, wa.calls)
	assert.Equal(t, 1, sms.calls)
	assert.Equal(t, 0, email.calls)
	assert.Equal(t, "Hello Asha, your invoice is due.", sms.last)
}

func TestSendChannelFailureDoesNotAbortOthers(t *testing.T) {
	store := &fakeStore{patient: testPatient()}
	wa := &fakeChannel{err: errors.New("gateway timeout")}
	sms, email := &fakeChannel{}, &fakeChannel{}
	svc := NewService(store, wa, sms, email, nil, nil)

	res, err := svc.Send(context.Background(), Input{PatientID: "p-1", Kind: KindAppointmentUpdate,
		Data: map[string]any{"date": "2025-06-01", "old_time": "10:00", "new_time": "11:00"}})
	require.NoError(t, err)

	assert.ElementsMatch(t, []Channel{ChannelSMS, ChannelEmail}, res.Channels)
	assert.Equal(t, []Channel{ChannelWhatsApp}, res.Failed)
	assert.Equal(t, 1, sms.calls)
	assert.Equal(t, 1, email.calls)
	assert.ElementsMatch(t, []string{"sms", "email"}, store.marked["rec-1"])
}

func TestSendSkipsPhoneChannelsWithoutContact(t *testing.T) {
	patient := testPatient()
	patient.Contact = ""
	store := &fakeStore{patient: patient}
	wa, sms, email := &fakeChannel{}, &fakeChannel{}, &fakeChannel{}
	svc := NewService(store, wa, sms, email, nil, nil)

	res, err := svc.Send(context.Background(), Input{PatientID: "p-1", Kind: KindFollowUpScheduled})
	require.NoError(t, err)

	assert.Equal(t, []Channel{ChannelEmail}, res.Channels)
	assert.Equal(t, 0, wa.calls)
	assert.Equal(t, 0, sms.calls)
}

func TestSendPreferenceLookupFailureDefaultsToAll(t *testing.T) {
	store := &fakeStore{patient: testPatient(), channelsErr: errors.New("db down")}
	wa, sms, email := &fakeChannel{}, &fakeChannel{}, &fakeChannel{}
	svc := NewService(store, wa, sms, email, nil, nil)

	res, err := svc.Send(context.Background(), Input{PatientID: "p-1", Kind: KindHealthCheckReminder})
	require.NoError(t, err)
	assert.Len(t, res.Channels, 3)
}

func TestSendUnknownPatient(t *testing.T) {
	store := &fakeStore{patientErr: ErrPatientNotFound}
	svc := NewService(store, nil, nil, nil, nil, nil)

	_, err := svc.Send(context.Background(), Input{PatientID: "nope", Kind: KindAppointmentUpdate})
	assert.ErrorIs(t, err, ErrPatientNotFound)
}

func TestSendRecordCreationFailure(t *testing.T) {
	store := &fakeStore{patient: testPatient(), createErr: errors.New("insert failed")}
	svc := NewService(store, nil, nil, nil, nil, nil)

	_, err := svc.Send(context.Background(), Input{PatientID: "p-1", Kind: KindAppointmentUpdate})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert failed")
}

func TestSendUnconfiguredChannelCountsAsFailed(t *testing.T) {
	store := &fakeStore{patient: testPatient(), channels: []Channel{ChannelWhatsApp}}
	svc := NewService(store, nil, nil, nil, nil, nil)

	res, err := svc.Send(context.Background(), Input{PatientID: "p-1", Kind: KindHealthCheckReminder})
	require.NoError(t, err)
	assert.Empty(t, res.Channels)
	assert.Equal(t, []Channel{ChannelWhatsApp}, res.Failed)
}

func TestSendMarkSentFailureIsNotFatal(t *testing.T) {
	store := &fakeStore{patient: testPatient(), markErr: errors.New("update failed")}
	wa, sms, email := &fakeChannel{}, &fakeChannel{}, &fakeChannel{}
	svc := NewService(store, wa, sms, email, nil, nil)

	res, err := svc.Send(context.Background(), Input{PatientID: "p-1", Kind: KindHealthCheckReminder})
	require.NoError(t, err)
	assert.True(t, res.Success)
}
