package card

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"vcardqr/internal/dto"
	"vcardqr/internal/entity"
	"vcardqr/pkg/types/errs"
)

type fakeContactRepo struct {
	created   []*entity.Contact
	createErr error
}

func (f *fakeContactRepo) Create(_ context.Context, contact *entity.Contact) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, contact)
	return nil
}

func (f *fakeContactRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Contact, error) {
	for _, c := range f.created {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, errs.ErrRecordNotFound
}

type fakeOutboxRepo struct {
	created []*entity.OutboxEvent

	pending    []*entity.OutboxEvent
	processing uuid.UUIDs
	processed  uuid.UUIDs
	retried    uuid.UUIDs
	cleaned    int64
}

func (f *fakeOutboxRepo) Create(_ context.Context, event *entity.OutboxEvent) error {
	f.created = append(f.created, event)
	return nil
}

func (f *fakeOutboxRepo) GetPendingEvents(_ context.Context, _, _ int) ([]*entity.OutboxEvent, error) {
	return f.pending, nil
}

func (f *fakeOutboxRepo) MarkAsProcessingBatch(_ context.Context, IDs uuid.UUIDs) error {
	f.processing = append(f.processing, IDs...)
	return nil
}

func (f *fakeOutboxRepo) MarkAsProcessedBatch(_ context.Context, IDs uuid.UUIDs) error {
	f.processed = append(f.processed, IDs...)
	return nil
}

func (f *fakeOutboxRepo) IncrementRetryCountBatch(_ context.Context, IDs uuid.UUIDs) error {
	f.retried = append(f.retried, IDs...)
	return nil
}

func (f *fakeOutboxRepo) MarkMaxRetriesAsFailed(_ context.Context, _ int) error {
	return nil
}

func (f *fakeOutboxRepo) DeleteOldProcessedAndFailed(_ context.Context) (int64, error) {
	return f.cleaned, nil
}

type fakeArchiveRepo struct {
	uploads     map[string][]byte
	contentType string
	uploadErr   error
	deleted     []string
}

func (f *fakeArchiveRepo) UploadBytes(_ context.Context, key string, data []byte, contentType string, _ int64) error {
	if f.uploadErr != nil {
		return f.uploadErr
	}
	if f.uploads == nil {
		f.uploads = map[string][]byte{}
	}
	f.uploads[key] = data
	f.contentType = contentType
	return nil
}

func (f *fakeArchiveRepo) Delete(_ context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return nil
}

type fakeTransactor struct {
	err error
}

func (f *fakeTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		return err
	}
	return f.err
}

type fakeEncoder struct {
	encoded *entity.EncodedCard
	err     error
	calls   int
}

func (f *fakeEncoder) Encode(_ context.Context, _ entity.Contact) (*entity.EncodedCard, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.encoded, nil
}

type nopLogger struct{}

func (nopLogger) Debug(interface{}, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})       {}
func (nopLogger) Warn(string, ...interface{})       {}
func (nopLogger) Error(interface{}, ...interface{}) {}
func (nopLogger) Fatal(interface{}, ...interface{}) {}

func newTestUseCase(
	contacts *fakeContactRepo,
	outbox *fakeOutboxRepo,
	archive *fakeArchiveRepo,
	tx *fakeTransactor,
	enc *fakeEncoder,
) *CardUseCase {
	return New(contacts, outbox, archive, tx, enc, nopLogger{})
}

func TestGenerateCard(t *testing.T) {
	contacts := &fakeContactRepo{}
	outbox := &fakeOutboxRepo{}
	archive := &fakeArchiveRepo{}
	enc := &fakeEncoder{encoded: &entity.EncodedCard{
		PNG:     []byte("png-bytes"),
		DataURI: "data:image/png;base64,cG5nLWJ5dGVz",
	}}

	uc := newTestUseCase(contacts, outbox, archive, &fakeTransactor{}, enc)

	got, err := uc.GenerateCard(context.Background(), dto.Card{
		FirstName: "John",
		LastName:  "Doe",
		Email:     "john@example.com",
	})
	require.NoError(t, err)
	require.Equal(t, enc.encoded, got)

	require.Len(t, contacts.created, 1)
	contact := contacts.created[0]
	require.Equal(t, "John", contact.FirstName)
	require.Equal(t, "Doe", contact.LastName)
	require.NotEqual(t, uuid.Nil, contact.ID)

	wantKey := fmt.Sprintf("cards/%s.png", contact.ID)
	require.Equal(t, wantKey, contact.ArchiveKey)
	require.Equal(t, []byte("png-bytes"), archive.uploads[wantKey])
	require.Equal(t, "image/png", archive.contentType)

	require.Len(t, outbox.created, 1)
	require.Equal(t, contact.ID, outbox.created[0].AggregateID)
	require.Equal(t, entity.Pending, outbox.created[0].Status)
	require.Empty(t, archive.deleted)
}

func TestGenerateCard_EncodeError(t *testing.T) {
	contacts := &fakeContactRepo{}
	outbox := &fakeOutboxRepo{}
	archive := &fakeArchiveRepo{}
	encodeErr := errors.New("payload too large")

	uc := newTestUseCase(contacts, outbox, archive, &fakeTransactor{}, &fakeEncoder{err: encodeErr})

	got, err := uc.GenerateCard(context.Background(), dto.Card{FirstName: "John", LastName: "Doe"})
	require.ErrorIs(t, err, encodeErr)
	require.Nil(t, got)

	require.Empty(t, contacts.created)
	require.Empty(t, outbox.created)
	require.Empty(t, archive.uploads)
}

func TestGenerateCard_UploadError(t *testing.T) {
	contacts := &fakeContactRepo{}
	uploadErr := errors.New("bucket unavailable")
	archive := &fakeArchiveRepo{uploadErr: uploadErr}
	enc := &fakeEncoder{encoded: &entity.EncodedCard{PNG: []byte("png")}}

	uc := newTestUseCase(contacts, &fakeOutboxRepo{}, archive, &fakeTransactor{}, enc)

	_, err := uc.GenerateCard(context.Background(), dto.Card{FirstName: "John", LastName: "Doe"})
	require.ErrorIs(t, err, uploadErr)
	require.Empty(t, contacts.created)
}

func TestGenerateCard_TxErrorDeletesArchived(t *testing.T) {
	contacts := &fakeContactRepo{}
	archive := &fakeArchiveRepo{}
	txErr := errors.New("commit failed")
	enc := &fakeEncoder{encoded: &entity.EncodedCard{PNG: []byte("png")}}

	uc := newTestUseCase(contacts, &fakeOutboxRepo{}, archive, &fakeTransactor{err: txErr}, enc)

	_, err := uc.GenerateCard(context.Background(), dto.Card{FirstName: "John", LastName: "Doe"})
	require.ErrorIs(t, err, txErr)

	require.Len(t, archive.uploads, 1)
	require.Len(t, archive.deleted, 1)
	for key := range archive.uploads {
		require.Equal(t, key, archive.deleted[0])
	}
}

func TestGetCard(t *testing.T) {
	contacts := &fakeContactRepo{}
	enc := &fakeEncoder{encoded: &entity.EncodedCard{DataURI: "data:image/png;base64,cG5n"}}

	uc := newTestUseCase(contacts, &fakeOutboxRepo{}, &fakeArchiveRepo{}, &fakeTransactor{}, enc)

	_, err := uc.GenerateCard(context.Background(), dto.Card{FirstName: "John", LastName: "Doe"})
	require.NoError(t, err)

	got, err := uc.GetCard(context.Background(), contacts.created[0].ID)
	require.NoError(t, err)
	require.Equal(t, enc.encoded, got)

	_, err = uc.GetCard(context.Background(), uuid.New())
	require.ErrorIs(t, err, errs.ErrRecordNotFound)
}

func TestOutboxPassthrough(t *testing.T) {
	events := []*entity.OutboxEvent{
		{ID: uuid.New()},
		{ID: uuid.New()},
	}
	outbox := &fakeOutboxRepo{pending: events, cleaned: 3}

	uc := newTestUseCase(&fakeContactRepo{}, outbox, &fakeArchiveRepo{}, &fakeTransactor{}, &fakeEncoder{})

	got, err := uc.GetPendingEvents(context.Background(), 5, 10)
	require.NoError(t, err)
	require.Equal(t, events, got)

	require.NoError(t, uc.MarkAsProcessingBatch(context.Background(), events))
	require.Equal(t, uuid.UUIDs{events[0].ID, events[1].ID}, outbox.processing)

	require.NoError(t, uc.MarkAsProcessedBatch(context.Background(), events))
	require.Equal(t, uuid.UUIDs{events[0].ID, events[1].ID}, outbox.processed)

	require.NoError(t, uc.IncrementRetryCountBatch(context.Background(), events))
	require.NoError(t, uc.MarkMaxRetriesAsFailed(context.Background(), 5))
	require.NoError(t, uc.CleanupOutbox(context.Background()))
}
