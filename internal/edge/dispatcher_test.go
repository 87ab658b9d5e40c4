package edge

import (
	"context"
	"errors"
	"testing"

	"github.com/aloysiusChng/ppe-sentinel/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNotifier struct {
	messages []string
	err      error
}

func (f *fakeNotifier) Send(_ context.Context, text string) error {
	f.messages = append(f.messages, text)
	return f.err
}

type fakeUploader struct {
	uploads []bool
	images  [][]byte
	err     error
}

func (f *fakeUploader) Upload(_ context.Context, imagePNG []byte, flagged bool) (int64, error) {
	f.uploads = append(f.uploads, flagged)
	f.images = append(f.images, imagePNG)
	return 1, f.err
}

func TestDispatch_WhenFlagged_ThenAlertsAndUploads(t *testing.T) {
	// Arrange
	notifier := &fakeNotifier{}
	uploader := &fakeUploader{}
	d := NewDispatcher(notifier, uploader, logging.NewNoOpLogger())
	decision := Decision{
		Missing:        []string{"helmet", "gloves"},
		SubjectPresent: true,
		Flagged:        true,
	}

	// Act
	d.Dispatch(context.Background(), decision, Frame{PNG: []byte("png")})

	// Assert
	require.Len(t, notifier.messages, 1)
	assert.Equal(t, "PPE Missing: helmet, gloves", notifier.messages[0])
	require.Len(t, uploader.uploads, 1)
	assert.True(t, uploader.uploads[0])
	assert.Equal(t, []byte("png"), uploader.images[0])
}

func TestDispatch_WhenCompliant_ThenUploadsWithoutAlert(t *testing.T) {
	// Arrange
	notifier := &fakeNotifier{}
	uploader := &fakeUploader{}
	d := NewDispatcher(notifier, uploader, logging.NewNoOpLogger())
	decision := Decision{SubjectPresent: true, Flagged: false}

	// Act
	d.Dispatch(context.Background(), decision, Frame{PNG: []byte("png")})

	// Assert
	assert.Empty(t, notifier.messages)
	require.Len(t, uploader.uploads, 1)
	assert.False(t, uploader.uploads[0])
}

func TestDispatch_WhenNoSubject_ThenNoAlertAndNoUpload(t *testing.T) {
	// Arrange
	notifier := &fakeNotifier{}
	uploader := &fakeUploader{}
	d := NewDispatcher(notifier, uploader, logging.NewNoOpLogger())
	decision := Decision{Missing: []string{"person", "helmet"}, SubjectPresent: false}

	// Act
	d.Dispatch(context.Background(), decision, Frame{PNG: []byte("png")})

	// Assert
	assert.Empty(t, notifier.messages)
	assert.Empty(t, uploader.uploads)
}

func TestDispatch_WhenAlertFails_ThenUploadStillRuns(t *testing.T) {
	// Arrange
	notifier := &fakeNotifier{err: errors.New("channel unreachable")}
	uploader := &fakeUploader{}
	d := NewDispatcher(notifier, uploader, logging.NewNoOpLogger())
	decision := Decision{Missing: []string{"helmet"}, SubjectPresent: true, Flagged: true}

	// Act
	d.Dispatch(context.Background(), decision, Frame{PNG: []byte("png")})

	// Assert
	assert.Len(t, notifier.messages, 1)
	assert.Len(t, uploader.uploads, 1)
}

func TestDispatch_WhenUploadFails_ThenSwallowed(t *testing.T) {
	// Arrange
	notifier := &fakeNotifier{}
	uploader := &fakeUploader{err: errors.New("service unreachable")}
	d := NewDispatcher(notifier, uploader, logging.NewNoOpLogger())
	decision := Decision{SubjectPresent: true}

	// Act: must not panic or propagate
	d.Dispatch(context.Background(), decision, Frame{PNG: []byte("png")})

	// Assert
	assert.Len(t, uploader.uploads, 1)
}
