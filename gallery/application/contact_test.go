package application

import (
	"context"
	"testing"
	"time"

	"github.com/dfryer1193/wpgallery/gallery/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"user@example.com", true},
		{"first.last@sub.example.org", true},
		{"user@example", false},
		{"user example@x.com", false},
		{"@example.com", false},
		{"user@@example.com", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateEmail(tt.email))
		})
	}
}

func TestContactService_Submit(t *testing.T) {
	repo := &fakeContactRepo{}
	svc := NewContactService(repo)
	fixed := time.Date(2026, 5, 4, 3, 2, 1, 0, time.UTC)
	svc.now = func() time.Time { return fixed }
	ctx := context.Background()

	_, err := svc.Submit(ctx, "not-an-email", "hello")
	assert.ErrorIs(t, err, domain.ErrInvalidEmail)

	_, err = svc.Submit(ctx, "me@example.com", "   ")
	assert.ErrorIs(t, err, domain.ErrEmptyBody)
	assert.Empty(t, repo.saved)

	msg, err := svc.Submit(ctx, " me@example.com ", "¿Hacéis podas en invierno?")
	require.NoError(t, err)
	assert.Equal(t, int64(1), msg.ID)
	assert.Equal(t, "me@example.com", msg.Email)
	assert.Equal(t, fixed, msg.CreatedAt)

	recent, err := svc.Recent(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, recent, 1)
}

func TestContactService_SubmitStoreFailure(t *testing.T) {
	svc := NewContactService(&fakeContactRepo{saveErr: errFake})

	_, err := svc.Submit(context.Background(), "me@example.com", "hi")
	assert.ErrorIs(t, err, errFake)
}
