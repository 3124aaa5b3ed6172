package application

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/dfryer1193/wpgallery/gallery/domain"
	"github.com/rs/zerolog/log"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateEmail reports whether email looks like user@host.tld.
func ValidateEmail(email string) bool {
	return emailRegex.MatchString(email)
}

type ContactService struct {
	repo domain.ContactRepository
	now  func() time.Time
}

func NewContactService(repo domain.ContactRepository) *ContactService {
	return &ContactService{repo: repo, now: time.Now}
}

// Submit validates and stores a contact-form query.
func (s *ContactService) Submit(ctx context.Context, email string, body string) (*domain.ContactMessage, error) {
	email = strings.TrimSpace(email)
	if !ValidateEmail(email) {
		return nil, domain.ErrInvalidEmail
	}
	if strings.TrimSpace(body) == "" {
		return nil, domain.ErrEmptyBody
	}

	msg := &domain.ContactMessage{
		Email:     email,
		Body:      body,
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.SaveMessage(ctx, msg); err != nil {
		return nil, fmt.Errorf("could not store contact message: %w", err)
	}

	log.Info().Int64("id", msg.ID).Str("email", email).Msg("Contact message received")
	return msg, nil
}

// Recent returns the newest stored messages.
func (s *ContactService) Recent(ctx context.Context, limit int) ([]*domain.ContactMessage, error) {
	return s.repo.ListMessages(ctx, limit, 0)
}
