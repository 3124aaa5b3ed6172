package rest

import (
	"errors"
	"net/http"
	"time"

	"github.com/dfryer1193/wpgallery/api"
	"github.com/dfryer1193/wpgallery/gallery/domain"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const (
	contactAnchor = "section-contact"

	contactSent         = "Your query has been successfully sent!"
	contactInvalidEmail = "Please enter a valid email address."
	contactEmptyBody    = "Please enter your query."
	contactFailed       = "There was an issue submitting your query. Please try again later."
)

var errContactDisabled = errors.New("contact form is disabled")

func (s *Site) submitContact(c *gin.Context, form api.ContactProto) (*domain.ContactMessage, error) {
	if s.contact == nil {
		return nil, errContactDisabled
	}
	return s.contact.Submit(c.Request.Context(), form.Email, form.Body)
}

func contactNotice(err error) string {
	switch {
	case err == nil:
		return contactSent
	case errors.Is(err, domain.ErrInvalidEmail):
		return contactInvalidEmail
	case errors.Is(err, domain.ErrEmptyBody):
		return contactEmptyBody
	default:
		return contactFailed
	}
}

// PostContact handles the contact form and reports the result as a notice
// on the contact section.
func (s *Site) PostContact(c *gin.Context) {
	sess := s.session(c)

	var form api.ContactProto
	if err := c.ShouldBind(&form); err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	_, err := s.submitContact(c, form)
	if err != nil && !errors.Is(err, domain.ErrInvalidEmail) && !errors.Is(err, domain.ErrEmptyBody) {
		log.Error().Err(err).Msg("Failed to submit contact form")
	}

	sess.setNotice(contactNotice(err), err != nil)
	sess.doc.ShowSection(domain.SectionContact)
	redirectHome(c, contactAnchor)
}

func (s *Site) PostContactJSON(c *gin.Context) {
	var form api.ContactProto
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, api.Error{Error: "invalid request body"})
		return
	}

	msg, err := s.submitContact(c, form)
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, api.ContactMessage{
			ID:        msg.ID,
			Email:     msg.Email,
			Body:      msg.Body,
			CreatedAt: msg.CreatedAt.Format(time.RFC3339),
		})
	case errors.Is(err, domain.ErrInvalidEmail), errors.Is(err, domain.ErrEmptyBody):
		c.JSON(http.StatusBadRequest, api.Error{Error: contactNotice(err)})
	default:
		log.Error().Err(err).Msg("Failed to submit contact message")
		c.JSON(http.StatusInternalServerError, api.Error{Error: contactNotice(err)})
	}
}
