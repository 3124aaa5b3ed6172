package http

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/dfryer1193/wpgallery/api"
	"github.com/dfryer1193/wpgallery/gallery/domain"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const (
	SignatureHeader = "X-Gallery-Signature"
	signaturePrefix = "sha256="
	maxPayloadBytes = 1 << 20
)

var errInvalidSignature = errors.New("invalid signature")

// WebhookHandler purges cached media when WordPress reports a change.
type WebhookHandler struct {
	webhookSecret []byte
	cache         domain.MediaCache
}

func NewWebhookHandler(secret string, cache domain.MediaCache) (*WebhookHandler, error) {
	if secret == "" {
		return nil, errors.New("webhook secret is not set")
	}
	if cache == nil {
		return nil, errors.New("webhook needs a media cache")
	}

	return &WebhookHandler{
		webhookSecret: []byte(secret),
		cache:         cache,
	}, nil
}

func (h *WebhookHandler) RegisterRoutes(r gin.IRoutes) {
	r.POST("/webhook/media", h.HandleMediaWebhook)
}

func (h *WebhookHandler) HandleMediaWebhook(c *gin.Context) {
	payload, err := h.validatePayload(c.Request)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.Error{Error: "Invalid payload"})
		return
	}

	var purge api.MediaPurge
	if err := json.Unmarshal(payload, &purge); err != nil {
		c.JSON(http.StatusBadRequest, api.Error{Error: "Invalid event"})
		return
	}

	ids := purge.IDs
	if purge.ID > 0 {
		ids = append(ids, purge.ID)
	}
	if len(ids) == 0 {
		c.JSON(http.StatusBadRequest, api.Error{Error: "No media ids"})
		return
	}

	for _, id := range ids {
		if err := h.cache.DeleteMedia(c.Request.Context(), id); err != nil {
			log.Error().Err(err).Int("media_id", id).Msg("Failed to purge cached media")
			c.JSON(http.StatusInternalServerError, api.Error{Error: "Error handling event"})
			return
		}
	}

	log.Info().Ints("media_ids", ids).Msg("Purged cached media")
	c.Status(http.StatusNoContent)
}

// validatePayload reads the body and checks its HMAC-SHA256 signature.
func (h *WebhookHandler) validatePayload(r *http.Request) ([]byte, error) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxPayloadBytes))
	if err != nil {
		return nil, err
	}

	sig, ok := strings.CutPrefix(r.Header.Get(SignatureHeader), signaturePrefix)
	if !ok {
		return nil, errInvalidSignature
	}
	got, err := hex.DecodeString(sig)
	if err != nil {
		return nil, errInvalidSignature
	}
	if !hmac.Equal(got, Sign(h.webhookSecret, payload)) {
		return nil, errInvalidSignature
	}
	return payload, nil
}

// Sign returns the HMAC-SHA256 of payload under secret.
func Sign(secret []byte, payload []byte) []byte {
	mac := hmac.New(sha256.New, secret)
	mac.Write(payload)
	return mac.Sum(nil)
}
