package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/agristack/farmdash/internal/api/middleware"
	"github.com/agristack/farmdash/internal/bus"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type EventsHandler struct {
	subscriber bus.Subscriber
}

func NewEventsHandler(subscriber bus.Subscriber) *EventsHandler {
	return &EventsHandler{subscriber: subscriber}
}

// Stream relays the caller's company channel as server-sent events. The
// connection stays open until the client goes away or the bus closes.
func (h *EventsHandler) Stream(c *gin.Context) {
	if h.subscriber == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "event stream not configured"})
		return
	}

	companyID := middleware.CompanyID(c)

	events, cancel, err := h.subscriber.Subscribe(c.Request.Context(), companyID)
	if err != nil {
		log.Error().Err(err).Int64("company_id", companyID).Msg("event subscription failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "event subscription failed"})
		return
	}
	defer cancel()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case event, ok := <-events:
			if !ok {
				return false
			}
			payload, err := json.Marshal(event)
			if err != nil {
				log.Warn().Err(err).Msg("unencodable event dropped")
				return true
			}
			c.SSEvent(event.Type, string(payload))
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
