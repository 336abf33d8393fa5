package http

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/catalog-service/internal/domain/dto"
	"github.com/guttosm/catalog-service/internal/events"
	"github.com/guttosm/catalog-service/internal/i18n"
	"github.com/guttosm/catalog-service/internal/metrics"
)

const (
	defaultStreamBuffer    = 64
	defaultStreamHeartbeat = 15 * time.Second
)

// EventsHandler exposes the notification bus over HTTP: UI consumers publish
// selection events and follow every bus event through server-sent events.
type EventsHandler struct {
	bus       *events.Bus
	buffer    int
	heartbeat time.Duration

	done      chan struct{}
	closeOnce sync.Once
}

// EventsHandlerOption configures an EventsHandler.
type EventsHandlerOption func(*EventsHandler)

// WithStreamBuffer sets the per-connection event buffer.
func WithStreamBuffer(n int) EventsHandlerOption {
	return func(h *EventsHandler) {
		if n > 0 {
			h.buffer = n
		}
	}
}

// WithHeartbeat sets the interval of keep-alive frames on idle streams.
func WithHeartbeat(d time.Duration) EventsHandlerOption {
	return func(h *EventsHandler) {
		if d > 0 {
			h.heartbeat = d
		}
	}
}

// NewEventsHandler creates an EventsHandler publishing to and reading from bus.
func NewEventsHandler(bus *events.Bus, opts ...EventsHandlerOption) *EventsHandler {
	h := &EventsHandler{
		bus:       bus,
		buffer:    defaultStreamBuffer,
		heartbeat: defaultStreamHeartbeat,
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Close ends every open stream. Server shutdown does not cancel the context
// of long-lived requests, so the app calls this before shutting down.
func (h *EventsHandler) Close() {
	h.closeOnce.Do(func() { close(h.done) })
}

// Publish handles POST /api/events.
//
// @Summary      Publish a UI event
// @Description  Publishes CATEGORY_SELECTED or COURSE_SELECTED on the notification bus. Data-layer events cannot be published by clients.
// @Tags         Events
// @Accept       json
// @Produce      json
// @Param        request body dto.PublishEventRequest true "Selection event"
// @Success      202 {object} dto.SuccessResponse "Event published"
// @Failure      400 {object} dto.ErrorResponse "Bad request - unsupported event or missing id"
// @Router       /api/events [post]
func (h *EventsHandler) Publish(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequestAndValidate[dto.PublishEventRequest](c)
	if err != nil {
		key := i18n.ErrKeyInvalidRequestBody
		var validationErr *dto.ValidationError
		if errors.As(err, &validationErr) && validationErr == dto.ErrUnsupportedEvent {
			key = i18n.ErrKeyUnsupportedEvent
		}
		builder.Error(http.StatusBadRequest, key, err)
		return
	}

	name := events.Name(req.Event)
	var payload interface{}
	switch name {
	case events.CategorySelected:
		payload = events.CategorySelectedPayload{CategoryID: strings.TrimSpace(req.CategoryID)}
	default:
		payload = events.CourseSelectedPayload{CourseID: strings.TrimSpace(req.CourseID)}
	}

	h.bus.Publish(c.Request.Context(), name, payload)

	message := i18n.GetTranslator().Translate(i18n.SuccessKeyEventPublished, i18n.GetLocale(c))
	builder.SuccessAccepted(gin.H{"event": name, "message": message})
}

// Stream handles GET /api/events/stream.
//
// @Summary      Follow bus events
// @Description  Server-sent event stream mirroring the notification bus. Each frame's event field is the bus event name. DATA_LOADED frames omit the loaded data.
// @Tags         Events
// @Produce      text/event-stream
// @Param        events query string false "Comma separated event names (default: all)"
// @Success      200 {string} string "text/event-stream"
// @Failure      400 {object} dto.ErrorResponse "Unknown event name"
// @Router       /api/events/stream [get]
func (h *EventsHandler) Stream(c *gin.Context) {
	names, err := parseEventNames(c.Query("events"))
	if err != nil {
		NewResponseBuilder(c).Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequest, err)
		return
	}

	stream := h.bus.NewStream(h.buffer, names...)
	metrics.StreamOpened()
	defer func() {
		stream.Close()
		metrics.StreamClosed(stream.Dropped())
	}()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	// clients see the stream as open before the first event arrives
	c.Status(http.StatusOK)
	c.Writer.Flush()

	heartbeat := time.NewTicker(h.heartbeat)
	defer heartbeat.Stop()

	ctx := c.Request.Context()
	c.Stream(func(_ io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case <-h.done:
			return false
		case evt := <-stream.Events():
			c.SSEvent(string(evt.Name), streamView(evt))
			return true
		case <-heartbeat.C:
			c.SSEvent("heartbeat", gin.H{"time": time.Now().UTC()})
			return true
		}
	})
}

// streamView drops the loaded data from DATA_LOADED events; stream clients
// only need to know that a resource changed.
func streamView(evt events.Event) events.Event {
	if p, ok := evt.Payload.(events.DataLoadedPayload); ok {
		p.Data = nil
		evt.Payload = p
	}
	return evt
}

func parseEventNames(raw string) ([]events.Name, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var names []events.Name
	for _, part := range strings.Split(raw, ",") {
		name := events.Name(strings.ToUpper(strings.TrimSpace(part)))
		if name == "" {
			continue
		}
		if !events.Known(name) {
			return nil, &dto.ValidationError{Field: "events", Message: "unknown event " + string(name)}
		}
		names = append(names, name)
	}
	return names, nil
}
