package sse

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/osse101/CaseSim_Go/internal/logger"
)

// ConnectedPayload is the body of the first event on every stream
type ConnectedPayload struct {
	ClientID string   `json:"client_id"`
	Types    []string `json:"types,omitempty"`
	Resumed  bool     `json:"resumed"`
}

type stream struct {
	w  http.ResponseWriter
	rc *http.ResponseController
}

// send writes one event under WriteTimeout and flushes it
func (s stream) send(e Event) error {
	msg, err := FormatSSEMessage(e)
	if err != nil {
		return err
	}
	if err := s.rc.SetWriteDeadline(time.Now().Add(WriteTimeout)); err != nil && !errors.Is(err, http.ErrNotSupported) {
		return err
	}
	if _, err := s.w.Write(msg); err != nil {
		return err
	}
	return s.rc.Flush()
}

// Handler streams hub events to one client. ?types= takes a comma
// separated filter; the Last-Event-ID header resumes after a reconnect.
func Handler(hub *Hub) http.HandlerFunc {
	return HandlerWithKeepalive(hub, KeepaliveInterval)
}

// HandlerWithKeepalive is Handler with a custom keepalive period
func HandlerWithKeepalive(hub *Hub, keepalive time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var types []string
		if raw := r.URL.Query().Get(QueryParamTypes); raw != "" {
			types = strings.Split(raw, ",")
		}
		lastID := r.Header.Get(HeaderLastEventID)

		h := w.Header()
		h.Set("Content-Type", "text/event-stream")
		h.Set("Cache-Control", "no-cache")
		h.Set("Connection", "keep-alive")
		h.Set("Access-Control-Allow-Origin", "*")
		w.WriteHeader(http.StatusOK)

		s := stream{w: w, rc: http.NewResponseController(w)}

		client := hub.Register(types, lastID)
		log.Info(LogMsgClientConnected,
			"client_id", client.ID,
			"types", types,
			"last_event_id", lastID,
			"total_clients", hub.ClientCount())
		defer func() {
			hub.Unregister(client.ID)
			log.Info(LogMsgClientDisconnected, "client_id", client.ID)
		}()

		hello := Event{
			Type:      EventTypeConnected,
			Timestamp: time.Now().Unix(),
			Payload:   ConnectedPayload{ClientID: client.ID, Types: types, Resumed: lastID != ""},
		}
		if err := s.send(hello); err != nil {
			log.Warn(LogMsgWriteError, "error", err)
			return
		}

		ticker := time.NewTicker(keepalive)
		defer ticker.Stop()

		for {
			select {
			case <-r.Context().Done():
				return

			case e, ok := <-client.EventChannel:
				if !ok {
					return
				}
				if err := s.send(e); err != nil {
					log.Warn(LogMsgWriteError, "error", err, "event_id", e.ID)
					return
				}

			case now := <-ticker.C:
				if err := s.send(Event{Type: EventTypeKeepalive, Timestamp: now.Unix()}); err != nil {
					log.Debug(LogMsgWriteError, "error", err, "client_id", client.ID)
					return
				}
			}
		}
	}
}
