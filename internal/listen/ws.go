package listen

import (
	"encoding/json"
	"errors"
	"fmt"
	log "log/slog"
	"sync"

	ws "github.com/gorilla/websocket"
)

// HubSource streams recognition results from the transcript hub over a
// websocket. The hub does the actual capture and speech recognition; this
// side only sees text frames.
type HubSource struct {
	url string

	mu      sync.Mutex
	conn    *ws.Conn
	running bool
}

type hubFrame struct {
	Text  string `json:"text"`
	Final bool   `json:"final"`
	Error string `json:"error,omitempty"`
}

func NewHubSource(url string) *HubSource {
	return &HubSource{url: url}
}

func (h *HubSource) Start(ev Events) error {
	h.mu.Lock()
	if h.running {
		h.mu.Unlock()
		return ErrAlreadyStarted
	}

	conn, _, err := ws.DefaultDialer.Dial(h.url, nil)
	if err != nil {
		h.mu.Unlock()
		return fmt.Errorf("dial transcript hub: %w", err)
	}
	h.conn = conn
	h.running = true
	h.mu.Unlock()

	log.Debug("transcript hub connected", "url", h.url)
	go h.readLoop(conn, ev)
	return nil
}

func (h *HubSource) Stop() error {
	h.mu.Lock()
	conn := h.conn
	h.conn = nil
	h.running = false
	h.mu.Unlock()

	if conn != nil {
		return conn.Close()
	}
	return nil
}

func (h *HubSource) readLoop(conn *ws.Conn, ev Events) {
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			h.mu.Lock()
			requested := !h.running
			h.running = false
			h.conn = nil
			h.mu.Unlock()

			if requested {
				// Stop() closed the socket; not an unsolicited end.
				return
			}
			if !wsIsClosed(err) && ev.OnError != nil {
				ev.OnError(fmt.Errorf("hub read: %w", err))
			}
			if ev.OnEnd != nil {
				ev.OnEnd()
			}
			return
		}

		var frame hubFrame
		if err := json.Unmarshal(msg, &frame); err != nil {
			log.Warn("bad hub frame", "err", err)
			continue
		}

		if frame.Error != "" {
			if ev.OnError != nil {
				ev.OnError(errors.New(frame.Error))
			}
			continue
		}
		if ev.OnResult != nil {
			ev.OnResult(frame.Text, frame.Final)
		}
	}
}

func wsIsClosed(err error) bool {
	return ws.IsCloseError(err,
		ws.CloseNormalClosure,
		ws.CloseGoingAway,
		ws.CloseAbnormalClosure)
}
