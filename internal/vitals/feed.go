package vitals

import (
	"encoding/json"
	"fmt"
	log "log/slog"
	"sync"
	"time"

	ws "github.com/gorilla/websocket"
)

// Snapshot mirrors one frame of the telemetry feed.
type Snapshot struct {
	TS     int64   `json:"ts"`
	HR     int     `json:"hr"`
	SpO2   int     `json:"spo2"`
	TempC  float64 `json:"temp_c,string"`
	Status string  `json:"status"`
}

func (s Snapshot) String() string {
	return fmt.Sprintf("heart rate %d bpm, SpO2 %d%%, temperature %.1f°C (%s)", s.HR, s.SpO2, s.TempC, s.Status)
}

// Feed keeps the latest vitals snapshot from the telemetry websocket.
// Only the most recent frame is retained; command context is built from it.
type Feed struct {
	url    string
	reconn time.Duration

	mu     sync.Mutex
	conn   *ws.Conn
	latest *Snapshot
	closed bool
}

func NewFeed(url string) *Feed {
	return &Feed{url: url, reconn: 3 * time.Second}
}

// Run connects and consumes frames until Close is called, redialing on
// failure. Meant to run on its own goroutine.
func (f *Feed) Run() {
	for {
		conn, _, err := ws.DefaultDialer.Dial(f.url, nil)
		if err != nil {
			if f.isClosed() {
				return
			}
			log.Warn("vitals feed dial failed", "url", f.url, "err", err)
			time.Sleep(f.reconn)
			continue
		}

		f.mu.Lock()
		if f.closed {
			f.mu.Unlock()
			conn.Close()
			return
		}
		f.conn = conn
		f.mu.Unlock()

		log.Info("vitals feed connected", "url", f.url)
		f.readLoop(conn)

		if f.isClosed() {
			return
		}
		time.Sleep(f.reconn)
	}
}

func (f *Feed) readLoop(conn *ws.Conn) {
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if !f.isClosed() {
				log.Warn("vitals feed read failed", "err", err)
			}
			return
		}

		var snap Snapshot
		if err := json.Unmarshal(msg, &snap); err != nil {
			log.Warn("vitals feed bad frame", "err", err)
			continue
		}

		f.mu.Lock()
		f.latest = &snap
		f.mu.Unlock()
	}
}

// Latest returns the most recent snapshot, if any frame has arrived yet.
func (f *Feed) Latest() (Snapshot, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.latest == nil {
		return Snapshot{}, false
	}
	return *f.latest, true
}

func (f *Feed) Close() {
	f.mu.Lock()
	f.closed = true
	conn := f.conn
	f.conn = nil
	f.mu.Unlock()
	if conn != nil {
		conn.Close()
	}
}

func (f *Feed) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}
