package web

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/slide-arcade/internal/config"
	"github.com/vovakirdan/slide-arcade/internal/games/sliding"
	"github.com/vovakirdan/slide-arcade/internal/storage"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Client message types.
const (
	MsgTap         = "tap"
	MsgTouchStart  = "touchstart"
	MsgTouchMove   = "touchmove"
	MsgTouchEnd    = "touchend"
	MsgTouchCancel = "touchcancel"
	MsgReset       = "reset"
)

// ClientMessage is one input event from the browser. Coordinates are in
// CSS pixels; touchend may omit them when the pointer left the page.
type ClientMessage struct {
	Type  string   `json:"type"`
	Index *int     `json:"index,omitempty"`
	X     *float64 `json:"x,omitempty"`
	Y     *float64 `json:"y,omitempty"`
}

// ServerMessage is a board state or an error for the browser.
type ServerMessage struct {
	Type string `json:"type"` // "state" or "error"
	*sliding.Snapshot
	Error string `json:"error,omitempty"`
}

// session is one browser connection playing its own puzzle.
// All game access happens on the read goroutine.
type session struct {
	conn    *websocket.Conn
	send    chan []byte
	mgr     *sliding.Manager
	gesture *sliding.Interpreter
	unsub   func()

	player  string
	store   storage.ResultSaver
	logger  *log.Logger
	started time.Time
	saved   bool
}

func newSession(conn *websocket.Conn, cfg config.SlidingConfig, seed int64, player string, store storage.ResultSaver, logger *log.Logger) *session {
	rng := rand.New(rand.NewSource(seed))
	s := &session{
		conn:    conn,
		send:    make(chan []byte, 256),
		mgr:     sliding.NewManager(rng, cfg.Board.Size, cfg.Board.ShuffleMoves),
		gesture: sliding.NewInterpreter(cfg.Gesture.MinSwipe, cfg.Gesture.MaxDrag),
		player:  player,
		store:   store,
		logger:  logger.With("player", player),
		started: time.Now(),
	}
	s.unsub = s.mgr.Subscribe(s.onChange)
	s.pushState()
	return s
}

// onChange runs after every accepted move or reset.
func (s *session) onChange(state sliding.State) {
	if state.Won && !s.saved {
		s.saved = true
		s.saveResult(state)
	}
	s.pushState()
}

func (s *session) saveResult(state sliding.State) {
	if s.store == nil {
		return
	}
	r := storage.Result{
		GameID:   sliding.GameID,
		Player:   s.player,
		Moves:    state.Moves,
		Duration: time.Since(s.started),
	}
	if _, err := s.store.SaveResult(r); err != nil {
		s.logger.Warn("could not save result", "error", err)
		return
	}
	s.logger.Info("puzzle solved", "moves", r.Moves, "duration", r.Duration.Round(time.Second))
}

// handle applies one client message. It returns false for malformed input.
func (s *session) handle(msg ClientMessage) bool {
	switch msg.Type {
	case MsgTap:
		if msg.Index == nil {
			return false
		}
		s.mgr.Apply(*msg.Index)

	case MsgTouchStart:
		if msg.Index == nil || msg.X == nil || msg.Y == nil {
			return false
		}
		if s.gesture.Start(s.mgr.Snapshot(), *msg.Index, *msg.X, *msg.Y) {
			s.pushState()
		}

	case MsgTouchMove:
		if msg.X == nil || msg.Y == nil {
			return false
		}
		if _, ok := s.gesture.Update(s.mgr.Snapshot(), *msg.X, *msg.Y); ok {
			s.pushState()
		}

	case MsgTouchEnd:
		var res sliding.Result
		if msg.X != nil && msg.Y != nil {
			res = s.gesture.Finish(s.mgr, *msg.X, *msg.Y)
		} else {
			res = s.gesture.FinishAtLast(s.mgr)
		}
		// An accepted move already pushed through onChange.
		if !res.Accepted() && res.Reason != sliding.ReasonNoSession {
			s.pushState()
		}

	case MsgTouchCancel:
		if s.gesture.Active() {
			s.gesture.Cancel()
			s.pushState()
		}

	case MsgReset:
		s.gesture.Cancel()
		s.started = time.Now()
		s.saved = false
		s.mgr.Reset()

	default:
		return false
	}
	return true
}

func (s *session) pushState() {
	snap := sliding.NewSnapshot(s.mgr.Snapshot(), s.gesture)
	s.write(ServerMessage{Type: "state", Snapshot: &snap})
}

func (s *session) pushError(text string) {
	s.write(ServerMessage{Type: "error", Error: text})
}

func (s *session) write(msg ServerMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		s.logger.Error("cannot encode message", "error", err)
		return
	}
	select {
	case s.send <- data:
	default:
		s.logger.Warn("send buffer full, dropping message")
	}
}

// readPump reads client messages until the connection closes.
func (s *session) readPump() {
	defer func() {
		s.unsub()
		close(s.send)
		s.conn.Close()
	}()

	s.conn.SetReadLimit(maxMessageSize)
	s.conn.SetReadDeadline(time.Now().Add(pongWait)) //nolint:errcheck
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				s.logger.Warn("websocket error", "error", err)
			}
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			s.pushError("malformed message")
			continue
		}
		if !s.handle(msg) {
			s.pushError("unsupported message: " + msg.Type)
		}
	}
}

// writePump sends queued messages and keeps the connection alive with pings.
func (s *session) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.conn.Close()
	}()

	for {
		select {
		case message, ok := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait)) //nolint:errcheck
			if !ok {
				s.conn.WriteMessage(websocket.CloseMessage, []byte{}) //nolint:errcheck
				return
			}
			if err := s.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait)) //nolint:errcheck
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
