package websocket

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"signalcipher-backend/internal/domain"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for now
	},
}

// Handler streams the latest scan snapshot to connected clients.
type Handler struct {
	repo     domain.ScanRepository
	interval time.Duration
	log      zerolog.Logger
}

func NewHandler(repo domain.ScanRepository, interval time.Duration, log zerolog.Logger) *Handler {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &Handler{
		repo:     repo,
		interval: interval,
		log:      log.With().Str("component", "ws").Logger(),
	}
}

func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("upgrade failed")
		return
	}
	defer conn.Close()

	h.log.Debug().Str("remote", r.RemoteAddr).Msg("client connected")

	// Send the current snapshot immediately so clients never wait a
	// full interval for their first frame.
	if err := conn.WriteJSON(h.repo.GetResults()); err != nil {
		h.log.Debug().Err(err).Msg("write failed")
		return
	}

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
			if err := conn.WriteJSON(h.repo.GetResults()); err != nil {
				h.log.Debug().Err(err).Msg("write failed")
				return
			}
		}
	}
}
