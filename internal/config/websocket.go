package config

import (
	"net/http"
	"os"
	"strings"

	"github.com/gorilla/websocket"
)

// AllowedOrigins reads the comma-separated WS_ALLOWED_ORIGINS list. Nil
// means any origin.
func AllowedOrigins() []string {
	origins, ok := os.LookupEnv("WS_ALLOWED_ORIGINS")
	if !ok || strings.TrimSpace(origins) == "" {
		return nil
	}
	var res []string
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			res = append(res, o)
		}
	}
	return res
}

type WebSocket struct {
	Upgrader websocket.Upgrader
}

func NewWebSocket() (*WebSocket, error) {
	var allowed map[string]bool
	if origins := AllowedOrigins(); origins != nil {
		allowed = make(map[string]bool, len(origins))
		for _, o := range origins {
			allowed[o] = true
		}
	}

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			if allowed == nil {
				return true
			}
			return allowed[r.Header.Get("Origin")]
		},
	}

	ws := &WebSocket{
		Upgrader: upgrader,
	}

	return ws, nil
}
