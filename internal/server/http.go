package server

import (
	"encoding/json"
	"net/http"

	"github.com/zeusync/colony/internal/core/observability/log"
)

func (f *Feed) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var body any
	if f.status != nil {
		body = f.status()
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(body); err != nil {
		f.logger.Warn("status encode failed", log.Error(err))
	}
}
