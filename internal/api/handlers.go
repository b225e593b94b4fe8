// SPDX-License-Identifier: MIT

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ManuGH/biconfig/internal/config"
	"github.com/ManuGH/biconfig/internal/log"
	"github.com/ManuGH/biconfig/internal/version"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": version.Version})
}

// handleListSettings returns every named setting, redacted.
func (s *Server) handleListSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.settings.Redacted())
}

// handleGetSetting returns a single redacted setting or 404 for unknown names.
func (s *Server) handleGetSetting(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	entry, ok := s.registry.ByName[name]
	if !ok {
		logger := log.WithComponentFromContext(r.Context(), "api")
		logger.Debug().
			Str(log.FieldSetting, name).
			Msg("unknown setting requested")
		writeNotFound(w, "unknown setting "+name)
		return
	}
	v, ok := s.settings.Lookup(name)
	if !ok {
		writeNotFound(w, "unknown setting "+name)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"name":  name,
		"value": config.RedactValue(entry, v),
	})
}
