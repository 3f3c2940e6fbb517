package api

import (
	"encoding/json"
	"net/http"
	"time"
)

// ResponseModel is the envelope every endpoint answers with.
type ResponseModel struct {
	Code        int    `json:"code"`
	CurrentTime int64  `json:"currentTime"`
	Data        any    `json:"data,omitempty"`
	Text        string `json:"text"`
	Version     int    `json:"version"`
}

const responseVersion = 1

func currentTime() int64 {
	return time.Now().UnixMilli()
}

func (api *API) writeJSON(w http.ResponseWriter, r *http.Request, code int, data any, text string) {
	response := ResponseModel{
		Code:        code,
		CurrentTime: currentTime(),
		Data:        data,
		Text:        text,
		Version:     responseVersion,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		api.logger(r).Error("failed to encode response", "error", err, "path", r.URL.Path)
	}
}

func (api *API) ok(w http.ResponseWriter, r *http.Request, data any) {
	api.writeJSON(w, r, http.StatusOK, data, "OK")
}

func (api *API) badRequest(w http.ResponseWriter, r *http.Request, text string) {
	api.writeJSON(w, r, http.StatusBadRequest, nil, text)
}

func (api *API) notFound(w http.ResponseWriter, r *http.Request, text string) {
	api.writeJSON(w, r, http.StatusNotFound, nil, text)
}

func (api *API) serverError(w http.ResponseWriter, r *http.Request, err error) {
	api.logger(r).Error("request failed", "error", err, "path", r.URL.Path)
	api.writeJSON(w, r, http.StatusInternalServerError, nil, "internal server error")
}
