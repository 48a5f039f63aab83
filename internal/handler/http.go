// internal/handler/http.go
package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// MaxImageBytes bounds the multipart body accepted by the caption endpoint.
const MaxImageBytes = 32 << 20

type predictBody struct {
	Description  string   `json:"description"`
	Descriptions []string `json:"descriptions"`
}

type predictReply struct {
	Predictions [][]float32 `json:"predictions"`
}

type captionReply struct {
	Caption string `json:"caption"`
}

type errorReply struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		// NaN or Inf scores have no JSON form.
		code = http.StatusInternalServerError
		body, _ = json.Marshal(errorReply{Error: "failed to encode response: " + err.Error()})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(append(body, '\n'))
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, errorReply{Error: msg})
}

// ServePredict handles POST /predict. The body is {"description": "..."} or
// {"descriptions": ["...", ...]}.
func (h *Handler) ServePredict(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var body predictBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	descriptions := body.Descriptions
	if body.Description != "" {
		descriptions = append([]string{body.Description}, descriptions...)
	}
	if len(descriptions) == 0 {
		writeError(w, http.StatusBadRequest, "No description provided")
		return
	}

	preds, err := h.Predict(r.Context(), descriptions)
	if err != nil {
		writeError(w, httpStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, predictReply{Predictions: preds})
}

// ServeCaption handles POST /caption with a multipart "image" field.
func (h *Handler) ServeCaption(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxImageBytes)
	file, _, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No image part")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unreadable image part")
		return
	}
	c, err := h.CaptionImage(r.Context(), data)
	if err != nil {
		writeError(w, httpStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, captionReply{Caption: c})
}

// Routes registers the HTTP API on mux.
func (h *Handler) Routes(mux *http.ServeMux, wrap func(path string, next http.Handler) http.Handler) {
	if wrap == nil {
		wrap = func(_ string, next http.Handler) http.Handler { return next }
	}
	mux.Handle("/predict", wrap("/predict", http.HandlerFunc(h.ServePredict)))
	mux.Handle("/caption", wrap("/caption", http.HandlerFunc(h.ServeCaption)))
}
