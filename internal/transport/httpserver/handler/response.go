package handler

import (
	"encoding/json"
	"net/http"
)

// envelope is the uniform response wrapper; the pagination fields only
// appear on paged listings.
type envelope struct {
	Success     bool        `json:"success"`
	Data        interface{} `json:"data,omitempty"`
	Error       string      `json:"error,omitempty"`
	Message     string      `json:"message,omitempty"`
	Token       string      `json:"token,omitempty"`
	Count       *int        `json:"count,omitempty"`
	Total       *int64      `json:"total,omitempty"`
	TotalPages  *int        `json:"totalPages,omitempty"`
	CurrentPage *int        `json:"currentPage,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeData(w http.ResponseWriter, status int, data interface{}) {
	writeJSON(w, status, envelope{Success: true, Data: data})
}

func writeMessage(w http.ResponseWriter, status int, data interface{}, message string) {
	writeJSON(w, status, envelope{Success: true, Data: data, Message: message})
}

func writeList(w http.ResponseWriter, count int, data interface{}) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Count: &count, Data: data})
}

func writePage(w http.ResponseWriter, data interface{}, count int, total int64, totalPages, currentPage int) {
	writeJSON(w, http.StatusOK, envelope{
		Success:     true,
		Count:       &count,
		Total:       &total,
		TotalPages:  &totalPages,
		CurrentPage: &currentPage,
		Data:        data,
	})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Success: false, Error: message})
}

func decodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	return dec.Decode(dst)
}
