package response

import (
	"encoding/json"
	"net/http"
)

const ContentType = "application/json"

// Message is the envelope for every response that is not a user or a list.
type Message struct {
	Message string `json:"message"`
}

func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", ContentType)
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func Envelope(w http.ResponseWriter, code int, msg string) {
	JSON(w, code, Message{Message: msg})
}
