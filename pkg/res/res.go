package res

import (
	"encoding/json"
	"net/http"
)

// ErrorBody is the envelope every non-2xx response carries.
type ErrorBody struct {
	Error string `json:"error"`
}

func Json(w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

func Error(w http.ResponseWriter, msg string, statusCode int) {
	Json(w, ErrorBody{Error: msg}, statusCode)
}
