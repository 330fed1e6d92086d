package rest

import (
	"encoding/json"
	"net/http"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeNotFound(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusNotFound, messageOnly{Message: message})
}

func writeConflict(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusConflict, messageOnly{Message: message})
}

func writeBadRequest(w http.ResponseWriter, message, cause string) {
	writeJSON(w, http.StatusBadRequest, messageWithCause{Message: message, Cause: cause})
}

func writeInternalError(w http.ResponseWriter) {
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
