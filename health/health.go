package health

import (
	"encoding/json"
	"net/http"
)

// Status represents a service health status
type Status struct {
	Status string `json:"status"`
}

// NewStatus creates a health status for a named service
func NewStatus(name string) *Status {
	return &Status{Status: name + " Service is healthy"}
}

// Write writes a health status response, it never depends on upstream availability
func Write(writer http.ResponseWriter, name string) {
	data, err := json.Marshal(NewStatus(name))
	if err != nil {
		http.Error(writer, err.Error(), http.StatusInternalServerError)
		return
	}
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(http.StatusOK)
	writer.Write(data)
}

// Handler returns a health check handler for a named service
func Handler(name string) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		Write(writer, name)
	}
}
