// Package http provides HTTP server and handler implementations.
//
// This file implements the Builder Pattern for constructing JSON responses so
// every API endpoint shares content type, caching and error body format.

package http

import (
	"encoding/json"
	"net/http"
)

// JSONResponseBuilder provides a fluent API for building JSON responses.
type JSONResponseBuilder struct {
	statusCode int
	headers    map[string]string
}

// ErrorBody is the payload of every non-2xx API response.
type ErrorBody struct {
	Error string `json:"error"`
}

// NewJSONResponse creates a new response builder with default 200 status.
func NewJSONResponse() *JSONResponseBuilder {
	return &JSONResponseBuilder{
		statusCode: http.StatusOK,
		headers:    make(map[string]string),
	}
}

// Status sets the HTTP status code for the response.
func (b *JSONResponseBuilder) Status(code int) *JSONResponseBuilder {
	b.statusCode = code
	return b
}

// Header adds a custom header to the response.
func (b *JSONResponseBuilder) Header(name, value string) *JSONResponseBuilder {
	b.headers[name] = value
	return b
}

// Write encodes v as the response body.
func (b *JSONResponseBuilder) Write(w http.ResponseWriter, v any) error {
	h := w.Header()
	h.Set("Content-Type", "application/json; charset=utf-8")
	h.Set("Cache-Control", "no-store")
	for name, value := range b.headers {
		h.Set(name, value)
	}
	w.WriteHeader(b.statusCode)
	return json.NewEncoder(w).Encode(v)
}

// WriteJSON sends v with status 200.
func WriteJSON(w http.ResponseWriter, v any) error {
	return NewJSONResponse().Write(w, v)
}

// WriteError sends {"error": message} with the given status.
func WriteError(w http.ResponseWriter, statusCode int, message string) {
	_ = NewJSONResponse().Status(statusCode).Write(w, ErrorBody{Error: message})
}
