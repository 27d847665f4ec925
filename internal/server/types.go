package server

import "github.com/raaihank/owoify/pkg/owoify"

// TransformRequest is the body of POST /owoify and of every WebSocket message
type TransformRequest struct {
	Text  string `json:"text"`
	Level string `json:"level,omitempty"`
}

// TransformResponse carries the transformed text
type TransformResponse struct {
	Text  string       `json:"text"`
	Level owoify.Level `json:"level"`
}

// ErrorResponse is returned for any failed request
type ErrorResponse struct {
	Error string `json:"error"`
}

type infoResponse struct {
	Name          string         `json:"name"`
	Version       string         `json:"version"`
	Levels        []owoify.Level `json:"levels"`
	DefaultLevel  owoify.Level   `json:"default_level"`
	Faces         int            `json:"faces"`
	Workers       int            `json:"workers"`
	WebSocket     bool           `json:"websocket"`
	MaxInputBytes int64          `json:"max_input_bytes"`
}
