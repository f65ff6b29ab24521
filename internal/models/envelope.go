package models

import (
	"encoding/json"
	"time"
)

// Message types carried in MessageEnvelope.Type
const (
	TypeRequest  = "request"
	TypeResponse = "response"
	TypeEvent    = "event"
)

// Error codes follow the JSON-RPC reserved range
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
)

// MessageEnvelope is the top-level message structure for all communications
type MessageEnvelope struct {
	Type     string    `json:"type"` // "request", "response", or "event"
	Request  *Request  `json:"request,omitempty"`
	Response *Response `json:"response,omitempty"`
	Event    *Event    `json:"event,omitempty"`
}

// Request represents an RPC request
type Request struct {
	ID     string                 `json:"id"`
	Method string                 `json:"method"`
	Params map[string]interface{} `json:"params"`
}

// Response represents an RPC response
type Response struct {
	ID     string                 `json:"id"`
	Result map[string]interface{} `json:"result,omitempty"`
	Error  *ErrorInfo             `json:"error,omitempty"`
}

// ErrorInfo represents an error in a response
type ErrorInfo struct {
	Code    int                    `json:"code"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data,omitempty"`
}

// Event represents an asynchronous event from the server
type Event struct {
	EventType string                 `json:"eventType"`
	Data      map[string]interface{} `json:"data"`
	Timestamp time.Time              `json:"timestamp"`
}

// NewRequest creates a new request envelope
func NewRequest(id, method string, params map[string]interface{}) *MessageEnvelope {
	return &MessageEnvelope{
		Type: TypeRequest,
		Request: &Request{
			ID:     id,
			Method: method,
			Params: params,
		},
	}
}

// NewResponse creates a successful response envelope
func NewResponse(id string, result map[string]interface{}) *MessageEnvelope {
	return &MessageEnvelope{
		Type: TypeResponse,
		Response: &Response{
			ID:     id,
			Result: result,
		},
	}
}

// NewErrorResponse creates an error response envelope
func NewErrorResponse(id string, code int, message string) *MessageEnvelope {
	return &MessageEnvelope{
		Type: TypeResponse,
		Response: &Response{
			ID:    id,
			Error: &ErrorInfo{Code: code, Message: message},
		},
	}
}

// IsError returns true if the response contains an error
func (r *Response) IsError() bool {
	return r.Error != nil
}

// GetError returns the error message if present
func (r *Response) GetError() string {
	if r.Error != nil {
		return r.Error.Message
	}
	return ""
}

// Decode converts a loosely typed result map into a struct
func Decode(result map[string]interface{}, out interface{}) error {
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

// Encode converts a struct into a loosely typed result map
func Encode(v interface{}) (map[string]interface{}, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out map[string]interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}
