package domain

import "time"

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventRequestIssued    EventType = "RequestIssued"
	EventResponseReceived EventType = "ResponseReceived"
	EventRequestFailed    EventType = "RequestFailed"
	EventConfigLoaded     EventType = "ConfigLoaded"
	EventConfigSaved      EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// RequestIssuedEvent is emitted when the driver starts a request
type RequestIssuedEvent struct {
	Request RequestDescriptor
}

func (e RequestIssuedEvent) Type() EventType { return EventRequestIssued }

// ResponseReceivedEvent is emitted when a request completes successfully
type ResponseReceivedEvent struct {
	Request    RequestDescriptor
	StatusCode int
	Duration   time.Duration
}

func (e ResponseReceivedEvent) Type() EventType { return EventResponseReceived }

// RequestFailedEvent is emitted when a request fails at any stage
// (transport, non-2xx status, undecodable body)
type RequestFailedEvent struct {
	Request  RequestDescriptor
	Err      error
	Duration time.Duration
}

func (e RequestFailedEvent) Type() EventType { return EventRequestFailed }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
