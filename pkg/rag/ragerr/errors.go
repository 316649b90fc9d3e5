package ragerr

import "fmt"

// ConfigurationError signals that a composer or session was assembled with
// missing prompt material. It is fatal: the session cannot be created.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid prompt configuration: %s", e.Reason)
}

// NoDocumentsError signals that a document scope resolved to zero chunks at
// session setup.
type NoDocumentsError struct {
	ProcessingID string
}

func (e *NoDocumentsError) Error() string {
	return fmt.Sprintf("no document chunks found for processing_id %s", e.ProcessingID)
}

// BotNotFoundError signals a template lookup miss for the given bot.
type BotNotFoundError struct {
	BotID string
}

func (e *BotNotFoundError) Error() string {
	return fmt.Sprintf("bot %s not found", e.BotID)
}

// SessionNotFoundError signals a query or delete against an unknown session key.
type SessionNotFoundError struct {
	SessionID string
}

func (e *SessionNotFoundError) Error() string {
	return fmt.Sprintf("session %s not found", e.SessionID)
}

// UpstreamError wraps a retrieval-index or completion-service failure. These
// are attempted exactly once per request and surfaced to the caller.
type UpstreamError struct {
	Service string
	Err     error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s request failed: %v", e.Service, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
