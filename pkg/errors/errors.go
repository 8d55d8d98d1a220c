package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeNetwork represents network and navigation errors
	ErrorTypeNetwork ErrorType = "network"
	// ErrorTypeDOM represents selector/element lookup errors on a live page
	ErrorTypeDOM ErrorType = "dom"
	// ErrorTypeData represents malformed or missing page data
	ErrorTypeData ErrorType = "data"
	// ErrorTypeRateLimit represents rate limiting by the source site
	ErrorTypeRateLimit ErrorType = "rate_limit"
	// ErrorTypeBrowser represents browser startup/teardown errors
	ErrorTypeBrowser ErrorType = "browser"
	// ErrorTypeSink represents output sink errors
	ErrorTypeSink ErrorType = "sink"
	// ErrorTypePublisher represents publisher-related errors
	ErrorTypePublisher ErrorType = "publisher"
	// ErrorTypeCache represents cache-related errors
	ErrorTypeCache ErrorType = "cache"
	// ErrorTypeConfiguration represents configuration errors
	ErrorTypeConfiguration ErrorType = "configuration"
)

// ScrapeError represents a scraper-specific error
type ScrapeError struct {
	Type    ErrorType
	Stage   string
	Message string
	Err     error
	Time    time.Time
}

// Error implements the error interface
func (e *ScrapeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %s - %v", e.Type, e.Stage, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Type, e.Stage, e.Message)
}

// Unwrap returns the underlying error
func (e *ScrapeError) Unwrap() error {
	return e.Err
}

// IsRetryable returns true if the error is worth retrying
func (e *ScrapeError) IsRetryable() bool {
	switch e.Type {
	case ErrorTypeNetwork:
		return true
	case ErrorTypeDOM:
		return true
	case ErrorTypeRateLimit:
		return false
	default:
		return false
	}
}

// New creates a new ScrapeError
func New(errType ErrorType, stage, message string, err error) *ScrapeError {
	return &ScrapeError{
		Type:    errType,
		Stage:   stage,
		Message: message,
		Err:     err,
		Time:    time.Now(),
	}
}

// NewNetwork creates a new network error
func NewNetwork(stage, message string, err error) *ScrapeError {
	return New(ErrorTypeNetwork, stage, message, err)
}

// NewDOM creates a new DOM error
func NewDOM(stage, message string, err error) *ScrapeError {
	return New(ErrorTypeDOM, stage, message, err)
}

// NewData creates a new data error
func NewData(stage, message string) *ScrapeError {
	return New(ErrorTypeData, stage, message, nil)
}

// NewRateLimit creates a new rate limit error
func NewRateLimit(stage string, retryAfter string) *ScrapeError {
	message := "rate limited"
	if retryAfter != "" {
		message = fmt.Sprintf("rate limited; retry after %s", retryAfter)
	}
	return New(ErrorTypeRateLimit, stage, message, nil)
}

// NewBrowser creates a new browser error
func NewBrowser(stage, message string, err error) *ScrapeError {
	return New(ErrorTypeBrowser, stage, message, err)
}

// NewSink creates a new sink error
func NewSink(stage, message string, err error) *ScrapeError {
	return New(ErrorTypeSink, stage, message, err)
}

// NewPublisher creates a new publisher error
func NewPublisher(stage, message string, err error) *ScrapeError {
	return New(ErrorTypePublisher, stage, message, err)
}

// NewCache creates a new cache error
func NewCache(stage, message string, err error) *ScrapeError {
	return New(ErrorTypeCache, stage, message, err)
}

// NewConfiguration creates a new configuration error
func NewConfiguration(message string, err error) *ScrapeError {
	return New(ErrorTypeConfiguration, "", message, err)
}

// Retryable reports whether err (or any error it wraps) is retryable.
func Retryable(err error) bool {
	var se *ScrapeError
	if errors.As(err, &se) {
		return se.IsRetryable()
	}
	return false
}

// TypeOf returns the ErrorType of err, or "" for untyped errors.
func TypeOf(err error) ErrorType {
	var se *ScrapeError
	if errors.As(err, &se) {
		return se.Type
	}
	return ""
}
