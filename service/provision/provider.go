package provision

import (
	"context"
	"errors"
)

// ErrRefused is returned when the remote provider declines to create a resource
var ErrRefused = errors.New("provider refused request")

// AccountRequest represents remote account creation parameters
type AccountRequest struct {
	ID    string
	Name  string
	Email string
	Plan  string
}

// AccountResponse represents remote account
type AccountResponse struct {
	ID       string `json:"id"`
	APIToken string `json:"api_token"`
	Message  string `json:"message,omitempty"`
}

// LoggerRequest represents remote log destination parameters
type LoggerRequest struct {
	ID        string
	Name      string
	AccountID string
}

// LoggerResponse represents remote log destination
type LoggerResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Syslog struct {
		Hostname string `json:"hostname"`
		Port     int    `json:"port"`
	} `json:"syslog"`
	Message string `json:"message,omitempty"`
}

// Provider creates accounts and log destinations on a remote log service
type Provider interface {
	CreateAccount(ctx context.Context, request *AccountRequest) (*AccountResponse, error)
	CreateLogger(ctx context.Context, request *LoggerRequest) (*LoggerResponse, error)
}
