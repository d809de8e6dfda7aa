package provision

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// PapertrailConfig represents Papertrail distributor API settings
type PapertrailConfig struct {
	AccountsURL string `json:"accountsURL" yaml:"accountsURL"`
	LoggersURL  string `json:"loggersURL" yaml:"loggersURL"`
	User        string `json:"user" yaml:"user"`
	Password    string `json:"password" yaml:"password"`
	// TimeoutMs bounds each remote call, zero uses DefaultTimeout
	TimeoutMs int `json:"timeoutMs,omitempty" yaml:"timeoutMs,omitempty"`
}

// DefaultTimeout bounds remote calls when no timeout is configured
const DefaultTimeout = 10 * time.Second

// Timeout returns the remote call timeout
func (c *PapertrailConfig) Timeout() time.Duration {
	if c == nil || c.TimeoutMs <= 0 {
		return DefaultTimeout
	}
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

// PapertrailProvider posts form encoded requests to the Papertrail distributor API
type PapertrailProvider struct {
	config *PapertrailConfig
	client *http.Client
}

// CreateAccount creates a remote account
func (p *PapertrailProvider) CreateAccount(ctx context.Context, request *AccountRequest) (*AccountResponse, error) {
	form := url.Values{}
	form.Set("id", request.ID)
	form.Set("name", request.Name)
	form.Set("plan", request.Plan)
	form.Set("user[id]", request.Name)
	form.Set("user[email]", request.Email)
	ret := &AccountResponse{}
	if err := p.post(ctx, p.config.AccountsURL, form, ret); err != nil {
		return nil, err
	}
	if ret.ID == "" || ret.APIToken == "" {
		return nil, fmt.Errorf("%w: %v", ErrRefused, ret.Message)
	}
	return ret, nil
}

// CreateLogger creates a remote log destination
func (p *PapertrailProvider) CreateLogger(ctx context.Context, request *LoggerRequest) (*LoggerResponse, error) {
	form := url.Values{}
	form.Set("id", request.ID)
	form.Set("name", request.Name)
	form.Set("account_id", request.AccountID)
	ret := &LoggerResponse{}
	if err := p.post(ctx, p.config.LoggersURL, form, ret); err != nil {
		return nil, err
	}
	if ret.ID == "" {
		return nil, fmt.Errorf("%w: %v", ErrRefused, ret.Message)
	}
	return ret, nil
}

func (p *PapertrailProvider) post(ctx context.Context, URL string, form url.Values, target interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, URL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build request %v: %w", URL, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if p.config.User != "" {
		req.SetBasicAuth(p.config.User, p.config.Password)
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to post %v: %w", URL, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response %v: %w", URL, err)
	}
	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("failed to post %v: status %v", URL, resp.StatusCode)
	}
	if err = json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("failed to decode response %v: %w", URL, err)
	}
	return nil
}

// NewPapertrailProvider creates a provider, nil client uses a client bounded by config timeout
func NewPapertrailProvider(config *PapertrailConfig, client *http.Client) *PapertrailProvider {
	if client == nil {
		client = &http.Client{Timeout: config.Timeout()}
	}
	return &PapertrailProvider{config: config, client: client}
}
