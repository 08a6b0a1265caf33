// Package emailjs dispatches verification emails through the EmailJS
// REST API. Dispatch is best-effort: an unconfigured provider logs the
// verification link instead of failing the signup flow.
package emailjs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cccteam/logger"
	"github.com/go-playground/errors/v5"
)

const defaultEndpoint = "https://api.emailjs.com/api/v1.0/email/send"

// Config identifies the EmailJS service, template, and account.
type Config struct {
	ServiceID  string
	TemplateID string
	PublicKey  string
}

// Option configures a Client.
type Option func(*Client)

// WithEndpoint overrides the EmailJS API endpoint. Test hook.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		c.endpoint = endpoint
	}
}

// WithHTTPClient overrides the HTTP client used for dispatch.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// Client sends verification emails.
type Client struct {
	cfg        Config
	endpoint   string
	httpClient *http.Client
}

// NewClient creates a Client. An incomplete Config is allowed; dispatch
// then degrades to logging the verification link.
func NewClient(cfg Config, options ...Option) *Client {
	c := &Client{
		cfg:        cfg,
		endpoint:   defaultEndpoint,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range options {
		opt(c)
	}

	return c
}

// Configured reports whether all provider identifiers are present.
func (c *Client) Configured() bool {
	return c.cfg.ServiceID != "" && c.cfg.TemplateID != "" && c.cfg.PublicKey != ""
}

// SendVerification emails the verification link for token to the given
// address. baseURL is the public origin the link is built on. When the
// provider is not configured the link is logged and nil is returned; a
// failed dispatch logs the link as well so the flow is recoverable, but
// the error propagates.
func (c *Client) SendVerification(ctx context.Context, to, baseURL, token string) error {
	verifyLink := fmt.Sprintf("%s/verify?e=%s&t=%s", strings.TrimRight(baseURL, "/"), url.QueryEscape(to), url.QueryEscape(token))

	if !c.Configured() {
		logger.Ctx(ctx).Infof("email dispatch not configured; verification link for %s: %s", to, verifyLink)

		return nil
	}

	payload := struct {
		ServiceID      string `json:"service_id"`
		TemplateID     string `json:"template_id"`
		UserID         string `json:"user_id"`
		TemplateParams struct {
			ToEmail    string `json:"to_email"`
			VerifyLink string `json:"verify_link"`
			Token      string `json:"token"`
		} `json:"template_params"`
	}{
		ServiceID:  c.cfg.ServiceID,
		TemplateID: c.cfg.TemplateID,
		UserID:     c.cfg.PublicKey,
	}
	payload.TemplateParams.ToEmail = to
	payload.TemplateParams.VerifyLink = verifyLink
	payload.TemplateParams.Token = token

	body, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "json.Marshal()")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "http.NewRequestWithContext()")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Ctx(ctx).Infof("email dispatch failed; verification link for %s: %s", to, verifyLink)

		return errors.Wrap(err, "http.Client.Do()")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Ctx(ctx).Infof("email dispatch failed; verification link for %s: %s", to, verifyLink)

		return errors.Newf("emailjs: unexpected status %d", resp.StatusCode)
	}

	logger.Ctx(ctx).Infof("verification email sent to %s", to)

	return nil
}
