package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const deviceCodeGrantType = "urn:ietf:params:oauth:grant-type:device_code"

var ErrDeviceFlowTimeout = errors.New("timed out waiting for device authorization")

// DeviceFlow signs in from terminals that cannot receive a loopback redirect.
type DeviceFlow struct {
	DeviceCodeURL  string
	TokenURL       string
	ClientID       string
	ClientSecret   string
	HTTPClient     *http.Client
	RequestTimeout time.Duration
}

type DeviceCode struct {
	VerificationURL string
	UserCode        string
	PollInterval    time.Duration
	DeviceCode      string
}

type deviceCodeResponse struct {
	DeviceCode              string `json:"device_code"`
	UserCode                string `json:"user_code"`
	VerificationURI         string `json:"verification_uri"`
	VerificationURL         string `json:"verification_url"`
	VerificationURIComplete string `json:"verification_uri_complete"`
	Interval                int64  `json:"interval"`
}

type oauthErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	Interval         int64  `json:"interval"`
}

func (f DeviceFlow) RequestDeviceCode(ctx context.Context, scopes []string) (DeviceCode, error) {
	if f.ClientID == "" {
		return DeviceCode{}, errors.New("client id is required")
	}
	if _, err := parseHTTPURL("device code", f.DeviceCodeURL); err != nil {
		return DeviceCode{}, err
	}

	values := url.Values{}
	values.Set("client_id", f.ClientID)
	if len(scopes) > 0 {
		values.Set("scope", strings.Join(scopes, " "))
	}

	requestCtx, cancel := f.requestContext(ctx)
	defer cancel()
	req, err := http.NewRequestWithContext(requestCtx, http.MethodPost, f.DeviceCodeURL, strings.NewReader(values.Encode()))
	if err != nil {
		return DeviceCode{}, fmt.Errorf("create device code request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := f.httpClient().Do(req)
	if err != nil {
		return DeviceCode{}, fmt.Errorf("request device code: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return DeviceCode{}, fmt.Errorf("request device code: %s", decodeOAuthError(resp))
	}

	var payload deviceCodeResponse
	if err := decodeJSON(resp.Body, &payload); err != nil {
		return DeviceCode{}, fmt.Errorf("decode device code response: %w", err)
	}

	verificationURL := firstNonEmpty(payload.VerificationURIComplete, payload.VerificationURI, payload.VerificationURL)
	if payload.DeviceCode == "" || payload.UserCode == "" || verificationURL == "" {
		return DeviceCode{}, errors.New("device code response missing required fields")
	}

	interval := payload.Interval
	if interval <= 0 {
		interval = 5
	}

	return DeviceCode{
		VerificationURL: verificationURL,
		UserCode:        payload.UserCode,
		PollInterval:    time.Duration(interval) * time.Second,
		DeviceCode:      payload.DeviceCode,
	}, nil
}

// PollToken polls the token endpoint until the user approves the device code,
// honouring authorization_pending and slow_down responses.
func (f DeviceFlow) PollToken(ctx context.Context, code DeviceCode, timeout time.Duration) (Tokens, error) {
	if f.ClientID == "" {
		return Tokens{}, errors.New("client id is required")
	}
	if code.DeviceCode == "" {
		return Tokens{}, errors.New("device code is required")
	}

	interval := code.PollInterval
	if interval <= 0 {
		interval = 5 * time.Second
	}
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}

	deadline := time.Now().Add(timeout)
	for {
		if time.Now().After(deadline) {
			return Tokens{}, ErrDeviceFlowTimeout
		}

		tokens, nextInterval, pending, err := f.pollTokenOnce(ctx, code.DeviceCode, interval, deadline)
		if err != nil {
			return Tokens{}, err
		}
		if !pending {
			return tokens, nil
		}
		interval = nextInterval

		if time.Now().Add(interval).After(deadline) {
			return Tokens{}, ErrDeviceFlowTimeout
		}

		timer := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return Tokens{}, ctx.Err()
		case <-timer.C:
		}
	}
}

func (f DeviceFlow) pollTokenOnce(ctx context.Context, deviceCode string, interval time.Duration, deadline time.Time) (Tokens, time.Duration, bool, error) {
	values := url.Values{}
	values.Set("grant_type", deviceCodeGrantType)
	values.Set("client_id", f.ClientID)
	values.Set("device_code", deviceCode)
	if f.ClientSecret != "" {
		values.Set("client_secret", f.ClientSecret)
	}

	reqCtx := ctx
	if ctxDeadline, ok := ctx.Deadline(); !ok || deadline.Before(ctxDeadline) {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithDeadline(ctx, deadline)
		defer cancel()
	}

	httpReq, err := http.NewRequestWithContext(reqCtx, http.MethodPost, f.TokenURL, strings.NewReader(values.Encode()))
	if err != nil {
		return Tokens{}, 0, false, fmt.Errorf("create token request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := f.httpClient().Do(httpReq)
	if err != nil {
		return Tokens{}, 0, false, fmt.Errorf("request token: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		var tokens Tokens
		if err := decodeJSON(resp.Body, &tokens); err != nil {
			return Tokens{}, 0, false, fmt.Errorf("decode token response: %w", err)
		}
		if tokens.AccessToken == "" {
			return Tokens{}, 0, false, errors.New("token response missing access_token")
		}
		return tokens, 0, false, nil
	}

	var oauthErr oauthErrorResponse
	if err := decodeJSON(resp.Body, &oauthErr); err != nil {
		return Tokens{}, 0, false, fmt.Errorf("request token: status %d", resp.StatusCode)
	}

	nextInterval := interval
	if oauthErr.Interval > 0 {
		nextInterval = time.Duration(oauthErr.Interval) * time.Second
	}
	switch oauthErr.Error {
	case "slow_down":
		return Tokens{}, nextInterval + 5*time.Second, true, nil
	case "authorization_pending":
		return Tokens{}, nextInterval, true, nil
	default:
		return Tokens{}, 0, false, fmt.Errorf("request token: %s", formatOAuthError(resp.StatusCode, oauthErr))
	}
}

func (f DeviceFlow) httpClient() *http.Client {
	if f.HTTPClient != nil {
		return f.HTTPClient
	}
	return http.DefaultClient
}

func (f DeviceFlow) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}

	requestTimeout := f.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = 30 * time.Second
	}

	return context.WithTimeout(ctx, requestTimeout)
}

func decodeOAuthError(resp *http.Response) string {
	var oauthErr oauthErrorResponse
	if err := decodeJSON(resp.Body, &oauthErr); err != nil {
		return fmt.Sprintf("status %d", resp.StatusCode)
	}
	return formatOAuthError(resp.StatusCode, oauthErr)
}

func formatOAuthError(statusCode int, oauthErr oauthErrorResponse) string {
	if oauthErr.Error == "" {
		return fmt.Sprintf("status %d", statusCode)
	}
	if oauthErr.ErrorDescription != "" {
		return oauthErr.Error + ": " + oauthErr.ErrorDescription
	}
	return oauthErr.Error
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}
