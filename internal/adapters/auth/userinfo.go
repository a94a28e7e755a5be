package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// UserInfo is the subset of OIDC standard claims mirrored into a session.
type UserInfo struct {
	Subject string `json:"sub"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
	Email   string `json:"email"`
}

func FetchUserInfo(ctx context.Context, client *http.Client, userInfoURL string, accessToken string) (UserInfo, error) {
	if accessToken == "" {
		return UserInfo{}, errors.New("access token is required")
	}
	if _, err := parseHTTPURL("userinfo", userInfoURL); err != nil {
		return UserInfo{}, err
	}
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, userInfoURL, nil)
	if err != nil {
		return UserInfo{}, fmt.Errorf("create userinfo request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return UserInfo{}, fmt.Errorf("request userinfo: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return UserInfo{}, fmt.Errorf("userinfo endpoint returned %s", decodeOAuthError(resp))
	}

	var info UserInfo
	if err := decodeJSON(resp.Body, &info); err != nil {
		return UserInfo{}, fmt.Errorf("decode userinfo response: %w", err)
	}
	if strings.TrimSpace(info.Subject) == "" {
		return UserInfo{}, errors.New("userinfo response missing sub")
	}

	return info, nil
}

// RevokeToken revokes an access or refresh token. A token the provider no
// longer recognises counts as revoked.
func RevokeToken(ctx context.Context, client *http.Client, revokeURL string, token string) error {
	if token == "" {
		return nil
	}
	if _, err := parseHTTPURL("revoke", revokeURL); err != nil {
		return err
	}
	if client == nil {
		client = http.DefaultClient
	}

	values := url.Values{}
	values.Set("token", token)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, revokeURL, strings.NewReader(values.Encode()))
	if err != nil {
		return fmt.Errorf("create revoke request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request revoke: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return nil
	}

	var oauthErr oauthErrorResponse
	if err := decodeJSON(resp.Body, &oauthErr); err == nil && oauthErr.Error == "invalid_token" {
		return nil
	}

	return fmt.Errorf("revoke endpoint returned status %d", resp.StatusCode)
}
