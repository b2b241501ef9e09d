// Package api provides a client for the Jevah backend REST API.
//
// Interaction mutations are idempotent per user per toggle on the server side,
// which is what lets the interaction coordinator retry and reconcile safely.
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/jevah-cli/jevah/auth"
	"github.com/jevah-cli/jevah/key"
	"github.com/jevah-cli/jevah/log"
	"github.com/jevah-cli/jevah/network"
	"github.com/spf13/viper"
)

// Client talks to one Jevah backend instance.
type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a client bound to the configured backend URL, sharing the
// application-wide HTTP client.
func New() *Client {
	return &Client{
		baseURL: strings.TrimRight(viper.GetString(key.APIBaseURL), "/"),
		http:    network.Client,
	}
}

// NewWithBase returns a client bound to an explicit backend URL. Used by tests.
func NewWithBase(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    network.Client,
	}
}

// do issues a JSON request against the backend and decodes the response into
// out (skipped when out is nil). The keyring token is attached when present;
// endpoints that require auth fail server-side with 401 otherwise.
func (c *Client) do(method, path string, body any, out any) error {
	var payload io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return err
		}
		payload = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, c.baseURL+path, payload)
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	if token, err := auth.GetToken(); err == nil && token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		log.Error(err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errData map[string]interface{}
		_ = json.NewDecoder(resp.Body).Decode(&errData)
		log.Errorf("jevah api %s %s: status %d: %+v", method, path, resp.StatusCode, errData)
		return fmt.Errorf("jevah api: %s %s returned %d", method, path, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
