package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// DelegationsPageLimit is the fixed page size used when listing delegations.
// Accounts are not expected to delegate to more validators than this.
const DelegationsPageLimit = 200

// Client for the CSPR Cloud account API.
type Client struct {
	baseUrl    string
	apiKey     string
	HttpClient *http.Client
	Logger     *log.Entry
}

// NewClient returns a new CSPR Cloud client. The apiKey, if not empty, is
// sent verbatim in the authorization header of every request.
func NewClient(baseUrl string, apiKey string, timeout time.Duration) *Client {
	baseUrl = strings.TrimSuffix(baseUrl, "/")
	logger := log.WithFields(log.Fields{
		"api": baseUrl,
	})
	return &Client{
		baseUrl: baseUrl,
		apiKey:  apiKey,
		HttpClient: &http.Client{
			Timeout: timeout,
		},
		Logger: logger,
	}
}

func (client *Client) get(ctx context.Context, url string, outputData any) error {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set("accept", "application/json")
	if client.apiKey != "" {
		req.Header.Set("authorization", client.apiKey)
	}
	client.Logger.WithField("url", url).Debug("sending request")

	resp, err := client.HttpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	client.Logger.WithFields(log.Fields{
		"url":    url,
		"status": resp.StatusCode,
		"body":   string(body),
	}).Debug("got response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := strings.TrimSpace(string(body))
		if msg == "" {
			return fmt.Errorf("request failed (%s)", resp.Status)
		}
		return fmt.Errorf("request failed (%s): %s", resp.Status, msg)
	}
	if err := json.Unmarshal(body, outputData); err != nil {
		return fmt.Errorf("failed to decode response body: %w", err)
	}
	return nil
}

// FetchAccount returns the account record for a public key, including its
// liquid balance in motes.
func (client *Client) FetchAccount(ctx context.Context, publicKey string) (*Account, error) {
	endpoint := fmt.Sprintf("%s/accounts/%s", client.baseUrl, url.PathEscape(publicKey))
	var response AccountResponse
	if err := client.get(ctx, endpoint, &response); err != nil {
		return nil, fmt.Errorf("could not lookup account %s: %w", publicKey, err)
	}
	if response.Data == nil {
		return nil, fmt.Errorf("account %s not found", publicKey)
	}
	return response.Data, nil
}

// FetchDelegations returns all delegations of a public key, up to one page.
// A missing `data` field means the account has no delegations.
func (client *Client) FetchDelegations(ctx context.Context, publicKey string) ([]Delegation, error) {
	endpoint := fmt.Sprintf("%s/accounts/%s/delegations?limit=%d",
		client.baseUrl, url.PathEscape(publicKey), DelegationsPageLimit)
	var response DelegationsResponse
	if err := client.get(ctx, endpoint, &response); err != nil {
		return nil, fmt.Errorf("could not lookup delegations of %s: %w", publicKey, err)
	}
	if response.Data == nil {
		return []Delegation{}, nil
	}
	return response.Data, nil
}
