// internal/common/msgraph/client.go
package msgraph

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	apperrors "talenthub/internal/common/errors"
	httpclient "talenthub/internal/common/http"
)

const (
	loginBaseURL = "https://login.microsoftonline.com"
	graphBaseURL = "https://graph.microsoft.com/v1.0"
)

// Client talks to Microsoft Graph using the client-credentials flow.
// The access token is cached until shortly before expiry.
type Client struct {
	tenantID     string
	clientID     string
	clientSecret string

	httpClient *httpclient.Client

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	TokenType   string `json:"token_type"`
}

// Message is a Graph mail message, reduced to the fields ingestion needs.
type Message struct {
	ID             string    `json:"id"`
	Subject        string    `json:"subject"`
	ReceivedAt     time.Time `json:"receivedDateTime"`
	HasAttachments bool      `json:"hasAttachments"`
	From           struct {
		EmailAddress struct {
			Name    string `json:"name"`
			Address string `json:"address"`
		} `json:"emailAddress"`
	} `json:"from"`
}

// Attachment is a Graph file attachment with inline content.
type Attachment struct {
	ODataType    string `json:"@odata.type"`
	ID           string `json:"id"`
	Name         string `json:"name"`
	ContentType  string `json:"contentType"`
	Size         int    `json:"size"`
	IsInline     bool   `json:"isInline"`
	ContentBytes []byte `json:"contentBytes"`
}

func NewClient(tenantID, clientID, clientSecret string) *Client {
	return &Client{
		tenantID:     tenantID,
		clientID:     clientID,
		clientSecret: clientSecret,
		httpClient:   httpclient.NewClient(30 * time.Second),
	}
}

// getAccessToken fetches a new access token using the client credentials flow.
// It caches the token until expiry.
func (c *Client) getAccessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.tokenExpiry.After(time.Now()) && c.accessToken != "" {
		return c.accessToken, nil
	}

	tokenURL := fmt.Sprintf("%s/%s/oauth2/v2.0/token", loginBaseURL, c.tenantID)

	data := url.Values{}
	data.Set("grant_type", "client_credentials")
	data.Set("client_id", c.clientID)
	data.Set("client_secret", c.clientSecret)
	data.Set("scope", "https://graph.microsoft.com/.default")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, strings.NewReader(data.Encode()))
	if err != nil {
		return "", apperrors.NewInternalError(err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var tokenResp tokenResponse
	if err := c.httpClient.DoJSON(ctx, req, &tokenResp); err != nil {
		return "", err
	}
	if tokenResp.AccessToken == "" {
		return "", apperrors.NewExternalServiceError("msgraph", fmt.Errorf("empty access token"))
	}

	c.accessToken = tokenResp.AccessToken
	// Refresh one minute early to avoid running mid-call into an expired token.
	c.tokenExpiry = time.Now().Add(time.Duration(tokenResp.ExpiresIn-60) * time.Second)

	return c.accessToken, nil
}

func (c *Client) doGraphJSON(ctx context.Context, method, path string, out interface{}) error {
	token, err := c.getAccessToken(ctx)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, method, graphBaseURL+path, nil)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	return c.httpClient.DoJSON(ctx, req, out)
}

// ListUnreadMessages returns unread messages that carry attachments for a mailbox.
func (c *Client) ListUnreadMessages(ctx context.Context, mailbox string, limit int) ([]Message, error) {
	path := fmt.Sprintf(
		"/users/%s/mailFolders/inbox/messages?$filter=isRead eq false and hasAttachments eq true&$top=%d&$orderby=receivedDateTime desc",
		url.PathEscape(mailbox), limit,
	)

	var resp struct {
		Value []Message `json:"value"`
	}
	if err := c.doGraphJSON(ctx, http.MethodGet, path, &resp); err != nil {
		return nil, err
	}
	return resp.Value, nil
}

// ListAttachments fetches the attachments of a message, content included.
func (c *Client) ListAttachments(ctx context.Context, mailbox, messageID string) ([]Attachment, error) {
	path := fmt.Sprintf("/users/%s/messages/%s/attachments",
		url.PathEscape(mailbox), url.PathEscape(messageID))

	var resp struct {
		Value []Attachment `json:"value"`
	}
	if err := c.doGraphJSON(ctx, http.MethodGet, path, &resp); err != nil {
		return nil, err
	}
	return resp.Value, nil
}

// MarkMessageRead flags a processed message as read so the next ingestion run
// skips it.
func (c *Client) MarkMessageRead(ctx context.Context, mailbox, messageID string) error {
	token, err := c.getAccessToken(ctx)
	if err != nil {
		return err
	}

	path := fmt.Sprintf("%s/users/%s/messages/%s",
		graphBaseURL, url.PathEscape(mailbox), url.PathEscape(messageID))

	body := strings.NewReader(`{"isRead": true}`)
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, path, body)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.DoWithContext(ctx, req)
	if err != nil {
		return apperrors.NewNetworkUnreachableError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return apperrors.NewExternalServiceError("msgraph",
			fmt.Errorf("mark read failed with status %d: %s", resp.StatusCode, string(respBody)))
	}
	return nil
}

// UnmarshalJSON decodes contentBytes from Graph's base64 string encoding.
func (a *Attachment) UnmarshalJSON(data []byte) error {
	type alias struct {
		ODataType    string `json:"@odata.type"`
		ID           string `json:"id"`
		Name         string `json:"name"`
		ContentType  string `json:"contentType"`
		Size         int    `json:"size"`
		IsInline     bool   `json:"isInline"`
		ContentBytes string `json:"contentBytes"`
	}
	var raw alias
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	a.ODataType = raw.ODataType
	a.ID = raw.ID
	a.Name = raw.Name
	a.ContentType = raw.ContentType
	a.Size = raw.Size
	a.IsInline = raw.IsInline
	if raw.ContentBytes != "" {
		decoded, err := base64Decode(raw.ContentBytes)
		if err != nil {
			return err
		}
		a.ContentBytes = decoded
	}
	return nil
}

func base64Decode(s string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(s)
}
