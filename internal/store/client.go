// Package store talks to the notestore HTTP API where finished notes
// documents are kept.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client communicates with the notestore HTTP API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// DocumentRequest is the body for PUT /documents/{id}.
type DocumentRequest struct {
	UserID      string `json:"user_id"`
	Title       string `json:"title"`
	ContentType string `json:"content_type"`
	Markdown    string `json:"markdown"`
	Sections    int    `json:"sections"`
	Words       int    `json:"words"`
	ContentHash string `json:"content_hash"`
	CreatedAt   string `json:"created_at"`
}

// Document is a stored notes document as returned by the API.
type Document struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	Title       string `json:"title"`
	ContentType string `json:"content_type"`
	Markdown    string `json:"markdown,omitempty"`
	Sections    int    `json:"sections"`
	Words       int    `json:"words"`
	ContentHash string `json:"content_hash"`
	CreatedAt   string `json:"created_at"`
}

// PutDocument stores or replaces a notes document.
func (c *Client) PutDocument(ctx context.Context, id string, req DocumentRequest) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+"/documents/"+id, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("put document: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("put document %s: status %d: %s", id, resp.StatusCode, string(respBody))
	}
	return nil
}

// GetDocument retrieves a document by ID. Returns nil if not found.
func (c *Client) GetDocument(ctx context.Context, id string) (*Document, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/documents/"+id, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("get document %s: status %d: %s", id, resp.StatusCode, string(respBody))
	}

	var doc Document
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return &doc, nil
}

// DeleteDocument removes a stored document.
func (c *Client) DeleteDocument(ctx context.Context, id string) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/documents/"+id, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("delete document %s: status %d: %s", id, resp.StatusCode, string(respBody))
	}
	return nil
}

// ListDocuments returns document summaries for a user, newest first.
// Markdown bodies are not included in listings.
func (c *Client) ListDocuments(ctx context.Context, userID string, limit int) ([]Document, error) {
	q := url.Values{}
	q.Set("user_id", userID)
	if limit > 0 {
		q.Set("limit", fmt.Sprintf("%d", limit))
	}
	return c.listDocuments(ctx, q)
}

// FindByHash looks up a user's document with the given content hash.
// Returns nil if no document matches.
func (c *Client) FindByHash(ctx context.Context, userID, contentHash string) (*Document, error) {
	q := url.Values{}
	q.Set("user_id", userID)
	q.Set("content_hash", contentHash)
	q.Set("limit", "1")

	docs, err := c.listDocuments(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, nil
	}
	return &docs[0], nil
}

func (c *Client) listDocuments(ctx context.Context, q url.Values) ([]Document, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/documents?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("list documents: status %d: %s", resp.StatusCode, string(respBody))
	}

	var result struct {
		Documents []Document `json:"documents"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode documents: %w", err)
	}
	return result.Documents, nil
}

// Close releases any resources (currently a no-op).
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}
