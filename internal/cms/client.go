// Package cms talks to the headless CMS GraphQL endpoint.
package cms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	infraerrors "github.com/jonesrussell/north-cloud/post-resolver/infrastructure/errors"
	"github.com/jonesrussell/north-cloud/post-resolver/internal/domain"
)

// maxResponseBytes caps how much of a CMS response is decoded.
const maxResponseBytes = 10 << 20

// Client fetches posts from the CMS. It is safe for concurrent use.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient creates a client for the GraphQL endpoint.
func NewClient(endpoint string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		endpoint:   endpoint,
		httpClient: httpClient,
	}
}

// Endpoint returns the configured GraphQL endpoint.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// FetchPost returns the post whose URI is "/<path>/". It returns
// domain.ErrContentNotFound when the CMS has no such post and a
// *domain.FetchError for every other failure.
func (c *Client) FetchPost(ctx context.Context, path string) (*domain.ContentRecord, error) {
	var resp postResponse
	req := graphQLRequest{
		Query:     postQuery,
		Variables: map[string]any{"uri": "/" + path + "/"},
	}
	if err := c.do(ctx, req, &resp); err != nil {
		return nil, &domain.FetchError{Cause: err}
	}
	if err := graphQLErrors(resp.Errors); err != nil {
		return nil, &domain.FetchError{Cause: err}
	}
	if resp.Data.Post == nil {
		return nil, domain.ErrContentNotFound
	}

	record, err := resp.Data.Post.toRecord()
	if err != nil {
		return nil, &domain.FetchError{Cause: err}
	}
	return record, nil
}

// Ping checks that the endpoint answers GraphQL queries.
func (c *Client) Ping(ctx context.Context) error {
	var resp pingResponse
	if err := c.do(ctx, graphQLRequest{Query: pingQuery}, &resp); err != nil {
		return err
	}
	return graphQLErrors(resp.Errors)
}

func (c *Client) do(ctx context.Context, body graphQLRequest, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if httpErr := infraerrors.ParseHTTPError(resp); httpErr != nil {
		return httpErr
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if err = json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func graphQLErrors(errs []graphQLError) error {
	if len(errs) == 0 {
		return nil
	}
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.Message)
	}
	return fmt.Errorf("graphql: %s", strings.Join(msgs, "; "))
}

var errInvalidPost = errors.New("invalid post payload")

func (p *postNode) toRecord() (*domain.ContentRecord, error) {
	if p.ID == "" {
		return nil, fmt.Errorf("%w: missing id", errInvalidPost)
	}
	if p.Title == "" {
		return nil, fmt.Errorf("%w: missing title", errInvalidPost)
	}

	published, err := domain.NewGMTTime(string(p.DateGMT))
	if err != nil {
		return nil, fmt.Errorf("%w: dateGmt: %w", errInvalidPost, err)
	}
	modified, err := domain.NewGMTTime(string(p.ModifiedGMT))
	if err != nil {
		return nil, fmt.Errorf("%w: modifiedGmt: %w", errInvalidPost, err)
	}

	record := &domain.ContentRecord{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		Published: published,
		Modified:  modified,
		Excerpt:   p.Excerpt,
	}
	if p.Author != nil && p.Author.Node != nil {
		record.AuthorName = p.Author.Node.Name
	}
	if p.FeaturedImage != nil && p.FeaturedImage.Node != nil && p.FeaturedImage.Node.SourceURL != "" {
		record.FeaturedImage = &domain.Image{
			URL:     p.FeaturedImage.Node.SourceURL,
			AltText: p.FeaturedImage.Node.AltText,
		}
	}
	if p.MediaItems != nil {
		for _, n := range p.MediaItems.Nodes {
			if n.SourceURL == "" {
				continue
			}
			record.MediaItems = append(record.MediaItems, domain.Image{URL: n.SourceURL, AltText: n.AltText})
		}
	}
	return record, nil
}

// gmtText accepts a JSON string or null.
type gmtText string

func (g *gmtText) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*g = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*g = gmtText(s)
	return nil
}
