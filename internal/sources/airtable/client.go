// Package airtable provides a client for the Airtable REST API.
package airtable

import (
	"context"
	"net/url"

	"github.com/jpbowler97/airtable-csv-sync/internal/transport"
	"github.com/jpbowler97/airtable-csv-sync/pkg/errors"
	"github.com/jpbowler97/airtable-csv-sync/pkg/logging"
	"github.com/jpbowler97/airtable-csv-sync/pkg/records"
)

// DefaultBaseURL is the Airtable REST API root.
const DefaultBaseURL = "https://api.airtable.com/v0"

// Response structures for the Airtable list-records endpoint.
type listResponse struct {
	Records []recordResponse `json:"records"`
	Offset  string           `json:"offset"`
}

type recordResponse struct {
	ID     string         `json:"id"`
	Fields map[string]any `json:"fields"`
}

// Client fetches contact records from one Airtable table.
type Client struct {
	// BaseURL may be overridden for testing.
	BaseURL string

	baseID    string
	table     string
	transport *transport.Client
}

// NewClient creates a client for the given base and table, authenticating
// every request with the API key as a bearer token.
func NewClient(baseID, table, apiKey string) *Client {
	return &Client{
		BaseURL:   DefaultBaseURL,
		baseID:    baseID,
		table:     table,
		transport: transport.New(&transport.BearerAuth{}, apiKey),
	}
}

// ListRecords retrieves every record in the table, following the offset
// cursor until Airtable stops returning one, and flattens the pages into
// a record set keyed by email. Rows without an email field are skipped;
// absent name and timestamp fields default to empty strings.
func (c *Client) ListRecords(ctx context.Context) (records.Set, error) {
	logger := logging.FromContext(ctx)

	set := records.Set{}
	offset := ""
	pages := 0

	for {
		page, err := c.listPage(ctx, offset)
		if err != nil {
			return nil, err
		}
		pages++

		for _, rec := range page.Records {
			email := fieldString(rec.Fields, "email")
			if email == "" {
				continue
			}
			set[email] = records.Record{
				FirstName: fieldString(rec.Fields, "first_name"),
				LastName:  fieldString(rec.Fields, "last_name"),
				UpdatedAt: fieldString(rec.Fields, "updated_at"),
			}
		}

		logger.Debug().
			Int("page", pages).
			Int("records", len(page.Records)).
			Msg("Fetched Airtable page")

		offset = page.Offset
		if offset == "" {
			break
		}
	}

	logger.Info().
		Int("records", len(set)).
		Int("pages", pages).
		Str("table", c.table).
		Msg("Fetched Airtable records")

	return set, nil
}

// listPage fetches a single page of records.
func (c *Client) listPage(ctx context.Context, offset string) (*listResponse, error) {
	endpoint, err := c.endpoint(offset)
	if err != nil {
		return nil, err
	}

	resp, err := c.transport.Get(ctx, endpoint)
	if err != nil {
		return nil, &errors.APIError{
			Endpoint: endpoint,
			Message:  "request failed",
			Err:      err,
		}
	}

	var page listResponse
	if err := transport.DecodeResponse(resp, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// endpoint builds the list URL for this table, with the pagination cursor
// when one is set.
func (c *Client) endpoint(offset string) (string, error) {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return "", &errors.ConfigError{Component: "airtable", Message: "invalid base URL", Err: err}
	}
	u = u.JoinPath(c.baseID, c.table)

	if offset != "" {
		query := u.Query()
		query.Set("offset", offset)
		u.RawQuery = query.Encode()
	}

	return u.String(), nil
}

// fieldString reads a field as a string, defaulting to "" when absent or
// not a string.
func fieldString(fields map[string]any, key string) string {
	if v, ok := fields[key].(string); ok {
		return v
	}
	return ""
}
