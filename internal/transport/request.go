package transport

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/jpbowler97/airtable-csv-sync/pkg/errors"
)

// DecodeResponse decodes a JSON response into the target structure.
// The response body is always consumed and closed. Non-200 statuses
// produce an APIError carrying the status code and body.
func DecodeResponse(resp *http.Response, target any) error {
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.WrapIO("read", "response body", err)
	}

	if resp.StatusCode != http.StatusOK {
		return &errors.APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
		}
	}

	if err := json.Unmarshal(body, target); err != nil {
		return errors.WrapParse("json", "response", err)
	}

	return nil
}
