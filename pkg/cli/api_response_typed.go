package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/mittwald/volumeprobe/pkg/api"
	"github.com/pkg/errors"
	"github.com/tidwall/pretty"
)

type APIResponse interface {
	Print() error
	Err() error
}

var _ APIResponse = &TypedAPIResponse[struct{}]{}

// APIError is a non-2xx answer of the volume probe api.
type APIError struct {
	StatusCode int
	Message    string
	Path       string
}

func (e *APIError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("api returned status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api returned status %d: %s (path %s)", e.StatusCode, e.Message, e.Path)
}

type TypedAPIResponse[TBody any] struct {
	StatusCode  int   `json:"statusCode"`
	Body        TBody `json:"body"`
	Error       error `json:"error"`
	raw         []byte
	contentType string
}

func NewTypedAPIResponse[TBody any](body TBody) func(resp *http.Response, err error) *TypedAPIResponse[TBody] {
	return func(resp *http.Response, err error) *TypedAPIResponse[TBody] {
		apiRes := TypedAPIResponse[TBody]{
			Error: err,
		}
		if resp == nil {
			return &apiRes
		}
		defer resp.Body.Close()

		apiRes.StatusCode = resp.StatusCode
		apiRes.contentType = strings.Split(resp.Header.Get("Content-Type"), ";")[0]

		out, err := io.ReadAll(resp.Body)
		if err != nil {
			apiRes.Error = errors.Wrap(err, "failed to read body")
			return &apiRes
		}
		apiRes.raw = out

		if apiRes.contentType != "application/json" {
			apiRes.Error = fmt.Errorf("unknown content type %s", apiRes.contentType)
			return &apiRes
		}

		if resp.StatusCode >= http.StatusBadRequest {
			errBody := api.ErrorResponse{}
			if err := json.Unmarshal(out, &errBody); err != nil {
				apiRes.Error = errors.Wrapf(err, "failed to parse error body")
				return &apiRes
			}
			apiRes.Error = &APIError{StatusCode: resp.StatusCode, Message: errBody.Error, Path: errBody.Path}
			return &apiRes
		}

		if err := json.Unmarshal(out, &body); err != nil {
			apiRes.Error = errors.Wrapf(err, "failed to parse body as JSON")
			return &apiRes
		}

		apiRes.Body = body

		return &apiRes
	}
}

func (resp *TypedAPIResponse[TBody]) Err() error {
	return resp.Error
}

// Print writes the raw JSON answer, indented and colored.
func (resp *TypedAPIResponse[TBody]) Print() error {
	if resp.Error != nil && len(resp.raw) == 0 {
		fmt.Println(resp.Error.Error())
		return nil
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, resp.raw, "", "    "); err != nil {
		return errors.Wrapf(err, "failed to indent body")
	}

	fmt.Println(string(pretty.Color(buf.Bytes(), nil)))
	return nil
}
