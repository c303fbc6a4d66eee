package selfkey

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/axent-pl/selfkey/common"
	"github.com/axent-pl/selfkey/mapx"
)

// Request exposes the two decoded sources credentials are read from.
// The strategy only reads from them.
type Request interface {
	Body() any
	Query() any
}

// MapRequest is a Request over already decoded values.
type MapRequest struct {
	BodyValues  any
	QueryValues any
}

func (r MapRequest) Body() any  { return r.BodyValues }
func (r MapRequest) Query() any { return r.QueryValues }

var _ Request = MapRequest{}

const defaultMaxMemory = 32 << 20

// Source selects where credentials are read from.
type Source uint8

const (
	SourceBody Source = 1 << iota
	SourceQuery

	sourceAll = SourceBody | SourceQuery
)

// precedence lists sources in lookup order: body first, query as fallback.
var precedence = []Source{SourceBody, SourceQuery}

func (s Source) String() string {
	switch s {
	case SourceBody:
		return "body"
	case SourceQuery:
		return "query"
	case sourceAll:
		return "body+query"
	}
	return fmt.Sprintf("Source(%d)", uint8(s))
}

func sourceValues(r Request, s Source) any {
	switch s {
	case SourceBody:
		return r.Body()
	case SourceQuery:
		return r.Query()
	}
	return nil
}

// NewRequestFromHTTP decodes the body (JSON, urlencoded or multipart form)
// and the URL query of r. Bracketed form keys are expanded into nested maps.
// A JSON body is restored so later handlers can read it again.
func NewRequestFromHTTP(r *http.Request) (MapRequest, error) {
	if r == nil {
		return MapRequest{}, fmt.Errorf("%w: request is nil", common.ErrInvalidInput)
	}

	out := MapRequest{}
	if r.URL != nil {
		out.QueryValues = mapx.Expand(r.URL.Query())
	}

	if r.Body == nil || r.Body == http.NoBody {
		return out, nil
	}

	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		mediaType = ""
	}

	switch mediaType {
	case "application/json":
		raw, err := io.ReadAll(r.Body)
		r.Body.Close()
		r.Body = io.NopCloser(bytes.NewReader(raw))
		if err != nil {
			return MapRequest{}, fmt.Errorf("%w: could not read body: %w", common.ErrInvalidInput, err)
		}
		if len(bytes.TrimSpace(raw)) == 0 {
			return out, nil
		}
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		var body any
		if err := dec.Decode(&body); err != nil {
			return MapRequest{}, fmt.Errorf("%w: could not decode json body: %w", common.ErrInvalidInput, err)
		}
		out.BodyValues = body
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return MapRequest{}, fmt.Errorf("%w: could not parse form: %w", common.ErrInvalidInput, err)
		}
		out.BodyValues = mapx.Expand(r.PostForm)
	case "multipart/form-data":
		if err := r.ParseMultipartForm(defaultMaxMemory); err != nil {
			return MapRequest{}, fmt.Errorf("%w: could not parse multipart form: %w", common.ErrInvalidInput, err)
		}
		out.BodyValues = mapx.Expand(r.MultipartForm.Value)
	}

	return out, nil
}
