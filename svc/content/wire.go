package content

import (
	"errors"
	"fmt"
)

// FetchResponse is the wire envelope of the content-access endpoint. The
// Error field is authoritative: clients branch on it, not on the HTTP
// status.
//
// Shapes:
//   - granted:  {content}
//   - preview:  {error:true, message, content, isFreePreview:true}
//   - denied:   {error:true, message}
//   - failure:  {error:true, message} with a non-2xx status
type FetchResponse struct {
	Content       *Article `json:"content,omitempty"`
	Error         bool     `json:"error,omitempty"`
	Message       string   `json:"message,omitempty"`
	IsFreePreview bool     `json:"isFreePreview,omitempty"`
}

// EncodeResult maps a fetch outcome onto the wire envelope.
func EncodeResult(r Result) FetchResponse {
	switch r.Kind() {
	case KindGranted:
		a, _ := r.Article()
		return FetchResponse{Content: &a}
	case KindPreview:
		a, _ := r.Article()
		return FetchResponse{Content: &a, Error: true, Message: r.Reason(), IsFreePreview: true}
	default:
		return FetchResponse{Error: true, Message: r.Reason()}
	}
}

// Classify maps a wire envelope back to a fetch outcome.
//
// Precedence: an envelope carrying both content and the error flag is a
// preview denial, never a hard failure. The explicit flag decides preview
// status; body length never does.
func Classify(resp FetchResponse) (Result, error) {
	switch {
	case resp.Error && resp.Content != nil:
		return PreviewResult(*resp.Content, resp.Message), nil
	case resp.Error:
		return Result{}, fmt.Errorf("%w: %s", errClassified, resp.Message)
	case resp.Content != nil:
		return GrantedResult(*resp.Content), nil
	default:
		return Result{}, ErrMalformedResponse
	}
}

// errClassified marks hard failures recovered from a wire envelope.
var errClassified = errors.New("content fetch failed")
