package passaporteweb_test

import (
	"context"
	"net/url"
	"testing"

	"github.com/cotelha/passaporteweb"
)

// scriptedTransport replays a fixed sequence of responses.
type scriptedTransport struct {
	responses []*passaporteweb.Response
	calls     int
}

func (t *scriptedTransport) Do(_ context.Context, _, _ string, _ url.Values, _ any, _ passaporteweb.Credentials) (*passaporteweb.Response, error) {
	resp := t.responses[t.calls]
	if t.calls < len(t.responses)-1 {
		t.calls++
	}
	return resp, nil
}

func TestRetryTransportRetriesServerFaults(t *testing.T) {
	inner := &scriptedTransport{responses: []*passaporteweb.Response{
		{StatusCode: 500},
		{StatusCode: 502},
		{StatusCode: 200, Body: []byte(`{}`)},
	}}

	resp, err := passaporteweb.WithRetry(inner, 3).Do(context.Background(), "GET", "/x/", nil, nil, nil)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("expected the eventual 200, got %d", resp.StatusCode)
	}
	if inner.calls != 2 {
		t.Errorf("expected 2 retries before success, got %d", inner.calls)
	}
}

func TestRetryTransportNeverRetriesClientFaults(t *testing.T) {
	inner := &scriptedTransport{responses: []*passaporteweb.Response{
		{StatusCode: 422, Body: []byte(`{"email": ["taken"]}`)},
		{StatusCode: 200},
	}}

	resp, err := passaporteweb.WithRetry(inner, 3).Do(context.Background(), "POST", "/x/", nil, nil, nil)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	if resp.StatusCode != 422 {
		t.Errorf("expected the client fault to pass through, got %d", resp.StatusCode)
	}
	if inner.calls != 0 {
		t.Errorf("expected no retries, got %d", inner.calls)
	}
}

func TestRetryTransportReturnsFinalServerFault(t *testing.T) {
	inner := &scriptedTransport{responses: []*passaporteweb.Response{
		{StatusCode: 503, Body: []byte(`unavailable`)},
	}}

	resp, err := passaporteweb.WithRetry(inner, 1).Do(context.Background(), "GET", "/x/", nil, nil, nil)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	if resp.StatusCode != 503 {
		t.Errorf("expected the final 503 response, got %d", resp.StatusCode)
	}
}
