package passaporteweb_test

import (
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cotelha/passaporteweb"
	"github.com/cotelha/passaporteweb/internal/pwtest"
)

// setup starts an in-process fake PassaporteWeb service and returns a client
// pointed at it.
func setup(t *testing.T) (*pwtest.Server, *passaporteweb.Client) {
	t.Helper()

	fake := pwtest.NewServer()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	cfg := &passaporteweb.Config{
		URL:               srv.URL,
		ApplicationToken:  pwtest.DefaultAppToken,
		ApplicationSecret: pwtest.DefaultAppSecret,
		Logger:            slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	client, err := passaporteweb.New(cfg)
	if err != nil {
		t.Fatalf("creating client: %v", err)
	}
	return fake, client
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	_, err := passaporteweb.New(&passaporteweb.Config{})
	if err == nil {
		t.Fatal("expected an error for an empty config")
	}
	for _, want := range []string{"url", "application_token", "application_secret"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected error to mention %q, got: %v", want, err)
		}
	}
}

func TestWithUserTokenLeavesReceiverUntouched(t *testing.T) {
	fake, client := setup(t)
	id := fake.SeedIdentity("carol@example.com", "sw0rdfish")

	scoped := client.WithUserToken(fake.Token(id.UUID))
	if scoped == client {
		t.Fatal("expected a distinct client")
	}
	if scoped.Notifications == client.Notifications {
		t.Error("expected the scoped client to carry its own services")
	}
}
