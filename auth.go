package passaporteweb

import "net/http"

// Credentials selects which credential a call is made under. It is opaque to
// the resource layer, which passes it through to the transport unmodified.
type Credentials interface {
	apply(r *http.Request)
}

// AppCredentials authenticates a call as the registered application, via HTTP
// Basic auth with the application token and secret.
type AppCredentials struct {
	Token  string
	Secret string
}

func (c AppCredentials) apply(r *http.Request) {
	r.SetBasicAuth(c.Token, c.Secret)
}

// UserToken authenticates a call as an end user, via a Bearer session token
// issued by the authenticate endpoint.
type UserToken string

func (t UserToken) apply(r *http.Request) {
	r.Header.Set("Authorization", "Bearer "+string(t))
}
