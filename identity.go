package passaporteweb

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/cotelha/passaporteweb/internal/resource"
)

const (
	identityCreatePath  = "/accounts/api/create/"
	identityAuthPath    = "/accounts/api/auth/"
	identityProfilePath = "/profile/api/info/"
)

// identitySchema is the Identity kind's attribute table. The service assigns
// the read-only fields; the credential and terms fields may only be sent at
// creation.
var identitySchema = resource.Schema{
	"uuid":                  resource.ReadOnly,
	"id_token":              resource.ReadOnly,
	"is_active":             resource.ReadOnly,
	"accepted_terms_of_use": resource.ReadOnly,
	"profile_url":           resource.ReadOnly,
	"update_info_url":       resource.ReadOnly,
	"authentication_key":    resource.ReadOnly,

	"first_name":        resource.Creatable | resource.Updatable,
	"last_name":         resource.Creatable | resource.Updatable,
	"nickname":          resource.Creatable | resource.Updatable,
	"cpf":               resource.Creatable | resource.Updatable,
	"birth_date":        resource.Creatable | resource.Updatable,
	"gender":            resource.Creatable | resource.Updatable,
	"language":          resource.Creatable | resource.Updatable,
	"country":           resource.Creatable | resource.Updatable,
	"timezone":          resource.Creatable | resource.Updatable,
	"send_news":         resource.Creatable | resource.Updatable,
	"send_partner_news": resource.Creatable | resource.Updatable,

	"email":                      resource.Creatable,
	"password":                   resource.Creatable,
	"password2":                  resource.Creatable,
	"must_change_password":       resource.Creatable,
	"tos":                        resource.Creatable,
	"inhibit_activation_message": resource.Creatable,
}

// Identity is the local representation of a PassaporteWeb identity record.
type Identity struct {
	svc   *IdentityService
	attrs *resource.Store
	state resource.State
	errs  resource.Errors
}

// IdentityService operates on the Identity kind. Reach it through
// Client.Identities.
type IdentityService struct {
	c *Client
}

// New constructs a Transient identity from the given attributes. Keys outside
// the declared attribute set are dropped.
func (s *IdentityService) New(attrs map[string]any) *Identity {
	i := &Identity{svc: s, attrs: resource.NewStore(identitySchema)}
	if attrs != nil {
		i.attrs.SetAll(attrs)
	}
	return i
}

// hydrate builds an identity already in the Persisted state from a response
// attribute map.
func (s *IdentityService) hydrate(attrs map[string]any) *Identity {
	i := s.New(attrs)
	i.state = resource.Persisted
	return i
}

// Find fetches a single identity by uuid. Returns ErrNotFound when the
// service has no such record.
func (s *IdentityService) Find(ctx context.Context, uuid string) (*Identity, error) {
	return s.fetch(ctx, identityProfilePath+uuid+"/", nil, fmt.Sprintf("identity %s", uuid))
}

// FindByEmail fetches a single identity by its email, the kind's alternate
// unique key. Returns ErrNotFound when no identity carries that email.
func (s *IdentityService) FindByEmail(ctx context.Context, email string) (*Identity, error) {
	query := url.Values{"email": {email}}
	return s.fetch(ctx, identityProfilePath, query, fmt.Sprintf("identity with email %s", email))
}

func (s *IdentityService) fetch(ctx context.Context, path string, query url.Values, desc string) (*Identity, error) {
	resp, err := s.c.transport.Do(ctx, http.MethodGet, path, query, nil, s.c.appCreds())
	if err != nil {
		return nil, err
	}
	switch resp.StatusCode {
	case http.StatusOK:
		attrs, err := decodeAttrs(resp)
		if err != nil {
			return nil, err
		}
		return s.hydrate(attrs), nil
	case http.StatusNotFound:
		return nil, fmt.Errorf("%s: %w", desc, ErrNotFound)
	default:
		return nil, unexpected(resp)
	}
}

// Authenticate verifies an end user's email and password. On success the
// returned identity carries a server-issued id_token usable as a UserToken.
// Wrong credentials surface as ErrNotFound.
func (s *IdentityService) Authenticate(ctx context.Context, email, password string) (*Identity, error) {
	body := map[string]any{"email": email, "password": password}
	resp, err := s.c.transport.Do(ctx, http.MethodPost, identityAuthPath, nil, body, s.c.appCreds())
	if err != nil {
		return nil, err
	}
	switch resp.StatusCode {
	case http.StatusOK:
		attrs, err := decodeAttrs(resp)
		if err != nil {
			return nil, err
		}
		return s.hydrate(attrs), nil
	case http.StatusNotFound:
		return nil, fmt.Errorf("authenticating %s: %w", email, ErrNotFound)
	default:
		return nil, unexpected(resp)
	}
}

// Save creates the identity when it is Transient and updates it when it is
// Persisted. On a validation fault the service's messages land in Errors()
// and the persistence state is left exactly as it was.
func (i *Identity) Save(ctx context.Context) error {
	switch {
	case i.IsDestroyed():
		return i.precondition("cannot save a destroyed identity")
	case i.IsPersisted():
		return i.update(ctx)
	default:
		return i.create(ctx)
	}
}

func (i *Identity) create(ctx context.Context) error {
	body := resource.CreateBody(i.attrs, false)
	resp, err := i.svc.c.transport.Do(ctx, http.MethodPost, identityCreatePath, nil, body, i.svc.c.appCreds())
	if err != nil {
		return err
	}
	return i.applyWrite(resp)
}

func (i *Identity) update(ctx context.Context) error {
	body := resource.UpdateBody(i.attrs)
	path := identityProfilePath + i.UUID() + "/"
	resp, err := i.svc.c.transport.Do(ctx, http.MethodPut, path, nil, body, i.svc.c.appCreds())
	if err != nil {
		return err
	}
	return i.applyWrite(resp)
}

// applyWrite folds a create/update response into the instance: success
// refreshes attributes and advances to Persisted, a validation fault records
// the messages without touching state, anything else is fatal.
func (i *Identity) applyWrite(resp *Response) error {
	switch {
	case resp.StatusCode == http.StatusOK:
		attrs, err := decodeAttrs(resp)
		if err != nil {
			return err
		}
		i.attrs.SetAll(attrs)
		i.state = resource.Persisted
		i.errs = nil
		return nil
	case isValidationStatus(resp.StatusCode):
		i.errs = resource.DecodeErrors(resp.Body)
		return ErrValidationFailed
	default:
		return unexpected(resp)
	}
}

func (i *Identity) precondition(msg string) error {
	i.errs = resource.Errors{resource.MessageKey: {msg}}
	return fmt.Errorf("%w: %s", ErrPreconditionViolated, msg)
}

// IsPersisted reports whether the instance mirrors a remote record: it has
// been through a successful round-trip and carries a uuid.
func (i *Identity) IsPersisted() bool {
	return i.state == resource.Persisted && i.UUID() != ""
}

// IsDestroyed reports whether the remote record has been deleted.
func (i *Identity) IsDestroyed() bool {
	return i.state == resource.Destroyed
}

// Errors returns the field messages from the last attempted operation, empty
// after a success.
func (i *Identity) Errors() map[string][]string {
	return i.errs
}

// Attr returns the current value of a declared attribute, nil when unset.
func (i *Identity) Attr(name string) any {
	return i.attrs.Get(name)
}

// Set assigns a declared attribute. Unknown names are dropped and reported
// with a false return.
func (i *Identity) Set(name string, value any) bool {
	return i.attrs.Set(name, value)
}

// SetAttrs bulk-assigns declared attributes, dropping unknown keys.
func (i *Identity) SetAttrs(attrs map[string]any) {
	i.attrs.SetAll(attrs)
}

// Attrs returns every declared attribute's current value.
func (i *Identity) Attrs() map[string]any {
	return i.attrs.All()
}

// UUID returns the server-assigned identifier, "" while Transient.
func (i *Identity) UUID() string { return i.attrs.GetString("uuid") }

// Email returns the identity's email address.
func (i *Identity) Email() string { return i.attrs.GetString("email") }

// FirstName returns the identity's first name.
func (i *Identity) FirstName() string { return i.attrs.GetString("first_name") }

// LastName returns the identity's last name.
func (i *Identity) LastName() string { return i.attrs.GetString("last_name") }

// Nickname returns the identity's nickname.
func (i *Identity) Nickname() string { return i.attrs.GetString("nickname") }

// CPF returns the identity's CPF document number.
func (i *Identity) CPF() string { return i.attrs.GetString("cpf") }

// IDToken returns the session token issued by Authenticate, "" otherwise.
func (i *Identity) IDToken() string { return i.attrs.GetString("id_token") }

// IsActive reports whether the account is active on the service.
func (i *Identity) IsActive() bool { return i.attrs.GetBool("is_active") }
