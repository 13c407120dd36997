package passaporteweb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cotelha/passaporteweb/internal/resource"
)

const (
	notificationPath      = "/notifications/api/"
	notificationCountPath = "/notifications/api/count/"

	// defaultPageLimit is the page size used when a list call does not name one.
	defaultPageLimit = 20
)

// notificationSchema is the Notification kind's attribute table. The kind has
// no updatable attributes: once delivered to the service a notification can
// only be marked read or, while still scheduled, removed.
var notificationSchema = resource.Schema{
	"uuid":              resource.ReadOnly,
	"absolute_url":      resource.ReadOnly,
	"notification_type": resource.ReadOnly,
	"receive_date":      resource.ReadOnly,
	"read_at":           resource.ReadOnly,
	"sender_data":       resource.ReadOnly,

	"destination":  resource.Creatable,
	"body":         resource.Creatable,
	"target_url":   resource.Creatable,
	"scheduled_to": resource.Creatable,
}

// Notification is the local representation of a PassaporteWeb notification
// record.
type Notification struct {
	svc   *NotificationService
	attrs *resource.Store
	state resource.State
	errs  resource.Errors
}

// NotificationService operates on the Notification kind. Reach it through
// Client.Notifications.
type NotificationService struct {
	c *Client
}

// NotificationListOptions filters a List or Count call. Zero values mean
// "not set": page 1 and the default limit are used, and no filter parameters
// are sent.
type NotificationListOptions struct {
	Page     int
	Limit    int
	Since    time.Time
	ShowRead bool
	Ordering string
}

func (o NotificationListOptions) filterQuery() url.Values {
	q := url.Values{}
	if !o.Since.IsZero() {
		q.Set("since", o.Since.Format(time.RFC3339))
	}
	if o.ShowRead {
		q.Set("show_read", "true")
	}
	if o.Ordering != "" {
		q.Set("ordering", o.Ordering)
	}
	return q
}

// New constructs a Transient notification from the given attributes. Keys
// outside the declared attribute set are dropped.
func (s *NotificationService) New(attrs map[string]any) *Notification {
	n := &Notification{svc: s, attrs: resource.NewStore(notificationSchema)}
	if attrs != nil {
		n.attrs.SetAll(attrs)
	}
	return n
}

// hydrate builds a notification already in the Persisted state from a
// response attribute map.
func (s *NotificationService) hydrate(attrs map[string]any) *Notification {
	n := s.New(attrs)
	n.state = resource.Persisted
	return n
}

// Find fetches a single notification by uuid. Returns ErrNotFound when the
// service has no such record.
func (s *NotificationService) Find(ctx context.Context, uuid string) (*Notification, error) {
	resp, err := s.c.transport.Do(ctx, http.MethodGet, notificationPath+uuid+"/", nil, nil, s.c.userCreds())
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
		return nil, fmt.Errorf("notification %s: %w", uuid, ErrNotFound)
	default:
		return nil, unexpected(resp)
	}
}

// List fetches a page of the user's notifications plus the page references
// the service advertised in its Link header. An out-of-range page is
// ErrNotFound, a rejected filter is ErrInvalidArgument.
func (s *NotificationService) List(ctx context.Context, opts NotificationListOptions) ([]*Notification, PageSet, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultPageLimit
	}
	page := opts.Page
	if page <= 0 {
		page = 1
	}

	q := opts.filterQuery()
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))

	resp, err := s.c.transport.Do(ctx, http.MethodGet, notificationPath, q, nil, s.c.userCreds())
	if err != nil {
		return nil, PageSet{}, err
	}
	switch resp.StatusCode {
	case http.StatusOK:
		var items []map[string]any
		if err := json.Unmarshal(resp.Body, &items); err != nil {
			return nil, PageSet{}, unexpected(resp)
		}
		list := make([]*Notification, 0, len(items))
		for _, attrs := range items {
			list = append(list, s.hydrate(attrs))
		}
		return list, parsePageSet(resp.Header.Get("Link"), limit), nil
	case http.StatusNotFound:
		return nil, PageSet{}, fmt.Errorf("notifications page %d: %w", page, ErrNotFound)
	case http.StatusBadRequest:
		return nil, PageSet{}, fmt.Errorf("listing notifications: %w", ErrInvalidArgument)
	default:
		return nil, PageSet{}, unexpected(resp)
	}
}

// Count fetches how many notifications match the filters, without paging
// through them.
func (s *NotificationService) Count(ctx context.Context, opts NotificationListOptions) (int, error) {
	resp, err := s.c.transport.Do(ctx, http.MethodGet, notificationCountPath, opts.filterQuery(), nil, s.c.userCreds())
	if err != nil {
		return 0, err
	}
	switch resp.StatusCode {
	case http.StatusOK:
		var out struct {
			Count int `json:"count"`
		}
		if err := json.Unmarshal(resp.Body, &out); err != nil {
			return 0, unexpected(resp)
		}
		return out.Count, nil
	case http.StatusBadRequest:
		return 0, fmt.Errorf("counting notifications: %w", ErrInvalidArgument)
	default:
		return 0, unexpected(resp)
	}
}

// Save delivers a Transient notification to the service. The kind has no
// update path, so saving an already Persisted notification is a local
// precondition failure, without a network call.
func (n *Notification) Save(ctx context.Context) error {
	switch {
	case n.IsDestroyed():
		return n.precondition("cannot save a destroyed notification")
	case n.IsPersisted():
		return n.precondition("notifications cannot be updated after creation")
	}

	// Empty strings are dropped along with unset values: the service treats
	// an empty-but-present field as a value to validate, not an omission.
	body := resource.CreateBody(n.attrs, true)
	resp, err := n.svc.c.transport.Do(ctx, http.MethodPost, notificationPath, nil, body, n.svc.c.appCreds())
	if err != nil {
		return err
	}
	return n.applyWrite(resp)
}

// MarkRead marks the notification as read. An instance that is not persisted
// or is already read refuses locally, without a network call.
func (n *Notification) MarkRead(ctx context.Context) error {
	switch {
	case n.IsDestroyed():
		return n.precondition("cannot mark a destroyed notification as read")
	case !n.IsPersisted():
		return n.precondition("cannot mark an unsaved notification as read")
	case !n.ReadAt().IsZero():
		return n.precondition("notification is already read")
	}

	path := notificationPath + n.UUID() + "/"
	resp, err := n.svc.c.transport.Do(ctx, http.MethodPut, path, nil, nil, n.svc.c.userCreds())
	if err != nil {
		return err
	}
	return n.applyWrite(resp)
}

// Delete removes a scheduled notification that has not been delivered yet.
// Preconditions are checked locally: the instance must be persisted and carry
// a scheduled_to date. A service refusal (e.g. already delivered) lands in
// Errors() and leaves the instance Persisted.
func (n *Notification) Delete(ctx context.Context) error {
	switch {
	case n.IsDestroyed():
		return n.precondition("notification is already destroyed")
	case !n.IsPersisted():
		return n.precondition("cannot destroy an unsaved notification")
	case n.attrs.Get("scheduled_to") == nil:
		return n.precondition("only scheduled notifications can be destroyed")
	}

	path := notificationPath + n.UUID() + "/"
	resp, err := n.svc.c.transport.Do(ctx, http.MethodDelete, path, nil, nil, n.svc.c.appCreds())
	if err != nil {
		return err
	}
	switch {
	case resp.StatusCode == http.StatusNoContent:
		n.state = resource.Destroyed
		n.errs = nil
		return nil
	case isValidationStatus(resp.StatusCode):
		n.errs = resource.DecodeErrors(resp.Body)
		return ErrValidationFailed
	default:
		return unexpected(resp)
	}
}

// applyWrite folds a create/mutate response into the instance: success
// refreshes attributes and settles on Persisted, a validation fault records
// the messages without touching state, anything else is fatal.
func (n *Notification) applyWrite(resp *Response) error {
	switch {
	case resp.StatusCode == http.StatusOK:
		attrs, err := decodeAttrs(resp)
		if err != nil {
			return err
		}
		n.attrs.SetAll(attrs)
		n.state = resource.Persisted
		n.errs = nil
		return nil
	case isValidationStatus(resp.StatusCode):
		n.errs = resource.DecodeErrors(resp.Body)
		return ErrValidationFailed
	default:
		return unexpected(resp)
	}
}

func (n *Notification) precondition(msg string) error {
	n.errs = resource.Errors{resource.MessageKey: {msg}}
	return fmt.Errorf("%w: %s", ErrPreconditionViolated, msg)
}

// IsPersisted reports whether the instance mirrors a remote record.
func (n *Notification) IsPersisted() bool {
	return n.state == resource.Persisted && n.UUID() != ""
}

// IsDestroyed reports whether the remote record has been deleted.
func (n *Notification) IsDestroyed() bool {
	return n.state == resource.Destroyed
}

// Errors returns the field messages from the last attempted operation, empty
// after a success.
func (n *Notification) Errors() map[string][]string {
	return n.errs
}

// Attr returns the current value of a declared attribute, nil when unset.
func (n *Notification) Attr(name string) any {
	return n.attrs.Get(name)
}

// Set assigns a declared attribute. Unknown names are dropped and reported
// with a false return.
func (n *Notification) Set(name string, value any) bool {
	return n.attrs.Set(name, value)
}

// SetAttrs bulk-assigns declared attributes, dropping unknown keys.
func (n *Notification) SetAttrs(attrs map[string]any) {
	n.attrs.SetAll(attrs)
}

// Attrs returns every declared attribute's current value.
func (n *Notification) Attrs() map[string]any {
	return n.attrs.All()
}

// UUID returns the server-assigned identifier, "" while Transient.
func (n *Notification) UUID() string { return n.attrs.GetString("uuid") }

// Body returns the notification text.
func (n *Notification) Body() string { return n.attrs.GetString("body") }

// Destination returns the uuid of the identity the notification targets.
func (n *Notification) Destination() string { return n.attrs.GetString("destination") }

// TargetURL returns the URL the notification points at, if any.
func (n *Notification) TargetURL() string { return n.attrs.GetString("target_url") }

// ScheduledTo returns the scheduled delivery time, zero when unscheduled.
func (n *Notification) ScheduledTo() time.Time { return n.attrs.GetTime("scheduled_to") }

// ReadAt returns when the notification was read, zero while unread.
func (n *Notification) ReadAt() time.Time { return n.attrs.GetTime("read_at") }
