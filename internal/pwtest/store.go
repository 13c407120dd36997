// Package pwtest runs an in-process fake of the PassaporteWeb service for
// tests: the real wire protocol over an in-memory store, with Basic-auth
// application credentials, JWT session tokens, and Link-header pagination.
package pwtest

import (
	"sync"
	"time"
)

// Identity is a stored identity record in the service's wire shape.
type Identity struct {
	UUID               string `json:"uuid"`
	Email              string `json:"email"`
	FirstName          string `json:"first_name,omitempty"`
	LastName           string `json:"last_name,omitempty"`
	Nickname           string `json:"nickname,omitempty"`
	CPF                string `json:"cpf,omitempty"`
	BirthDate          string `json:"birth_date,omitempty"`
	Gender             string `json:"gender,omitempty"`
	Language           string `json:"language,omitempty"`
	Country            string `json:"country,omitempty"`
	Timezone           string `json:"timezone,omitempty"`
	SendNews           bool   `json:"send_news"`
	SendPartnerNews    bool   `json:"send_partner_news"`
	IsActive           bool   `json:"is_active"`
	AcceptedTermsOfUse bool   `json:"accepted_terms_of_use"`
	MustChangePassword bool   `json:"must_change_password"`
	ProfileURL         string `json:"profile_url,omitempty"`
	UpdateInfoURL      string `json:"update_info_url,omitempty"`
	IDToken            string `json:"id_token,omitempty"`
	PasswordHash       []byte `json:"-"`
}

// Notification is a stored notification record in the service's wire shape.
type Notification struct {
	UUID             string         `json:"uuid"`
	Destination      string         `json:"destination"`
	Body             string         `json:"body"`
	TargetURL        string         `json:"target_url,omitempty"`
	ScheduledTo      string         `json:"scheduled_to,omitempty"`
	AbsoluteURL      string         `json:"absolute_url,omitempty"`
	NotificationType string         `json:"notification_type,omitempty"`
	ReceiveDate      string         `json:"receive_date,omitempty"`
	ReadAt           string         `json:"read_at,omitempty"`
	SenderData       map[string]any `json:"sender_data,omitempty"`
}

// table is a thread-safe in-memory record set keyed by uuid, listed in
// insertion order.
type table[T any] struct {
	mu    sync.RWMutex
	items map[string]T
	order []string
}

func newTable[T any]() *table[T] {
	return &table[T]{items: make(map[string]T)}
}

// Set stores an item under id, preserving its position when overwriting.
func (t *table[T]) Set(id string, item T) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, exists := t.items[id]; !exists {
		t.order = append(t.order, id)
	}
	t.items[id] = item
}

// Get retrieves an item by id.
func (t *table[T]) Get(id string) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	item, ok := t.items[id]
	return item, ok
}

// Delete removes an item by id. Returns true if it existed.
func (t *table[T]) Delete(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, exists := t.items[id]; !exists {
		return false
	}
	delete(t.items, id)
	for i, oid := range t.order {
		if oid == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return true
}

// Filter returns items matching the predicate, in insertion order.
func (t *table[T]) Filter(predicate func(item T) bool) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	var out []T
	for _, id := range t.order {
		if predicate(t.items[id]) {
			out = append(out, t.items[id])
		}
	}
	return out
}

// memoryStore holds the fake service's state.
type memoryStore struct {
	identities    *table[Identity]
	notifications *table[Notification]
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		identities:    newTable[Identity](),
		notifications: newTable[Notification](),
	}
}

// findIdentityByEmail scans for the identity holding the given email.
func (m *memoryStore) findIdentityByEmail(email string) (Identity, bool) {
	matches := m.identities.Filter(func(i Identity) bool { return i.Email == email })
	if len(matches) == 0 {
		return Identity{}, false
	}
	return matches[0], true
}

// now returns the service's current time in the wire format.
func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}
