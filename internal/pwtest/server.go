package pwtest

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Default application credentials accepted by a fresh Server.
const (
	DefaultAppToken  = "app-token"
	DefaultAppSecret = "app-secret"
)

type ctxKey int

// userKey carries the authenticated user's uuid, "" for application calls.
const userKey ctxKey = iota

// Server is the fake PassaporteWeb service. Mount it on an httptest.Server
// and point the client at its URL.
type Server struct {
	AppToken  string
	AppSecret string

	store     *memoryStore
	router    *chi.Mux
	jwtSecret []byte
	requests  atomic.Int64
}

// NewServer creates a fake service accepting the default application
// credentials.
func NewServer() *Server {
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		panic(fmt.Sprintf("pwtest: generating jwt secret: %v", err))
	}

	s := &Server{
		AppToken:  DefaultAppToken,
		AppSecret: DefaultAppSecret,
		store:     newMemoryStore(),
		jwtSecret: secret,
	}

	r := chi.NewRouter()
	r.Use(s.countRequests)

	r.Group(func(r chi.Router) {
		r.Use(s.requireAuth)

		r.Post("/accounts/api/create/", s.createIdentity)
		r.Post("/accounts/api/auth/", s.authenticate)
		r.Get("/profile/api/info/", s.getIdentityByEmail)
		r.Get("/profile/api/info/{uuid}/", s.getIdentity)
		r.Put("/profile/api/info/{uuid}/", s.updateIdentity)

		r.Get("/notifications/api/", s.listNotifications)
		r.Get("/notifications/api/count/", s.countNotifications)
		r.Post("/notifications/api/", s.createNotification)
		r.Get("/notifications/api/{uuid}/", s.getNotification)
		r.Put("/notifications/api/{uuid}/", s.markNotificationRead)
		r.Delete("/notifications/api/{uuid}/", s.deleteNotification)
	})

	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Requests returns how many HTTP requests the server has seen. Tests use it
// to assert that an operation made no network call.
func (s *Server) Requests() int64 {
	return s.requests.Load()
}

func (s *Server) countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.requests.Add(1)
		next.ServeHTTP(w, r)
	})
}

// requireAuth accepts either the application's Basic credential pair, which
// grants unscoped access, or a Bearer session token issued by authenticate,
// which scopes the call to that user.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token, secret, ok := r.BasicAuth(); ok {
			if token != s.AppToken || secret != s.AppSecret {
				fault(w, http.StatusUnauthorized, map[string][]string{
					"message": {"invalid application credentials"},
				})
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey, "")))
			return
		}

		auth := r.Header.Get("Authorization")
		const prefix = "Bearer "
		if len(auth) <= len(prefix) || auth[:len(prefix)] != prefix {
			fault(w, http.StatusUnauthorized, map[string][]string{
				"message": {"missing credentials"},
			})
			return
		}
		sub, err := s.verifyToken(auth[len(prefix):])
		if err != nil {
			fault(w, http.StatusUnauthorized, map[string][]string{
				"message": {"invalid session token"},
			})
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey, sub)))
	})
}

// issueToken signs a session token for the given identity.
func (s *Server) issueToken(identityUUID string) string {
	nowT := time.Now()
	claims := jwt.MapClaims{
		"iss": "pwtest",
		"sub": identityUUID,
		"iat": nowT.Unix(),
		"exp": nowT.Add(time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		panic(fmt.Sprintf("pwtest: signing session token: %v", err))
	}
	return signed
}

// verifyToken checks a session token's signature and expiry and returns its
// subject.
func (s *Server) verifyToken(raw string) (string, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return "", err
	}
	return token.Claims.GetSubject()
}

// callerUUID returns the authenticated user's uuid, "" for application calls.
func callerUUID(r *http.Request) string {
	sub, _ := r.Context().Value(userKey).(string)
	return sub
}

// SeedIdentity stores an active identity with a bcrypt-hashed password and
// returns the stored record.
func (s *Server) SeedIdentity(email, password string) Identity {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(fmt.Sprintf("pwtest: hashing seed password: %v", err))
	}
	id := newIdentityRecord(email)
	id.PasswordHash = hash
	s.store.identities.Set(id.UUID, id)
	return id
}

// SeedNotification stores a notification record directly. scheduledTo and
// readAt may be empty.
func (s *Server) SeedNotification(destination, body, scheduledTo, readAt string) Notification {
	n := Notification{
		UUID:             uuid.NewString(),
		Destination:      destination,
		Body:             body,
		ScheduledTo:      scheduledTo,
		ReadAt:           readAt,
		NotificationType: "user",
		ReceiveDate:      now(),
	}
	n.AbsoluteURL = "/notifications/api/" + n.UUID + "/"
	s.store.notifications.Set(n.UUID, n)
	return n
}

// Token returns a valid session token for the given identity uuid.
func (s *Server) Token(identityUUID string) string {
	return s.issueToken(identityUUID)
}

func newIdentityRecord(email string) Identity {
	id := Identity{
		UUID:               uuid.NewString(),
		Email:              email,
		IsActive:           true,
		AcceptedTermsOfUse: true,
	}
	id.ProfileURL = "/profile/" + id.UUID + "/"
	id.UpdateInfoURL = "/profile/api/info/" + id.UUID + "/"
	return id
}

// writeJSON writes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

// fault writes a client-fault body in the service's field-errors shape.
func fault(w http.ResponseWriter, status int, errs map[string][]string) {
	writeJSON(w, status, errs)
}
