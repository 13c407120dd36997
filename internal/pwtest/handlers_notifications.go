package pwtest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// createNotificationRequest is the JSON body for POST /notifications/api/.
type createNotificationRequest struct {
	Destination string `json:"destination"`
	Body        string `json:"body"`
	TargetURL   string `json:"target_url"`
	ScheduledTo string `json:"scheduled_to"`
}

func (s *Server) createNotification(w http.ResponseWriter, r *http.Request) {
	var req createNotificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fault(w, http.StatusBadRequest, map[string][]string{
			"message": {"invalid request body"},
		})
		return
	}

	errs := map[string][]string{}
	if req.Body == "" {
		errs["body"] = append(errs["body"], "This field is required.")
	}
	if req.Destination == "" {
		errs["destination"] = append(errs["destination"], "This field is required.")
	} else if _, ok := s.store.identities.Get(req.Destination); !ok {
		errs["destination"] = append(errs["destination"], "There is no identity with this uuid.")
	}
	var scheduled time.Time
	if req.ScheduledTo != "" {
		t, err := time.Parse(time.RFC3339, req.ScheduledTo)
		if err != nil {
			errs["scheduled_to"] = append(errs["scheduled_to"], "Enter a valid date/time.")
		}
		scheduled = t
	}
	if len(errs) > 0 {
		fault(w, http.StatusBadRequest, errs)
		return
	}

	n := Notification{
		UUID:             uuid.NewString(),
		Destination:      req.Destination,
		Body:             req.Body,
		TargetURL:        req.TargetURL,
		ScheduledTo:      req.ScheduledTo,
		NotificationType: "user",
	}
	n.AbsoluteURL = "/notifications/api/" + n.UUID + "/"
	// A notification is delivered immediately unless scheduled for later.
	if req.ScheduledTo == "" || !scheduled.After(time.Now()) {
		n.ReceiveDate = now()
	}

	s.store.notifications.Set(n.UUID, n)
	writeJSON(w, http.StatusOK, n)
}

// notificationFilters are the query parameters shared by list and count.
type notificationFilters struct {
	since    time.Time
	showRead bool
	ordering string
}

// parseNotificationFilters validates the shared query parameters. On failure
// it writes the fault response and returns false.
func parseNotificationFilters(w http.ResponseWriter, r *http.Request) (notificationFilters, bool) {
	var f notificationFilters
	q := r.URL.Query()

	if raw := q.Get("since"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			fault(w, http.StatusBadRequest, map[string][]string{
				"since": {"Enter a valid date/time."},
			})
			return f, false
		}
		f.since = t
	}
	if raw := q.Get("show_read"); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			fault(w, http.StatusBadRequest, map[string][]string{
				"show_read": {"Enter a valid boolean."},
			})
			return f, false
		}
		f.showRead = b
	}
	f.ordering = q.Get("ordering")
	if f.ordering != "" && f.ordering != "newest-first" && f.ordering != "oldest-first" {
		fault(w, http.StatusBadRequest, map[string][]string{
			"ordering": {"Select a valid choice. " + f.ordering + " is not one of the available choices."},
		})
		return f, false
	}
	return f, true
}

// visibleNotifications applies caller scope and filters, oldest first.
func (s *Server) visibleNotifications(caller string, f notificationFilters) []Notification {
	return s.store.notifications.Filter(func(n Notification) bool {
		if caller != "" && n.Destination != caller {
			return false
		}
		if n.ReceiveDate == "" {
			// Not delivered yet; scheduled notifications only surface to the
			// application, which created them.
			if caller != "" {
				return false
			}
		}
		if !f.showRead && n.ReadAt != "" {
			return false
		}
		if !f.since.IsZero() && n.ReceiveDate != "" {
			received, err := time.Parse(time.RFC3339, n.ReceiveDate)
			if err == nil && received.Before(f.since) {
				return false
			}
		}
		return true
	})
}

func (s *Server) listNotifications(w http.ResponseWriter, r *http.Request) {
	f, ok := parseNotificationFilters(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	page := 1
	limit := 20
	if raw := q.Get("page"); raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil || p < 1 {
			fault(w, http.StatusBadRequest, map[string][]string{
				"page": {"Enter a valid page number."},
			})
			return
		}
		page = p
	}
	if raw := q.Get("limit"); raw != "" {
		l, err := strconv.Atoi(raw)
		if err != nil || l < 1 || l > 100 {
			fault(w, http.StatusBadRequest, map[string][]string{
				"limit": {"Enter a limit between 1 and 100."},
			})
			return
		}
		limit = l
	}

	items := s.visibleNotifications(callerUUID(r), f)
	if f.ordering != "oldest-first" {
		for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
			items[i], items[j] = items[j], items[i]
		}
	}

	lastPage := (len(items) + limit - 1) / limit
	if lastPage == 0 {
		lastPage = 1
	}
	if page > lastPage {
		fault(w, http.StatusNotFound, map[string][]string{
			"message": {"invalid page"},
		})
		return
	}

	start := (page - 1) * limit
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	slice := items[start:end]
	if slice == nil {
		slice = []Notification{}
	}

	w.Header().Set("Link", s.linkHeader(r, page, lastPage, limit))
	writeJSON(w, http.StatusOK, slice)
}

// linkHeader builds the RFC 5988 Link header advertising the page set.
func (s *Server) linkHeader(r *http.Request, page, lastPage, limit int) string {
	ref := func(p, rel string) string {
		return fmt.Sprintf("<http://%s%s?page=%s&limit=%d>; rel=\"%s\"", r.Host, r.URL.Path, p, limit, rel)
	}
	links := []string{
		ref("1", "first"),
		ref(strconv.Itoa(lastPage), "last"),
	}
	if page > 1 {
		links = append(links, ref(strconv.Itoa(page-1), "prev"))
	}
	if page < lastPage {
		links = append(links, ref(strconv.Itoa(page+1), "next"))
	}
	out := links[0]
	for _, l := range links[1:] {
		out += ", " + l
	}
	return out
}

func (s *Server) countNotifications(w http.ResponseWriter, r *http.Request) {
	f, ok := parseNotificationFilters(w, r)
	if !ok {
		return
	}
	items := s.visibleNotifications(callerUUID(r), f)
	writeJSON(w, http.StatusOK, map[string]int{"count": len(items)})
}

func (s *Server) getNotification(w http.ResponseWriter, r *http.Request) {
	n, ok := s.store.notifications.Get(chi.URLParam(r, "uuid"))
	if !ok || (callerUUID(r) != "" && n.Destination != callerUUID(r)) {
		fault(w, http.StatusNotFound, map[string][]string{
			"message": {"notification not found"},
		})
		return
	}
	writeJSON(w, http.StatusOK, n)
}

func (s *Server) markNotificationRead(w http.ResponseWriter, r *http.Request) {
	n, ok := s.store.notifications.Get(chi.URLParam(r, "uuid"))
	if !ok || (callerUUID(r) != "" && n.Destination != callerUUID(r)) {
		fault(w, http.StatusNotFound, map[string][]string{
			"message": {"notification not found"},
		})
		return
	}
	if n.ReadAt != "" {
		fault(w, http.StatusBadRequest, map[string][]string{
			"message": {"notification already read"},
		})
		return
	}

	n.ReadAt = now()
	s.store.notifications.Set(n.UUID, n)
	writeJSON(w, http.StatusOK, n)
}

func (s *Server) deleteNotification(w http.ResponseWriter, r *http.Request) {
	n, ok := s.store.notifications.Get(chi.URLParam(r, "uuid"))
	if !ok {
		fault(w, http.StatusNotFound, map[string][]string{
			"message": {"notification not found"},
		})
		return
	}

	scheduled, err := time.Parse(time.RFC3339, n.ScheduledTo)
	if n.ScheduledTo == "" || err != nil || !scheduled.After(time.Now()) {
		fault(w, http.StatusBadRequest, map[string][]string{
			"message": {"only undelivered scheduled notifications can be removed"},
		})
		return
	}

	s.store.notifications.Delete(n.UUID)
	writeJSON(w, http.StatusNoContent, nil)
}
