package pwtest

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"
)

// createIdentityRequest is the JSON body for POST /accounts/api/create/.
type createIdentityRequest struct {
	Email              string `json:"email"`
	Password           string `json:"password"`
	Password2          string `json:"password2"`
	TOS                bool   `json:"tos"`
	MustChangePassword bool   `json:"must_change_password"`
	FirstName          string `json:"first_name"`
	LastName           string `json:"last_name"`
	Nickname           string `json:"nickname"`
	CPF                string `json:"cpf"`
	BirthDate          string `json:"birth_date"`
	Gender             string `json:"gender"`
	Language           string `json:"language"`
	Country            string `json:"country"`
	Timezone           string `json:"timezone"`
	SendNews           bool   `json:"send_news"`
	SendPartnerNews    bool   `json:"send_partner_news"`
}

// updateIdentityRequest is the JSON body for PUT /profile/api/info/{uuid}/.
// Pointer fields distinguish "absent" from "present but empty".
type updateIdentityRequest struct {
	FirstName       *string `json:"first_name"`
	LastName        *string `json:"last_name"`
	Nickname        *string `json:"nickname"`
	CPF             *string `json:"cpf"`
	BirthDate       *string `json:"birth_date"`
	Gender          *string `json:"gender"`
	Language        *string `json:"language"`
	Country         *string `json:"country"`
	Timezone        *string `json:"timezone"`
	SendNews        *bool   `json:"send_news"`
	SendPartnerNews *bool   `json:"send_partner_news"`
}

func (s *Server) createIdentity(w http.ResponseWriter, r *http.Request) {
	var req createIdentityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fault(w, http.StatusBadRequest, map[string][]string{
			"message": {"invalid request body"},
		})
		return
	}

	errs := map[string][]string{}
	if req.Email == "" {
		errs["email"] = append(errs["email"], "This field is required.")
	} else if !strings.Contains(req.Email, "@") {
		errs["email"] = append(errs["email"], "Enter a valid e-mail address.")
	} else if _, taken := s.store.findIdentityByEmail(req.Email); taken {
		errs["email"] = append(errs["email"], "An account with this e-mail already exists.")
	}
	if req.Password == "" {
		errs["password"] = append(errs["password"], "This field is required.")
	} else if len(req.Password) < 6 {
		errs["password"] = append(errs["password"], "Ensure this value has at least 6 characters.")
	}
	if req.Password2 != "" && req.Password2 != req.Password {
		errs["password2"] = append(errs["password2"], "The two password fields didn't match.")
	}
	if !req.TOS {
		errs["tos"] = append(errs["tos"], "You must agree to the Terms of Service.")
	}
	if msg, ok := validateCPF(req.CPF); !ok {
		errs["cpf"] = append(errs["cpf"], msg)
	}
	if len(errs) > 0 {
		fault(w, http.StatusBadRequest, errs)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.MinCost)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"detail": err.Error()})
		return
	}

	id := newIdentityRecord(req.Email)
	id.PasswordHash = hash
	id.MustChangePassword = req.MustChangePassword
	id.FirstName = req.FirstName
	id.LastName = req.LastName
	id.Nickname = req.Nickname
	id.CPF = req.CPF
	id.BirthDate = req.BirthDate
	id.Gender = req.Gender
	id.Language = req.Language
	id.Country = req.Country
	id.Timezone = req.Timezone
	id.SendNews = req.SendNews
	id.SendPartnerNews = req.SendPartnerNews

	s.store.identities.Set(id.UUID, id)
	writeJSON(w, http.StatusOK, id)
}

func (s *Server) authenticate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fault(w, http.StatusBadRequest, map[string][]string{
			"message": {"invalid request body"},
		})
		return
	}

	id, ok := s.store.findIdentityByEmail(req.Email)
	if !ok || bcrypt.CompareHashAndPassword(id.PasswordHash, []byte(req.Password)) != nil {
		fault(w, http.StatusNotFound, map[string][]string{
			"message": {"invalid credentials"},
		})
		return
	}

	id.IDToken = s.issueToken(id.UUID)
	writeJSON(w, http.StatusOK, id)
}

func (s *Server) getIdentity(w http.ResponseWriter, r *http.Request) {
	id, ok := s.store.identities.Get(chi.URLParam(r, "uuid"))
	if !ok {
		fault(w, http.StatusNotFound, map[string][]string{
			"message": {"identity not found"},
		})
		return
	}
	writeJSON(w, http.StatusOK, id)
}

func (s *Server) getIdentityByEmail(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		fault(w, http.StatusBadRequest, map[string][]string{
			"email": {"This field is required."},
		})
		return
	}
	id, ok := s.store.findIdentityByEmail(email)
	if !ok {
		fault(w, http.StatusNotFound, map[string][]string{
			"message": {"identity not found"},
		})
		return
	}
	writeJSON(w, http.StatusOK, id)
}

func (s *Server) updateIdentity(w http.ResponseWriter, r *http.Request) {
	id, ok := s.store.identities.Get(chi.URLParam(r, "uuid"))
	if !ok {
		fault(w, http.StatusNotFound, map[string][]string{
			"message": {"identity not found"},
		})
		return
	}

	var req updateIdentityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fault(w, http.StatusBadRequest, map[string][]string{
			"message": {"invalid request body"},
		})
		return
	}

	if req.CPF != nil {
		if msg, ok := validateCPF(*req.CPF); !ok {
			fault(w, http.StatusBadRequest, map[string][]string{"cpf": {msg}})
			return
		}
	}

	if req.FirstName != nil {
		id.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		id.LastName = *req.LastName
	}
	if req.Nickname != nil {
		id.Nickname = *req.Nickname
	}
	if req.CPF != nil {
		id.CPF = *req.CPF
	}
	if req.BirthDate != nil {
		id.BirthDate = *req.BirthDate
	}
	if req.Gender != nil {
		id.Gender = *req.Gender
	}
	if req.Language != nil {
		id.Language = *req.Language
	}
	if req.Country != nil {
		id.Country = *req.Country
	}
	if req.Timezone != nil {
		id.Timezone = *req.Timezone
	}
	if req.SendNews != nil {
		id.SendNews = *req.SendNews
	}
	if req.SendPartnerNews != nil {
		id.SendPartnerNews = *req.SendPartnerNews
	}

	s.store.identities.Set(id.UUID, id)
	writeJSON(w, http.StatusOK, id)
}

// validateCPF checks the CPF document number format: empty is allowed,
// anything else must be exactly 11 digits.
func validateCPF(cpf string) (string, bool) {
	if cpf == "" {
		return "", true
	}
	if len(cpf) != 11 {
		return "Ensure this value has exactly 11 digits.", false
	}
	for _, c := range cpf {
		if c < '0' || c > '9' {
			return "Ensure this value contains only digits.", false
		}
	}
	return "", true
}
