// Package recruittest runs an in-memory Dental Recruit API on httptest for
// tests of the SDK and everything built on it.
package recruittest

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"slices"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/aussiebroadwan/dentalrecruit/pkg/httpx"
	"github.com/aussiebroadwan/dentalrecruit/pkg/recruitsdk"
	"github.com/aussiebroadwan/dentalrecruit/pkg/slogx"
	"github.com/aussiebroadwan/dentalrecruit/pkg/tokenx"
)

// Request is one call recorded by the server.
type Request struct {
	Method        string
	Path          string
	Authorization string
}

type account struct {
	ID        string
	Name      string
	Email     string
	Role      string
	Hash      []byte
	CreatedAt time.Time
}

type jobRow struct {
	job     recruitsdk.Job
	ownerID string
}

type appRow struct {
	app      recruitsdk.Application
	jobID    string
	doctorID string
}

// Server is a fake backend. The zero value is not usable; call New.
type Server struct {
	*httptest.Server

	// Logger receives the middleware's diagnostics. New sets a discarding
	// logger; replace it before the first request to see them.
	Logger *slog.Logger

	secret []byte
	jti    atomic.Int64

	mu           sync.Mutex
	seq          int
	epoch        time.Time
	users        map[string]*account
	byEmail      map[string]string
	doctors      map[string]*recruitsdk.DoctorProfile
	clinics      map[string]*recruitsdk.ClinicProfile
	jobs         []*jobRow
	apps         []*appRow
	revoked      map[string]bool
	failures     map[string]int
	requests     []Request
	registerRole string
}

// New starts a server. It is closed by t.Cleanup when tb is non-nil.
func New(tb interface{ Cleanup(func()) }) *Server {
	s := &Server{
		Logger:   slogx.Discard(),
		secret:   []byte("recruittest-secret"),
		epoch:    time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC),
		users:    make(map[string]*account),
		byEmail:  make(map[string]string),
		doctors:  make(map[string]*recruitsdk.DoctorProfile),
		clinics:  make(map[string]*recruitsdk.ClinicProfile),
		revoked:  make(map[string]bool),
		failures: make(map[string]int),
	}
	s.Server = httptest.NewServer(http.StripPrefix("/api", s.routes()))
	if tb != nil {
		tb.Cleanup(s.Close)
	}
	return s
}

// BaseURL is the API root to hand to recruitsdk.NewClient.
func (s *Server) BaseURL() string { return s.URL + "/api" }

// ============================================================================
// Test controls
// ============================================================================

// Fail makes every request matching method and path answer status.
func (s *Server) Fail(method, path string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method+" "+path] = status
}

// Requests returns the calls received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.requests)
}

// RevokeToken makes every later request bearing token answer 401.
func (s *Server) RevokeToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[token] = true
}

// ForceRegisterRole makes the registration endpoints report role in their
// response regardless of the account actually created.
func (s *Server) ForceRegisterRole(role string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registerRole = role
}

// ============================================================================
// Seeding
// ============================================================================

// SeedUser creates an account (and an empty profile for doctors and clinics)
// and returns its id.
func (s *Server) SeedUser(email, password, name, role string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := s.createAccount(email, password, name, role)
	switch role {
	case recruitsdk.RoleDoctor:
		s.doctors[a.ID] = &recruitsdk.DoctorProfile{ID: s.nextID(), FullName: name, Qualification: "BDS"}
	case recruitsdk.RoleClinic:
		s.clinics[a.ID] = &recruitsdk.ClinicProfile{ID: s.nextID(), ClinicName: name, Type: recruitsdk.ClinicTypeClinic, Email: email}
	}
	return a.ID
}

// IssueToken mints a valid bearer token for userID.
func (s *Server) IssueToken(userID string) string {
	s.mu.Lock()
	a := s.users[userID]
	s.mu.Unlock()
	if a == nil {
		panic("recruittest: unknown user " + userID)
	}
	return s.mint(a)
}

// SeedJob publishes posting for the clinic userID and returns the job id.
func (s *Server) SeedJob(clinicID string, posting recruitsdk.JobPosting) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createJob(clinicID, posting).job.ID
}

// SeedApplication files an application by doctorID to jobID.
func (s *Server) SeedApplication(jobID, doctorID, status string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	row := &appRow{
		app: recruitsdk.Application{
			ID:        s.nextID(),
			Status:    status,
			CreatedAt: s.tick(),
		},
		jobID:    jobID,
		doctorID: doctorID,
	}
	s.apps = append(s.apps, row)
	return row.app.ID
}

// ============================================================================
// Routing
// ============================================================================

var (
	anyRole    = []string{recruitsdk.RoleDoctor, recruitsdk.RoleClinic, recruitsdk.RoleSuperadmin}
	doctorOnly = []string{recruitsdk.RoleDoctor}
	clinicOnly = []string{recruitsdk.RoleClinic}
	adminOnly  = []string{recruitsdk.RoleSuperadmin}
)

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	handle := func(pattern string, h http.HandlerFunc, roles []string) {
		if roles == nil {
			mux.Handle(pattern, h)
			return
		}
		mux.Handle(pattern, httpx.Chain(h, httpx.AuthnMiddleware(s.verify), httpx.RequireRole(roles...)))
	}

	handle("POST /auth/login", s.login, nil)
	handle("POST /auth/register-doctor", s.registerDoctor, nil)
	handle("POST /auth/register-clinic", s.registerClinic, nil)
	handle("GET /auth/me", s.me, anyRole)

	handle("GET /doctors/me", s.getDoctor, doctorOnly)
	handle("PUT /doctors/me", s.putDoctor, doctorOnly)
	handle("GET /clinics/me", s.getClinic, clinicOnly)
	handle("PUT /clinics/me", s.putClinic, clinicOnly)

	handle("GET /jobs", s.listJobs, nil)
	handle("GET /jobs/my-jobs", s.myJobs, clinicOnly)
	handle("GET /jobs/{id}", s.getJob, nil)
	handle("POST /jobs", s.postJob, clinicOnly)
	handle("PATCH /jobs/{id}/toggle", s.toggleJob, clinicOnly)
	handle("DELETE /jobs/{id}", s.deleteJob, clinicOnly)

	handle("GET /applications/my-applications", s.myApplications, doctorOnly)
	handle("GET /applications/job/{id}/applications", s.jobApplications, clinicOnly)
	handle("PATCH /applications/{id}/status", s.updateStatus, clinicOnly)

	handle("GET /admin/users/doctors", s.adminDoctors, adminOnly)
	handle("GET /admin/users/clinics", s.adminClinics, adminOnly)
	handle("GET /admin/jobs", s.adminJobs, adminOnly)
	handle("GET /admin/applications", s.adminApplications, adminOnly)
	handle("GET /admin/stats/overview", s.statsOverview, adminOnly)
	handle("GET /admin/stats/jobs-by-city", s.jobsByCity, adminOnly)
	handle("GET /admin/stats/applications-by-status", s.applicationsByStatus, adminOnly)
	handle("GET /admin/export/{kind}", s.export, adminOnly)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method:        r.Method,
			Path:          r.URL.Path,
			Authorization: r.Header.Get("Authorization"),
		})
		status, fail := s.failures[r.Method+" "+r.URL.Path]
		s.mu.Unlock()

		if fail {
			httpx.WriteError(w, status, "injected failure")
			return
		}
		mux.ServeHTTP(w, r.WithContext(slogx.WithContext(r.Context(), s.Logger)))
	})
}

func (s *Server) verify(raw string) (httpx.Principal, error) {
	s.mu.Lock()
	revoked := s.revoked[raw]
	s.mu.Unlock()
	if revoked {
		return httpx.Principal{}, fmt.Errorf("token revoked")
	}

	c, err := tokenx.Verify(s.secret, raw)
	if err != nil {
		return httpx.Principal{}, err
	}

	s.mu.Lock()
	_, ok := s.users[c.Subject]
	s.mu.Unlock()
	if !ok {
		return httpx.Principal{}, fmt.Errorf("unknown subject")
	}
	return httpx.Principal{UserID: c.Subject, Role: c.Role, Email: c.Email, Name: c.Name}, nil
}

// ============================================================================
// Auth
// ============================================================================

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req recruitsdk.LoginRequest
	if !httpx.DecodeJSON(w, r, &req) {
		return
	}

	s.mu.Lock()
	a := s.users[s.byEmail[strings.ToLower(req.Email)]]
	s.mu.Unlock()
	if a == nil || bcrypt.CompareHashAndPassword(a.Hash, []byte(req.Password)) != nil {
		httpx.WriteError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, recruitsdk.AuthResponse{Token: s.mint(a), User: publicUser(a)})
}

func (s *Server) registerDoctor(w http.ResponseWriter, r *http.Request) {
	var req recruitsdk.RegisterDoctorRequest
	if !httpx.DecodeJSON(w, r, &req) {
		return
	}
	if err := recruitsdk.Validate(req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, recruitsdk.Message(err))
		return
	}

	s.mu.Lock()
	if _, taken := s.byEmail[strings.ToLower(req.Email)]; taken {
		s.mu.Unlock()
		httpx.WriteError(w, http.StatusBadRequest, "User already exists")
		return
	}
	a := s.createAccount(req.Email, req.Password, req.Name, recruitsdk.RoleDoctor)
	s.doctors[a.ID] = &recruitsdk.DoctorProfile{ID: s.nextID(), FullName: req.FullName, Qualification: req.Qualification}
	forced := s.registerRole
	s.mu.Unlock()

	s.writeRegistered(w, a, forced)
}

func (s *Server) registerClinic(w http.ResponseWriter, r *http.Request) {
	var req recruitsdk.RegisterClinicRequest
	if !httpx.DecodeJSON(w, r, &req) {
		return
	}
	if err := recruitsdk.Validate(req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, recruitsdk.Message(err))
		return
	}

	s.mu.Lock()
	if _, taken := s.byEmail[strings.ToLower(req.Email)]; taken {
		s.mu.Unlock()
		httpx.WriteError(w, http.StatusBadRequest, "User already exists")
		return
	}
	a := s.createAccount(req.Email, req.Password, req.Name, recruitsdk.RoleClinic)
	s.clinics[a.ID] = &recruitsdk.ClinicProfile{ID: s.nextID(), ClinicName: req.ClinicName, Type: req.Type, Email: req.Email}
	forced := s.registerRole
	s.mu.Unlock()

	s.writeRegistered(w, a, forced)
}

func (s *Server) writeRegistered(w http.ResponseWriter, a *account, forcedRole string) {
	user := publicUser(a)
	if forcedRole != "" {
		user.Role = forcedRole
	}
	httpx.WriteJSON(w, http.StatusCreated, recruitsdk.AuthResponse{Token: s.mint(a), User: user})
}

func (s *Server) me(w http.ResponseWriter, r *http.Request) {
	p, _ := httpx.PrincipalFrom(r.Context())
	s.mu.Lock()
	a := s.users[p.UserID]
	s.mu.Unlock()
	httpx.WriteJSON(w, http.StatusOK, recruitsdk.MeResponse{User: publicUser(a)})
}

// ============================================================================
// Profiles
// ============================================================================

func (s *Server) getDoctor(w http.ResponseWriter, r *http.Request) {
	p, _ := httpx.PrincipalFrom(r.Context())
	s.mu.Lock()
	prof := s.doctors[p.UserID]
	s.mu.Unlock()
	if prof == nil {
		httpx.WriteError(w, http.StatusNotFound, "Profile not found")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, prof)
}

func (s *Server) putDoctor(w http.ResponseWriter, r *http.Request) {
	p, _ := httpx.PrincipalFrom(r.Context())
	var body recruitsdk.DoctorProfile
	if !httpx.DecodeJSON(w, r, &body) {
		return
	}
	s.mu.Lock()
	if cur := s.doctors[p.UserID]; cur != nil {
		body.ID = cur.ID
	} else {
		body.ID = s.nextID()
	}
	s.doctors[p.UserID] = &body
	s.mu.Unlock()
	httpx.WriteJSON(w, http.StatusOK, body)
}

func (s *Server) getClinic(w http.ResponseWriter, r *http.Request) {
	p, _ := httpx.PrincipalFrom(r.Context())
	s.mu.Lock()
	prof := s.clinics[p.UserID]
	s.mu.Unlock()
	if prof == nil {
		httpx.WriteError(w, http.StatusNotFound, "Profile not found")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, prof)
}

func (s *Server) putClinic(w http.ResponseWriter, r *http.Request) {
	p, _ := httpx.PrincipalFrom(r.Context())
	var body recruitsdk.ClinicProfile
	if !httpx.DecodeJSON(w, r, &body) {
		return
	}
	s.mu.Lock()
	if cur := s.clinics[p.UserID]; cur != nil {
		body.ID = cur.ID
	} else {
		body.ID = s.nextID()
	}
	s.clinics[p.UserID] = &body
	s.mu.Unlock()
	httpx.WriteJSON(w, http.StatusOK, body)
}

// ============================================================================
// Jobs
// ============================================================================

func (s *Server) listJobs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	city, jobType, qual := q.Get("city"), q.Get("jobType"), q.Get("qualificationRequired")

	s.mu.Lock()
	defer s.mu.Unlock()
	out := []recruitsdk.Job{}
	for _, row := range s.newestJobs() {
		j := row.job
		if !j.IsActive {
			continue
		}
		if city != "" && !strings.EqualFold(j.City, city) {
			continue
		}
		if jobType != "" && j.JobType != jobType {
			continue
		}
		if qual != "" && j.QualificationRequired != qual {
			continue
		}
		out = append(out, s.populatedJob(row))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (s *Server) getJob(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row := s.findJob(r.PathValue("id"))
	if row == nil {
		httpx.WriteError(w, http.StatusNotFound, "Job not found")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, s.populatedJob(row))
}

func (s *Server) myJobs(w http.ResponseWriter, r *http.Request) {
	p, _ := httpx.PrincipalFrom(r.Context())
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []recruitsdk.Job{}
	for _, row := range s.newestJobs() {
		if row.ownerID == p.UserID {
			out = append(out, row.job)
		}
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (s *Server) postJob(w http.ResponseWriter, r *http.Request) {
	p, _ := httpx.PrincipalFrom(r.Context())
	var posting recruitsdk.JobPosting
	if !httpx.DecodeJSON(w, r, &posting) {
		return
	}
	if err := recruitsdk.Validate(posting); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, recruitsdk.Message(err))
		return
	}
	s.mu.Lock()
	row := s.createJob(p.UserID, posting)
	s.mu.Unlock()
	httpx.WriteJSON(w, http.StatusCreated, row.job)
}

func (s *Server) toggleJob(w http.ResponseWriter, r *http.Request) {
	p, _ := httpx.PrincipalFrom(r.Context())
	s.mu.Lock()
	defer s.mu.Unlock()
	row := s.findJob(r.PathValue("id"))
	if row == nil || row.ownerID != p.UserID {
		httpx.WriteError(w, http.StatusNotFound, "Job not found")
		return
	}
	row.job.IsActive = !row.job.IsActive
	httpx.WriteJSON(w, http.StatusOK, row.job)
}

func (s *Server) deleteJob(w http.ResponseWriter, r *http.Request) {
	p, _ := httpx.PrincipalFrom(r.Context())
	s.mu.Lock()
	defer s.mu.Unlock()
	id := r.PathValue("id")
	row := s.findJob(id)
	if row == nil || row.ownerID != p.UserID {
		httpx.WriteError(w, http.StatusNotFound, "Job not found")
		return
	}
	s.jobs = slices.DeleteFunc(s.jobs, func(j *jobRow) bool { return j.job.ID == id })
	s.apps = slices.DeleteFunc(s.apps, func(a *appRow) bool { return a.jobID == id })
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": "Job deleted"})
}

// ============================================================================
// Applications
// ============================================================================

func (s *Server) myApplications(w http.ResponseWriter, r *http.Request) {
	p, _ := httpx.PrincipalFrom(r.Context())
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []recruitsdk.Application{}
	for _, row := range s.newestApps() {
		if row.doctorID != p.UserID {
			continue
		}
		app := row.app
		if jr := s.findJob(row.jobID); jr != nil {
			app.Job = &recruitsdk.Ref{ID: jr.job.ID, Title: jr.job.Title, City: jr.job.City, State: jr.job.State}
		}
		out = append(out, app)
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (s *Server) jobApplications(w http.ResponseWriter, r *http.Request) {
	p, _ := httpx.PrincipalFrom(r.Context())
	s.mu.Lock()
	defer s.mu.Unlock()
	jobID := r.PathValue("id")
	jr := s.findJob(jobID)
	if jr == nil || jr.ownerID != p.UserID {
		httpx.WriteError(w, http.StatusNotFound, "Job not found")
		return
	}
	out := []recruitsdk.Application{}
	for _, row := range s.newestApps() {
		if row.jobID != jobID {
			continue
		}
		out = append(out, s.populatedApp(row))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (s *Server) updateStatus(w http.ResponseWriter, r *http.Request) {
	p, _ := httpx.PrincipalFrom(r.Context())
	var upd recruitsdk.StatusUpdate
	if !httpx.DecodeJSON(w, r, &upd) {
		return
	}
	if !slices.Contains(recruitsdk.Statuses, upd.Status) {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid status")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	id := r.PathValue("id")
	for _, row := range s.apps {
		if row.app.ID != id {
			continue
		}
		if jr := s.findJob(row.jobID); jr == nil || jr.ownerID != p.UserID {
			break
		}
		row.app.Status = upd.Status
		row.app.InternalNotes = upd.InternalNotes
		httpx.WriteJSON(w, http.StatusOK, s.populatedApp(row))
		return
	}
	httpx.WriteError(w, http.StatusNotFound, "Application not found")
}

// ============================================================================
// Admin
// ============================================================================

func (s *Server) adminDoctors(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []recruitsdk.DoctorListing{}
	for _, a := range s.accountsByRole(recruitsdk.RoleDoctor) {
		out = append(out, recruitsdk.DoctorListing{User: adminUser(a), Profile: s.doctors[a.ID]})
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (s *Server) adminClinics(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []recruitsdk.ClinicListing{}
	for _, a := range s.accountsByRole(recruitsdk.RoleClinic) {
		out = append(out, recruitsdk.ClinicListing{User: adminUser(a), Profile: s.clinics[a.ID]})
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (s *Server) adminJobs(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []recruitsdk.Job{}
	for _, row := range s.newestJobs() {
		out = append(out, s.populatedJob(row))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (s *Server) adminApplications(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []recruitsdk.Application{}
	for _, row := range s.newestApps() {
		app := s.populatedApp(row)
		if jr := s.findJob(row.jobID); jr != nil {
			app.Job = &recruitsdk.Ref{ID: jr.job.ID, Title: jr.job.Title, City: jr.job.City, State: jr.job.State}
		}
		out = append(out, app)
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (s *Server) statsOverview(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	httpx.WriteJSON(w, http.StatusOK, recruitsdk.StatsOverview{
		TotalDoctors:      len(s.accountsByRole(recruitsdk.RoleDoctor)),
		TotalClinics:      len(s.accountsByRole(recruitsdk.RoleClinic)),
		TotalJobs:         len(s.jobs),
		TotalApplications: len(s.apps),
	})
}

func (s *Server) jobsByCity(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	counts := make(map[string]int)
	for _, row := range s.jobs {
		counts[row.job.City]++
	}
	httpx.WriteJSON(w, http.StatusOK, buckets(counts))
}

func (s *Server) applicationsByStatus(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	counts := make(map[string]int)
	for _, row := range s.apps {
		counts[row.app.Status]++
	}
	httpx.WriteJSON(w, http.StatusOK, buckets(counts))
}

func (s *Server) export(w http.ResponseWriter, r *http.Request) {
	kind := recruitsdk.ExportKind(r.PathValue("kind"))
	if !kind.Valid() {
		httpx.WriteError(w, http.StatusNotFound, "Unknown export")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var rows [][]string
	switch kind {
	case recruitsdk.ExportUsers:
		rows = append(rows, []string{"id", "name", "email", "role", "createdAt"})
		for _, a := range s.sortedAccounts() {
			rows = append(rows, []string{a.ID, a.Name, a.Email, a.Role, a.CreatedAt.Format(time.RFC3339)})
		}
	case recruitsdk.ExportJobs:
		rows = append(rows, []string{"id", "title", "city", "state", "jobType", "isActive"})
		for _, row := range s.jobs {
			j := row.job
			rows = append(rows, []string{j.ID, j.Title, j.City, j.State, j.JobType, strconv.FormatBool(j.IsActive)})
		}
	case recruitsdk.ExportApplications:
		rows = append(rows, []string{"id", "jobId", "doctorId", "status"})
		for _, row := range s.apps {
			rows = append(rows, []string{row.app.ID, row.jobID, row.doctorID, row.app.Status})
		}
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+string(kind)+`.csv"`)
	cw := csv.NewWriter(w)
	_ = cw.WriteAll(rows)
}

// ============================================================================
// Helpers (callers hold s.mu unless noted)
// ============================================================================

func (s *Server) nextID() string {
	s.seq++
	return fmt.Sprintf("%024x", s.seq)
}

func (s *Server) tick() time.Time {
	s.seq++
	return s.epoch.Add(time.Duration(s.seq) * time.Minute)
}

func (s *Server) createAccount(email, password, name, role string) *account {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	a := &account{
		ID:        s.nextID(),
		Name:      name,
		Email:     email,
		Role:      role,
		Hash:      hash,
		CreatedAt: s.tick(),
	}
	s.users[a.ID] = a
	s.byEmail[strings.ToLower(email)] = a.ID
	return a
}

// mint does not need s.mu.
func (s *Server) mint(a *account) string {
	c := tokenx.NewClaims(a.ID, a.Role, a.Email, a.Name, tokenx.DefaultTTL, time.Now())
	c.ID = strconv.FormatInt(s.jti.Add(1), 10)
	tok, err := tokenx.Sign(s.secret, c)
	if err != nil {
		panic(err)
	}
	return tok
}

func (s *Server) createJob(ownerID string, p recruitsdk.JobPosting) *jobRow {
	salary := p.SalaryRange
	row := &jobRow{
		job: recruitsdk.Job{
			ID:                     s.nextID(),
			Title:                  p.Title,
			Clinic:                 &recruitsdk.Ref{ID: ownerID},
			Description:            p.Description,
			City:                   p.City,
			State:                  p.State,
			JobType:                p.JobType,
			QualificationRequired:  p.QualificationRequired,
			SpecializationRequired: p.SpecializationRequired,
			MinExperienceYears:     p.MinExperienceYears,
			SalaryRange:            &salary,
			Shifts:                 p.Shifts,
			WorkingDays:            p.WorkingDays,
			IsActive:               true,
			CreatedAt:              s.tick(),
		},
		ownerID: ownerID,
	}
	s.jobs = append(s.jobs, row)
	return row
}

func (s *Server) findJob(id string) *jobRow {
	for _, row := range s.jobs {
		if row.job.ID == id {
			return row
		}
	}
	return nil
}

func (s *Server) newestJobs() []*jobRow {
	out := slices.Clone(s.jobs)
	slices.Reverse(out)
	return out
}

func (s *Server) newestApps() []*appRow {
	out := slices.Clone(s.apps)
	slices.Reverse(out)
	return out
}

func (s *Server) populatedJob(row *jobRow) recruitsdk.Job {
	j := row.job
	ref := recruitsdk.Ref{ID: row.ownerID}
	if c := s.clinics[row.ownerID]; c != nil {
		ref.Name = c.ClinicName
		ref.City = c.City
	}
	j.Clinic = &ref
	return j
}

func (s *Server) populatedApp(row *appRow) recruitsdk.Application {
	app := row.app
	app.Job = &recruitsdk.Ref{ID: row.jobID}
	if a := s.users[row.doctorID]; a != nil {
		app.Doctor = &recruitsdk.Ref{ID: a.ID, Name: a.Name, Email: a.Email}
	}
	app.DoctorProfile = s.doctors[row.doctorID]
	return app
}

func (s *Server) sortedAccounts() []*account {
	out := make([]*account, 0, len(s.users))
	for _, a := range s.users {
		out = append(out, a)
	}
	slices.SortFunc(out, func(a, b *account) int { return a.CreatedAt.Compare(b.CreatedAt) })
	return out
}

func (s *Server) accountsByRole(role string) []*account {
	var out []*account
	for _, a := range s.sortedAccounts() {
		if a.Role == role {
			out = append(out, a)
		}
	}
	return out
}

func publicUser(a *account) recruitsdk.User {
	return recruitsdk.User{ID: a.ID, Name: a.Name, Email: a.Email, Role: a.Role}
}

func adminUser(a *account) recruitsdk.AdminUser {
	return recruitsdk.AdminUser{ID: a.ID, Name: a.Name, Email: a.Email, CreatedAt: a.CreatedAt}
}

func buckets(counts map[string]int) []recruitsdk.Bucket {
	out := make([]recruitsdk.Bucket, 0, len(counts))
	for k, n := range counts {
		out = append(out, recruitsdk.Bucket{Key: k, Count: n})
	}
	slices.SortFunc(out, func(a, b recruitsdk.Bucket) int {
		if a.Count != b.Count {
			return b.Count - a.Count
		}
		return strings.Compare(a.Key, b.Key)
	})
	return out
}
