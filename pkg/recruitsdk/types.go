package recruitsdk

import (
	"bytes"
	"encoding/json"
	"net/url"
	"time"
)

// ============================================================================
// Auth Types
// ============================================================================

// Role values as sent by the backend.
const (
	RoleDoctor     = "doctor"
	RoleClinic     = "clinic"
	RoleSuperadmin = "superadmin"
)

// User is the identity returned by the auth endpoints.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// UnmarshalJSON accepts both "id" and the raw document "_id".
func (u *User) UnmarshalJSON(data []byte) error {
	type plain User
	var aux struct {
		plain
		MongoID string `json:"_id"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*u = User(aux.plain)
	if u.ID == "" {
		u.ID = aux.MongoID
	}
	return nil
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterDoctorRequest is the body of POST /auth/register-doctor.
type RegisterDoctorRequest struct {
	Email         string `json:"email"         validate:"required,email"`
	Password      string `json:"password"      validate:"required"`
	Name          string `json:"name"          validate:"required"`
	FullName      string `json:"fullName"      validate:"required"`
	Qualification string `json:"qualification" validate:"required,oneof=BDS MDS Other"`
}

// ClinicType values accepted at clinic registration.
const (
	ClinicTypeClinic   = "clinic"
	ClinicTypeHospital = "hospital"
)

// RegisterClinicRequest is the body of POST /auth/register-clinic.
type RegisterClinicRequest struct {
	Email      string `json:"email"      validate:"required,email"`
	Password   string `json:"password"   validate:"required"`
	Name       string `json:"name"       validate:"required"`
	ClinicName string `json:"clinicName" validate:"required"`
	Type       string `json:"type"       validate:"required,oneof=clinic hospital"`
}

// AuthResponse is returned by login and both registration endpoints.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// MeResponse is returned by GET /auth/me.
type MeResponse struct {
	User User `json:"user"`
}

// ============================================================================
// References
// ============================================================================

// Ref is a reference to another document. The backend sends either a bare
// id string or a populated object; both decode into Ref.
type Ref struct {
	ID    string `json:"_id,omitempty"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Title string `json:"title,omitempty"`
	City  string `json:"city,omitempty"`
	State string `json:"state,omitempty"`
}

func (r *Ref) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		*r = Ref{ID: id}
		return nil
	}
	type plain Ref
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*r = Ref(p)
	return nil
}

// ============================================================================
// Jobs
// ============================================================================

// Job type values.
const (
	JobTypeFullTime   = "full-time"
	JobTypePartTime   = "part-time"
	JobTypeLocum      = "locum"
	JobTypeConsultant = "consultant"
)

// SalaryRange is an optional monthly salary band.
type SalaryRange struct {
	Min int `json:"min" validate:"gte=0"`
	Max int `json:"max" validate:"omitempty,gte=0,gtefield=Min"` // 0 means open-ended
}

// Job is a job posting.
type Job struct {
	ID                     string       `json:"_id"`
	Title                  string       `json:"title"`
	Clinic                 *Ref         `json:"clinicId,omitempty"`
	Description            string       `json:"description,omitempty"`
	City                   string       `json:"city"`
	State                  string       `json:"state"`
	JobType                string       `json:"jobType"`
	QualificationRequired  string       `json:"qualificationRequired"`
	SpecializationRequired string       `json:"specializationRequired,omitempty"`
	MinExperienceYears     int          `json:"minExperienceYears"`
	SalaryRange            *SalaryRange `json:"salaryRange,omitempty"`
	Shifts                 string       `json:"shifts,omitempty"`
	WorkingDays            string       `json:"workingDays,omitempty"`
	IsActive               bool         `json:"isActive"`
	CreatedAt              time.Time    `json:"createdAt"`
}

// JobPosting is the body of POST /jobs.
type JobPosting struct {
	Title                  string      `json:"title"                            validate:"required"`
	QualificationRequired  string      `json:"qualificationRequired"            validate:"required,oneof=Any BDS MDS"`
	SpecializationRequired string      `json:"specializationRequired,omitempty"`
	JobType                string      `json:"jobType"                          validate:"required,oneof=full-time part-time locum consultant"`
	MinExperienceYears     int         `json:"minExperienceYears"               validate:"gte=0"`
	SalaryRange            SalaryRange `json:"salaryRange"`
	City                   string      `json:"city"                             validate:"required"`
	State                  string      `json:"state"                            validate:"required"`
	Description            string      `json:"description"                      validate:"required"`
	Shifts                 string      `json:"shifts,omitempty"`
	WorkingDays            string      `json:"workingDays,omitempty"`
}

// JobFilter narrows GET /jobs. Empty fields are not sent.
type JobFilter struct {
	City                  string
	JobType               string
	QualificationRequired string
}

// Query encodes the non-empty filters.
func (f JobFilter) Query() url.Values {
	q := url.Values{}
	if f.City != "" {
		q.Set("city", f.City)
	}
	if f.JobType != "" {
		q.Set("jobType", f.JobType)
	}
	if f.QualificationRequired != "" {
		q.Set("qualificationRequired", f.QualificationRequired)
	}
	return q
}

// ============================================================================
// Applications
// ============================================================================

// Application status values.
const (
	StatusApplied     = "applied"
	StatusShortlisted = "shortlisted"
	StatusRejected    = "rejected"
	StatusHired       = "hired"
)

// Statuses lists the application statuses in board order.
var Statuses = []string{StatusApplied, StatusShortlisted, StatusRejected, StatusHired}

// Application is a doctor's application to a job.
type Application struct {
	ID             string         `json:"_id"`
	Job            *Ref           `json:"jobId,omitempty"`
	Doctor         *Ref           `json:"doctorId,omitempty"`
	DoctorProfile  *DoctorProfile `json:"doctorProfile,omitempty"`
	Status         string         `json:"status"`
	NoteFromDoctor string         `json:"noteFromDoctor,omitempty"`
	InternalNotes  string         `json:"internalNotes,omitempty"`
	CreatedAt      time.Time      `json:"createdAt"`
}

// StatusUpdate is the body of PATCH /applications/:id/status.
type StatusUpdate struct {
	Status        string `json:"status"        validate:"required,oneof=applied shortlisted rejected hired"`
	InternalNotes string `json:"internalNotes"`
}

// ============================================================================
// Profiles
// ============================================================================

// Location is a city/state pair.
type Location struct {
	City  string `json:"city"`
	State string `json:"state"`
}

// DoctorProfile is the document behind GET/PUT /doctors/me.
type DoctorProfile struct {
	ID                 string   `json:"_id,omitempty"`
	FullName           string   `json:"fullName"`
	Qualification      string   `json:"qualification"`
	Specialization     string   `json:"specialization,omitempty"`
	ExperienceYears    int      `json:"experienceYears"`
	CurrentLocation    Location `json:"currentLocation"`
	PreferredLocations []string `json:"preferredLocations"`
	ExpectedSalaryMin  int      `json:"expectedSalaryMin"`
	ExpectedSalaryMax  int      `json:"expectedSalaryMax"`
	IsOpenToRelocate   bool     `json:"isOpenToRelocate"`
	RegistrationNumber string   `json:"registrationNumber"`
	CVURL              string   `json:"cvUrl"`
	ProfilePhotoURL    string   `json:"profilePhotoUrl"`
}

// ClinicProfile is the document behind GET/PUT /clinics/me.
type ClinicProfile struct {
	ID                   string   `json:"_id,omitempty"`
	ClinicName           string   `json:"clinicName"`
	Type                 string   `json:"type"`
	Address              string   `json:"address"`
	City                 string   `json:"city"`
	State                string   `json:"state"`
	Pincode              string   `json:"pincode"`
	ContactPersonName    string   `json:"contactPersonName"`
	ContactNumber        string   `json:"contactNumber"`
	Email                string   `json:"email"`
	Website              string   `json:"website"`
	Description          string   `json:"description"`
	NumberOfChairsOrBeds int      `json:"numberOfChairsOrBeds"`
	Specializations      []string `json:"specializations"`
	LogoURL              string   `json:"logoUrl"`
}

// ============================================================================
// Admin
// ============================================================================

// AdminUser is the account half of an admin listing row.
type AdminUser struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// DoctorListing is a row of GET /admin/users/doctors.
type DoctorListing struct {
	User    AdminUser      `json:"user"`
	Profile *DoctorProfile `json:"profile,omitempty"`
}

// ClinicListing is a row of GET /admin/users/clinics.
type ClinicListing struct {
	User    AdminUser      `json:"user"`
	Profile *ClinicProfile `json:"profile,omitempty"`
}

// StatsOverview is returned by GET /admin/stats/overview.
type StatsOverview struct {
	TotalDoctors      int `json:"totalDoctors"`
	TotalClinics      int `json:"totalClinics"`
	TotalJobs         int `json:"totalJobs"`
	TotalApplications int `json:"totalApplications"`
}

// Bucket is one group of an aggregation (city or status) with its count.
type Bucket struct {
	Key   string `json:"_id"`
	Count int    `json:"count"`
}

// ExportKind selects one of the CSV exports.
type ExportKind string

const (
	ExportUsers        ExportKind = "users"
	ExportJobs         ExportKind = "jobs"
	ExportApplications ExportKind = "applications"
)

// Valid reports whether k names a known export.
func (k ExportKind) Valid() bool {
	switch k {
	case ExportUsers, ExportJobs, ExportApplications:
		return true
	}
	return false
}
