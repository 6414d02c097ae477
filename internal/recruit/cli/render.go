package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/aussiebroadwan/dentalrecruit/pkg/recruitsdk"
)

func newTable(w io.Writer, headers ...string) *tabwriter.Writer {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	return tw
}

func row(tw *tabwriter.Writer, cols ...any) {
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = fmt.Sprint(c)
	}
	fmt.Fprintln(tw, strings.Join(parts, "\t"))
}

func date(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func refName(r *recruitsdk.Ref) string {
	if r == nil {
		return "-"
	}
	switch {
	case r.Name != "":
		return r.Name
	case r.Title != "":
		return r.Title
	}
	return orDash(r.ID)
}

func salary(r *recruitsdk.SalaryRange) string {
	if r == nil || (r.Min == 0 && r.Max == 0) {
		return "-"
	}
	return fmt.Sprintf("%d-%d", r.Min, r.Max)
}

func active(b bool) string {
	if b {
		return "active"
	}
	return "inactive"
}

// statusLabel is the badge text shown next to an application.
func statusLabel(s string) string {
	switch s {
	case recruitsdk.StatusApplied:
		return "Applied"
	case recruitsdk.StatusShortlisted:
		return "Shortlisted"
	case recruitsdk.StatusRejected:
		return "Rejected"
	case recruitsdk.StatusHired:
		return "Hired"
	}
	return orDash(s)
}

func renderJobs(w io.Writer, jobs []recruitsdk.Job) {
	if len(jobs) == 0 {
		fmt.Fprintln(w, "No jobs found.")
		return
	}
	tw := newTable(w, "ID", "TITLE", "CLINIC", "LOCATION", "TYPE", "QUALIFICATION", "SALARY", "STATUS", "POSTED")
	for _, j := range jobs {
		row(tw, j.ID, j.Title, refName(j.Clinic), j.City+", "+j.State, j.JobType,
			orDash(j.QualificationRequired), salary(j.SalaryRange), active(j.IsActive), date(j.CreatedAt))
	}
	_ = tw.Flush()
}

func renderJob(w io.Writer, j *recruitsdk.Job) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	row(tw, "Title:", j.Title)
	row(tw, "Clinic:", refName(j.Clinic))
	row(tw, "Location:", j.City+", "+j.State)
	row(tw, "Type:", j.JobType)
	row(tw, "Qualification:", orDash(j.QualificationRequired))
	row(tw, "Specialization:", orDash(j.SpecializationRequired))
	row(tw, "Experience:", fmt.Sprintf("%d+ years", j.MinExperienceYears))
	row(tw, "Salary:", salary(j.SalaryRange))
	row(tw, "Shifts:", orDash(j.Shifts))
	row(tw, "Working days:", orDash(j.WorkingDays))
	row(tw, "Status:", active(j.IsActive))
	row(tw, "Posted:", date(j.CreatedAt))
	_ = tw.Flush()
	if j.Description != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, j.Description)
	}
}

func renderMyApplications(w io.Writer, apps []recruitsdk.Application) {
	if len(apps) == 0 {
		fmt.Fprintln(w, "No applications yet.")
		return
	}
	tw := newTable(w, "ID", "JOB", "LOCATION", "STATUS", "APPLIED")
	for _, a := range apps {
		loc := "-"
		if a.Job != nil && a.Job.City != "" {
			loc = a.Job.City + ", " + a.Job.State
		}
		row(tw, a.ID, refName(a.Job), loc, statusLabel(a.Status), date(a.CreatedAt))
	}
	_ = tw.Flush()
}

func renderApplicants(w io.Writer, apps []recruitsdk.Application) {
	if len(apps) == 0 {
		fmt.Fprintln(w, "No applicants yet.")
		return
	}
	tw := newTable(w, "ID", "DOCTOR", "EMAIL", "QUALIFICATION", "EXPERIENCE", "STATUS", "NOTES")
	for _, a := range apps {
		email, qual, exp := "-", "-", "-"
		if a.Doctor != nil {
			email = orDash(a.Doctor.Email)
		}
		if a.DoctorProfile != nil {
			qual = orDash(a.DoctorProfile.Qualification)
			exp = fmt.Sprintf("%d yrs", a.DoctorProfile.ExperienceYears)
		}
		row(tw, a.ID, refName(a.Doctor), email, qual, exp, statusLabel(a.Status), orDash(a.InternalNotes))
	}
	_ = tw.Flush()
}

func renderDoctorProfile(w io.Writer, p *recruitsdk.DoctorProfile) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	row(tw, "Full name:", orDash(p.FullName))
	row(tw, "Qualification:", orDash(p.Qualification))
	row(tw, "Specialization:", orDash(p.Specialization))
	row(tw, "Experience:", fmt.Sprintf("%d years", p.ExperienceYears))
	row(tw, "Location:", orDash(strings.Trim(p.CurrentLocation.City+", "+p.CurrentLocation.State, ", ")))
	row(tw, "Preferred:", orDash(strings.Join(p.PreferredLocations, ", ")))
	row(tw, "Expected salary:", salary(&recruitsdk.SalaryRange{Min: p.ExpectedSalaryMin, Max: p.ExpectedSalaryMax}))
	row(tw, "Open to relocate:", p.IsOpenToRelocate)
	row(tw, "Registration:", orDash(p.RegistrationNumber))
	row(tw, "CV:", orDash(p.CVURL))
	_ = tw.Flush()
}

func renderClinicProfile(w io.Writer, p *recruitsdk.ClinicProfile) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	row(tw, "Clinic:", orDash(p.ClinicName))
	row(tw, "Type:", orDash(p.Type))
	row(tw, "Address:", orDash(p.Address))
	row(tw, "Location:", orDash(strings.Trim(p.City+", "+p.State, ", ")))
	row(tw, "Pincode:", orDash(p.Pincode))
	row(tw, "Contact:", orDash(strings.TrimSpace(p.ContactPersonName+" "+p.ContactNumber)))
	row(tw, "Email:", orDash(p.Email))
	row(tw, "Website:", orDash(p.Website))
	row(tw, "Chairs/beds:", p.NumberOfChairsOrBeds)
	row(tw, "Specializations:", orDash(strings.Join(p.Specializations, ", ")))
	_ = tw.Flush()
	if p.Description != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, p.Description)
	}
}

func renderBuckets(w io.Writer, title string, buckets []recruitsdk.Bucket) {
	fmt.Fprintln(w, title)
	if len(buckets) == 0 {
		fmt.Fprintln(w, "  (none)")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, b := range buckets {
		row(tw, "  "+orDash(b.Key), b.Count)
	}
	_ = tw.Flush()
}
