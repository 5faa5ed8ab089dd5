package dashboard

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ishanya/ishanya/core"
)

// Statuses
const (
	StatusUnderReview         = "Under Review"
	StatusInterviewScheduled  = "Interview Scheduled"
	StatusApproved            = "Approved"
	StatusRejected            = "Rejected"
	StatusPending             = "Pending"
	StatusAssessmentScheduled = "Assessment Scheduled"
)

type (
	JobApplication struct {
		ID        int    `json:"id"`
		Name      string `json:"name"`
		Position  string `json:"position"`
		Status    string `json:"status"`
		Date      string `json:"date"`

		// applicant contact details stay out of every view
		Email        string `json:"-"`
		Reference    string `json:"-"`
		PasswordHash []byte `json:"-"`
	}

	ChildRegistration struct {
		ID        int    `json:"id"`
		Name      string `json:"name"`
		Parent    string `json:"parent"`
		Diagnosis string `json:"diagnosis"`
		Status    string `json:"status"`

		Email     string `json:"-"`
		Reference string `json:"-"`
		// Submitted is set on registrations coming from the site, whose diagnosis is withheld.
		Submitted bool `json:"-"`
	}

	Session struct {
		ID        int    `json:"id"`
		ChildName string `json:"childName"`
		Time      string `json:"time"`
		Type      string `json:"type"`
		Status    string `json:"status"`
	}

	AssignedChild struct {
		ID        int    `json:"id"`
		Name      string `json:"name"`
		Age       int    `json:"age"`
		Diagnosis string `json:"diagnosis"`
		Progress  int    `json:"progress"`
	}

	Task struct {
		ID        int    `json:"id"`
		Title     string `json:"title"`
		Deadline  string `json:"deadline"`
		Completed bool   `json:"completed"`
	}

	Appointment struct {
		ID     int    `json:"id"`
		Date   string `json:"date"`
		Type   string `json:"type"`
		Status string `json:"status"`
	}

	Report struct {
		ID     int    `json:"id"`
		Title  string `json:"title"`
		Date   string `json:"date"`
		Status string `json:"status"`
	}

	Child struct {
		ID           int           `json:"id"`
		Name         string        `json:"name"`
		Age          int           `json:"age"`
		Diagnosis    string        `json:"diagnosis"`
		Progress     int           `json:"progress"`
		NextSession  string        `json:"nextSession"`
		Therapist    string        `json:"therapist"`
		Appointments []Appointment `json:"appointments"`
		Reports      []Report      `json:"reports"`
	}

	Notification struct {
		ID      int    `json:"id"`
		Title   string `json:"title"`
		Message string `json:"message"`
		Date    string `json:"date"`
		Read    bool   `json:"read"`
	}

	Payment struct {
		ID          int     `json:"id"`
		Description string  `json:"description"`
		Amount      float64 `json:"amount"`
		Date        string  `json:"date"`
		Status      string  `json:"status"`
	}
)

// DiagnosisWithheld replaces the diagnosis of submitted registrations in dashboard views.
const DiagnosisWithheld = "Withheld"

// Redacted returns reg as shown on the dashboard.
func (reg ChildRegistration) Redacted() ChildRegistration {
	if reg.Submitted {
		reg.Diagnosis = DiagnosisWithheld
	}
	return reg
}

type QueryFilter struct {
	Search string `query:"search"`
}

func (f *QueryFilter) Clean() {
	f.Search = core.CleanString(f.Search, true /* lower */)
}

// Matches does a case-insensitive match of the search term on one of fields.
// An empty search matches everything.
func (f QueryFilter) Matches(fields ...string) bool {
	term := core.CleanString(f.Search, true /* lower */)
	if term == "" {
		return true
	}
	for _, fld := range fields {
		if strings.Contains(strings.ToLower(fld), term) {
			return true
		}
	}
	return false
}

type ScheduleAppointment struct {
	ChildID int    `json:"childId" validate:"required,min=1"`
	Date    string `json:"date" validate:"required,date"`
	Time    string `json:"time" validate:"omitempty,clock"`
}

func (sa *ScheduleAppointment) Validate(validate *validator.Validate) error {
	sa.Date = core.CleanString(sa.Date)
	sa.Time = core.CleanString(sa.Time)
	if sa.Time == "" {
		sa.Time = DefaultAppointmentTime
	}
	return validate.Struct(sa)
}
