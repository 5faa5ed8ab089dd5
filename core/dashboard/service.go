package dashboard

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/ishanya/ishanya/core"
)

const DefaultAppointmentTime = "10:00"

var ErrNotFound = errors.New("not found")

type (
	Repository interface {
		// QueryJobApplications matches QueryFilter.Search on name, position or status.
		QueryJobApplications(ctx context.Context, filter QueryFilter) ([]JobApplication, error)
		// QueryChildRegistrations matches QueryFilter.Search on name, parent, diagnosis or status.
		// The diagnosis of submitted registrations is not searchable.
		QueryChildRegistrations(ctx context.Context, filter QueryFilter) ([]ChildRegistration, error)
		GetChildRegistration(ctx context.Context, id int) (ChildRegistration, error)
		UpdateChildRegistrationStatus(ctx context.Context, id int, status string) (ChildRegistration, error)
		CreateJobApplication(ctx context.Context, app JobApplication) (JobApplication, error)
		CreateChildRegistration(ctx context.Context, reg ChildRegistration) (ChildRegistration, error)

		QuerySessions(ctx context.Context) ([]Session, error)
		QueryAssignedChildren(ctx context.Context) ([]AssignedChild, error)
		QueryTasks(ctx context.Context) ([]Task, error)

		QueryChildren(ctx context.Context) ([]Child, error)
		QueryNotifications(ctx context.Context) ([]Notification, error)
		QueryPayments(ctx context.Context) ([]Payment, error)
	}

	AdminStats struct {
		Applications         int `json:"applications"`
		PendingApplications  int `json:"pendingApplications"`
		Registrations        int `json:"registrations"`
		PendingRegistrations int `json:"pendingRegistrations"`
	}

	AdminView struct {
		Stats         AdminStats          `json:"stats"`
		Applications  []JobApplication    `json:"applications"`
		Registrations []ChildRegistration `json:"registrations"`
	}

	EmployeeStats struct {
		Sessions  int `json:"sessions"`
		Children  int `json:"children"`
		OpenTasks int `json:"openTasks"`
	}

	EmployeeView struct {
		Stats    EmployeeStats   `json:"stats"`
		Sessions []Session       `json:"sessions"`
		Children []AssignedChild `json:"children"`
		Tasks    []Task          `json:"tasks"`
	}

	ParentView struct {
		Children            []Child        `json:"children"`
		ActiveChild         Child          `json:"activeChild"`
		Notifications       []Notification `json:"notifications"`
		UnreadNotifications int            `json:"unreadNotifications"`
		Payments            []Payment      `json:"payments"`
	}

	Service struct {
		repo     Repository
		validate *validator.Validate
	}
)

func NewService(repo Repository, validate *validator.Validate) *Service {
	return &Service{repo: repo, validate: validate}
}

func (svc *Service) Admin(ctx context.Context, filter QueryFilter) (AdminView, error) {
	filter.Clean()
	var view AdminView

	apps, err := svc.repo.QueryJobApplications(ctx, filter)
	if err != nil {
		return view, errors.Wrap(err, "querying job applications")
	}
	regs, err := svc.repo.QueryChildRegistrations(ctx, filter)
	if err != nil {
		return view, errors.Wrap(err, "querying child registrations")
	}

	view.Applications, view.Registrations = apps, make([]ChildRegistration, 0, len(regs))
	view.Stats.Applications, view.Stats.Registrations = len(apps), len(regs)
	for _, app := range apps {
		if app.Status == StatusUnderReview {
			view.Stats.PendingApplications++
		}
	}
	for _, reg := range regs {
		if reg.Status == StatusPending {
			view.Stats.PendingRegistrations++
		}
		view.Registrations = append(view.Registrations, reg.Redacted())
	}
	return view, nil
}

func (svc *Service) Employee(ctx context.Context) (EmployeeView, error) {
	var view EmployeeView

	sessions, err := svc.repo.QuerySessions(ctx)
	if err != nil {
		return view, errors.Wrap(err, "querying sessions")
	}
	children, err := svc.repo.QueryAssignedChildren(ctx)
	if err != nil {
		return view, errors.Wrap(err, "querying children")
	}
	tasks, err := svc.repo.QueryTasks(ctx)
	if err != nil {
		return view, errors.Wrap(err, "querying tasks")
	}

	view.Sessions, view.Children, view.Tasks = sessions, children, tasks
	view.Stats.Sessions, view.Stats.Children = len(sessions), len(children)
	for _, task := range tasks {
		if !task.Completed {
			view.Stats.OpenTasks++
		}
	}
	return view, nil
}

// Parent returns the parent dashboard with childID as active child (the first child when 0).
func (svc *Service) Parent(ctx context.Context, childID int) (ParentView, error) {
	var view ParentView

	children, err := svc.repo.QueryChildren(ctx)
	if err != nil {
		return view, errors.Wrap(err, "querying children")
	}
	if len(children) == 0 {
		return view, errors.Wrap(ErrNotFound, "no child")
	}
	view.Children = children
	view.ActiveChild = children[0]
	if childID != 0 {
		found := false
		for _, c := range children {
			if c.ID == childID {
				view.ActiveChild, found = c, true
				break
			}
		}
		if !found {
			return view, errors.Wrapf(ErrNotFound, "child %d", childID)
		}
	}

	if view.Notifications, err = svc.repo.QueryNotifications(ctx); err != nil {
		return view, errors.Wrap(err, "querying notifications")
	}
	for _, n := range view.Notifications {
		if !n.Read {
			view.UnreadNotifications++
		}
	}
	if view.Payments, err = svc.repo.QueryPayments(ctx); err != nil {
		return view, errors.Wrap(err, "querying payments")
	}
	return view, nil
}

// ScheduleAppointment schedules an assessment for a registered child and returns the confirmation text.
func (svc *Service) ScheduleAppointment(ctx context.Context, sa ScheduleAppointment) (string, error) {
	if err := sa.Validate(svc.validate); err != nil {
		return "", err
	}

	reg, err := svc.repo.GetChildRegistration(ctx, sa.ChildID)
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			return "", core.NewValidationError(err, core.FieldError{Field: "childId", Error: "child registration not found"})
		}
		return "", err
	}
	if reg, err = svc.repo.UpdateChildRegistrationStatus(ctx, reg.ID, StatusAssessmentScheduled); err != nil {
		return "", errors.Wrap(err, "updating registration")
	}

	date, _ := core.ParseDate(sa.Date)
	return fmt.Sprintf("Appointment scheduled for %s on %s at %s", reg.Name, date.Format("January 2, 2006"), sa.Time), nil
}
