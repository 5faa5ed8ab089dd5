package memdb

import (
	"context"
	"sort"

	"github.com/pkg/errors"

	"github.com/ishanya/ishanya/core/dashboard"
)

type dashboardRepository struct {
	db *DB
}

var _ dashboard.Repository = (*dashboardRepository)(nil) // interface compliance check

func NewDashboardRepository(db *DB) dashboard.Repository {
	return &dashboardRepository{db: db}
}

func (repo *dashboardRepository) QueryJobApplications(_ context.Context, filter dashboard.QueryFilter) ([]dashboard.JobApplication, error) {
	t := repo.db.applications
	t.RLock()
	defer t.RUnlock()

	apps := make([]dashboard.JobApplication, 0, len(t.table))
	for _, app := range t.table {
		if filter.Matches(app.Name, app.Position, app.Status) {
			apps = append(apps, *app)
		}
	}
	sort.Slice(apps, func(i, j int) bool { return apps[i].ID < apps[j].ID })
	return apps, nil
}

func (repo *dashboardRepository) CreateJobApplication(_ context.Context, app dashboard.JobApplication) (dashboard.JobApplication, error) {
	t := repo.db.applications
	t.Lock()
	defer t.Unlock()
	return t.insert(app), nil
}

func (repo *dashboardRepository) QueryChildRegistrations(_ context.Context, filter dashboard.QueryFilter) ([]dashboard.ChildRegistration, error) {
	t := repo.db.registrations
	t.RLock()
	defer t.RUnlock()

	regs := make([]dashboard.ChildRegistration, 0, len(t.table))
	for _, reg := range t.table {
		fields := []string{reg.Name, reg.Parent, reg.Status}
		if !reg.Submitted {
			fields = append(fields, reg.Diagnosis)
		}
		if filter.Matches(fields...) {
			regs = append(regs, *reg)
		}
	}
	sort.Slice(regs, func(i, j int) bool { return regs[i].ID < regs[j].ID })
	return regs, nil
}

func (repo *dashboardRepository) GetChildRegistration(_ context.Context, id int) (dashboard.ChildRegistration, error) {
	t := repo.db.registrations
	t.RLock()
	defer t.RUnlock()

	if reg, ok := t.table[id]; ok {
		return *reg, nil
	}
	return dashboard.ChildRegistration{}, errors.Wrapf(dashboard.ErrNotFound, "child registration %d", id)
}

func (repo *dashboardRepository) UpdateChildRegistrationStatus(_ context.Context, id int, status string) (dashboard.ChildRegistration, error) {
	t := repo.db.registrations
	t.Lock()
	defer t.Unlock()

	reg, ok := t.table[id]
	if !ok {
		return dashboard.ChildRegistration{}, errors.Wrapf(dashboard.ErrNotFound, "child registration %d", id)
	}
	reg.Status = status
	return *reg, nil
}

func (repo *dashboardRepository) CreateChildRegistration(_ context.Context, reg dashboard.ChildRegistration) (dashboard.ChildRegistration, error) {
	t := repo.db.registrations
	t.Lock()
	defer t.Unlock()
	return t.insert(reg), nil
}

func (repo *dashboardRepository) QuerySessions(context.Context) ([]dashboard.Session, error) {
	t := repo.db.employee
	t.RLock()
	defer t.RUnlock()
	return append([]dashboard.Session(nil), t.sessions...), nil
}

func (repo *dashboardRepository) QueryAssignedChildren(context.Context) ([]dashboard.AssignedChild, error) {
	t := repo.db.employee
	t.RLock()
	defer t.RUnlock()
	return append([]dashboard.AssignedChild(nil), t.children...), nil
}

func (repo *dashboardRepository) QueryTasks(context.Context) ([]dashboard.Task, error) {
	t := repo.db.employee
	t.RLock()
	defer t.RUnlock()
	return append([]dashboard.Task(nil), t.tasks...), nil
}

func (repo *dashboardRepository) QueryChildren(context.Context) ([]dashboard.Child, error) {
	t := repo.db.parent
	t.RLock()
	defer t.RUnlock()
	return append([]dashboard.Child(nil), t.children...), nil
}

func (repo *dashboardRepository) QueryNotifications(context.Context) ([]dashboard.Notification, error) {
	t := repo.db.parent
	t.RLock()
	defer t.RUnlock()
	return append([]dashboard.Notification(nil), t.notifications...), nil
}

func (repo *dashboardRepository) QueryPayments(context.Context) ([]dashboard.Payment, error) {
	t := repo.db.parent
	t.RLock()
	defer t.RUnlock()
	return append([]dashboard.Payment(nil), t.payments...), nil
}
