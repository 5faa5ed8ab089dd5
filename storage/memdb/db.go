package memdb

import (
	"sync"

	"github.com/ishanya/ishanya/core/dashboard"
)

type (
	// DB keeps the site data in memory. It is re-seeded on every Open.
	DB struct {
		applications  *applicationTable
		registrations *registrationTable
		employee      *employeeTables
		parent        *parentTables
	}

	applicationTable struct {
		sync.RWMutex
		pkCount int
		table   map[int]*dashboard.JobApplication
	}

	registrationTable struct {
		sync.RWMutex
		pkCount int
		table   map[int]*dashboard.ChildRegistration
	}

	employeeTables struct {
		sync.RWMutex
		sessions []dashboard.Session
		children []dashboard.AssignedChild
		tasks    []dashboard.Task
	}

	parentTables struct {
		sync.RWMutex
		children      []dashboard.Child
		notifications []dashboard.Notification
		payments      []dashboard.Payment
	}
)

func Open() (*DB, error) {
	db := &DB{
		applications:  &applicationTable{table: make(map[int]*dashboard.JobApplication)},
		registrations: &registrationTable{table: make(map[int]*dashboard.ChildRegistration)},
		employee:      &employeeTables{},
		parent:        &parentTables{},
	}
	db.seed()
	return db, nil
}

func (db *DB) seed() {
	for _, app := range seedApplications {
		db.applications.insert(app)
	}
	for _, reg := range seedRegistrations {
		db.registrations.insert(reg)
	}

	db.employee.sessions = append([]dashboard.Session(nil), seedSessions...)
	db.employee.children = append([]dashboard.AssignedChild(nil), seedAssignedChildren...)
	db.employee.tasks = append([]dashboard.Task(nil), seedTasks...)

	db.parent.children = make([]dashboard.Child, 0, len(seedChildren))
	for _, c := range seedChildren {
		c.Appointments = append([]dashboard.Appointment(nil), c.Appointments...)
		c.Reports = append([]dashboard.Report(nil), c.Reports...)
		db.parent.children = append(db.parent.children, c)
	}
	db.parent.notifications = append([]dashboard.Notification(nil), seedNotifications...)
	db.parent.payments = append([]dashboard.Payment(nil), seedPayments...)
}

// insert must be called with the lock held (or before the table is shared).
func (t *applicationTable) insert(app dashboard.JobApplication) dashboard.JobApplication {
	t.pkCount++
	app.ID = t.pkCount
	t.table[app.ID] = &app
	return app
}

func (t *registrationTable) insert(reg dashboard.ChildRegistration) dashboard.ChildRegistration {
	t.pkCount++
	reg.ID = t.pkCount
	t.table[reg.ID] = &reg
	return reg
}
