package memdb

import "github.com/ishanya/ishanya/core/dashboard"

// sample data shown on the dashboards

var (
	seedApplications = []dashboard.JobApplication{
		{Name: "John Doe", Position: "Special Educator", Status: dashboard.StatusUnderReview, Date: "2023-05-14"},
		{Name: "Jane Smith", Position: "Occupational Therapist", Status: dashboard.StatusInterviewScheduled, Date: "2023-05-15"},
		{Name: "Michael Brown", Position: "Speech Therapist", Status: dashboard.StatusRejected, Date: "2023-05-10"},
		{Name: "Sarah Wilson", Position: "Administrative Assistant", Status: dashboard.StatusApproved, Date: "2023-05-08"},
	}

	seedRegistrations = []dashboard.ChildRegistration{
		{Name: "Alex Johnson", Parent: "Robert Johnson", Diagnosis: "Autism Spectrum Disorder", Status: dashboard.StatusPending},
		{Name: "Emma Davis", Parent: "Mary Davis", Diagnosis: "Down syndrome", Status: dashboard.StatusAssessmentScheduled},
		{Name: "Ryan Miller", Parent: "James Miller", Diagnosis: "Learning Disability", Status: dashboard.StatusApproved},
		{Name: "Sophie Wilson", Parent: "Linda Wilson", Diagnosis: "ADHD", Status: dashboard.StatusPending},
	}

	seedSessions = []dashboard.Session{
		{ID: 1, ChildName: "Alex Johnson", Time: "10:00 AM", Type: "Occupational Therapy", Status: "confirmed"},
		{ID: 2, ChildName: "Emma Davis", Time: "11:30 AM", Type: "Speech Therapy", Status: "confirmed"},
		{ID: 3, ChildName: "Ryan Miller", Time: "2:15 PM", Type: "Special Education", Status: "pending"},
	}

	seedAssignedChildren = []dashboard.AssignedChild{
		{ID: 1, Name: "Alex Johnson", Age: 7, Diagnosis: "ASD", Progress: 65},
		{ID: 2, Name: "Emma Davis", Age: 9, Diagnosis: "Down syndrome", Progress: 48},
		{ID: 3, Name: "Ryan Miller", Age: 6, Diagnosis: "Learning Disability", Progress: 72},
		{ID: 4, Name: "Sophie Wilson", Age: 8, Diagnosis: "ADHD", Progress: 55},
	}

	seedTasks = []dashboard.Task{
		{ID: 1, Title: "Complete assessment report for Alex", Deadline: "2023-05-20", Completed: false},
		{ID: 2, Title: "Prepare materials for group session", Deadline: "2023-05-18", Completed: true},
		{ID: 3, Title: "Update IEP for Emma", Deadline: "2023-05-25", Completed: false},
		{ID: 4, Title: "Parent meeting with Millers", Deadline: "2023-05-19", Completed: false},
	}

	seedChildren = []dashboard.Child{
		{
			ID:          1,
			Name:        "Alex Johnson",
			Age:         7,
			Diagnosis:   "Autism Spectrum Disorder",
			Progress:    65,
			NextSession: "2023-05-18T10:00:00",
			Therapist:   "Dr. Sarah Wilson",
			Appointments: []dashboard.Appointment{
				{ID: 1, Date: "2023-05-18T10:00:00", Type: "Occupational Therapy", Status: "confirmed"},
				{ID: 2, Date: "2023-05-25T10:00:00", Type: "Speech Therapy", Status: "pending"},
			},
			Reports: []dashboard.Report{
				{ID: 1, Title: "Monthly Progress Report - April", Date: "2023-05-01", Status: "viewed"},
				{ID: 2, Title: "Behavior Assessment", Date: "2023-04-15", Status: "not viewed"},
			},
		},
	}

	seedNotifications = []dashboard.Notification{
		{ID: 1, Title: "Appointment confirmed", Message: "Your appointment for Alex on May 18 has been confirmed.", Date: "2023-05-10T09:30:00", Read: false},
		{ID: 2, Title: "New report available", Message: "A new progress report is available for Alex.", Date: "2023-05-05T14:20:00", Read: true},
		{ID: 3, Title: "Payment received", Message: "Your payment for April services has been received.", Date: "2023-05-01T11:45:00", Read: true},
	}

	seedPayments = []dashboard.Payment{
		{ID: 1, Description: "April Services", Amount: 450.00, Date: "2023-04-28", Status: "paid"},
		{ID: 2, Description: "March Services", Amount: 425.00, Date: "2023-03-27", Status: "paid"},
		{ID: 3, Description: "February Services", Amount: 450.00, Date: "2023-02-26", Status: "paid"},
	}
)
