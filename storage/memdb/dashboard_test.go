package memdb

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ishanya/ishanya/core/dashboard"
)

func newRepo(t *testing.T) dashboard.Repository {
	t.Helper()
	db, err := Open()
	require.NoError(t, err)
	return NewDashboardRepository(db)
}

func applicationNames(apps []dashboard.JobApplication) []string {
	names := make([]string, 0, len(apps))
	for _, app := range apps {
		names = append(names, app.Name)
	}
	return names
}

func registrationNames(regs []dashboard.ChildRegistration) []string {
	names := make([]string, 0, len(regs))
	for _, reg := range regs {
		names = append(names, reg.Name)
	}
	return names
}

func TestQueryJobApplications(t *testing.T) {
	repo := newRepo(t)
	tests := []struct {
		search string
		want   []string
	}{
		{search: "", want: []string{"John Doe", "Jane Smith", "Michael Brown", "Sarah Wilson"}},
		{search: "THERAPIST", want: []string{"Jane Smith", "Michael Brown"}},
		{search: "approved", want: []string{"Sarah Wilson"}},
		{search: "doe", want: []string{"John Doe"}},
		{search: "nobody", want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			apps, err := repo.QueryJobApplications(context.Background(), dashboard.QueryFilter{Search: tt.search})
			require.NoError(t, err)
			assert.Equal(t, tt.want, applicationNames(apps))
		})
	}
}

func TestQueryChildRegistrations(t *testing.T) {
	repo := newRepo(t)
	tests := []struct {
		search string
		want   []string
	}{
		{search: "wilson", want: []string{"Sophie Wilson"}},
		{search: "pending", want: []string{"Alex Johnson", "Sophie Wilson"}},
		{search: "syndrome", want: []string{"Emma Davis"}},
		{search: "Mary", want: []string{"Emma Davis"}},
	}
	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			regs, err := repo.QueryChildRegistrations(context.Background(), dashboard.QueryFilter{Search: tt.search})
			require.NoError(t, err)
			assert.Equal(t, tt.want, registrationNames(regs))
		})
	}
}

func TestCreateAndUpdate(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	app, err := repo.CreateJobApplication(ctx, dashboard.JobApplication{Name: "Ann Lee", Position: "Speech Therapist", Status: dashboard.StatusUnderReview})
	require.NoError(t, err)
	assert.Equal(t, 5, app.ID)

	reg, err := repo.CreateChildRegistration(ctx, dashboard.ChildRegistration{Name: "Leo Lee", Status: dashboard.StatusPending})
	require.NoError(t, err)
	assert.Equal(t, 5, reg.ID)

	reg, err = repo.UpdateChildRegistrationStatus(ctx, reg.ID, dashboard.StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, dashboard.StatusApproved, reg.Status)

	got, err := repo.GetChildRegistration(ctx, reg.ID)
	require.NoError(t, err)
	assert.Equal(t, reg, got)

	_, err = repo.GetChildRegistration(ctx, 99)
	assert.Equal(t, dashboard.ErrNotFound, errors.Cause(err))
	_, err = repo.UpdateChildRegistrationStatus(ctx, 99, dashboard.StatusApproved)
	assert.Equal(t, dashboard.ErrNotFound, errors.Cause(err))
}

func TestOpenIsolatesDatabases(t *testing.T) {
	ctx := context.Background()
	first := newRepo(t)
	_, err := first.UpdateChildRegistrationStatus(ctx, 1, dashboard.StatusApproved)
	require.NoError(t, err)

	second := newRepo(t)
	reg, err := second.GetChildRegistration(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, dashboard.StatusPending, reg.Status)
}
