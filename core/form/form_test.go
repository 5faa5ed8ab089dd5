package form

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ishanya/ishanya/core"
)

func noop(context.Context, State) error { return nil }

func TestSubmitInvalidStaysIdle(t *testing.T) {
	f := New(getSchema(t, "contact"))
	called := false

	_, err := f.Submit(context.Background(), func(context.Context, State) error {
		called = true
		return nil
	})

	var verr *core.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, ErrInvalidForm, verr.Err)
	assert.Len(t, verr.Fields, 3)
	assert.False(t, called)
	assert.Equal(t, StatusIdle, f.Status())
	assert.Len(t, f.Errors(), 3)
}

func TestSubmitSuccessResets(t *testing.T) {
	schema := getSchema(t, "contact")
	f := New(schema)
	f.SetAll(State{"name": "Ann", "email": "ANN@example.com", "message": "Hello"})

	var got State
	n, err := f.Submit(context.Background(), func(_ context.Context, st State) error {
		got = st
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, Notification{Kind: NotifySuccess, Title: "Message sent!", Description: "We'll get back to you as soon as possible."}, n)
	assert.Equal(t, "ann@example.com", got["email"])
	assert.Equal(t, StatusSucceeded, f.Status())
	assert.Equal(t, schema.Defaults(), f.State())
}

func TestSubmitSuccessKeepsStateWithoutReset(t *testing.T) {
	f := New(getSchema(t, "child_registration"))
	f.SetAll(validChildRegistration())

	_, err := f.Submit(context.Background(), noop)

	require.NoError(t, err)
	assert.Equal(t, "Alex Johnson", f.State()["childName"])
}

func TestSubmitFailure(t *testing.T) {
	f := New(getSchema(t, "job_application"))
	f.SetAll(validJobApplication())
	boom := errors.New("smtp down")

	n, err := f.Submit(context.Background(), func(context.Context, State) error { return boom })

	assert.Equal(t, boom, errors.Cause(err))
	assert.Equal(t, NotifyError, n.Kind)
	assert.Equal(t, "Failed to submit application.", n.Title)
	assert.Equal(t, StatusFailed, f.Status())
	assert.Equal(t, "Jane", f.State()["firstName"], "state is kept for retry")

	// retry
	n, err = f.Submit(context.Background(), noop)
	require.NoError(t, err)
	assert.Equal(t, NotifySuccess, n.Kind)
	assert.Equal(t, StatusSucceeded, f.Status())
}

func TestSetClearsOnlyThatField(t *testing.T) {
	f := New(getSchema(t, "contact"))
	_, err := f.Submit(context.Background(), noop)
	require.Error(t, err)
	require.Len(t, f.Errors(), 3)

	f.Set("email", "ann@example.com")

	errs := f.Errors()
	assert.NotContains(t, errs, "email")
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "message")
}

func TestSubmitWhileSubmitting(t *testing.T) {
	f := New(getSchema(t, "contact"))
	f.SetAll(State{"name": "Ann", "email": "ann@example.com", "message": "Hello"})

	started := make(chan struct{})
	release := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = f.Submit(context.Background(), func(context.Context, State) error {
			close(started)
			<-release
			return nil
		})
	}()

	select {
	case <-started:
	case <-time.After(time.Second):
		t.Fatal("first submission did not start")
	}
	assert.Equal(t, StatusSubmitting, f.Status())

	_, err := f.Submit(context.Background(), noop)
	assert.Equal(t, ErrSubmissionInProgress, err)

	close(release)
	wg.Wait()
	assert.Equal(t, StatusSucceeded, f.Status())
}

func TestInFlight(t *testing.T) {
	g := NewInFlight()
	st := State{"name": "Ann", "email": "ann@example.com"}

	release, err := g.Acquire("contact", st)
	require.NoError(t, err)

	_, err = g.Acquire("contact", st.Clone())
	assert.Equal(t, ErrSubmissionInProgress, err)

	other, err := g.Acquire("contact", State{"name": "Bob"})
	require.NoError(t, err)
	other()

	_, err = g.Acquire("register", st)
	require.NoError(t, err, "different form")

	release()
	release()
	assert.Equal(t, 1, g.Len())

	_, err = g.Acquire("contact", st)
	assert.NoError(t, err)
}

func TestFingerprint(t *testing.T) {
	a := Fingerprint(State{"a": "1", "b": "2"})
	assert.Equal(t, a, Fingerprint(State{"b": "2", "a": "1"}))
	assert.NotEqual(t, a, Fingerprint(State{"a": "12", "b": ""}))
	assert.Len(t, a, 64)
}
