// Package ui keeps the state of the users page: the loaded collection and
// the create-user form.
package ui

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/patric-chuzhbe/userdir/internal/apiclient"
	"github.com/patric-chuzhbe/userdir/internal/logger"
	"github.com/patric-chuzhbe/userdir/internal/models"
)

// State is the lifecycle stage of a Form.
type State int

const (
	StateClosed State = iota
	StateOpen
	StateValidating
	StateSubmitting
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateValidating:
		return "validating"
	case StateSubmitting:
		return "submitting"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

const failedToCreateMessage = "Failed to create user"

var (
	ErrUnknownField = errors.New("unknown form field")
	ErrNotOpen      = errors.New("form is not open")
	ErrInvalid      = errors.New("form has invalid fields")
)

type fieldChecker interface {
	CheckFields(draft models.NewUser) models.UserErrors
}

type userCreator interface {
	CreateUser(ctx context.Context, payload models.NewUser) (models.User, error)
}

// Form is the create-user dialog: a draft record, one message per field and
// the message of the last failed submission.
type Form struct {
	checker fieldChecker

	state       State
	draft       models.NewUser
	errors      models.UserErrors
	submitError string
}

func NewForm(checker fieldChecker) *Form {
	return &Form{
		checker: checker,
		state:   StateClosed,
	}
}

func (f *Form) State() State {
	return f.state
}

func (f *Form) Draft() models.NewUser {
	return f.draft
}

func (f *Form) Errors() models.UserErrors {
	return f.errors
}

// SubmitError is the message of the last failed submission, if any.
func (f *Form) SubmitError() string {
	return f.submitError
}

// Open shows the form with an empty draft.
func (f *Form) Open() {
	f.state = StateOpen
	f.draft = models.NewUser{}
	f.errors = models.UserErrors{}
	f.submitError = ""
}

// Cancel closes the form and clears its messages. It is ignored while a
// submission is in flight.
func (f *Form) Cancel() {
	if f.state == StateSubmitting {
		return
	}
	f.state = StateClosed
	f.errors = models.UserErrors{}
	f.submitError = ""
}

// Set stores value at the given JSON path of the draft.
func (f *Form) Set(path, value string) error {
	field, ok := fieldsByPath[path]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, path)
	}
	*field.value(&f.draft) = value

	return nil
}

// Value returns the draft value at path, or "" for an unknown path.
func (f *Form) Value(path string) string {
	field, ok := fieldsByPath[path]
	if !ok {
		return ""
	}
	return *field.value(&f.draft)
}

// Error returns the message of the field at path, or "" when it is fine.
func (f *Form) Error(path string) string {
	field, ok := fieldsByPath[path]
	if !ok {
		return ""
	}
	return *field.issue(&f.errors)
}

// Validate checks every field of the draft and records the messages.
func (f *Form) Validate() bool {
	previous := f.state
	f.state = StateValidating
	f.errors = f.checker.CheckFields(f.draft)
	f.state = previous

	return f.errors.Empty()
}

// Submit validates the draft and sends its trimmed form to api. On success
// the form is reset and closed; on failure it stays open.
func (f *Form) Submit(ctx context.Context, api userCreator) (models.User, error) {
	if f.state != StateOpen {
		return models.User{}, ErrNotOpen
	}

	if !f.Validate() {
		return models.User{}, ErrInvalid
	}

	f.state = StateSubmitting
	f.submitError = ""

	created, err := api.CreateUser(ctx, f.draft.Trimmed())
	if err != nil {
		logger.Log.Errorw("Error creating user", zap.Error(err))

		f.submitError = failedToCreateMessage
		var apiErr *apiclient.APIError
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			f.submitError = apiErr.Message
		}
		f.state = StateOpen

		return models.User{}, err
	}

	f.draft = models.NewUser{}
	f.errors = models.UserErrors{}
	f.state = StateClosed

	return created, nil
}
