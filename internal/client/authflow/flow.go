// Copyright (c) 2026 StudyMate. All rights reserved.

/*
Package authflow drives the login and two-step signup forms.

It is a cooperative state machine, not a goroutine-safe one: a UI loop feeds
it user actions one at a time, reads the resulting state, and re-renders.
Step 1 of signup collects the account fields and gates progression on local
validation; step 2 collects study preferences and submits. Validation here
exists for fast feedback only — the server re-checks everything it cares
about on its own terms.
*/
package authflow

import (
	"context"
	"errors"

	"github.com/studymate/api/internal/client/gateway"
	"github.com/studymate/api/internal/platform/validate"
	"github.com/studymate/api/internal/users/auth"
)

// # States

// State identifies which form the flow is showing.
type State int

const (
	// StateLogin shows the email/password form.
	StateLogin State = iota + 1
	// StateSignupStep1 shows the account fields (name, email, username, password).
	StateSignupStep1
	// StateSignupStep2 shows the study preference fields.
	StateSignupStep2
)

// # Catalogs

// Form option catalogs. The first entry of each list is the draft default.
var (
	Domains = []string{
		"Mathematics", "Physics", "Chemistry", "Biology",
		"Computer Science", "Languages", "History", "Economics",
	}
	LearningStyles  = []string{"Visual", "Auditory", "Reading/Writing", "Kinesthetic"}
	StudyTimes      = []string{"Morning", "Afternoon", "Evening", "Night"}
	TeamPreferences = []string{"One-on-one", "Small group"}
	AvatarIDs       = []string{auth.DefaultAvatarID, "scholar", "owl", "rocket", "atom", "compass"}
)

// # Messages

// Messages surfaced next to the form. Pinned; tests and UI copy match on them.
const (
	MsgFillAllFields = "Please fill out all account fields."
	MsgInvalidEmail  = "Please enter a valid email address."
	MsgWeakPassword  = "Password must be 8+ chars with at least one uppercase, one lowercase, and one number."
	MsgEnterEmail    = "Please enter your email."
)

// ErrSubmitInFlight is returned when a submit lands while a previous one is
// still running. The duplicate never reaches the network.
var ErrSubmitInFlight = errors.New("authflow: submit already in flight")

// errValidation marks a local validation failure; the message is already on
// the flow for the UI to render.
var errValidation = errors.New("authflow: validation failed")

// # Draft

// Draft accumulates the signup form across both steps.
type Draft struct {
	Name          string
	Email         string
	Username      string
	Password      string
	AvatarID      string
	Domains       []string
	LearningStyle string
	StudyTime     string
	TeamPref      string
}

// newDraft returns a draft pre-filled with the catalog defaults.
func newDraft() Draft {
	return Draft{
		AvatarID:      AvatarIDs[0],
		Domains:       []string{},
		LearningStyle: LearningStyles[0],
		StudyTime:     StudyTimes[0],
		TeamPref:      TeamPreferences[0],
	}
}

// ToggleDomain adds the domain to the draft, or removes it when present.
func (draft *Draft) ToggleDomain(domain string) {
	for i, existing := range draft.Domains {
		if existing == domain {
			draft.Domains = append(draft.Domains[:i], draft.Domains[i+1:]...)
			return
		}
	}
	draft.Domains = append(draft.Domains, domain)
}

// # Authenticator

// Authenticator is the slice of the API client the flow submits through.
// [*gateway.Client] satisfies it.
type Authenticator interface {
	Login(context context.Context, email, password string) (*auth.PublicUser, error)
	Register(context context.Context, form gateway.RegisterForm) (*auth.PublicUser, error)
}

// # Flow

// Flow is the login/signup form state machine.
type Flow struct {
	api Authenticator

	state   State
	draft   Draft
	message string
	busy    bool
}

// NewFlow creates a flow showing the login form.
func NewFlow(api Authenticator) *Flow {
	return &Flow{
		api:   api,
		state: StateLogin,
		draft: newDraft(),
	}
}

// State returns the form currently showing.
func (flow *Flow) State() State { return flow.state }

// Draft exposes the signup draft for field-by-field input binding.
func (flow *Flow) Draft() *Draft { return &flow.draft }

// Message returns the current form-level error message, or "".
func (flow *Flow) Message() string { return flow.message }

// Busy reports whether a submit is in flight.
func (flow *Flow) Busy() bool { return flow.busy }

// ShowLogin switches to the login form. Any error message is cleared; the
// signup draft survives so toggling back loses nothing.
func (flow *Flow) ShowLogin() {
	flow.state = StateLogin
	flow.message = ""
}

// ShowSignup switches to step 1 of the signup form and clears any error.
func (flow *Flow) ShowSignup() {
	flow.state = StateSignupStep1
	flow.message = ""
}

/*
Next gates progression from signup step 1 to step 2.

Description: Three checks run in order — presence of all four account
fields, email shape, then password strength — and the first failure parks
its message on the flow. Password strength is checked locally only here;
the server accepts any non-empty password, so this gate is the only thing
standing between a weak password and an account.
*/
func (flow *Flow) Next() error {
	if flow.state != StateSignupStep1 {
		return nil
	}

	draft := &flow.draft
	if draft.Name == "" || draft.Email == "" || draft.Username == "" || draft.Password == "" {
		flow.message = MsgFillAllFields
		return errValidation
	}
	if !validate.EmailShapeOK(draft.Email) {
		flow.message = MsgInvalidEmail
		return errValidation
	}
	if !validate.PasswordStrong(draft.Password) {
		flow.message = MsgWeakPassword
		return errValidation
	}

	flow.message = ""
	flow.state = StateSignupStep2
	return nil
}

// Back returns from step 2 to step 1. The draft is untouched, so nothing
// the user typed is lost.
func (flow *Flow) Back() {
	if flow.state == StateSignupStep2 {
		flow.state = StateSignupStep1
	}
}

/*
SubmitLogin sends the login form.

Description: Re-entrant submits are rejected before any network activity,
so double-clicking the button cannot fire two logins. On failure the server
message lands on the flow for rendering; on success the flow resets.
*/
func (flow *Flow) SubmitLogin(context context.Context) (*auth.PublicUser, error) {
	if flow.busy {
		return nil, ErrSubmitInFlight
	}
	if flow.state != StateLogin {
		return nil, errValidation
	}
	if flow.draft.Email == "" {
		flow.message = MsgEnterEmail
		return nil, errValidation
	}

	flow.busy = true
	defer func() { flow.busy = false }()

	user, err := flow.api.Login(context, flow.draft.Email, flow.draft.Password)
	if err != nil {
		flow.message = err.Error()
		return nil, err
	}

	flow.reset()
	return user, nil
}

/*
SubmitSignup sends the completed signup form from step 2.

Description: Same re-entrancy guard as login. The draft only leaves through
this call after step 1's gate has passed, and it is discarded on success.
*/
func (flow *Flow) SubmitSignup(context context.Context) (*auth.PublicUser, error) {
	if flow.busy {
		return nil, ErrSubmitInFlight
	}
	if flow.state != StateSignupStep2 {
		return nil, errValidation
	}

	flow.busy = true
	defer func() { flow.busy = false }()

	draft := flow.draft
	user, err := flow.api.Register(context, gateway.RegisterForm{
		Name:          draft.Name,
		Email:         draft.Email,
		Username:      draft.Username,
		Password:      draft.Password,
		AvatarID:      draft.AvatarID,
		Domains:       draft.Domains,
		LearningStyle: draft.LearningStyle,
		StudyTime:     draft.StudyTime,
		TeamPref:      draft.TeamPref,
	})
	if err != nil {
		flow.message = err.Error()
		return nil, err
	}

	flow.reset()
	return user, nil
}

// reset discards the draft and returns to a clean login form.
func (flow *Flow) reset() {
	flow.state = StateLogin
	flow.draft = newDraft()
	flow.message = ""
}
