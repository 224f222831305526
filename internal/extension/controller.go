package extension

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/jafarshop/sellingplans/internal/domain"
	"github.com/jafarshop/sellingplans/internal/i18n"
	"github.com/jafarshop/sellingplans/pkg/errors"
)

// State is the lifecycle of one mode session
type State int

const (
	StateIdle State = iota
	StateAwaitingUserInput
	StateSubmitting
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingUserInput:
		return "awaiting_user_input"
	case StateSubmitting:
		return "submitting"
	case StateClosed:
		return "closed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Result is the typed outcome of a primary action
type Result struct {
	Confirmation *Confirmation
	Err          error
	// Shared is set when the press joined a submission already in flight
	Shared bool
}

// OK reports whether the server accepted the action
func (r Result) OK() bool {
	return r.Err == nil && r.Confirmation != nil
}

const primaryFlight = "primary"

// Controller binds one mode session to the host container
type Controller struct {
	spec    ModeSpec
	session Session
	table   *i18n.Table
	client  *Client
	logger  *zap.Logger
	flight  singleflight.Group

	mu        sync.Mutex
	state     State
	dismissed bool
	strings   i18n.Strings
	form      Form
}

// NewController creates the controller of one session. Mount registers its actions.
func NewController(mode domain.Mode, session Session, table *i18n.Table, client *Client, logger *zap.Logger) (*Controller, error) {
	spec, ok := Spec(mode)
	if !ok {
		return nil, fmt.Errorf("unknown extension mode %q", mode)
	}
	if session.Container == nil || session.Tokens == nil {
		return nil, fmt.Errorf("session requires a container and a session token provider")
	}
	if table == nil || client == nil {
		return nil, fmt.Errorf("controller requires a translation table and a client")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		spec:    spec,
		session: session,
		table:   table,
		client:  client,
		logger:  logger.With(zap.String("target", mode.ExtensionPoint())),
		form:    DefaultForm(mode),
	}, nil
}

// Mount resolves localized strings and registers the primary/secondary actions
func (c *Controller) Mount() {
	c.mu.Lock()
	c.strings = c.table.Lookup(c.session.Locale)
	if c.state == StateIdle {
		c.state = StateAwaitingUserInput
	}
	c.mu.Unlock()

	c.session.Container.SetPrimaryAction(ActionDescriptor{
		Content:  c.spec.ActionLabel,
		OnAction: c.Submit,
	})
	c.session.Container.SetSecondaryAction(ActionDescriptor{
		Content: "Cancel",
		OnAction: func(context.Context) Result {
			c.Cancel()
			return Result{}
		},
	})
}

// SetLocale switches language and re-registers the actions
func (c *Controller) SetLocale(locale string) {
	c.mu.Lock()
	c.session.Locale = locale
	c.mu.Unlock()
	c.Mount()
}

// Mode returns the session's mode
func (c *Controller) Mode() domain.Mode {
	return c.spec.Kind
}

// State returns the current lifecycle state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Greeting is the localized title, e.g. "Bonjour!"
func (c *Controller) Greeting() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.strings.Hello == "" {
		return c.table.Greeting(c.session.Locale)
	}
	return c.strings.Hello + "!"
}

// Description is the line rendered under the greeting
func (c *Controller) Description() string {
	data := c.session.Data
	switch c.spec.Kind {
	case domain.ModeAdd:
		return fmt.Sprintf("Add Product id %s to an existing plan or existing plans", data.ProductID)
	case domain.ModeCreate:
		return fmt.Sprintf("Create subscription plan for Product id %s", data.ProductID)
	case domain.ModeRemove:
		return fmt.Sprintf("Remove Product id %s from Plan group id %s", data.ProductID, data.SellingPlanGroupID)
	default:
		return fmt.Sprintf("Edit subscription plan for Product id %s", data.ProductID)
	}
}

// Plans returns the plans the Add form offers
func (c *Controller) Plans() []Plan {
	if len(c.session.Plans) == 0 {
		return MockPlans
	}
	return c.session.Plans
}

// Form returns a copy of the form state
func (c *Controller) Form() Form {
	c.mu.Lock()
	defer c.mu.Unlock()
	f := c.form
	f.SelectedPlans = append([]string(nil), c.form.SelectedPlans...)
	return f
}

// UpdateForm applies a change to the form state
func (c *Controller) UpdateForm(fn func(*Form)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(&c.form)
}

// Payload returns the JSON body the primary action would send
func (c *Controller) Payload() ([]byte, error) {
	v, err := c.spec.Build(c.session.Data, c.Form())
	if err != nil {
		return nil, err
	}
	return json.Marshal(v)
}

// Cancel is the secondary action: close without submitting.
// A submission already in flight still completes, but the dismissed
// container receives neither Done nor a second Close.
func (c *Controller) Cancel() {
	c.mu.Lock()
	if c.state == StateClosed {
		c.mu.Unlock()
		return
	}
	if c.state == StateSubmitting {
		c.dismissed = true
	}
	c.state = StateClosed
	c.mu.Unlock()
	c.session.Container.Close()
}

// Submit is the primary action. Presses made while a submission is in flight
// join it instead of issuing another request.
func (c *Controller) Submit(ctx context.Context) Result {
	v, _, shared := c.flight.Do(primaryFlight, func() (interface{}, error) {
		return c.submit(ctx), nil
	})
	res := v.(Result)
	res.Shared = shared
	return res
}

func (c *Controller) submit(ctx context.Context) Result {
	c.mu.Lock()
	if c.state == StateClosed {
		c.mu.Unlock()
		return Result{Err: &errors.ErrConflict{Message: "extension session is closed"}}
	}
	c.state = StateSubmitting
	c.mu.Unlock()

	res := c.execute(ctx)
	if res.Err != nil {
		c.logger.Warn("Extension action failed", zap.Error(res.Err))
	} else {
		c.logger.Info("Extension action succeeded",
			zap.Int("status", res.Confirmation.StatusCode),
			zap.String("selling_plan_group_id", res.Confirmation.SellingPlanGroupID),
		)
	}

	c.mu.Lock()
	dismissed := c.dismissed
	c.state = StateClosed
	c.mu.Unlock()
	if dismissed {
		c.logger.Info("Extension action finished after the container was dismissed", zap.Bool("ok", res.OK()))
		return res
	}

	container := c.session.Container
	if res.OK() {
		container.Done()
	}
	if reporter, ok := container.(OutcomeReporter); ok {
		reporter.Report(res)
	}
	container.Close()
	return res
}

// execute builds the payload, fetches a fresh token and sends one request
func (c *Controller) execute(ctx context.Context) Result {
	body, err := c.Payload()
	if err != nil {
		return Result{Err: err}
	}

	token, err := c.session.Tokens.GetSessionToken(ctx)
	if err != nil {
		return Result{Err: &errors.ErrUnauthorized{Message: fmt.Sprintf("session token: %v", err)}}
	}
	if token == "" {
		return Result{Err: &errors.ErrUnauthorized{Message: "empty session token"}}
	}

	confirmation, err := c.client.Send(ctx, c.spec, token, body)
	if err != nil {
		return Result{Err: err}
	}
	return Result{Confirmation: confirmation}
}
