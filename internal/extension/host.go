// Package extension implements the product subscription-plan extension that the
// Shopify admin mounts in four modes (Add, Create, Remove, Edit).
//
// The admin host is consumed through small capability interfaces injected per
// session: the container that owns the modal or overlay, the session token
// provider, the product context and the merchant's locale.
package extension

import (
	"context"

	"github.com/jafarshop/sellingplans/internal/domain"
)

// Container is the modal or overlay that hosts one session
type Container interface {
	Close()
	Done()
	SetPrimaryAction(ActionDescriptor)
	SetSecondaryAction(ActionDescriptor)
}

// OutcomeReporter is implemented by containers that can show the merchant
// the result of the primary action before they close.
type OutcomeReporter interface {
	Report(Result)
}

// SessionTokenProvider issues short-lived identity tokens for calls to the app server
type SessionTokenProvider interface {
	GetSessionToken(ctx context.Context) (string, error)
}

// SessionTokenFunc adapts a function to SessionTokenProvider
type SessionTokenFunc func(ctx context.Context) (string, error)

func (f SessionTokenFunc) GetSessionToken(ctx context.Context) (string, error) {
	return f(ctx)
}

// ActionDescriptor is a labelled action registered with the container.
// Registering again replaces the previous descriptor.
type ActionDescriptor struct {
	Content  string
	OnAction func(ctx context.Context) Result
}

// Session bundles what the host supplies for one mode invocation
type Session struct {
	Data      domain.ExtensionContext
	Locale    string
	Container Container
	Tokens    SessionTokenProvider
	// Plans offered by the Add form; MockPlans when empty
	Plans []Plan
}
