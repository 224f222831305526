package commands

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/jafarshop/sellingplans/internal/extension"
)

// terminalContainer hosts an extension session on a terminal
type terminalContainer struct {
	out io.Writer

	mu        sync.Mutex
	primary   extension.ActionDescriptor
	secondary extension.ActionDescriptor
	closed    bool
}

func newTerminalContainer(out io.Writer) *terminalContainer {
	return &terminalContainer{out: out}
}

func (t *terminalContainer) SetPrimaryAction(a extension.ActionDescriptor) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.primary = a
}

func (t *terminalContainer) SetSecondaryAction(a extension.ActionDescriptor) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.secondary = a
}

func (t *terminalContainer) Done() {
	fmt.Fprintln(t.out, "done")
}

func (t *terminalContainer) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
}

func (t *terminalContainer) Report(res extension.Result) {
	switch {
	case res.OK() && res.Confirmation.SellingPlanGroupID != "":
		fmt.Fprintf(t.out, "selling plan group: %s\n", res.Confirmation.SellingPlanGroupID)
	case res.Err != nil:
		fmt.Fprintf(t.out, "failed: %v\n", res.Err)
	}
}

// Press invokes the registered primary action
func (t *terminalContainer) Press(ctx context.Context) extension.Result {
	t.mu.Lock()
	action := t.primary
	t.mu.Unlock()
	if action.OnAction == nil {
		return extension.Result{Err: fmt.Errorf("no primary action registered")}
	}
	fmt.Fprintf(t.out, "> %s\n", action.Content)
	return action.OnAction(ctx)
}

func (t *terminalContainer) Closed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.closed
}
