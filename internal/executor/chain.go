package executor

import "context"

// Chain dispatches a line to the first member executor that claims it.
// Order matters: first match wins. A Chain is itself an Executor, so
// chains can be nested and composed.
type Chain struct {
	executors []Executor
}

// NewChain composes executors in dispatch order.
func NewChain(executors ...Executor) *Chain {
	return &Chain{executors: executors}
}

// NewDefaultChain composes the standard console chain: built-ins first,
// the caller's executors in order, and the shell catch-all last.
func NewDefaultChain(builtin *Builtin, shell *Shell, extra ...Executor) *Chain {
	members := make([]Executor, 0, len(extra)+2)
	members = append(members, builtin)
	members = append(members, extra...)
	members = append(members, shell)
	return NewChain(members...)
}

// CanHandle reports whether any member would accept the line.
func (c *Chain) CanHandle(line string) bool {
	for _, e := range c.executors {
		if e.CanHandle(line) {
			return true
		}
	}
	return false
}

// Execute tries each member in order; the first result that is not
// StatusNotHandled wins. If every member declines, the chain fails with
// NotFoundError carrying the original line.
func (c *Chain) Execute(ctx context.Context, line string) (Result, error) {
	for _, e := range c.executors {
		res, err := e.Execute(ctx, line)
		if err != nil {
			return Result{}, err
		}
		if res.Status != StatusNotHandled {
			return res, nil
		}
	}
	return Result{}, &NotFoundError{Line: line}
}
