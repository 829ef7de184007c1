package notify

import "context"

// Confirmation describes a destructive action awaiting approval.
type Confirmation struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	OKLabel string `json:"okLabel"`
	Icon    string `json:"icon,omitempty"`
}

// Confirmer asks the user to approve a Confirmation.
// A false result or an error means the action must not run.
type Confirmer interface {
	Confirm(ctx context.Context, c Confirmation) (bool, error)
}

// ConfirmerFunc adapts a function to a Confirmer.
type ConfirmerFunc func(ctx context.Context, c Confirmation) (bool, error)

// Confirm calls f.
func (f ConfirmerFunc) Confirm(ctx context.Context, c Confirmation) (bool, error) {
	return f(ctx, c)
}

var (
	// AlwaysConfirm approves everything, e.g. for --yes.
	AlwaysConfirm Confirmer = ConfirmerFunc(func(context.Context, Confirmation) (bool, error) { return true, nil })
	// AlwaysDecline refuses everything.
	AlwaysDecline Confirmer = ConfirmerFunc(func(context.Context, Confirmation) (bool, error) { return false, nil })
)
