// Package operations provides the generic runner for bracketed batch
// operations on extension sets.
package operations

// Hooks brackets a batch operation. Variants implement only the hooks they
// need; nil hooks are skipped.
type Hooks struct {
	// Before runs ahead of the operation. An error aborts the run and the
	// operation never executes; After does not run either.
	Before func(ids []string) error

	// After runs once the operation has finished, whether it failed or not,
	// so compensating actions (re-enabling extensions) always happen.
	After func(ids []string)
}

// Run executes op on ids inside the given bracket and returns the
// operation's error.
func Run(ids []string, hooks Hooks, op func(ids []string) error) error {
	if hooks.Before != nil {
		if err := hooks.Before(ids); err != nil {
			return err
		}
	}
	if hooks.After != nil {
		defer hooks.After(ids)
	}
	return op(ids)
}
