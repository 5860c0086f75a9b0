package cli

import "context"

// Root runs the interactive prompt on the App's input until exit or EOF.
func (a *App) Root(ctx context.Context) {
	printlnFn("Welcome to the CheddarGetter CLI (type 'help' for commands)")
	runREPL(ctx, a, a.reader)
}
