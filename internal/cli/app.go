package cli

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/dmitrijs2005/cheddargetter/logging"
	"github.com/dmitrijs2005/cheddargetter/models"
)

// App runs CheddarGetter commands against one API account.
type App struct {
	api    models.Requester
	logger logging.Logger
	out    io.Writer
	reader *bufio.Reader
}

// NewApp wires an App to api. Output goes to stdout; prompts read stdin.
func NewApp(api models.Requester, logger logging.Logger) *App {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &App{
		api:    api,
		logger: logger,
		out:    os.Stdout,
		reader: bufio.NewReader(os.Stdin),
	}
}

// Run executes args as a single command when given, otherwise it starts the
// interactive prompt.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) > 0 {
		return dispatch(ctx, a, args[0], args[1:])
	}
	a.Root(ctx)
	return nil
}
