package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

var errUnknownCommand = errors.New("unknown command")

const helpText = `Available commands:
  plans                                      list plans
  plan <code>                                show a plan and its items
  promotions                                 list promotions and coupons
  customers                                  list customers
  customer <code>                            show a customer
  meta <customer> <name> [value]             read or write customer metadata
  charge <customer> <charge> <item> <amount> [qty] [description...]
  quantity <customer> <item> <qty>           set an item quantity
  add <customer> <item> <delta>              add to an item quantity
  cancel <customer>                          cancel the subscription
  exit | quit`

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	Plans(ctx context.Context, args []string) error
	Plan(ctx context.Context, args []string) error
	Promotions(ctx context.Context, args []string) error
	Customers(ctx context.Context, args []string) error
	Customer(ctx context.Context, args []string) error
	Meta(ctx context.Context, args []string) error
	Charge(ctx context.Context, args []string) error
	Quantity(ctx context.Context, args []string) error
	AddQuantity(ctx context.Context, args []string) error
	Cancel(ctx context.Context, args []string) error
}

// dispatch runs one command. It returns errUnknownCommand for anything it
// does not recognise.
func dispatch(ctx context.Context, a execIface, cmd string, args []string) error {
	switch cmd {
	case "help":
		printlnFn(helpText)
		return nil
	case "plans":
		return a.Plans(ctx, args)
	case "plan":
		return a.Plan(ctx, args)
	case "promotions":
		return a.Promotions(ctx, args)
	case "customers":
		return a.Customers(ctx, args)
	case "customer":
		return a.Customer(ctx, args)
	case "meta":
		return a.Meta(ctx, args)
	case "charge":
		return a.Charge(ctx, args)
	case "quantity":
		return a.Quantity(ctx, args)
	case "add":
		return a.AddQuantity(ctx, args)
	case "cancel":
		return a.Cancel(ctx, args)
	default:
		return fmt.Errorf("%w: %s", errUnknownCommand, cmd)
	}
}

// runREPL starts a read-eval-print loop over reader.
//
// The first token of each line is the command, the rest are its arguments.
// The loop exits on EOF or when the user types "exit" or "quit".
// Command errors are printed and the loop keeps going. Commands that prompt
// read from the same reader, so piped input stays in order.
func runREPL(ctx context.Context, a execIface, reader *bufio.Reader) {
	for {
		printlnFn("cheddar> ")
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			if err != nil {
				return
			}
			continue
		}

		cmd := parts[0]
		if cmd == "exit" || cmd == "quit" {
			printlnFn("Bye!")
			return
		}

		if cmdErr := dispatch(ctx, a, cmd, parts[1:]); cmdErr != nil {
			printlnFn("Error:", cmdErr)
		}
		if err != nil {
			return
		}
	}
}
