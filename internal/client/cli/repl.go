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

// errUsage marks a command invoked with the wrong arguments; the REPL
// prints the usage line instead of an error.
type errUsage string

func (e errUsage) Error() string { return "usage: " + string(e) }

// execIface defines the command surface the REPL needs. The real App type
// satisfies it; tests provide a lightweight stub.
type execIface interface {
	hasSession() bool
	Open(ctx context.Context, args []string) error
	Resume(ctx context.Context, args []string) error
	Drafts(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Add(ctx context.Context, args []string) error
	Set(ctx context.Context, args []string) error
	Img(ctx context.Context, args []string) error
	RmImg(ctx context.Context, args []string) error
	Rm(ctx context.Context, args []string) error
	Payload(ctx context.Context, args []string) error
	Submit(ctx context.Context, args []string) error
	Discard(ctx context.Context, args []string) error
	Cats(ctx context.Context, args []string) error
}

const helpIdle = `Available commands:
  open <caseID>       fetch a patient case and start editing its results
  resume <caseID>     continue a saved draft
  drafts              list saved drafts
  cats <c|p>          list clinical or paraclinical categories
  help, exit`

const helpSession = `Available commands (kind is c[linical] or p[araclinical]):
  show [kind]                         list results
  add <kind>                          append a new result
  set <kind> <pos> <field> [value]    field: category, text, notes
  img <kind> <pos> <file...>          upload images (max 5 per result)
  rmimg <kind> <pos> <imageID>        detach an image
  rm <kind> <pos>                     remove a result
  cats <kind>                         list categories
  payload                             print the request that submit would send
  submit                              send all changes
  discard                             drop changes and the saved draft
  open, resume, drafts, help, exit`

// runREPL starts a read–eval–print loop over scanner.
//
// It parses the first token as the command and dispatches to a. Errors are
// printed and the loop continues. The loop exits on scanner EOF or when the
// user types "exit" or "quit".
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("ck%s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var err error
		switch cmd {
		case "help", "?":
			if a.hasSession() {
				printlnFn(helpSession)
			} else {
				printlnFn(helpIdle)
			}
		case "open":
			err = a.Open(ctx, args)
		case "resume":
			err = a.Resume(ctx, args)
		case "drafts":
			err = a.Drafts(ctx, args)
		case "show", "ls":
			err = a.Show(ctx, args)
		case "add":
			err = a.Add(ctx, args)
		case "set":
			err = a.Set(ctx, args)
		case "img":
			err = a.Img(ctx, args)
		case "rmimg":
			err = a.RmImg(ctx, args)
		case "rm":
			err = a.Rm(ctx, args)
		case "payload":
			err = a.Payload(ctx, args)
		case "submit":
			err = a.Submit(ctx, args)
		case "discard":
			err = a.Discard(ctx, args)
		case "cats":
			err = a.Cats(ctx, args)
		case "exit", "quit":
			printlnFn("Bye!")
			return
		default:
			printlnFn("Unknown command:", cmd)
		}

		var usage errUsage
		switch {
		case err == nil:
		case errors.As(err, &usage):
			printlnFn("Usage:", string(usage))
		default:
			printlnFn("Error:", err)
		}
	}
}

func (a *App) hasSession() bool {
	return a.session.Active()
}

func (a *App) status() string {
	if !a.session.Active() {
		return ""
	}
	s := " case " + a.session.CaseID().String()
	if name := a.session.CaseName(); name != "" {
		s += " " + fmt.Sprintf("%q", name)
	}
	return s
}

// Shell runs the interactive session until the user exits.
func (a *App) Shell(ctx context.Context) {
	printlnFn("casekeeper shell (type 'help' for commands)")
	if _, err := a.auth.AccessToken(ctx); err != nil {
		printlnFn("Not logged in: run 'casekeeper login' first.")
	}
	runREPL(ctx, a, a.status, bufio.NewScanner(a.in))
}
