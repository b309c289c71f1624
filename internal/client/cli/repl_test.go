package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	active bool
	calls  []string
	err    error
}

func (f *fakeExec) record(name string, args []string) error {
	f.calls = append(f.calls, strings.TrimSpace(name+" "+strings.Join(args, " ")))
	return f.err
}

func (f *fakeExec) hasSession() bool { return f.active }
func (f *fakeExec) Open(_ context.Context, a []string) error {
	f.active = true
	return f.record("open", a)
}
func (f *fakeExec) Resume(_ context.Context, a []string) error  { return f.record("resume", a) }
func (f *fakeExec) Drafts(_ context.Context, a []string) error  { return f.record("drafts", a) }
func (f *fakeExec) Show(_ context.Context, a []string) error    { return f.record("show", a) }
func (f *fakeExec) Add(_ context.Context, a []string) error     { return f.record("add", a) }
func (f *fakeExec) Set(_ context.Context, a []string) error     { return f.record("set", a) }
func (f *fakeExec) Img(_ context.Context, a []string) error     { return f.record("img", a) }
func (f *fakeExec) RmImg(_ context.Context, a []string) error   { return f.record("rmimg", a) }
func (f *fakeExec) Rm(_ context.Context, a []string) error      { return f.record("rm", a) }
func (f *fakeExec) Payload(_ context.Context, a []string) error { return f.record("payload", a) }
func (f *fakeExec) Submit(_ context.Context, a []string) error  { return f.record("submit", a) }
func (f *fakeExec) Discard(_ context.Context, a []string) error { return f.record("discard", a) }
func (f *fakeExec) Cats(_ context.Context, a []string) error    { return f.record("cats", a) }

func capturePrints(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func TestRunREPL_Dispatch(t *testing.T) {
	capturePrints(t)

	input := strings.Join([]string{
		"open 1",
		"",
		"show c",
		"add p",
		"set p 0 text x-ray clear",
		"img p 0 a.png",
		"rmimg p 0 a.png",
		"rm c 1",
		"payload",
		"cats p",
		"submit",
		"drafts",
		"resume 1",
		"discard",
		"exit",
		"show",
	}, "\n")

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewScanner(strings.NewReader(input)))

	assert.Equal(t, []string{
		"open 1", "show c", "add p", "set p 0 text x-ray clear", "img p 0 a.png",
		"rmimg p 0 a.png", "rm c 1", "payload", "cats p", "submit", "drafts", "resume 1", "discard",
	}, exec.calls)
}

func TestRunREPL_ErrorsAndHelp(t *testing.T) {
	lines := capturePrints(t)

	exec := &fakeExec{err: errors.New("boom")}
	input := "help\nsubmit\nfoobar\nquit\n"
	runREPL(context.Background(), exec, func() string { return " case 1" }, bufio.NewScanner(strings.NewReader(input)))

	out := strings.Join(*lines, "\n")
	assert.Contains(t, out, "ck case 1> ")
	assert.Contains(t, out, "open <caseID>")
	assert.Contains(t, out, "Error: boom")
	assert.Contains(t, out, "Unknown command: foobar")
	assert.Contains(t, out, "Bye!")
}

func TestRunREPL_Usage(t *testing.T) {
	lines := capturePrints(t)

	exec := &fakeExec{active: true, err: errUsage("rm <kind> <pos>")}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewScanner(strings.NewReader("help\nrm\n")))

	out := strings.Join(*lines, "\n")
	assert.Contains(t, out, "payload")
	assert.Contains(t, out, "Usage: rm <kind> <pos>")
	assert.NotContains(t, out, "Error:")
}
