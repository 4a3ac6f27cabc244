package cli

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool
	calls    []string
	args     [][]string
	fail     error
}

func (f *fakeExec) record(name string, args []string) error {
	f.calls = append(f.calls, name)
	f.args = append(f.args, args)
	return f.fail
}

func (f *fakeExec) isLoggedIn(context.Context) bool { return f.loggedIn }
func (f *fakeExec) Register(context.Context) error {
	f.loggedIn = true
	return f.record("register", nil)
}
func (f *fakeExec) Login(context.Context) error {
	f.loggedIn = true
	return f.record("login", nil)
}
func (f *fakeExec) Logout(_ context.Context, wipe bool) error {
	if wipe {
		f.loggedIn = false
		return f.record("wipe", nil)
	}
	return f.record("logout", nil)
}
func (f *fakeExec) Profile(context.Context) error     { return f.record("profile", nil) }
func (f *fakeExec) EditProfile(context.Context) error { return f.record("editprofile", nil) }
func (f *fakeExec) Feed(context.Context) error        { return f.record("feed", nil) }
func (f *fakeExec) Search(_ context.Context, text string) error {
	return f.record("search", []string{text})
}
func (f *fakeExec) LiveSearch(context.Context) error { return f.record("live", nil) }
func (f *fakeExec) Show(_ context.Context, a []string) error {
	return f.record("show", a)
}
func (f *fakeExec) AddMoment(context.Context) error { return f.record("add", nil) }
func (f *fakeExec) EditMoment(_ context.Context, a []string) error {
	return f.record("edit", a)
}
func (f *fakeExec) ReplaceImage(_ context.Context, a []string) error {
	return f.record("image", a)
}
func (f *fakeExec) DeleteMoment(_ context.Context, a []string) error {
	return f.record("delete", a)
}
func (f *fakeExec) Comment(_ context.Context, a []string) error {
	return f.record("comment", a)
}
func (f *fakeExec) Uncomment(_ context.Context, a []string) error {
	return f.record("uncomment", a)
}
func (f *fakeExec) Events(_ context.Context, a []string) error {
	return f.record("events", a)
}
func (f *fakeExec) AddEvent(context.Context) error { return f.record("addevent", nil) }
func (f *fakeExec) Subscribe(_ context.Context, a []string) error {
	return f.record("subscribe", a)
}
func (f *fakeExec) Chats(context.Context) error { return f.record("chats", nil) }
func (f *fakeExec) Chat(_ context.Context, a []string) error {
	return f.record("chat", a)
}

func captureREPL(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		parts := make([]string, len(a))
		for i, v := range a {
			parts[i] = strings.TrimSpace(strings.ReplaceAll(strings.TrimSpace(toString(v)), "\n", " "))
		}
		lines = append(lines, strings.Join(parts, " "))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func toString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case error:
		return x.Error()
	}
	return ""
}

func TestRunREPL_GuestsMustLogin(t *testing.T) {
	out := captureREPL(t)
	exec := &fakeExec{}

	runREPL(context.Background(), exec, func() string { return "" }, rdr("help\nfeed\nfoobar\nlogin\nfeed\nquit\n"))

	assert.Equal(t, []string{"login", "feed"}, exec.calls)
	assert.Contains(t, *out, helpGuest)
	assert.Contains(t, *out, "Please register or login first")
	assert.Contains(t, *out, "Unknown command: foobar")
	assert.Contains(t, *out, "Bye!")
}

func TestRunREPL_DispatchesArguments(t *testing.T) {
	captureREPL(t)
	exec := &fakeExec{loggedIn: true}

	input := strings.Join([]string{
		"search plaza de mayo",
		"show -9223372036854775808",
		"comment 4",
		"uncomment 9",
		"events tango cat:Música",
		"chat Tigre Sunset 2025",
		"live",
		"logout",
		"wipe",
		"feed",
	}, "\n")

	runREPL(context.Background(), exec, func() string { return "(lucia)" }, rdr(input))

	assert.Equal(t, []string{"search", "show", "comment", "uncomment", "events", "chat", "live", "logout", "wipe"}, exec.calls)
	assert.Equal(t, []string{"plaza de mayo"}, exec.args[0])
	assert.Equal(t, []string{"-9223372036854775808"}, exec.args[1])
	assert.Equal(t, []string{"tango", "cat:Música"}, exec.args[4])
	assert.Equal(t, []string{"Tigre", "Sunset", "2025"}, exec.args[5])
}

func TestRunREPL_ReportsErrorsAndContinues(t *testing.T) {
	out := captureREPL(t)
	exec := &fakeExec{loggedIn: true, fail: errors.New("disk full")}

	runREPL(context.Background(), exec, func() string { return "" }, rdr("add\nfeed\n"))

	assert.Equal(t, []string{"add", "feed"}, exec.calls)
	assert.Contains(t, *out, "Error: disk full")
}
