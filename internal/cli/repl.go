package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for REPL output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to.
type execIface interface {
	isLoggedIn(ctx context.Context) bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context, wipe bool) error
	Profile(ctx context.Context) error
	EditProfile(ctx context.Context) error

	Feed(ctx context.Context) error
	Search(ctx context.Context, text string) error
	LiveSearch(ctx context.Context) error
	Show(ctx context.Context, args []string) error
	AddMoment(ctx context.Context) error
	EditMoment(ctx context.Context, args []string) error
	ReplaceImage(ctx context.Context, args []string) error
	DeleteMoment(ctx context.Context, args []string) error
	Comment(ctx context.Context, args []string) error
	Uncomment(ctx context.Context, args []string) error

	Events(ctx context.Context, args []string) error
	AddEvent(ctx context.Context) error
	Subscribe(ctx context.Context, args []string) error
	Chats(ctx context.Context) error
	Chat(ctx context.Context, args []string) error
}

const (
	helpGuest  = "Available commands: register, login, exit"
	helpMember = "Available commands: feed, search <text>, live, show <id>, add, edit <id>, image <id>, delete <id>, " +
		"comment <id>, uncomment <comment id>, events [text] [cat:<category>] [status:<status>], addevent, " +
		"subscribe <event id>, chats, chat <contact>, profile, editprofile, logout, wipe, exit"
)

// runREPL reads commands from reader until EOF, "exit" or "quit" and
// dispatches them to a. Command errors are reported and the loop goes on.
// Members-only commands ask for a login first.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("connect %s> ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "exit", "quit":
			printlnFn("Bye!")
			return
		case "help":
			if a.isLoggedIn(ctx) {
				printlnFn(helpMember)
			} else {
				printlnFn(helpGuest)
			}
			continue
		case "register":
			report(a.Register(ctx))
			continue
		case "login":
			report(a.Login(ctx))
			continue
		}

		run, ok := memberCommand(a, cmd, args)
		if !ok {
			printlnFn("Unknown command:", cmd)
			continue
		}
		if !a.isLoggedIn(ctx) {
			printlnFn("Please register or login first")
			continue
		}
		report(run(ctx))
	}
}

func memberCommand(a execIface, cmd string, args []string) (func(context.Context) error, bool) {
	withArgs := func(f func(context.Context, []string) error) func(context.Context) error {
		return func(ctx context.Context) error { return f(ctx, args) }
	}

	switch cmd {
	case "f", "feed":
		return a.Feed, true
	case "search":
		return func(ctx context.Context) error { return a.Search(ctx, strings.Join(args, " ")) }, true
	case "live":
		return a.LiveSearch, true
	case "show":
		return withArgs(a.Show), true
	case "add":
		return a.AddMoment, true
	case "edit":
		return withArgs(a.EditMoment), true
	case "image":
		return withArgs(a.ReplaceImage), true
	case "delete":
		return withArgs(a.DeleteMoment), true
	case "comment":
		return withArgs(a.Comment), true
	case "uncomment":
		return withArgs(a.Uncomment), true
	case "events":
		return withArgs(a.Events), true
	case "addevent":
		return a.AddEvent, true
	case "subscribe":
		return withArgs(a.Subscribe), true
	case "chats":
		return a.Chats, true
	case "chat":
		return withArgs(a.Chat), true
	case "profile":
		return a.Profile, true
	case "editprofile":
		return a.EditProfile, true
	case "logout":
		return func(ctx context.Context) error { return a.Logout(ctx, false) }, true
	case "wipe":
		return func(ctx context.Context) error { return a.Logout(ctx, true) }, true
	}
	return nil, false
}

func report(err error) {
	if err != nil {
		printlnFn("Error:", err)
	}
}
