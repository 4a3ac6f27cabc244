package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/baconnect/internal/models"
)

func (a *App) Chats(ctx context.Context) error {
	for _, p := range a.chat.Previews() {
		line := fmt.Sprintf("%s | %s | %s", p.Contact, p.LastTime.Format("15:04"), p.LastMessage)
		if p.UnreadCount > 0 {
			line += fmt.Sprintf(" (%d unread)", p.UnreadCount)
		}
		a.println(line)
	}
	return nil
}

func (a *App) printMessage(m models.ChatMessage) {
	a.printf("%s %s: %s\n", m.SentAt.Format("15:04"), m.Author, m.Content)
}

// Chat opens a conversation: messages are printed as they arrive and every
// typed line is sent, until "/q" or end of input. Leaving cancels a reply
// still pending.
func (a *App) Chat(ctx context.Context, args []string) error {
	contact := strings.Join(args, " ")
	if contact == "" {
		return fmt.Errorf("%w: chat <contact>", errUsage)
	}

	ctx, cancel := context.WithCancel(ctx)
	a.chat.MarkRead(contact)
	a.printf("Chat with %s, /q to leave\n", contact)

	done := make(chan struct{})
	go func() {
		defer close(done)
		shown := 0
		for msgs := range a.chat.WatchConversation(ctx, contact) {
			for _, m := range msgs[min(shown, len(msgs)):] {
				a.printMessage(m)
			}
			shown = len(msgs)
			a.chat.MarkRead(contact)
		}
	}()

	defer func() {
		cancel()
		<-done
		a.chat.CloseConversation(contact)
	}()

	for {
		line, err := readLine(a.reader)
		if err != nil || line == "/q" {
			return nil
		}
		if line == "" {
			continue
		}
		if _, err := a.chat.Send(ctx, contact, line); err != nil {
			return err
		}
	}
}
