package services

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/baconnect/internal/common"
	"github.com/dmitrijs2005/baconnect/internal/live"
	"github.com/dmitrijs2005/baconnect/internal/logging"
	"github.com/dmitrijs2005/baconnect/internal/models"
	"github.com/dmitrijs2005/baconnect/internal/schedule"
	"github.com/google/uuid"
)

const (
	DefaultReplyDelay = 1200 * time.Millisecond
	defaultReply      = "¡Nos vemos en San Telmo!"
)

var autoReplies = map[string]string{
	"Tigre Sunset 2025":       "Preparen las cámaras, el muelle estará increíble.",
	"Palermo Sabores Urbanos": "Mesa reservada, lleguen con apetito.",
	"Recoleta Jazz Nocturno":  "Traigan sus instrumentos, tocamos a las 21 hs.",
}

// ChatService is a scripted group chat kept in memory. Every message sent
// to a conversation is answered after a delay; leaving the conversation
// first cancels the answer.
type ChatService struct {
	notifier   *live.Notifier
	scheduler  *schedule.Scheduler
	log        logging.Logger
	now        func() time.Time
	replyDelay time.Duration
	author     string

	mu            sync.RWMutex
	conversations map[string][]models.ChatMessage
}

type ChatOption func(*ChatService)

func WithReplyDelay(d time.Duration) ChatOption {
	return func(s *ChatService) { s.replyDelay = d }
}

// WithAuthor sets the name on outgoing messages. Defaults to
// common.LocalAuthor.
func WithAuthor(name string) ChatOption {
	return func(s *ChatService) { s.author = name }
}

func NewChatService(n *live.Notifier, sched *schedule.Scheduler, log logging.Logger, opts ...ChatOption) *ChatService {
	s := &ChatService{
		notifier:   n,
		scheduler:  sched,
		log:        log.With("module", "chat"),
		now:        time.Now,
		replyDelay: DefaultReplyDelay,
		author:     common.LocalAuthor,
	}
	for _, o := range opts {
		o(s)
	}
	s.conversations = initialConversations(s.now(), s.author)
	return s
}

func initialConversations(now time.Time, me string) map[string][]models.ChatMessage {
	incoming := func(from, text string, ago time.Duration) models.ChatMessage {
		return models.ChatMessage{ID: uuid.NewString(), Author: from, Content: text, SentAt: now.Add(-ago)}
	}
	return map[string][]models.ChatMessage{
		"Tigre Sunset 2025": {
			incoming("Tigre Sunset 2025", "¡Hola equipo! ¿Confirmamos la puesta de sol en el delta el sábado?", 30*time.Minute),
			{ID: uuid.NewString(), Author: me, Content: "¡Me encanta la idea! ¿Salimos a las 16:00?", SentAt: now.Add(-25 * time.Minute), FromMe: true, Read: true},
		},
		"Palermo Sabores Urbanos": {
			incoming("Palermo Sabores Urbanos", "Recorrida gastronómica esta noche, ¿quién trae postre?", 10*time.Minute),
		},
		"Recoleta Jazz Nocturno": {
			incoming("Recoleta Jazz Nocturno", "Ensayo en la terraza a las 21 hs, ¿se suman?", 5*time.Minute),
		},
	}
}

// Send appends a message to contact's conversation and schedules the
// reply, replacing one still pending for that conversation.
func (s *ChatService) Send(ctx context.Context, contact, content string) (models.ChatMessage, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return models.ChatMessage{}, common.ErrRequiredFieldsMissing
	}

	msg := models.ChatMessage{
		ID:      uuid.NewString(),
		Author:  s.author,
		Content: content,
		SentAt:  s.now(),
		FromMe:  true,
		Read:    true,
	}
	s.append(contact, msg)

	s.scheduler.Schedule(contact, s.replyDelay, func() {
		reply, ok := autoReplies[contact]
		if !ok {
			reply = defaultReply
		}
		s.append(contact, models.ChatMessage{
			ID:      uuid.NewString(),
			Author:  contact,
			Content: reply,
			SentAt:  s.now(),
		})
		s.log.Debug(context.Background(), "auto reply delivered", "contact", contact)
	})
	return msg, nil
}

func (s *ChatService) append(contact string, m models.ChatMessage) {
	s.mu.Lock()
	s.conversations[contact] = append(s.conversations[contact], m)
	s.mu.Unlock()
	s.notifier.Notify(live.TableChat)
}

// MarkRead flags every incoming message of contact as read.
func (s *ChatService) MarkRead(contact string) {
	s.mu.Lock()
	changed := false
	for i, m := range s.conversations[contact] {
		if !m.FromMe && !m.Read {
			s.conversations[contact][i].Read = true
			changed = true
		}
	}
	s.mu.Unlock()

	if changed {
		s.notifier.Notify(live.TableChat)
	}
}

// CloseConversation cancels a reply still pending for contact.
func (s *ChatService) CloseConversation(contact string) {
	if s.scheduler.Cancel(contact) {
		s.log.Debug(context.Background(), "pending reply cancelled", "contact", contact)
	}
}

func (s *ChatService) Conversation(contact string) []models.ChatMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.conversations[contact])
}

// Previews lists conversations, most recent activity first.
func (s *ChatService) Previews() []models.ChatPreview {
	s.mu.RLock()
	out := make([]models.ChatPreview, 0, len(s.conversations))
	for contact, msgs := range s.conversations {
		p := models.ChatPreview{Contact: contact}
		if n := len(msgs); n > 0 {
			p.LastMessage = msgs[n-1].Content
			p.LastTime = msgs[n-1].SentAt
		}
		for _, m := range msgs {
			if !m.FromMe && !m.Read {
				p.UnreadCount++
			}
		}
		out = append(out, p)
	}
	s.mu.RUnlock()

	slices.SortFunc(out, func(a, b models.ChatPreview) int {
		if c := b.LastTime.Compare(a.LastTime); c != 0 {
			return c
		}
		return strings.Compare(a.Contact, b.Contact)
	})
	return out
}

// Watch emits Previews now and after every chat change.
func (s *ChatService) Watch(ctx context.Context) <-chan []models.ChatPreview {
	return live.Watch(ctx, s.notifier, s.log, func(context.Context) ([]models.ChatPreview, error) {
		return s.Previews(), nil
	}, live.TableChat)
}

func (s *ChatService) WatchConversation(ctx context.Context, contact string) <-chan []models.ChatMessage {
	return live.Watch(ctx, s.notifier, s.log, func(context.Context) ([]models.ChatMessage, error) {
		return s.Conversation(contact), nil
	}, live.TableChat)
}
