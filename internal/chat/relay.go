package chat

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Canned replies.
const (
	ImagePendingReply = "Jag genererar en bild åt dig. Vänta lite..."
	APIErrorReply     = "Jag har problem med att ansluta till mitt system just nu. Kan vi försöka igen om en stund?"
	FailureReply      = "Ursäkta, jag har problem med anslutningen just nu. Försök igen senare."
	EmptyReply        = "I'm not sure how to respond to that."
)

const (
	DefaultModel       = "meta-llama/llama-3.1-8b-instruct"
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 800
)

const languageInstruction = `

VIKTIGT - SPRÅKINSTRUKTIONER:
- Du MÅSTE alltid svara på svenska
- Använd naturlig, vardaglig svenska
- Anpassa dig till svensk kultur och kontext
- Om någon skriver på engelska, svara ändå på svenska
- Var vänlig och personlig i din ton
- Använd svenska uttryck och ordföljd

Kom ihåg att alltid kommunicera på svenska i alla dina svar.`

var (
	ErrEmptyConversation = errors.New("conversation has no messages")
	ErrNoCompleter       = errors.New("completion client not configured")
)

// CompletionRequest is a provider-neutral chat completion call.
type CompletionRequest struct {
	Model       string
	Messages    []Message
	Temperature float64
	MaxTokens   int64
}

// Completer returns the text of the first completion choice.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// Relay turns a conversation into one assistant reply. It never fails: every
// error becomes a canned reply.
type Relay struct {
	completer Completer
	model     string
	logger    *zap.Logger
	now       func() time.Time
}

// NewRelay builds a relay. An empty model selects DefaultModel.
func NewRelay(completer Completer, model string, logger *zap.Logger) *Relay {
	if model == "" {
		model = DefaultModel
	}
	return &Relay{
		completer: completer,
		model:     model,
		logger:    logger.Named("chat_relay"),
		now:       time.Now,
	}
}

// Send answers the last turn of messages under systemPrompt.
func (r *Relay) Send(ctx context.Context, messages []Message, systemPrompt string) Reply {
	if len(messages) == 0 {
		r.logger.Error("Error sending chat message", zap.Error(ErrEmptyConversation))
		return r.reply(FailureReply)
	}

	last := messages[len(messages)-1]
	if last.Role == RoleUser && IsAskingForImage(last.Content) {
		reply := r.reply(ImagePendingReply)
		reply.IsImage = true
		return reply
	}

	if r.completer == nil {
		r.logger.Error("Error sending chat message", zap.Error(ErrNoCompleter))
		return r.reply(FailureReply)
	}

	history := make([]Message, 0, len(messages)+1)
	history = append(history, Message{Role: RoleSystem, Content: systemPrompt + languageInstruction})
	for _, m := range messages {
		history = append(history, Message{Role: m.Role, Content: m.Content})
	}

	text, err := r.completer.Complete(ctx, CompletionRequest{
		Model:       r.model,
		Messages:    history,
		Temperature: DefaultTemperature,
		MaxTokens:   DefaultMaxTokens,
	})
	if err != nil {
		r.logger.Error("API error", zap.Error(err))
		return r.reply(APIErrorReply)
	}
	if text == "" {
		text = EmptyReply
	}
	return r.reply(text)
}

func (r *Relay) reply(content string) Reply {
	return Reply{
		ID:        uuid.NewString(),
		Content:   content,
		Timestamp: r.now().Format("15:04"),
	}
}
