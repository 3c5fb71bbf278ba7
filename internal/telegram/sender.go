package telegram

import (
	"bytes"
	"context"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/tezbot/internal/reply"
)

// Accent glyphs rendered in front of reply titles. Telegram has no embed
// colors, so the accent color becomes a leading status marker.
const (
	successGlyph = "🟦"
	errorGlyph   = "🟥"
)

// Sender delivers reply values and plain text lines to a Telegram chat.
type Sender struct {
	b   *bot.Bot
	log *slog.Logger
}

// NewSender creates a Sender on top of a bot instance.
func NewSender(b *bot.Bot, log *slog.Logger) *Sender {
	return &Sender{b: b, log: log.With("component", "sender")}
}

// SendText sends a plain text message.
func (s *Sender) SendText(ctx context.Context, chatID int64, text string) error {
	_, err := s.b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: text})
	return err
}

// SendReply renders a reply value into a Telegram message. Replies carrying
// an image are sent as a photo with the rendered text as caption.
func (s *Sender) SendReply(ctx context.Context, chatID int64, r reply.Reply) error {
	text := renderReply(r)

	if len(r.Image) > 0 {
		_, err := s.b.SendPhoto(ctx, &bot.SendPhotoParams{
			ChatID:  chatID,
			Caption: text,
			Photo: &models.InputFileUpload{
				Filename: r.ImageName,
				Data:     bytes.NewReader(r.Image),
			},
		})
		return err
	}

	_, err := s.b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: text})
	return err
}

// SendImage sends image bytes as a photo upload.
func (s *Sender) SendImage(ctx context.Context, chatID int64, name string, image []byte) error {
	_, err := s.b.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID: chatID,
		Photo: &models.InputFileUpload{
			Filename: name,
			Data:     bytes.NewReader(image),
		},
	})
	return err
}

// renderReply flattens a reply into the text form sent to the chat.
func renderReply(r reply.Reply) string {
	glyph := successGlyph
	if r.Color == reply.ColorError {
		glyph = errorGlyph
	}

	text := glyph + " " + r.Title
	if r.Body != "" {
		text += "\n\n" + r.Body
	}
	return text
}
