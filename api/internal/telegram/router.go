package telegram

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/apex/log"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"food-analyzer/api/internal/nutrition"
	"food-analyzer/api/internal/oracle"
)

// Bot is the part of *tgbotapi.BotAPI the router uses.
type Bot interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetFileDirectURL(fileID string) (string, error)
}

type Router struct {
	Bot        Bot
	EngManager *oracle.Manager
	Extractor  *nutrition.Extractor

	// Timeout bounds one photo: download plus oracle call.
	Timeout time.Duration
	// MaxPhotoBytes caps a downloaded file.
	MaxPhotoBytes int64
	HTTPClient    *http.Client

	wg sync.WaitGroup
}

func (r *Router) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	if upd.Message == nil {
		return
	}
	msg := upd.Message
	cid := msg.Chat.ID

	if msg.IsCommand() {
		r.HandleCommand(msg)
		return
	}

	fileID := photoFileID(msg)
	if fileID == "" {
		if strings.TrimSpace(msg.Text) != "" {
			r.send(cid, textSendPhoto)
		}
		return
	}

	r.send(cid, textPhotoAccepted)
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.processPhoto(ctx, cid, fileID)
	}()
}

// Wait blocks until all photos in progress are answered.
func (r *Router) Wait() { r.wg.Wait() }

func (r *Router) HandleCommand(msg *tgbotapi.Message) {
	cid := msg.Chat.ID
	switch msg.Command() {
	case "start", "help":
		r.send(cid, usageText(r.EngManager.Names()))
	case "health":
		r.send(cid, "✅ OK")
	case "engine":
		r.handleEngineCommand(cid, msg.CommandArguments())
	default:
		r.send(cid, "Unknown command. Try /start")
	}
}

// handleEngineCommand: "/engine" shows the current oracle, "/engine <name>" switches it for this chat.
func (r *Router) handleEngineCommand(chatID int64, args string) {
	name := strings.TrimSpace(args)
	if name == "" {
		cur := "none"
		if eng, err := r.EngManager.Get(chatID); err == nil {
			cur = eng.Name() + " (" + eng.GetModel() + ")"
		}
		r.send(chatID, "Current engine: "+cur+"\nUsage: /engine {"+strings.Join(r.EngManager.Names(), "|")+"}")
		return
	}

	eng, err := r.EngManager.Set(chatID, strings.Fields(name)[0])
	if err != nil {
		r.send(chatID, "❌ "+err.Error())
		return
	}
	log.WithFields(log.Fields{"chat_id": chatID, "oracle": eng.Name()}).Info("engine switched")
	r.send(chatID, "✅ Engine: "+eng.Name()+" ("+eng.GetModel()+").")
}

func (r *Router) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := r.Bot.Send(msg); err != nil {
		log.WithError(err).WithField("chat_id", chatID).Warn("telegram send failed")
	}
}
