package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/apex/log"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// photoFileID picks the largest photo size, or an image sent as a document.
func photoFileID(msg *tgbotapi.Message) string {
	if n := len(msg.Photo); n > 0 {
		return msg.Photo[n-1].FileID
	}
	if d := msg.Document; d != nil && strings.HasPrefix(strings.ToLower(d.MimeType), "image/") {
		return d.FileID
	}
	return ""
}

func (r *Router) processPhoto(ctx context.Context, chatID int64, fileID string) {
	start := time.Now()
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	entry := log.WithField("chat_id", chatID)

	eng, err := r.EngManager.Get(chatID)
	if err != nil {
		entry.WithError(err).Warn("no engine")
		r.send(chatID, "❌ "+err.Error())
		return
	}
	entry = entry.WithFields(log.Fields{"oracle": eng.Name(), "model": eng.GetModel()})

	url, err := r.Bot.GetFileDirectURL(fileID)
	if err != nil {
		entry.WithError(err).Warn("get file")
		r.send(chatID, textDownloadFailed)
		return
	}
	raw, err := r.download(ctx, url)
	if err != nil {
		entry.WithError(err).Warn("download")
		r.send(chatID, textDownloadFailed)
		return
	}

	rec, err := r.Extractor.Analyze(ctx, eng, raw)
	entry = entry.WithField("duration_ms", time.Since(start).Milliseconds())
	if err != nil {
		entry.WithError(err).Warn("analyze failed")
		r.send(chatID, errorText(err))
		return
	}
	entry.WithField("food_name", rec.FoodName).Info("analyzed")
	r.send(chatID, FormatRecord(rec))
}

func (r *Router) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := r.httpClient().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, string(b))
	}

	limit := r.MaxPhotoBytes
	if limit <= 0 {
		limit = 10 << 20
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(b)) > limit {
		return nil, fmt.Errorf("file is larger than %d bytes", limit)
	}
	return b, nil
}

func (r *Router) httpClient() *http.Client {
	if r.HTTPClient != nil {
		return r.HTTPClient
	}
	return &http.Client{Timeout: 60 * time.Second}
}
