package steam

import (
	"context"

	"go.uber.org/zap"

	"steambot/bot"
	"steambot/logging"
)

const imageFetchAttempts = 3

// ImageFetcher downloads images and wraps them for the active bot dialect.
type ImageFetcher struct {
	getter Getter
	client bot.Client
}

func NewImageFetcher(getter Getter, client bot.Client) *ImageFetcher {
	return &ImageFetcher{getter: getter, client: client}
}

// Fetch tries rawURL up to three times in a row and returns nil when every
// attempt failed or rawURL is empty.
func (f *ImageFetcher) Fetch(ctx context.Context, rawURL string) *bot.Image {
	if rawURL == "" {
		return nil
	}
	for attempt := 1; attempt <= imageFetchAttempts; attempt++ {
		resp, err := f.getter.Get(ctx, rawURL, WithBaseURL(""), WithResponseType(ResponseBinary))
		if err == nil {
			return f.client.Image(resp.Data)
		}
		logging.Error("failed to fetch image",
			zap.String("url", rawURL),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
	}
	return nil
}
