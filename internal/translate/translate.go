package translate

import (
	"context"
	"fmt"
	"time"

	"omdb/finder/internal/config"

	log "github.com/sirupsen/logrus"
	"resty.dev/v3"
)

// Translator turns text into another language. Implementations never fail:
// on any error the input comes back unchanged.
type Translator interface {
	Translate(ctx context.Context, text string) string
}

type request struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
}

type response struct {
	TranslatedText string `json:"translatedText"`
}

type libreTranslator struct {
	url        string
	source     string
	target     string
	httpClient *resty.Client
}

// NewLibreTranslator returns a client for a LibreTranslate compatible endpoint.
func NewLibreTranslator(cfg config.TranslateConfig) Translator {
	client := resty.New().
		SetRetryCount(0).
		SetHeader("Content-Type", "application/json")

	if cfg.Timeout > 0 {
		client.SetTimeout(time.Duration(cfg.Timeout) * time.Second)
	}

	return &libreTranslator{
		url:        cfg.URL,
		source:     cfg.Source,
		target:     cfg.Target,
		httpClient: client,
	}
}

func (t *libreTranslator) Translate(ctx context.Context, text string) string {
	if text == "" {
		return ""
	}

	translated, err := t.translate(ctx, text)
	if err != nil {
		log.Errorf("❌ Translation failed, keeping original text: %v", err)
		return text
	}
	return translated
}

func (t *libreTranslator) translate(ctx context.Context, text string) (string, error) {
	var out response
	resp, err := t.httpClient.R().
		SetContext(ctx).
		SetBody(request{Q: text, Source: t.source, Target: t.target}).
		SetResult(&out).
		Post(t.url)
	if err != nil {
		return "", fmt.Errorf("failed to call %s: %w", t.url, err)
	}

	if resp.IsError() {
		return "", fmt.Errorf("HTTP error: %d %s", resp.StatusCode(), resp.Status())
	}

	if out.TranslatedText == "" {
		return "", fmt.Errorf("empty translation")
	}

	return out.TranslatedText, nil
}

// Noop returns every text unchanged. Used when translation is disabled.
type Noop struct{}

func (Noop) Translate(ctx context.Context, text string) string {
	return text
}
