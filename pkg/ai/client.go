package ai

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/microcosm-cc/bluemonday"
	"github.com/quillpad/quill-terminal/pkg/editor"
	"github.com/quillpad/quill-terminal/pkg/utils"
	"go.uber.org/zap"
)

const (
	defaultAttempts  = 3
	defaultCacheSize = 128
)

const systemPrompt = `You edit fragments of a rich-text document.
Apply the instruction to the text you are given and answer with the rewritten text only.
Use simple inline HTML (strong, em, code, a) where formatting is needed.
Do not add explanations, quotes or markdown code fences.`

// BackendFactory builds a backend from an API key
type BackendFactory func(ctx context.Context, apiKey string) (Backend, error)

// Options configure a Client
type Options struct {
	TextModel  string
	ImageModel string
	CacheSize  int
	// Attempts bounds calls per request, including the first
	Attempts int
	// KeyFunc returns the current API key; Reauthorize calls it again
	KeyFunc func() string
	Factory BackendFactory
	Logger  *zap.Logger
	// Backoff is the delay before retry n (0-based)
	Backoff func(attempt int) time.Duration
}

// Client implements editor.Rewriter and editor.ImageGenerator on top of a
// Backend, with retries, a rewrite cache and output sanitizing. It is safe
// for concurrent use.
type Client struct {
	opts   Options
	log    *zap.Logger
	policy *bluemonday.Policy
	cache  *lru.Cache[string, string]

	mu      sync.RWMutex
	backend Backend
}

var (
	_ editor.Rewriter       = (*Client)(nil)
	_ editor.ImageGenerator = (*Client)(nil)
)

// New creates a client. The backend is connected lazily on first use so a
// missing key only surfaces when an AI action is actually requested.
func New(opts Options) (*Client, error) {
	if opts.Attempts <= 0 {
		opts.Attempts = defaultAttempts
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = defaultCacheSize
	}
	if opts.Factory == nil {
		opts.Factory = NewGeminiBackend
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Backoff == nil {
		opts.Backoff = func(attempt int) time.Duration {
			return time.Duration(300*(1<<attempt)) * time.Millisecond
		}
	}
	cache, err := lru.New[string, string](opts.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create rewrite cache: %w", err)
	}
	return &Client{
		opts:   opts,
		log:    opts.Logger,
		policy: newPolicy(),
		cache:  cache,
	}, nil
}

// NewWithBackend creates a client around an existing backend
func NewWithBackend(b Backend, opts Options) (*Client, error) {
	c, err := New(opts)
	if err != nil {
		return nil, err
	}
	c.backend = b
	return c, nil
}

func (c *Client) apiKey() string {
	if c.opts.KeyFunc == nil {
		return ""
	}
	return c.opts.KeyFunc()
}

func (c *Client) getBackend(ctx context.Context) (Backend, error) {
	c.mu.RLock()
	b := c.backend
	c.mu.RUnlock()
	if b != nil {
		return b, nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.backend != nil {
		return c.backend, nil
	}
	b, err := c.opts.Factory(ctx, c.apiKey())
	if err != nil {
		if errors.Is(err, ErrNoAPIKey) {
			return nil, fmt.Errorf("%w: %w", err, editor.ErrAuthorizationRequired)
		}
		return nil, err
	}
	c.backend = b
	return b, nil
}

// Reauthorize reads the key again and rebuilds the backend
func (c *Client) Reauthorize(ctx context.Context) error {
	b, err := c.opts.Factory(ctx, c.apiKey())
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.backend = b
	c.mu.Unlock()
	c.log.Info("AI backend reauthorized")
	return nil
}

// Rewrite applies instruction to text and returns sanitized HTML
func (c *Client) Rewrite(ctx context.Context, text, instruction string) (string, error) {
	key := instruction + "\x00" + text
	if cached, ok := c.cache.Get(key); ok {
		c.log.Debug("rewrite cache hit", zap.Int("text_len", len(text)))
		return cached, nil
	}
	b, err := c.getBackend(ctx)
	if err != nil {
		return "", err
	}
	input := instruction + "\n\n" + text
	c.log.Debug("rewrite request",
		zap.String("model", c.opts.TextModel),
		zap.Int("estimated_tokens", utils.EstimateTokens(input)),
	)
	var out string
	err = c.retry(ctx, "rewrite", func() error {
		raw, err := b.GenerateText(ctx, c.opts.TextModel, systemPrompt, input)
		if err != nil {
			return err
		}
		out = cleanOutput(c.policy, raw)
		if out == "" {
			return ErrEmptyResponse
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	c.cache.Add(key, out)
	return out, nil
}

// GenerateImage returns the generated image as a data URI
func (c *Client) GenerateImage(ctx context.Context, prompt string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", editor.ErrEmptyPrompt
	}
	b, err := c.getBackend(ctx)
	if err != nil {
		return "", err
	}
	var src string
	err = c.retry(ctx, "image", func() error {
		data, mt, err := b.GenerateImage(ctx, c.opts.ImageModel, prompt)
		if err != nil {
			return err
		}
		src = "data:" + mt + ";base64," + base64.StdEncoding.EncodeToString(data)
		return nil
	})
	return src, err
}

// retry runs fn up to Attempts times. Authorization failures and context
// cancellation are returned at once.
func (c *Client) retry(ctx context.Context, op string, fn func() error) error {
	var lastErr error
	for attempt := 0; attempt < c.opts.Attempts; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if errors.Is(lastErr, editor.ErrAuthorizationRequired) || ctx.Err() != nil {
			break
		}
		c.log.Warn("AI request failed",
			zap.String("op", op),
			zap.Int("attempt", attempt+1),
			zap.Error(lastErr))
		if attempt == c.opts.Attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.opts.Backoff(attempt)):
		}
	}
	return fmt.Errorf("%s failed: %w", op, lastErr)
}
