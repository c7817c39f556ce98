package editor

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// ErrAuthorizationRequired is returned by AI backends whose credentials
// were rejected. Image generation retries once after reauthorizing.
var ErrAuthorizationRequired = errors.New("authorization required")

// RewriteAction is one of the bubble menu AI actions
type RewriteAction string

const (
	ActionImprove RewriteAction = "improve"
	ActionShorten RewriteAction = "shorten"
	ActionCustom  RewriteAction = "custom"
)

const (
	improveInstruction = "Improve the writing of the following text. Fix grammar and spelling and make it clearer while keeping its meaning, tone and language."
	shortenInstruction = "Make the following text shorter and more concise while keeping its meaning, tone and language."
)

// Instruction returns the model instruction for the action. Custom actions
// use the user's prompt and fail when it is blank.
func (a RewriteAction) Instruction(prompt string) (string, error) {
	switch a {
	case ActionImprove:
		return improveInstruction, nil
	case ActionShorten:
		return shortenInstruction, nil
	case ActionCustom:
		prompt = strings.TrimSpace(prompt)
		if prompt == "" {
			return "", ErrEmptyPrompt
		}
		return prompt, nil
	}
	return "", fmt.Errorf("unknown rewrite action %q", string(a))
}

// Rewriter rewrites selected text and returns an HTML fragment
type Rewriter interface {
	Rewrite(ctx context.Context, text, instruction string) (string, error)
}

// ImageGenerator turns a prompt into an image source usable in an img src
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) (string, error)
}

// ReauthFunc refreshes the credentials of an AI backend
type ReauthFunc func(ctx context.Context) error

// pendingRewrite remembers the range an in-flight rewrite will replace
type pendingRewrite struct {
	id         int
	start, end Position
}

// RewriteRequest is the work the host runs off the event loop
type RewriteRequest struct {
	ID          int
	Text        string
	Instruction string
}

// RewritePending reports whether a rewrite is waiting for its result
func (e *Editor) RewritePending() bool {
	return e.rewrite != nil
}

// BeginRewrite captures the selection, pins the bubble menu in its loading
// state and returns the request to run. Only one rewrite runs at a time.
func (e *Editor) BeginRewrite(action RewriteAction, prompt string) (RewriteRequest, error) {
	if e.rewrite != nil {
		return RewriteRequest{}, ErrRewriteInFlight
	}
	snap := e.Snapshot()
	if !snap.InRoot || snap.Collapsed || strings.TrimSpace(snap.Text) == "" {
		return RewriteRequest{}, ErrEmptySelection
	}
	instruction, err := action.Instruction(prompt)
	if err != nil {
		return RewriteRequest{}, err
	}
	id := e.nextID()
	e.rewrite = &pendingRewrite{id: id, start: snap.Start, end: snap.End}
	pos := e.bubblePosition()
	if b, ok := e.menu.(BubbleMenu); ok {
		pos = b.Position
	}
	e.menu = BubbleMenu{Position: pos, Mode: ModeAILoading}
	e.log.Info("AI rewrite started",
		zap.Int("id", id),
		zap.String("action", string(action)),
		zap.Int("text_len", len(snap.Text)))
	return RewriteRequest{ID: id, Text: snap.Text, Instruction: instruction}, nil
}

// CompleteRewrite delivers a rewrite result. The loading state is cleared
// and the menu closed on every path. The captured range is restored and
// replaced by result; when that range no longer exists the result is
// dropped. It reports whether the document changed.
func (e *Editor) CompleteRewrite(id int, result string, rewriteErr error) (bool, error) {
	p := e.rewrite
	if p == nil || p.id != id {
		e.log.Debug("stale AI rewrite result ignored", zap.Int("id", id))
		return false, nil
	}
	e.rewrite = nil
	e.menu = MenuClosed{}

	if rewriteErr != nil {
		e.log.Error("AI rewrite failed", zap.Int("id", id), zap.Error(rewriteErr))
		return false, fmt.Errorf("failed to rewrite selection: %w", rewriteErr)
	}
	root := e.doc.root
	if !validPosition(root, p.start) || !validPosition(root, p.end) {
		e.log.Warn("AI rewrite target is gone", zap.Int("id", id))
		return false, nil
	}
	nodes, err := parseFragment(result)
	if err != nil {
		return false, err
	}
	e.sel = Selection{Anchor: p.start, Focus: p.end}
	if len(nodes) == 0 {
		e.placeCaret(e.deleteRange(p.start, p.end))
	} else {
		e.insertFragment(nodes)
	}
	e.afterEdit()
	e.log.Info("AI rewrite applied", zap.Int("id", id), zap.Int("result_len", len(result)))
	return true, nil
}

// Rewrite runs a full rewrite cycle synchronously
func (e *Editor) Rewrite(ctx context.Context, r Rewriter, action RewriteAction, prompt string) (bool, error) {
	req, err := e.BeginRewrite(action, prompt)
	if err != nil {
		return false, err
	}
	result, err := r.Rewrite(ctx, req.Text, req.Instruction)
	return e.CompleteRewrite(req.ID, result, err)
}

const (
	aiImageClass   = "ai-image"
	aiImageIDAttr  = "data-ai-image"
	aiImageState   = "data-state"
	aiImagePrompt  = "data-prompt"
	aiImageLoading = "Generating image…"
	aiImageFailed  = "Image generation failed"
)

// ImageRequest is an image generation the host runs off the event loop
type ImageRequest struct {
	ID     int
	Prompt string
}

// BeginImage inserts a loading placeholder at the caret and returns the
// request to run.
func (e *Editor) BeginImage(prompt string) (ImageRequest, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return ImageRequest{}, ErrEmptyPrompt
	}
	if !e.Snapshot().InRoot {
		e.placeCaret(e.endPosition())
	}
	id := e.nextID()
	figure := newElement("figure",
		attr("class", aiImageClass),
		attr(aiImageIDAttr, strconv.Itoa(id)),
		attr(aiImageState, "loading"),
		attr(aiImagePrompt, prompt))
	caption := newElement("figcaption")
	caption.AppendChild(newText(aiImageLoading))
	figure.AppendChild(caption)
	e.insertFragment([]*html.Node{figure})
	e.afterEdit()
	e.log.Info("AI image started", zap.Int("id", id))
	return ImageRequest{ID: id, Prompt: prompt}, nil
}

// findImagePlaceholder returns the placeholder figure for id, if still present
func (e *Editor) findImagePlaceholder(id int) *html.Node {
	want := strconv.Itoa(id)
	var found *html.Node
	preorder(e.doc.root, func(n *html.Node) {
		if found != nil || n.Type != html.ElementNode {
			return
		}
		if v, ok := getAttr(n, aiImageIDAttr); ok && v == want {
			found = n
		}
	})
	return found
}

// CompleteImage swaps the placeholder for the generated image, or marks it
// failed. It reports false when the placeholder was deleted meanwhile.
func (e *Editor) CompleteImage(id int, src string, genErr error) bool {
	figure := e.findImagePlaceholder(id)
	if figure == nil {
		e.log.Warn("AI image placeholder is gone", zap.Int("id", id))
		return false
	}
	for c := figure.FirstChild; c != nil; {
		next := c.NextSibling
		figure.RemoveChild(c)
		c = next
	}
	if genErr != nil {
		e.log.Error("AI image failed", zap.Int("id", id), zap.Error(genErr))
		setAttr(figure, aiImageState, "error")
		caption := newElement("figcaption")
		caption.AppendChild(newText(aiImageFailed))
		figure.AppendChild(caption)
		e.afterEdit()
		return true
	}
	prompt, _ := getAttr(figure, aiImagePrompt)
	removeAttr(figure, aiImageIDAttr)
	removeAttr(figure, aiImageState)
	removeAttr(figure, aiImagePrompt)
	figure.AppendChild(newElement("img", attr("src", src), attr("alt", prompt)))
	e.afterEdit()
	e.log.Info("AI image applied", zap.Int("id", id))
	return true
}

// GenerateImageWithReauth calls gen and, when the backend reports
// ErrAuthorizationRequired, reauthorizes and retries exactly once.
func GenerateImageWithReauth(ctx context.Context, gen ImageGenerator, reauth ReauthFunc, prompt string) (string, error) {
	src, err := gen.GenerateImage(ctx, prompt)
	if err == nil || !errors.Is(err, ErrAuthorizationRequired) || reauth == nil {
		return src, err
	}
	if rerr := reauth(ctx); rerr != nil {
		return "", fmt.Errorf("failed to reauthorize: %w", rerr)
	}
	return gen.GenerateImage(ctx, prompt)
}

// GenerateImage runs a full image cycle synchronously
func (e *Editor) GenerateImage(ctx context.Context, gen ImageGenerator, reauth ReauthFunc, prompt string) error {
	req, err := e.BeginImage(prompt)
	if err != nil {
		return err
	}
	src, err := GenerateImageWithReauth(ctx, gen, reauth, req.Prompt)
	e.CompleteImage(req.ID, src, err)
	return err
}
