package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/quillpad/quill-terminal/pkg/editor"
)

const aiUnavailable = "AI is not configured. Set GEMINI_API_KEY in .env"

// rewriteDoneMsg carries a finished rewrite back to the event loop
type rewriteDoneMsg struct {
	id     int
	result string
	err    error
}

// imageDoneMsg carries a finished image generation back to the event loop
type imageDoneMsg struct {
	id  int
	src string
	err error
}

func rewriteCmd(ctx context.Context, svc AIService, req editor.RewriteRequest) tea.Cmd {
	return func() tea.Msg {
		result, err := svc.Rewrite(ctx, req.Text, req.Instruction)
		return rewriteDoneMsg{id: req.ID, result: result, err: err}
	}
}

func imageCmd(ctx context.Context, svc AIService, req editor.ImageRequest) tea.Cmd {
	return func() tea.Msg {
		src, err := editor.GenerateImageWithReauth(ctx, svc, svc.Reauthorize, req.Prompt)
		return imageDoneMsg{id: req.ID, src: src, err: err}
	}
}

// startRewrite pins the loading bubble and runs the rewrite off the loop
func (m *EditorModel) startRewrite(action editor.RewriteAction, prompt string) tea.Cmd {
	if m.ai == nil {
		m.editor.CloseAIPrompt()
		return m.status.ShowWarning(aiUnavailable)
	}
	req, err := m.editor.BeginRewrite(action, prompt)
	if err != nil {
		switch {
		case errors.Is(err, editor.ErrEmptyPrompt):
			m.editor.CloseAIPrompt()
			return m.status.ShowWarning("Type an instruction for the AI")
		case errors.Is(err, editor.ErrRewriteInFlight):
			return m.status.ShowInfo("A rewrite is already running")
		}
		return m.status.ShowError(fmt.Sprintf("Cannot rewrite: %v", err))
	}
	m.log.Info("rewrite started", zap.Int("id", req.ID), zap.String("action", string(action)))
	m.status.SetPersistentMessage("AI is rewriting the selection…", StatusTypeInfo)
	return rewriteCmd(m.ctx, m.ai, req)
}

func (m *EditorModel) finishRewrite(msg rewriteDoneMsg) tea.Cmd {
	m.status.ClearPersistentMessage()
	m.begin("ai rewrite")
	changed, err := m.editor.CompleteRewrite(msg.id, msg.result, msg.err)
	switch {
	case errors.Is(err, editor.ErrAuthorizationRequired):
		return m.status.ShowError("AI authorization failed. Check GEMINI_API_KEY")
	case errors.Is(err, context.Canceled):
		return nil
	case err != nil:
		m.log.Warn("rewrite failed", zap.Int("id", msg.id), zap.Error(err))
		return m.status.ShowError(fmt.Sprintf("Rewrite failed: %v", err))
	case changed:
		return m.status.ShowSuccess("Rewrote selection")
	}
	return nil
}

// startImage inserts the placeholder and generates the image off the loop
func (m *EditorModel) startImage(prompt string) tea.Cmd {
	if m.ai == nil {
		return m.status.ShowWarning(aiUnavailable)
	}
	m.begin("ai image")
	req, err := m.editor.BeginImage(prompt)
	if err != nil {
		if errors.Is(err, editor.ErrEmptyPrompt) {
			return m.status.ShowWarning("Describe the image to generate")
		}
		return m.status.ShowError(fmt.Sprintf("Cannot generate image: %v", err))
	}
	m.log.Info("image generation started", zap.Int("id", req.ID))
	return imageCmd(m.ctx, m.ai, req)
}

func (m *EditorModel) finishImage(msg imageDoneMsg) tea.Cmd {
	m.begin("ai image")
	if !m.editor.CompleteImage(msg.id, msg.src, msg.err) {
		return nil
	}
	if msg.err != nil {
		m.log.Warn("image generation failed", zap.Int("id", msg.id), zap.Error(msg.err))
		if errors.Is(msg.err, editor.ErrAuthorizationRequired) {
			return m.status.ShowError("AI authorization failed. Check GEMINI_API_KEY")
		}
		return m.status.ShowError(fmt.Sprintf("Image generation failed: %v", msg.err))
	}
	return m.status.ShowSuccess("Image ready")
}
