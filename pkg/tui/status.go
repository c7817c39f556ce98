package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// StatusFeedback represents a temporary status message
type StatusFeedback struct {
	Message   string
	Icon      string
	ShowUntil time.Time
	Type      StatusType
}

// StatusType represents the type of status message
type StatusType int

const (
	StatusTypeSuccess StatusType = iota
	StatusTypeWarning
	StatusTypeError
	StatusTypeInfo
)

var statusIcons = map[StatusType]string{
	StatusTypeSuccess: "✓",
	StatusTypeWarning: "⚠",
	StatusTypeError:   "×",
	StatusTypeInfo:    "ℹ",
}

// StatusManager manages temporary status messages
type StatusManager struct {
	CurrentStatus     *StatusFeedback
	DefaultDuration   time.Duration
	PersistentMessage string
	PersistentType    StatusType

	now func() time.Time
}

// NewStatusManager creates a new status manager
func NewStatusManager() *StatusManager {
	return &StatusManager{
		DefaultDuration: 3 * time.Second,
		now:             time.Now,
	}
}

// ShowFeedback displays a status message and schedules its removal
func (sm *StatusManager) ShowFeedback(statusType StatusType, message string) tea.Cmd {
	sm.CurrentStatus = &StatusFeedback{
		Message:   message,
		Icon:      statusIcons[statusType],
		ShowUntil: sm.now().Add(sm.DefaultDuration),
		Type:      statusType,
	}

	return tea.Tick(sm.DefaultDuration, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}

func (sm *StatusManager) ShowSuccess(message string) tea.Cmd {
	return sm.ShowFeedback(StatusTypeSuccess, message)
}

func (sm *StatusManager) ShowWarning(message string) tea.Cmd {
	return sm.ShowFeedback(StatusTypeWarning, message)
}

func (sm *StatusManager) ShowError(message string) tea.Cmd {
	return sm.ShowFeedback(StatusTypeError, message)
}

func (sm *StatusManager) ShowInfo(message string) tea.Cmd {
	return sm.ShowFeedback(StatusTypeInfo, message)
}

// SetPersistentMessage sets a message that persists until cleared
func (sm *StatusManager) SetPersistentMessage(message string, statusType StatusType) {
	sm.PersistentMessage = message
	sm.PersistentType = statusType
}

// ClearPersistentMessage clears the persistent message
func (sm *StatusManager) ClearPersistentMessage() {
	sm.PersistentMessage = ""
}

// Clear drops the temporary status if it has expired
func (sm *StatusManager) Clear() {
	if sm.CurrentStatus != nil && !sm.now().Before(sm.CurrentStatus.ShowUntil) {
		sm.CurrentStatus = nil
	}
}

// IsActive checks if a status is currently showing
func (sm *StatusManager) IsActive() bool {
	if sm.CurrentStatus == nil {
		return false
	}
	if sm.now().After(sm.CurrentStatus.ShowUntil) {
		sm.CurrentStatus = nil
		return false
	}
	return true
}

// GetStatus returns the message to show and its type. A temporary status
// wins over the persistent one.
func (sm *StatusManager) GetStatus() (string, StatusType, bool) {
	if sm.IsActive() {
		return fmt.Sprintf("%s %s", sm.CurrentStatus.Icon, sm.CurrentStatus.Message), sm.CurrentStatus.Type, true
	}

	if sm.PersistentMessage != "" {
		return fmt.Sprintf("%s %s", statusIcons[sm.PersistentType], sm.PersistentMessage), sm.PersistentType, true
	}

	return "", StatusTypeInfo, false
}

// ClearStatusMsg is sent to clear the status
type ClearStatusMsg struct{}
