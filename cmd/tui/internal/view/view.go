package view

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MrJamesThe3rd/quotedesk/internal/events"
)

// View is the interface that all TUI screens implement.
type View interface {
	tea.Model
	Title() string
	ShortHelp() string
}

// CommonModel is embedded by all views.
type CommonModel struct {
	Width  int
	Height int
}

type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

// ChangedMsg is forwarded from the notification bus. Views that show the
// topic's data reload when they receive it.
type ChangedMsg struct {
	Topic events.Topic
}

// Affects reports whether any of topics changed.
func (m ChangedMsg) Affects(topics ...events.Topic) bool {
	for _, t := range topics {
		if t == m.Topic {
			return true
		}
	}

	return false
}
