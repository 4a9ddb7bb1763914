package view

import (
	"context"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/quotedesk/internal/calendar"
	"github.com/MrJamesThe3rd/quotedesk/internal/money"
)

const dbTimeout = 5 * time.Second

var (
	accent     = lipgloss.Color("205")
	errorColor = lipgloss.Color("196")
	okColor    = lipgloss.Color("46")
	subtle     = lipgloss.Color("240")
)

// FormatAmount renders an amount the way budgets display it, e.g. "R$ 1.500,00".
func FormatAmount(a money.Amount) string {
	return money.Format(a)
}

// FormatDate renders a date as DD/MM/YYYY.
func FormatDate(t time.Time) string {
	return calendar.FormatDisplay(t)
}

// FormatOptionalDate renders "-" for a missing date.
func FormatOptionalDate(t *time.Time) string {
	if t == nil {
		return "-"
	}

	return calendar.FormatDisplay(*t)
}

// DbCtx returns a context with a standard timeout for storage operations.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(accent).Render(s)
}

func errorStyle(s string) string {
	return lipgloss.NewStyle().Foreground(errorColor).Render(s)
}

func okStyle(s string) string {
	return lipgloss.NewStyle().Foreground(okColor).Render(s)
}

func faint(s string) string {
	return lipgloss.NewStyle().Faint(true).Render(s)
}
