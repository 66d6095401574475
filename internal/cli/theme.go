package cli

import (
	"strconv"

	"github.com/alexanderramin/prodboard/internal/cli/formatter"
	"github.com/alexanderramin/prodboard/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// prodboardHuhTheme returns a huh theme matching the board palette.
func prodboardHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// statusOptions converts lookup rows into select options keyed by id.
func statusOptions(rows []domain.LookupRecord) []huh.Option[int64] {
	opts := make([]huh.Option[int64], len(rows))
	for i, r := range rows {
		opts[i] = huh.NewOption(r.Name, r.ID)
	}
	return opts
}

// statusPickerForm asks for one status of field for order. A non-zero
// *value preselects that status.
func statusPickerForm(order domain.ScheduledOrder, field domain.StatusField, rows []domain.LookupRecord, value *int64) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int64]().
				Title(order.Name + ": " + field.Label()).
				Description("Order #" + strconv.FormatInt(order.ID, 10)).
				Options(statusOptions(rows)...).
				Value(value),
		),
	).WithTheme(prodboardHuhTheme()).WithShowHelp(false)
}
