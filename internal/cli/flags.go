package cli

import (
	"fmt"

	"github.com/alexanderramin/prodboard/internal/domain"
	"github.com/spf13/pflag"
)

// boardFlags are the per-command board overrides shared by board and
// schedule. Zero values keep the configured defaults.
type boardFlags struct {
	pivot dayValue
	mode  modeValue
	query string
}

func (f *boardFlags) register(fs *pflag.FlagSet, searchUsage string) {
	fs.Var(&f.pivot, "pivot", "Center the board on this day (DD.MM.YYYY or YYYY-MM-DD)")
	fs.Var(&f.mode, "mode", "View mode: detailed, compact or brief")
	fs.StringVar(&f.query, "search", "", searchUsage)
}

// dayValue is a calendar day flag. It stays zero until set.
type dayValue struct {
	day domain.CalendarDay
}

var _ pflag.Value = (*dayValue)(nil)

func (v *dayValue) String() string {
	if v.day.IsZero() {
		return ""
	}
	return v.day.Key()
}

func (v *dayValue) Set(s string) error {
	day, err := domain.ParseDay(s)
	if err != nil {
		return err
	}
	v.day = day
	return nil
}

func (v *dayValue) Type() string { return "date" }

type modeValue struct {
	mode domain.ViewMode
}

var _ pflag.Value = (*modeValue)(nil)

func (v *modeValue) String() string { return string(v.mode) }

func (v *modeValue) Set(s string) error {
	if !domain.ValidViewModes[s] {
		return fmt.Errorf("unknown view mode %q (want detailed, compact or brief)", s)
	}
	v.mode = domain.ViewMode(s)
	return nil
}

func (v *modeValue) Type() string { return "mode" }
