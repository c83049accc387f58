package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/hplandscaping/booking-platform/internal/availability"
	"github.com/hplandscaping/booking-platform/internal/forms"
	"github.com/hplandscaping/booking-platform/internal/validation"
)

var (
	bold    = color.New(color.Bold)
	cyan    = color.New(color.FgCyan)
	green   = color.New(color.FgGreen)
	red     = color.New(color.FgRed)
	faint   = color.New(color.Faint)
	success = color.New(color.FgGreen, color.Bold)
)

func printStepHeader(w io.Writer, index, total int, title, description string) {
	fmt.Fprintln(w)
	bold.Fprintf(w, "Step %d of %d: %s\n", index, total, title)
	if description != "" {
		faint.Fprintln(w, description)
	}
}

func printFieldErrors(w io.Writer, errs validation.FieldErrors) {
	for _, field := range errs.Fields() {
		red.Fprintf(w, "  ✗ %s\n", errs[field])
	}
}

func printReview(w io.Writer, title string, lines []forms.Line) {
	fmt.Fprintln(w)
	cyan.Fprintln(w, title)
	fmt.Fprintln(w, strings.Repeat("-", 50))
	width := 0
	for _, l := range lines {
		if len(l.Label) > width {
			width = len(l.Label)
		}
	}
	for _, l := range lines {
		fmt.Fprintf(w, "%-*s  %s\n", width+1, l.Label+":", l.Value)
	}
}

// printMonth draws a Sunday-first grid; selectable days are green.
func printMonth(w io.Writer, view availability.MonthView) {
	fmt.Fprintln(w)
	bold.Fprintf(w, "%s %d\n", view.Name, view.Year)
	fmt.Fprintln(w, "Su Mo Tu We Th Fr Sa")

	col := 0
	for ; col < view.LeadingBlanks; col++ {
		fmt.Fprint(w, "   ")
	}
	for _, day := range view.Days {
		cell := fmt.Sprintf("%2d", day.Date.Day)
		if day.Available {
			green.Fprint(w, cell)
		} else {
			faint.Fprint(w, cell)
		}
		col++
		if col%7 == 0 {
			fmt.Fprintln(w)
		} else {
			fmt.Fprint(w, " ")
		}
	}
	if col%7 != 0 {
		fmt.Fprintln(w)
	}
}
