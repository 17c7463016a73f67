package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

const (
	ansiReset   = "\x1b[0m"
	labelColumn = 34
)

var statusStyles = [...]struct{ tag, color string }{
	statusInfo:  {"INFO", "\x1b[34m"},
	statusOK:    {"OK", "\x1b[32m"},
	statusWarn:  {"WARN", "\x1b[33m"},
	statusError: {"ERROR", "\x1b[31m"},
}

func (k statusKind) tag() string {
	if int(k) < len(statusStyles) {
		return statusStyles[k].tag
	}
	return statusStyles[statusInfo].tag
}

func (k statusKind) color() string {
	if int(k) < len(statusStyles) {
		return statusStyles[k].color
	}
	return ""
}

// formatStatusLine renders "  Label:   [TAG] detail" with the label padded so
// tags line up across a report.
func formatStatusLine(label string, kind statusKind, detail string) string {
	state := "[" + kind.tag() + "]"
	if detail != "" {
		state += " " + detail
	}
	return fmt.Sprintf("  %-*s %s", labelColumn, label+":", state)
}

// report writes status sections for check and history show. Colour is only
// used when the destination is a terminal.
type report struct {
	out   io.Writer
	color bool
}

func newReport(out io.Writer) *report {
	return &report{out: out, color: shouldColorize(out)}
}

func (r *report) section(title string) {
	heading := "== " + strings.TrimSpace(title) + " =="
	rule := strings.Repeat("-", len(heading))
	fmt.Fprintln(r.out, r.paint(statusInfo, heading))
	fmt.Fprintln(r.out, r.paint(statusInfo, rule))
}

func (r *report) line(label string, kind statusKind, detail string) {
	fmt.Fprintln(r.out, r.paint(kind, formatStatusLine(label, kind, detail)))
}

func (r *report) paint(kind statusKind, text string) string {
	if !r.color || kind.color() == "" {
		return text
	}
	return kind.color() + text + ansiReset
}

func shouldColorize(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
