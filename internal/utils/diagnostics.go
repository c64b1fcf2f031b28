package utils

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"
)

// DiagnosticLevel controls how much the command line tool prints
type DiagnosticLevel int

const (
	DiagnosticSilent DiagnosticLevel = iota
	DiagnosticError
	DiagnosticWarn
	DiagnosticInfo
	DiagnosticVerbose
	DiagnosticDebug
)

// channel describes one kind of tagged message
type channel struct {
	label  string
	min    DiagnosticLevel
	tag    *color.Color
	stderr bool
}

var (
	errorChannel   = channel{"ERROR", DiagnosticError, color.New(color.FgRed, color.Bold), true}
	warnChannel    = channel{"WARN", DiagnosticWarn, color.New(color.FgYellow), true}
	infoChannel    = channel{"INFO", DiagnosticInfo, color.New(color.FgBlue), false}
	successChannel = channel{"SUCCESS", DiagnosticInfo, color.New(color.FgGreen), false}
	verboseChannel = channel{"VERBOSE", DiagnosticVerbose, color.New(color.FgHiBlack), false}
	debugChannel   = channel{"DEBUG", DiagnosticDebug, color.New(color.FgMagenta), false}

	headerColor  = color.New(color.FgCyan)
	sectionColor = color.New(color.FgBlue)
)

// DiagnosticSystem writes leveled, optionally colored messages. Errors and
// warnings go to the error writer, everything else to the regular one.
type DiagnosticSystem struct {
	level     DiagnosticLevel
	useColors bool
	showTime  bool
	output    io.Writer
	errorOut  io.Writer
	indent    int
}

// NewDiagnosticSystem writes to stdout and stderr; timestamps are added at debug level
func NewDiagnosticSystem(level DiagnosticLevel) *DiagnosticSystem {
	return &DiagnosticSystem{
		level:     level,
		useColors: shouldUseColors(),
		showTime:  level >= DiagnosticDebug,
		output:    os.Stdout,
		errorOut:  os.Stderr,
	}
}

// NewQuietDiagnostics only shows errors
func NewQuietDiagnostics() *DiagnosticSystem {
	return NewDiagnosticSystem(DiagnosticError)
}

func NewVerboseDiagnostics() *DiagnosticSystem {
	return NewDiagnosticSystem(DiagnosticVerbose)
}

// SetOutput redirects both writers and turns colors off
func (d *DiagnosticSystem) SetOutput(out, errOut io.Writer) {
	d.output = out
	d.errorOut = errOut
	d.useColors = false
}

func (d *DiagnosticSystem) Level() DiagnosticLevel {
	return d.level
}

func (d *DiagnosticSystem) Error(format string, args ...interface{}) {
	d.emit(errorChannel, format, args...)
}

func (d *DiagnosticSystem) Warn(format string, args ...interface{}) {
	d.emit(warnChannel, format, args...)
}

func (d *DiagnosticSystem) Info(format string, args ...interface{}) {
	d.emit(infoChannel, format, args...)
}

func (d *DiagnosticSystem) Success(format string, args ...interface{}) {
	d.emit(successChannel, format, args...)
}

func (d *DiagnosticSystem) Verbose(format string, args ...interface{}) {
	d.emit(verboseChannel, format, args...)
}

func (d *DiagnosticSystem) Debug(format string, args ...interface{}) {
	d.emit(debugChannel, format, args...)
}

// Header prints the tool banner
func (d *DiagnosticSystem) Header(message string) {
	if d.level >= DiagnosticInfo {
		d.paint(headerColor, "Mockly: "+message+"\n")
	}
}

// Section starts a titled block preceded by a blank line
func (d *DiagnosticSystem) Section(title string) {
	if d.level >= DiagnosticInfo {
		d.paint(sectionColor, "\n"+title+":\n")
	}
}

// List prints a bullet at the current indentation
func (d *DiagnosticSystem) List(format string, args ...interface{}) {
	if d.level >= DiagnosticInfo {
		fmt.Fprintf(d.output, "%s- %s\n", d.prefix(), fmt.Sprintf(format, args...))
	}
}

// Done prints a check-marked item at the current indentation
func (d *DiagnosticSystem) Done(format string, args ...interface{}) {
	if d.level < DiagnosticInfo {
		return
	}
	fmt.Fprint(d.output, d.prefix())
	d.paint(successChannel.tag, "✓ ")
	fmt.Fprintln(d.output, fmt.Sprintf(format, args...))
}

func (d *DiagnosticSystem) Indent() {
	d.indent++
}

func (d *DiagnosticSystem) Unindent() {
	if d.indent > 0 {
		d.indent--
	}
}

// Summary prints title followed by one "key: value" line per stat, sorted by key
func (d *DiagnosticSystem) Summary(title string, stats map[string]interface{}) {
	if d.level < DiagnosticInfo {
		return
	}

	keys := make([]string, 0, len(stats))
	for key := range stats {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	fmt.Fprintf(&b, "\n%s\n", title)
	for _, key := range keys {
		fmt.Fprintf(&b, "   %s: %v\n", key, stats[key])
	}
	fmt.Fprint(d.output, b.String())
}

// Raw writes text untouched unless silent
func (d *DiagnosticSystem) Raw(text string) {
	if d.level > DiagnosticSilent {
		fmt.Fprint(d.output, text)
	}
}

func (d *DiagnosticSystem) emit(ch channel, format string, args ...interface{}) {
	if d.level < ch.min {
		return
	}

	var line strings.Builder
	line.WriteString(d.prefix())
	if d.showTime {
		line.WriteString(time.Now().Format("15:04:05 "))
	}
	label := "[" + ch.label + "]"
	if d.useColors {
		label = ch.tag.Sprint(label)
	}
	fmt.Fprintf(&line, "%s %s\n", label, fmt.Sprintf(format, args...))

	w := d.output
	if ch.stderr {
		w = d.errorOut
	}
	fmt.Fprint(w, line.String())
}

func (d *DiagnosticSystem) paint(c *color.Color, text string) {
	if d.useColors {
		c.Fprint(d.output, text)
		return
	}
	fmt.Fprint(d.output, text)
}

func (d *DiagnosticSystem) prefix() string {
	return strings.Repeat("  ", d.indent)
}

// shouldUseColors honors NO_COLOR and FORCE_COLOR, then falls back to TERM
func shouldUseColors() bool {
	if os.Getenv("NO_COLOR") != "" || color.NoColor {
		return os.Getenv("FORCE_COLOR") != ""
	}
	term := os.Getenv("TERM")
	return term != "" && term != "dumb"
}
