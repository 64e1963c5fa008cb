package game

import (
	"fmt"
	"io"
)

// logWriter is the destination for plain-text console output.
var logWriter io.Writer

// SetLogWriter sets the console output destination.
func SetLogWriter(w io.Writer) {
	logWriter = w
}

// Logf writes a formatted console line.
func Logf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if logWriter != nil {
		fmt.Fprintln(logWriter, msg)
	} else {
		fmt.Println(msg)
	}
}

// logSummary prints a one-line summary of the current session.
func (g *Game) logSummary() {
	s := g.snake
	Logf("tick %d | session %d | %s | length %.2f/%.0f | eats %d | speed %.2f",
		g.tick, g.session, s.State(), s.Body().Length(), s.ActualLength(), g.sessionEats, s.Speed())
}
