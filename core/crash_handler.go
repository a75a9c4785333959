package core

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync"
)

// Finalizer is implemented by screens that can restore the terminal on their own (tcell.Screen)
type Finalizer interface {
	Fini()
}

var (
	crashMu       sync.Mutex
	crashTerminal Finalizer
)

// SetCrashTerminal registers the active screen for cleanup on panic; nil clears it
func SetCrashTerminal(f Finalizer) {
	crashMu.Lock()
	crashTerminal = f
	crashMu.Unlock()
}

// Terminal reset sequences written when no screen is registered
var (
	seqMouseOff      = []byte("\x1b[?1000l\x1b[?1002l\x1b[?1003l\x1b[?1006l")
	seqCursorShow    = []byte("\x1b[?25h")
	seqAltScreenExit = []byte("\x1b[?1049l")
	seqSGR0          = []byte("\x1b[0m")
	seqAutoWrapOn    = []byte("\x1b[?7h")
)

// EmergencyReset writes reset sequences to w and restores cooked mode where supported
func EmergencyReset(w io.Writer) {
	w.Write(seqMouseOff)
	w.Write(seqCursorShow)
	w.Write(seqAltScreenExit)
	w.Write(seqSGR0)
	w.Write(seqAutoWrapOn)

	if f, ok := w.(*os.File); ok {
		f.Sync()
	}

	resetTerminalMode()
}

// HandleCrash is the unified panic handler that resets the terminal and prints the stack trace
func HandleCrash(r any) {
	if r == nil {
		return
	}

	crashMu.Lock()
	term := crashTerminal
	crashMu.Unlock()

	if term != nil {
		term.Fini()
	} else {
		EmergencyReset(os.Stdout)
	}

	fmt.Fprintf(os.Stderr, "\r\n\x1b[31mCRASH DETECTED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
	os.Stderr.Sync()

	os.Exit(1)
}

// Go runs a function in a new goroutine with panic recovery.
// Use this instead of the 'go' keyword to ensure terminal cleanup on crash.
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r)
			}
		}()
		fn()
	}()
}
