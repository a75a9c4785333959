package core

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lixenwraith/bounce/parameter"
)

// Overridable in tests
var (
	logDir      = parameter.LogDir
	logFileName = parameter.LogFileName
)

const maxLogSize = parameter.MaxLogSize

// SetupLogging routes the standard logger to a file under logs/ when debug is set, otherwise discards it
// Terminal frontends own stdout/stderr, so logs never go there
// A log file over maxLogSize is renamed with a timestamp before a fresh one is opened
// The caller closes the returned file; nil when logging is disabled or the file cannot be opened
func SetupLogging(debug bool) *os.File {
	if !debug {
		log.SetOutput(io.Discard)
		return nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.SetOutput(io.Discard)
		return nil
	}

	logPath := filepath.Join(logDir, logFileName)
	if info, err := os.Stat(logPath); err == nil && info.Size() > maxLogSize {
		ext := filepath.Ext(logFileName)
		base := strings.TrimSuffix(logFileName, ext)
		rotated := filepath.Join(logDir, fmt.Sprintf("%s-%s%s", base, time.Now().Format("20060102-150405"), ext))
		os.Rename(logPath, rotated)
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.SetOutput(io.Discard)
		return nil
	}

	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds | log.Lshortfile)
	log.Printf("=== bounce started (pid %d) ===", os.Getpid())
	return f
}
