package debug

import (
	"fmt"
	"io"

	"github.com/mattn/go-colorable"
	"github.com/sirupsen/logrus"
)

// Debug levels
const (
	LevelOff     = 0 // No output
	LevelInfo    = 1 // Important info (plan summary, tile count)
	LevelLive    = 2 // Live info (captures, PTU moves)
	LevelVerbose = 3 // Verbose (poses, footprints, config details)
	LevelTrace   = 4 // Trace (transform matrices, very low level)
)

var (
	level  int
	logger *logrus.Logger
)

// Init initializes the debug system with a level (0-4).
// 0 = no output
// 1 = important info (plan summary, tile count)
// 2 = live info (captures, PTU moves)
// 3 = verbose (poses, footprints, config details)
// 4 = trace (transform matrices)
func Init(debugLevel int) {
	level = debugLevel
	if level <= LevelOff {
		logger = nil
		return
	}
	logger = logrus.New()
	logger.SetOutput(colorable.NewColorableStdout())
	logger.SetLevel(logrus.TraceLevel)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05.000000",
	})
}

// SetOutput redirects log output (e.g. to the SSE broadcaster as well as stdout).
// It is a no-op when debug output is off.
func SetOutput(w io.Writer) {
	if logger != nil {
		logger.SetOutput(w)
	}
}

// Level returns the current debug level.
func Level() int {
	return level
}

// IsEnabled returns true if debug level is >= the requested level.
func IsEnabled(minLevel int) bool {
	return level >= minLevel
}

func entry(stage string) *logrus.Entry {
	return logger.WithField("stage", stage)
}

// --- Level 1 functions (Info): important info ---

// Info prints a level 1 message (important info).
func Info(format string, args ...interface{}) {
	if level >= LevelInfo && logger != nil {
		entry("info").Infof(format, args...)
	}
}

// Summary prints an important summary banner (level 1).
func Summary(title string) {
	if level >= LevelInfo && logger != nil {
		entry("info").Info("═══════════════════════════════════════")
		entry("info").Infof("  %s", title)
		entry("info").Info("═══════════════════════════════════════")
	}
}

// Plan prints the outcome of a planning pass (level 1).
func Plan(captures, instruments, tiles int) {
	if level >= LevelInfo && logger != nil {
		entry("info").Infof("Plan: %d captures x %d instruments = %d tiles", captures, instruments, tiles)
	}
}

// Value prints a named value in formatted form (level 1).
func Value(name string, value interface{}) {
	if level >= LevelInfo && logger != nil {
		entry("info").Infof("  %s = %v", name, value)
	}
}

// --- Level 2 functions (Live): real-time info ---

// Live prints a level 2 message (live info).
func Live(format string, args ...interface{}) {
	if level >= LevelLive && logger != nil {
		entry("live").Infof(format, args...)
	}
}

// Move prints a PTU axis change (level 2).
func Move(axis string, fromDeg, toDeg float64) {
	if level >= LevelLive && logger != nil {
		entry("live").Infof("PTU %s: %.2f° -> %.2f°", axis, fromDeg, toDeg)
	}
}

// Capture prints a planner capture (level 2).
func Capture(index, total int, panDeg, tiltDeg float64) {
	if level >= LevelLive && logger != nil {
		entry("live").Infof("Capture %d/%d at pan=%.2f° tilt=%.2f°", index, total, panDeg, tiltDeg)
	}
}

// --- Level 3 functions (Verbose): everything ---

// Verbose prints a level 3 message (verbose).
func Verbose(format string, args ...interface{}) {
	if level >= LevelVerbose && logger != nil {
		entry("verbose").Debugf(format, args...)
	}
}

// PrintStruct prints a struct in formatted form (level 3).
func PrintStruct(name string, v interface{}) {
	if level >= LevelVerbose && logger != nil {
		entry("verbose").Debugf("%s: %+v", name, v)
	}
}

// Section prints a section separator (level 3).
func Section(name string) {
	if level >= LevelVerbose && logger != nil {
		entry("verbose").Debug("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		entry("verbose").Debugf("  %s", name)
		entry("verbose").Debug("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	}
}

// Step prints a numbered step (level 3).
func Step(num int, description string) {
	if level >= LevelVerbose && logger != nil {
		entry("verbose").Debugf("Step %d: %s", num, description)
	}
}

// Pose prints an instrument world pose (level 3).
func Pose(id string, position, direction [3]float64) {
	if level >= LevelVerbose && logger != nil {
		logger.WithFields(logrus.Fields{
			"stage":      "verbose",
			"instrument": id,
		}).Debugf("pos=(%.3f, %.3f, %.3f) dir=(%.3f, %.3f, %.3f)",
			position[0], position[1], position[2],
			direction[0], direction[1], direction[2])
	}
}

// --- Level 4 functions (Trace): very low level ---

// Trace prints a level 4 message (trace).
func Trace(format string, args ...interface{}) {
	if level >= LevelTrace && logger != nil {
		entry("trace").Tracef(format, args...)
	}
}

// --- General functions ---

// Error prints a debug error (level 1+).
func Error(err error) {
	if level >= LevelInfo && logger != nil {
		entry("error").Error(err)
	}
}

// Fmt is a helper function that returns a formatted string
// only if debug is enabled (to avoid unnecessary allocations).
func Fmt(format string, args ...interface{}) string {
	if level > 0 {
		return fmt.Sprintf(format, args...)
	}
	return ""
}
