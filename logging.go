package p3s

import (
	"github.com/sirupsen/logrus"
)

// log is the package-level logger, one logrus.Logger instance shared by the
// whole engine; there is no per-component logger wiring. Besides the lines
// below it carries a Debug line when an armed ISR preempts the CPU and a
// Warn line when Simulate rejects a configuration. Transition selection and
// signal delivery are not traced.
//
// The two lines whose text is fixed byte-for-byte —
// location-change and Finished — are also emitted through this logger, at
// Info level, via exactFormatter so the text matches byte-for-byte
// regardless of logrus's default "level=info msg=..." styling.
var log = logrus.New()

func init() {
	log.SetFormatter(&exactFormatter{})
}

// exactFormatter renders only the log entry's message, with a trailing
// newline — no level, no timestamp, no key=value fields. It exists so the
// two contractual output lines can be produced through the same
// structured logger as the rest of the engine's diagnostics instead of a
// bare fmt.Println, while still matching the contractual text exactly.
type exactFormatter struct{}

func (exactFormatter) Format(e *logrus.Entry) ([]byte, error) {
	return append([]byte(e.Message), '\n'), nil
}

// logLocationChange emits the contractual location-change line:
// "@<process> C:<cycle> : change location to <location>".
func logLocationChange(processName string, now Cycle, location string) {
	log.Infof("@%s C:%d : change location to %s", processName, now, location)
}

// logFinished emits the contractual completion line: "Finished cycle: <cycle>".
func logFinished(at Cycle) {
	log.Infof("Finished cycle: %d", at)
}

// logRestartError emits the contractual error line on a restart failure.
func logRestartError(processName string, err error) {
	log.Errorf("@%s : error: %v", processName, err)
}
