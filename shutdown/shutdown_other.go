//go:build !windows

package shutdown

import (
	"os"
	"os/signal"
	"syscall"
)

// Notify registers ch for interrupt and SIGTERM, the signals a kiosk
// supervisor sends when stopping the display.
func Notify(ch chan os.Signal) {
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
}
