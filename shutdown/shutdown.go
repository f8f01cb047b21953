// Package shutdown funnels OS termination signals into one callback so
// the display can close its feed connection and flush logs before exit.
package shutdown

import "os"

// OnSignal runs fn once when the process receives a termination signal.
// Which signals count is platform-specific (see Notify).
func OnSignal(fn func()) {
	ch := make(chan os.Signal, 1)
	Notify(ch)
	go func() {
		<-ch
		fn()
	}()
}
