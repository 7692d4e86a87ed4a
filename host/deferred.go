package host

import "sync"

// DeferredProcess records exit and relaunch requests instead of acting on
// them, so an interactive front end can restore the terminal first. Apply
// carries out the recorded request.
type DeferredProcess struct {
	mu       sync.Mutex
	pending  bool
	code     int
	relaunch bool
}

func (d *DeferredProcess) Exit(code int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pending {
		return
	}
	d.pending = true
	d.code = code
}

func (d *DeferredProcess) Relaunch() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pending {
		return nil
	}
	d.pending = true
	d.relaunch = true
	return nil
}

// Requested reports whether Exit or Relaunch has been called.
func (d *DeferredProcess) Requested() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

func (d *DeferredProcess) Apply(p Process) error {
	d.mu.Lock()
	pending, code, relaunch := d.pending, d.code, d.relaunch
	d.mu.Unlock()

	switch {
	case !pending:
		return nil
	case relaunch:
		return p.Relaunch()
	default:
		p.Exit(code)
		return nil
	}
}
