// Package notify raises desktop notifications for tunnel transitions.
// Delivery is best-effort: a missing or failing notification daemon is
// logged at debug level and otherwise ignored.
package notify

import (
	"github.com/renaudg/netdash/internal/logger"
	"github.com/renaudg/netdash/internal/nm"
)

// Urgency maps to notify-send's urgency levels.
type Urgency int

const (
	UrgencyNormal Urgency = iota
	UrgencyCritical
)

// String returns the notify-send urgency argument.
func (u Urgency) String() string {
	if u == UrgencyCritical {
		return "critical"
	}
	return "normal"
}

// Notifier sends desktop notifications.
type Notifier interface {
	Notify(title, body string, urgency Urgency)
}

// DesktopNotifier spawns notify-send. It reuses the nm command runner so a
// single executor seam covers every external process the dashboard starts.
type DesktopNotifier struct {
	run     nm.Runner
	log     logger.Logger
	enabled bool
}

// NewDesktopNotifier creates a notifier. When enabled is false every call
// is a no-op, which is how the config toggle is implemented.
func NewDesktopNotifier(run nm.Runner, log logger.Logger, enabled bool) *DesktopNotifier {
	if log == nil {
		log = logger.Noop()
	}
	return &DesktopNotifier{run: run, log: log, enabled: enabled}
}

// Notify spawns a notify-send popup. Critical notifications get the
// network-error icon, normal ones network-transmit-receive.
func (n *DesktopNotifier) Notify(title, body string, urgency Urgency) {
	if !n.enabled {
		return
	}
	icon := "network-transmit-receive"
	if urgency == UrgencyCritical {
		icon = "network-error"
	}
	if err := n.run.Spawn("notify-send", "-u", urgency.String(), "-i", icon, title, body); err != nil {
		n.log.Debug("notify-send spawn failed: %v", err)
	}
}

// Recorder captures notifications for tests.
type Recorder struct {
	Sent []Notification
}

// Notification is one captured Notify call.
type Notification struct {
	Title   string
	Body    string
	Urgency Urgency
}

// Notify records the call.
func (r *Recorder) Notify(title, body string, urgency Urgency) {
	r.Sent = append(r.Sent, Notification{Title: title, Body: body, Urgency: urgency})
}
