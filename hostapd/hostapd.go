// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package hostapd controls the lifecycle of the access-point host
// daemon through the init system's property interface. The init
// system owns the daemon's process; this package only requests
// transitions and reads the state the init system publishes.
package hostapd

import (
	"github.com/juju/collections/set"
	"github.com/juju/errors"
	"github.com/juju/loggo"

	"github.com/juju/wifisystem/properties"
)

var logger = loggo.GetLogger("wifisystem.hostapd")

// ServiceName is the init system's name for the daemon.
const ServiceName = "hostapd"

const (
	// statusKeyPrefix is prepended to a service name to form the
	// property under which the init system publishes that service's
	// current state.
	statusKeyPrefix = "init.svc."

	// startControlKey and stopControlKey are the reserved properties
	// the init system watches for commands. The value written is the
	// name of the service the command applies to.
	startControlKey = "ctl.start"
	stopControlKey  = "ctl.stop"
)

// Terminal states published by the init system. A service that is
// starting, restarting or crashing reports other values; a service
// that has never run reports nothing at all.
const (
	StatusRunning = "running"
	StatusStopped = "stopped"
)

var knownStatuses = set.NewStrings(StatusRunning, StatusStopped)

// KnownStatus reports whether status is one of the terminal states.
// Anything else, including the empty string, means the service is
// transitioning or has never been started.
func KnownStatus(status string) bool {
	return knownStatuses.Contains(status)
}

// Config names the property identifiers a Manager operates on. The
// zero value is not valid; start from DefaultConfig and override the
// fields under test.
type Config struct {
	// ServiceName is the init system's name for the managed service.
	ServiceName string

	// StatusKeyPrefix is prepended to ServiceName to form the
	// status property key.
	StatusKeyPrefix string

	// StartKey and StopKey are the control properties that request
	// a start and a stop respectively.
	StartKey string
	StopKey  string
}

// DefaultConfig returns the well-known identifiers for the hostapd
// service.
func DefaultConfig() Config {
	return Config{
		ServiceName:     ServiceName,
		StatusKeyPrefix: statusKeyPrefix,
		StartKey:        startControlKey,
		StopKey:         stopControlKey,
	}
}

// Validate returns an error if the config would produce malformed
// property keys.
func (c Config) Validate() error {
	if c.ServiceName == "" {
		return errors.NotValidf("empty ServiceName")
	}
	if c.StatusKeyPrefix == "" {
		return errors.NotValidf("empty StatusKeyPrefix")
	}
	for _, key := range []string{c.statusKey(), c.StartKey, c.StopKey} {
		if err := properties.ValidateKey(key); err != nil {
			return errors.Trace(err)
		}
	}
	return nil
}

func (c Config) statusKey() string {
	return c.StatusKeyPrefix + c.ServiceName
}

// Manager issues start and stop requests for a single supervised
// service. It only requests transitions; a nil result from Start or
// Stop means the init system accepted the command, not that the
// service has reached the requested state. Confirming convergence is
// the caller's concern.
//
// Overlapping calls are not coordinated. Two callers can both observe
// a stale status and both issue the same command; the init system
// treats the duplicate as a no-op.
type Manager struct {
	config Config
	props  properties.Store
}

// NewManager returns a Manager controlling the service named by
// config through the given property store.
func NewManager(config Config, props properties.Store) (*Manager, error) {
	if props == nil {
		return nil, errors.NotValidf("nil property store")
	}
	if err := config.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	return &Manager{config: config, props: props}, nil
}

// Status returns the service state as currently published by the
// init system. An empty result means the service has never been
// started, or the broker has no record of it.
func (m *Manager) Status() string {
	return m.props.Get(m.config.statusKey())
}

// Running reports whether the init system considers the service
// running.
func (m *Manager) Running() bool {
	return m.Status() == StatusRunning
}

// Start asks the init system to start the service. If the service is
// already running the request is skipped.
func (m *Manager) Start() error {
	if m.Status() == StatusRunning {
		logger.Debugf("%s already running; skipping start", m.config.ServiceName)
		return nil
	}
	if err := m.props.Set(m.config.StartKey, m.config.ServiceName); err != nil {
		logger.Errorf("failed to start %s: %v", m.config.ServiceName, err)
		return errors.Annotatef(err, "starting service %q", m.config.ServiceName)
	}
	logger.Debugf("start of %s requested", m.config.ServiceName)
	return nil
}

// Stop asks the init system to stop the service. If the service is
// already stopped, or was never started, the request is skipped.
func (m *Manager) Stop() error {
	logger.Debugf("stopping the %s service", m.config.ServiceName)
	if status := m.Status(); status == "" || status == StatusStopped {
		logger.Debugf("%s already stopped; skipping stop", m.config.ServiceName)
		return nil
	}
	if err := m.props.Set(m.config.StopKey, m.config.ServiceName); err != nil {
		logger.Errorf("failed to stop %s: %v", m.config.ServiceName, err)
		return errors.Annotatef(err, "stopping service %q", m.config.ServiceName)
	}
	logger.Debugf("stop of %s requested", m.config.ServiceName)
	return nil
}
