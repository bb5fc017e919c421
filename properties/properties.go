// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package properties models the platform's process-wide property
// broker: a flat key-value namespace used both for service status
// signalling and, through reserved control keys, for sending
// commands to the init system.
package properties

import (
	"regexp"

	"github.com/juju/errors"
)

// The broker imposes hard limits on key and value sizes; writes
// that exceed them never reach the store.
const (
	MaxKeyLength   = 32
	MaxValueLength = 92
)

var keyRe = regexp.MustCompile(`^[a-zA-Z0-9_@:.-]+$`)

// Store provides read/write access to a property broker. Reads never
// fail: a property that has never been set is indistinguishable from
// one set to the empty string. Writes may be rejected.
type Store interface {
	// Get returns the current value of the named property, or the
	// empty string if it is unset.
	Get(key string) string

	// Set writes the named property. A write to a reserved control
	// key (e.g. "ctl.start") is interpreted by the init system as a
	// service command rather than ordinary data.
	Set(key, value string) error
}

// ValidateKey returns an error if key is not a well-formed property
// name.
func ValidateKey(key string) error {
	if key == "" {
		return errors.NotValidf("empty property key")
	}
	if len(key) > MaxKeyLength {
		return errors.NotValidf("property key %q longer than %d bytes", key, MaxKeyLength)
	}
	if !keyRe.MatchString(key) {
		return errors.NotValidf("property key %q", key)
	}
	return nil
}
