// SPDX-License-Identifier: MIT

package evolution

import "errors"

var (
	// ErrInvalidConfig is the root of every configuration error; the wrapped
	// message names the offending field.
	ErrInvalidConfig = errors.New("evolution: invalid config")

	// ErrRunning is returned by Run while another Run is in progress.
	ErrRunning = errors.New("evolution: engine is already running")

	// ErrCompleted is returned by Run once the engine has exhausted its
	// generation budget or aborted on an operator failure.
	ErrCompleted = errors.New("evolution: engine has completed")
)
