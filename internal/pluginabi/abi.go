// Package pluginabi is the host side of QuickerSFV's plugin ABI: a
// stable, C-vtable-shaped contract that lets a third-party provider
// ship as a separate loadable module. The vtable's function-pointer
// fields are translated to Go func values (Plugin loading uses Go's
// own plugin package rather than cgo, so the boundary is a Go
// interface underneath, but the shape — an explicit table of
// operations plus an opaque per-instance handle — mirrors the
// original's plugin_sdk/quicker_sfv/plugin/interfaces.h exactly).
package pluginabi

import "github.com/standardbeagle/quickersfv/internal/errors"

// Result mirrors QuickerSFV_Result. Plugin entry points return it so
// the host can distinguish a clean failure from a contract violation
// without relying on panics crossing the plugin boundary.
type Result int32

const (
	ResultOK                 Result = 1
	ResultFailed             Result = -1
	ResultNotImplemented     Result = -5
	ResultInsufficientMemory Result = -10
)

// CallbackResult mirrors QuickerSFV_CallbackResult, returned by the
// host-supplied callbacks a plugin calls back into (read/seek/tell/
// write/next-entry).
type CallbackResult int32

const (
	CallbackResultOk         CallbackResult = 1
	CallbackResultMoreData   CallbackResult = 2
	CallbackResultFailed     CallbackResult = -1
	CallbackResultInvalidArg CallbackResult = -2
)

// Capability mirrors QuickerSFV_ProviderCapabilities.
type Capability int32

const (
	CapabilityFull       Capability = 0
	CapabilityVerifyOnly Capability = 1
)

// HasherOptions mirrors QuickerSFV_HasherOptions.
type HasherOptions struct {
	UseSSE42  bool
	UseAVX512 bool
}

// errFromResult turns a non-OK Result into a *errors.QError tagged
// PluginError, per spec.md §7 ("Any non-OK result from a plugin...
// surfaces as a PluginError").
func errFromResult(op string, r Result) error {
	if r == ResultOK {
		return nil
	}
	return errors.New(errors.PluginError, op, resultError(r))
}

type resultError Result

func (r resultError) Error() string {
	switch Result(r) {
	case ResultFailed:
		return "plugin returned Failed"
	case ResultNotImplemented:
		return "plugin returned NotImplemented"
	case ResultInsufficientMemory:
		return "plugin returned InsufficientMemory"
	default:
		return "plugin returned an unrecognized result code"
	}
}
