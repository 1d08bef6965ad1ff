// internal/status/constants.go
package status

// Link status block layout constants.
// These values define the published contract and MUST NOT be configurable.

// ---- FIELDS ----

// FieldHealth holds the link health state.
const FieldHealth = "health"

// FieldLastErrorCode holds the last error code.
const FieldLastErrorCode = "last_error_code"

// FieldSecondsInError holds the duration (in seconds) the link has been in error.
const FieldSecondsInError = "seconds_in_error"

// FieldDevice holds the configured device name.
// Identity only: written on the full re-assert, never incrementally.
const FieldDevice = "device"

// ---- LIMITS ----

// SecondsInErrorMax saturates the error duration counter.
const SecondsInErrorMax uint16 = 65535

// ---- HEALTH CODES ----

// HealthUnknown represents an unknown or boot state.
const HealthUnknown uint16 = 0

// HealthOK represents a healthy link.
const HealthOK uint16 = 1

// HealthError represents a link error state.
const HealthError uint16 = 2

// ---- ERROR CODES ----

// CodeGeneric is reported for errors that carry no code of their own.
// Driver errors report 1 transport, 2 protocol, 3 unexpected value.
const CodeGeneric uint16 = 1
