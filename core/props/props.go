// Package props maps the time-related properties of a BACnet device onto
// the registered device clock: property reads and writes for UTC_Offset
// and Daylight_Savings_Status, read-only Local_Date and Local_Time, and
// the (UTC)TimeSynchronization services that rewrite the clock.
package props

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"example.com/bacnet-time/bacnet/bacdt"
	"example.com/bacnet-time/base/timebase"
)

type PropertyID uint32

const (
	PropDaylightSavingsStatus PropertyID = 24
	PropLocalDate             PropertyID = 56
	PropLocalTime             PropertyID = 57
	PropUTCOffset             PropertyID = 119
)

// ErrorCode values follow the BACnet error code enumeration.
type ErrorCode uint8

const (
	CodeOther             ErrorCode = 0
	CodeInvalidDataType   ErrorCode = 9
	CodeValueOutOfRange   ErrorCode = 37
	CodeWriteAccessDenied ErrorCode = 40
	CodeUnknownProperty   ErrorCode = 32
)

func (c ErrorCode) String() string {
	switch c {
	case CodeOther:
		return "other"
	case CodeInvalidDataType:
		return "invalid-data-type"
	case CodeValueOutOfRange:
		return "value-out-of-range"
	case CodeWriteAccessDenied:
		return "write-access-denied"
	case CodeUnknownProperty:
		return "unknown-property"
	default:
		return fmt.Sprintf("error-code-%d", uint8(c))
	}
}

// Error carries the BACnet error code to be sent in a Result(-) response.
type Error struct {
	Code ErrorCode
}

func (e Error) Error() string {
	return "property access failed: " + e.Code.String()
}

// Write applies a decoded property value to the device clock.
func Write(log *zap.Logger, clk timebase.DeviceClock, prop PropertyID, value any) error {
	switch prop {
	case PropUTCOffset:
		minutes, ok := value.(int)
		if !ok {
			return Error{Code: CodeInvalidDataType}
		}
		err := clk.SetUTCOffset(minutes)
		if err != nil {
			log.Info("UTC offset write rejected",
				zap.Int("minutes", minutes), zap.Error(err))
			return Error{Code: writeErrorCode(err)}
		}
		return nil
	case PropDaylightSavingsStatus:
		active, ok := value.(bool)
		if !ok {
			return Error{Code: CodeInvalidDataType}
		}
		err := clk.SetDST(active)
		if err != nil {
			log.Info("DST write rejected",
				zap.Bool("active", active), zap.Error(err))
			return Error{Code: writeErrorCode(err)}
		}
		return nil
	case PropLocalDate, PropLocalTime:
		// Set via the time synchronization services, never by
		// property write.
		return Error{Code: CodeWriteAccessDenied}
	default:
		return Error{Code: CodeUnknownProperty}
	}
}

func writeErrorCode(err error) ErrorCode {
	switch {
	case errors.Is(err, timebase.ErrValueOutOfRange):
		return CodeValueOutOfRange
	case errors.Is(err, timebase.ErrWriteAccessDenied):
		return CodeWriteAccessDenied
	default:
		return CodeOther
	}
}

// Read returns the current value of a property. Clock read failures are
// not surfaced here: the clock already degrades to its sentinel values.
func Read(clk timebase.DeviceClock, prop PropertyID) (any, error) {
	switch prop {
	case PropLocalDate:
		dt, _, _, _ := clk.Local()
		return dt.Date, nil
	case PropLocalTime:
		dt, _, _, _ := clk.Local()
		return dt.Time, nil
	case PropUTCOffset:
		return int(clk.UTCOffset()), nil
	case PropDaylightSavingsStatus:
		return clk.DST(), nil
	default:
		return nil, Error{Code: CodeUnknownProperty}
	}
}

func decodeSyncTime(apdu []byte) (bacdt.DateTime, error) {
	dt, n, err := bacdt.DecodeDateTime(apdu)
	if err != nil {
		return bacdt.DateTime{}, err
	}
	if n != len(apdu) {
		return bacdt.DateTime{}, errors.New("failed to decode time synchronization request: trailing bytes")
	}
	if dt.WildcardPresent() || !dt.IsValid() {
		return bacdt.DateTime{}, errors.New("failed to decode time synchronization request: invalid date/time")
	}
	return dt, nil
}

// HandleTimeSync services a TimeSynchronization request carrying a local
// date/time. The service is unconfirmed, so failures are only logged.
func HandleTimeSync(log *zap.Logger, clk timebase.DeviceClock, apdu []byte) bool {
	dt, err := decodeSyncTime(apdu)
	if err != nil {
		log.Info("time synchronization rejected", zap.Error(err))
		return false
	}
	ok := clk.SetLocal(dt)
	if !ok {
		log.Info("time synchronization failed", zap.Stringer("time", dt))
	}
	return ok
}

// HandleUTCTimeSync services a UTCTimeSynchronization request.
func HandleUTCTimeSync(log *zap.Logger, clk timebase.DeviceClock, apdu []byte) bool {
	dt, err := decodeSyncTime(apdu)
	if err != nil {
		log.Info("UTC time synchronization rejected", zap.Error(err))
		return false
	}
	ok := clk.SetUTC(dt)
	if !ok {
		log.Info("UTC time synchronization failed", zap.Stringer("time", dt))
	}
	return ok
}
