package bacdt

import (
	"errors"
)

// Application-tagged encoding of Date and Time values. Both encode as a
// one-byte tag (tag number in the high nibble, length 4 in the low nibble)
// followed by four content octets. The year octet is biased by the 1900
// epoch, with 0xff preserved as the wildcard.

const (
	tagDate = 0xa4 // application tag 10, length 4
	tagTime = 0xb4 // application tag 11, length 4

	// EncodedLen is the encoded size of a Date or a Time value.
	EncodedLen = 5
)

var (
	ErrBufferTooShort = errors.New("failed to decode value: buffer too short")
	ErrUnexpectedTag  = errors.New("failed to decode value: unexpected tag")
)

func yearOctet(year uint16) uint8 {
	if year == YearWildcard {
		return Wildcard
	}
	return uint8(year - EpochYear)
}

func yearFromOctet(o uint8) uint16 {
	if o == Wildcard {
		return YearWildcard
	}
	return EpochYear + uint16(o)
}

// EncodeDate appends the application-tagged encoding of d to b.
func EncodeDate(b []byte, d Date) []byte {
	return append(b, tagDate, yearOctet(d.Year), d.Month, d.Day, d.WeekDay)
}

// EncodeTime appends the application-tagged encoding of t to b.
func EncodeTime(b []byte, t Time) []byte {
	return append(b, tagTime, t.Hour, t.Minute, t.Second, t.Hundredths)
}

// EncodeDateTime appends the encoding of a date/time, date first.
func EncodeDateTime(b []byte, dt DateTime) []byte {
	b = EncodeDate(b, dt.Date)
	return EncodeTime(b, dt.Time)
}

// DecodeDate decodes an application-tagged date from the start of b and
// returns the number of bytes consumed.
func DecodeDate(b []byte) (Date, int, error) {
	if len(b) < EncodedLen {
		return Date{}, 0, ErrBufferTooShort
	}
	if b[0] != tagDate {
		return Date{}, 0, ErrUnexpectedTag
	}
	d := Date{
		Year:    yearFromOctet(b[1]),
		Month:   b[2],
		Day:     b[3],
		WeekDay: b[4],
	}
	return d, EncodedLen, nil
}

// DecodeTime decodes an application-tagged time from the start of b and
// returns the number of bytes consumed.
func DecodeTime(b []byte) (Time, int, error) {
	if len(b) < EncodedLen {
		return Time{}, 0, ErrBufferTooShort
	}
	if b[0] != tagTime {
		return Time{}, 0, ErrUnexpectedTag
	}
	t := Time{
		Hour:       b[1],
		Minute:     b[2],
		Second:     b[3],
		Hundredths: b[4],
	}
	return t, EncodedLen, nil
}

// DecodeDateTime decodes a date followed by a time.
func DecodeDateTime(b []byte) (DateTime, int, error) {
	d, n, err := DecodeDate(b)
	if err != nil {
		return DateTime{}, 0, err
	}
	t, m, err := DecodeTime(b[n:])
	if err != nil {
		return DateTime{}, 0, err
	}
	return DateTime{Date: d, Time: t}, n + m, nil
}
