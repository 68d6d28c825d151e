package termlight

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// Terminal control bytes and sequences. The background query is OSC 11 with
// the "?" parameter, per the xterm dynamic-colors extension; the status
// report probe is the plain VT100 DSR query.
const (
	esc = 0x1b
	bel = 0x07

	oscBackgroundQuery = "\x1b]11;?\a"
	dsrStatusQuery     = "\x1b[5n"
)

var stTerminator = []byte{esc, '\\'}

// extractOSCReply returns the first complete OSC reply in buf, terminator
// included. Terminals close the reply either with a lone BEL or with the
// two-byte ST sequence; both are recognized. Returns false while the reply
// is still incomplete or absent.
func extractOSCReply(buf []byte) ([]byte, bool) {
	start := bytes.Index(buf, []byte{esc, ']'})
	if start < 0 {
		return nil, false
	}
	body := buf[start:]
	if i := bytes.IndexByte(body, bel); i >= 0 {
		return body[:i+1], true
	}
	if i := bytes.Index(body, stTerminator); i >= 0 {
		return body[:i+len(stTerminator)], true
	}
	return nil, false
}

// hasDSRReply reports whether buf contains a Device Status Report answer
// (CSI 0 n). Seeing one before the OSC terminator means the terminal
// processed our queries but does not implement OSC 11.
func hasDSRReply(buf []byte) bool {
	for {
		idx := bytes.Index(buf, []byte{esc, '['})
		if idx < 0 {
			return false
		}
		rest := buf[idx+2:]
		i := 0
		for i < len(rest) && rest[i] >= '0' && rest[i] <= ';' {
			i++
		}
		if i < len(rest) && rest[i] == 'n' {
			return true
		}
		buf = rest
	}
}

// parseOSCColor decodes an OSC 11 reply such as
//
//	ESC ] 11 ; rgb: 1e1e / 2a2a / 3b3b BEL
//
// into a Color. Channel fields are 1 to 4 hex digits wide; each is scaled
// from its own width down to 8 bits. Both the BEL and the ESC-backslash
// terminator forms are accepted and carry no color information.
func parseOSCColor(reply []byte) (Color, error) {
	s := string(reply)
	s = strings.TrimSuffix(s, "\a")
	s = strings.TrimSuffix(s, "\x1b\\")

	idx := strings.Index(s, "rgb:")
	if idx < 0 {
		return Color{}, fmt.Errorf("%w: no rgb: token in reply %q", ErrParse, reply)
	}
	fields := strings.Split(s[idx+len("rgb:"):], "/")
	if len(fields) != 3 {
		return Color{}, fmt.Errorf("%w: want 3 channel fields, got %d in %q", ErrParse, len(fields), reply)
	}

	var ch [3]uint8
	for i, f := range fields {
		v, err := parseHexChannel(f)
		if err != nil {
			return Color{}, err
		}
		ch[i] = v
	}
	return Color{R: ch[0], G: ch[1], B: ch[2]}, nil
}

// parseHexChannel scales a 1-4 digit hex field to 8 bits. A 4-digit field is
// a 16-bit sample, so "ffff" maps to 255 and "8080" to 128; a 1-digit "f"
// also maps to 255.
func parseHexChannel(field string) (uint8, error) {
	if len(field) < 1 || len(field) > 4 {
		return 0, fmt.Errorf("%w: channel field %q must be 1-4 hex digits", ErrParse, field)
	}
	v, err := strconv.ParseUint(field, 16, 16)
	if err != nil {
		return 0, fmt.Errorf("%w: bad hex channel %q", ErrParse, field)
	}
	max := uint64(1)<<(4*len(field)) - 1
	return uint8(v * 255 / max), nil
}
