package termlight

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"
)

// replyMax caps how much a misbehaving terminal may stream at us before the
// query gives up.
const replyMax = 256

var (
	errTimeout        = errors.New("termlight: no OSC reply within budget")
	errUnsupportedOSC = errors.New("termlight: terminal answered DSR but not OSC 11")
	errOversizedReply = errors.New("termlight: reply exceeded sane length")
)

// deviceReader is the one capability the reply loop needs from the terminal
// device: hand over whatever bytes are available, waiting at most d for the
// first of them.
type deviceReader interface {
	readTimeout(p []byte, d time.Duration) (int, error)
}

// rawModeGuard restores the terminal's previous input discipline exactly
// once, however the query exits.
type rawModeGuard struct {
	restoreFn func() error
	done      bool
}

func (g *rawModeGuard) restore() error {
	if g.done {
		return nil
	}
	g.done = true
	return g.restoreFn()
}

// runQuery writes the OSC 11 background query followed by a DSR status
// probe, then collects the reply. The guard is released before returning on
// every path, including write failures and timeouts.
//
// The DSR probe is answered by nearly every terminal; seeing its answer
// without an OSC reply in front of it means OSC 11 is unsupported, so the
// query can fail fast instead of sitting out the whole budget.
func runQuery(g *rawModeGuard, w io.Writer, dev deviceReader, timeout time.Duration) (reply []byte, err error) {
	defer func() {
		if rerr := g.restore(); rerr != nil && err == nil {
			reply, err = nil, fmt.Errorf("restore terminal mode: %w", rerr)
		}
	}()

	if _, err := io.WriteString(w, oscBackgroundQuery+dsrStatusQuery); err != nil {
		return nil, fmt.Errorf("write query: %w", err)
	}
	return readReply(dev, timeout)
}

// readReply accumulates terminal output until a complete OSC reply shows up
// or the time budget runs out. Replies routinely arrive fragmented, so a
// single read is not enough; each iteration is bounded by what remains of
// the budget.
func readReply(dev deviceReader, timeout time.Duration) ([]byte, error) {
	deadline := time.Now().Add(timeout)
	buf := make([]byte, 0, 64)
	chunk := make([]byte, 64)
	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return nil, errTimeout
		}
		n, err := dev.readTimeout(chunk, remaining)
		buf = append(buf, chunk[:n]...)

		if reply, ok := extractOSCReply(buf); ok {
			return reply, nil
		}
		if err != nil {
			if errors.Is(err, os.ErrDeadlineExceeded) {
				return nil, errTimeout
			}
			return nil, fmt.Errorf("read reply: %w", err)
		}
		if hasDSRReply(buf) {
			return nil, errUnsupportedOSC
		}
		if len(buf) > replyMax {
			return nil, errOversizedReply
		}
	}
}
