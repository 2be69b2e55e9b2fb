package trigger

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"strconv"
	"time"

	"github.com/custodia-labs/cliprelay/internal/core/domain"
	"github.com/custodia-labs/cliprelay/internal/core/ports/driven"
	"github.com/custodia-labs/cliprelay/internal/logger"
)

// DefaultInterval is the poll period used when none is configured.
const DefaultInterval = 500 * time.Millisecond

// Poller watches a ClipboardHost and fires when its content changes.
// The content present when polling starts is not reported.
type Poller struct {
	host     driven.ClipboardHost
	interval time.Duration
	sink     Sink
	now      func() time.Time

	last   [sha256.Size]byte
	primed bool
}

// NewPoller creates a poller reading host every interval.
func NewPoller(host driven.ClipboardHost, interval time.Duration, sink Sink) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{
		host:     host,
		interval: interval,
		sink:     sink,
		now:      time.Now,
	}
}

// Run polls until ctx is cancelled.
func (p *Poller) Run(ctx context.Context) error {
	logger.Debug("trigger: polling clipboard every %s", p.interval)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.Poll(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			p.Poll(ctx)
		}
	}
}

// Poll reads the host once and fires if the content changed since the
// previous read. Empty items never fire.
func (p *Poller) Poll(ctx context.Context) {
	item, err := p.host.CurrentItem(ctx)
	if err != nil {
		if ctx.Err() == nil {
			logger.Warn("trigger: reading clipboard: %v", err)
		}
		return
	}

	sum := Fingerprint(item)
	if p.primed && sum == p.last {
		return
	}
	first := !p.primed
	p.last, p.primed = sum, true
	if first || item.Len() == 0 {
		return
	}

	// The host saw the change now; stamp it when it carries no copy time.
	if !item.Has(domain.FormatUserCopyTime) {
		ms := p.now().UnixMilli()
		item = item.With(domain.FormatUserCopyTime, []byte(strconv.FormatInt(ms, 10)))
	}

	logger.Debug("trigger: clipboard changed (%d formats, %d bytes)", item.Len(), item.Size())
	p.sink(item)
}

// Fingerprint hashes every format name and payload of an item.
// Equal items have equal fingerprints regardless of map order.
func Fingerprint(item *domain.ClipboardItem) [sha256.Size]byte {
	h := sha256.New()
	var n [8]byte
	for _, f := range item.Formats() {
		data := item.Data(f)
		binary.BigEndian.PutUint64(n[:], uint64(len(f)))
		h.Write(n[:])
		h.Write([]byte(f))
		binary.BigEndian.PutUint64(n[:], uint64(len(data)))
		h.Write(n[:])
		h.Write(data)
	}
	var sum [sha256.Size]byte
	copy(sum[:], h.Sum(nil))
	return sum
}
