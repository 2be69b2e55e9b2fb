package receiver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/custodia-labs/cliprelay/internal/core/domain"
	"github.com/custodia-labs/cliprelay/internal/core/ports/driven"
	"github.com/custodia-labs/cliprelay/internal/logger"
)

// DefaultKeep is the number of records held when none is configured.
const DefaultKeep = 100

// Record is one accepted upload.
type Record struct {
	Schema     domain.SchemaVersion
	Time       *int64
	Hash       string
	Text       string
	Data       string
	Item       *domain.ClipboardItem
	Bytes      int
	ReceivedAt time.Time
}

// Receiver accepts envelopes of every schema and keeps the most recent ones
// in memory.
type Receiver struct {
	packer  driven.ItemPacker
	store   *recordStore
	version string
	engine *gin.Engine
	onItem func(Record)
	now    func() time.Time
}

// New creates a receiver. packer validates and unpacks payloads; keep
// bounds the number of records held.
func New(packer driven.ItemPacker, keep int) *Receiver {
	if keep <= 0 {
		keep = DefaultKeep
	}

	r := &Receiver{
		packer:  packer,
		store:   newRecordStore(keep),
		version: "dev",
		now:     time.Now,
	}
	r.engine = r.setupRouter()
	return r
}

// WithVersion sets the version reported by GET /api/v1/version.
func (r *Receiver) WithVersion(v string) *Receiver {
	if v != "" {
		r.version = v
	}
	return r
}

// OnItem registers a callback invoked for every accepted record.
func (r *Receiver) OnItem(fn func(Record)) {
	r.onItem = fn
}

// Handler returns the HTTP handler serving the API.
func (r *Receiver) Handler() http.Handler {
	return r.engine
}

// Records returns held records, most recent first.
func (r *Receiver) Records() []Record {
	return r.store.recent()
}

// Run listens on addr until ctx is cancelled.
func (r *Receiver) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           r.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx) //nolint:errcheck
	}()

	logger.Info("receiver: listening on %s", addr)
	err := srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// accept stores rec under key and reports whether it was new.
func (r *Receiver) accept(key string, rec Record, replace bool) bool {
	rec.ReceivedAt = r.now()
	if !r.store.add(key, rec, replace) {
		return false
	}
	logger.Debug("receiver: %s", logger.Fields(
		"schema", rec.Schema,
		"bytes", rec.Bytes,
		"formats", rec.Item.Len(),
	))
	if r.onItem != nil {
		r.onItem(rec)
	}
	return true
}

// requestLogger logs each request through the application logger.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("receiver: %s %s %d %s",
			c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}
