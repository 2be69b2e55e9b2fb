package receiver

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/custodia-labs/cliprelay/internal/core/domain"
)

const (
	// defaultClipboardItemLimit and defaultItemLimit match the archive
	// server's list sizes.
	defaultClipboardItemLimit = 100
	defaultItemLimit          = 10
)

type clipboardItemJSON struct {
	Time *int64 `json:"ClipboardItemTime"`
	Text string `json:"ClipboardItemText"`
	Hash string `json:"ClipboardItemHash"`
	Data string `json:"ClipboardItemData"`
}

type itemJSON struct {
	Time int64  `json:"Time"`
	Data string `json:"Data"`
}

// query selects held records by time range. A negative limit returns
// every match.
type query struct {
	start *int64
	end   *int64
	limit int
}

func (q query) matches(rec Record) bool {
	if q.start == nil && q.end == nil {
		return true
	}
	if rec.Time == nil {
		return false
	}
	if q.start != nil && *rec.Time < *q.start {
		return false
	}
	if q.end != nil && *rec.Time > *q.end {
		return false
	}
	return true
}

// parseQuery reads the range and limit parameters. On a bad value it
// writes the 400 response and returns false.
func parseQuery(c *gin.Context, startKey, endKey string, limit int) (query, bool) {
	q := query{limit: limit}

	parseTime := func(key string) (*int64, bool) {
		raw := c.Query(key)
		if raw == "" {
			return nil, true
		}
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			badRequest(c, "Invalid "+key, err)
			return nil, false
		}
		return &v, true
	}

	var ok bool
	if q.start, ok = parseTime(startKey); !ok {
		return q, false
	}
	if q.end, ok = parseTime(endKey); !ok {
		return q, false
	}
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			badRequest(c, "Invalid limit", err)
			return q, false
		}
		q.limit = n
	}
	return q, true
}

func isV1(rec Record) bool { return rec.Schema == domain.SchemaV1 }
func isV2(rec Record) bool { return rec.Schema != domain.SchemaV1 }

// selectRecords returns matching records newest first and the number of
// matches before the limit.
func (r *Receiver) selectRecords(family func(Record) bool, q query) ([]Record, int) {
	var out []Record
	total := 0
	for _, rec := range r.Records() {
		if !family(rec) || !q.matches(rec) {
			continue
		}
		total++
		if q.limit < 0 || len(out) < q.limit {
			out = append(out, rec)
		}
	}
	return out, total
}

// findByTime returns the newest record of a family with time t.
func (r *Receiver) findByTime(family func(Record) bool, t int64) (Record, bool) {
	for _, rec := range r.Records() {
		if family(rec) && rec.Time != nil && *rec.Time == t {
			return rec, true
		}
	}
	return Record{}, false
}

func (r *Receiver) count(family func(Record) bool) int {
	n := 0
	for _, rec := range r.Records() {
		if family(rec) {
			n++
		}
	}
	return n
}

func (r *Receiver) showVersion(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  http.StatusOK,
		"version": r.version,
		"message": fmt.Sprintf("version %s", r.version),
	})
}

func (r *Receiver) listClipboardItems(c *gin.Context) {
	q, ok := parseQuery(c, "startTimestamp", "endTimestamp", defaultClipboardItemLimit)
	if !ok {
		return
	}

	records, total := r.selectRecords(isV1, q)
	items := make([]clipboardItemJSON, 0, len(records))
	for _, rec := range records {
		items = append(items, toClipboardItemJSON(rec))
	}

	request := gin.H{
		"startTimestamp": c.Query("startTimestamp"),
		"endTimestamp":   c.Query("endTimestamp"),
		"limit":          c.Query("limit"),
	}

	c.JSON(http.StatusOK, gin.H{
		"status":         http.StatusOK,
		"requested_form": request,
		"count":          total,
		"message":        "ClipboardItem found successfully",
		"ClipboardItem":  items,
	})
}

func (r *Receiver) takeClipboardItem(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, "Invalid ID", err)
		return
	}

	rec, found := r.findByTime(isV1, id)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  http.StatusNotFound,
			"message": "ClipboardItem not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":        http.StatusOK,
		"message":       "ClipboardItem taken successfully",
		"ClipboardItem": toClipboardItemJSON(rec),
	})
}

func (r *Receiver) countClipboardItems(c *gin.Context) {
	n := r.count(isV1)
	c.JSON(http.StatusOK, gin.H{
		"status":  http.StatusOK,
		"count":   n,
		"message": fmt.Sprintf("%d items in clipboard", n),
	})
}

// listItems returns the times of held v2 items. Items stored without a
// time have no key to list and are skipped.
func (r *Receiver) listItems(c *gin.Context) {
	q, ok := parseQuery(c, "startTime", "endTime", defaultItemLimit)
	if !ok {
		return
	}

	timed := func(rec Record) bool { return isV2(rec) && rec.Time != nil }
	records, _ := r.selectRecords(timed, q)
	times := make([]int64, 0, len(records))
	for _, rec := range records {
		times = append(times, *rec.Time)
	}

	request := gin.H{}
	for _, key := range []string{"startTime", "endTime", "limit"} {
		if v := c.Query(key); v != "" {
			request[key] = v
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":         http.StatusOK,
		"requested_form": request,
		"message":        "Items found successfully",
		"Items":          times,
	})
}

func (r *Receiver) takeItem(c *gin.Context) {
	t, err := strconv.ParseInt(c.Param("time"), 10, 64)
	if err != nil {
		badRequest(c, "Invalid ItemTime", err)
		return
	}

	rec, found := r.findByTime(isV2, t)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  http.StatusNotFound,
			"message": "Item not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  http.StatusOK,
		"message": "Item taken successfully",
		"Item":    itemJSON{Time: *rec.Time, Data: rec.Data},
	})
}

func (r *Receiver) countItems(c *gin.Context) {
	n := r.count(isV2)
	c.JSON(http.StatusOK, gin.H{
		"status":  http.StatusOK,
		"count":   n,
		"message": fmt.Sprintf("%d items in clipboard", n),
	})
}

func toClipboardItemJSON(rec Record) clipboardItemJSON {
	return clipboardItemJSON{
		Time: rec.Time,
		Text: rec.Text,
		Hash: rec.Hash,
		Data: rec.Data,
	}
}
