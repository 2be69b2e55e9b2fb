package receiver

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/custodia-labs/cliprelay/internal/core/domain"
	"github.com/custodia-labs/cliprelay/internal/logger"
)

type clipboardItemRequest struct {
	Time *int64 `json:"ClipboardItemTime"`
	Text string `json:"ClipboardItemText"`
	Hash string `json:"ClipboardItemHash" binding:"required"`
	Data string `json:"ClipboardItemData" binding:"required"`
}

type itemRequest struct {
	Time *int64 `json:"Time"`
	Data string `json:"Data" binding:"required"`
}

func (r *Receiver) setupRouter() *gin.Engine {
	if !logger.IsVerbose() {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger())

	v1 := engine.Group("/api/v1")
	v1.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  http.StatusOK,
			"message": "pong",
		})
	})
	v1.GET("/version", r.showVersion)
	v1.POST("/ClipboardItem", r.insertClipboardItem)
	v1.GET("/ClipboardItem", r.listClipboardItems)
	v1.GET("/ClipboardItem/count", r.countClipboardItems)
	v1.GET("/ClipboardItem/:id", r.takeClipboardItem)

	// Item and Item{time} share one segment.
	v2 := engine.Group("/api/v2")
	v2.POST("/:item", r.insertItem)
	v2.GET("/Item", r.listItems)
	v2.GET("/Item/count", r.countItems)
	v2.GET("/Item/:time", r.takeItem)

	return engine
}

// insertClipboardItem accepts the v1 schema. The hash must match the
// payload and may only be stored once.
func (r *Receiver) insertClipboardItem(c *gin.Context) {
	var req clipboardItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid JSON", err)
		return
	}

	sum := sha256.Sum256([]byte(req.Data))
	if !strings.EqualFold(hex.EncodeToString(sum[:]), req.Hash) {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  http.StatusBadRequest,
			"message": "Hash mismatch",
		})
		return
	}

	item, n, err := r.decode(req.Data)
	if err != nil {
		badRequest(c, "Invalid Data", err)
		return
	}

	hash := strings.ToLower(req.Hash)
	rec := Record{
		Schema: domain.SchemaV1,
		Time:   req.Time,
		Hash:   hash,
		Text:   req.Text,
		Data:   req.Data,
		Item:   item,
		Bytes:  n,
	}
	if !r.accept("hash:"+hash, rec, false) {
		c.JSON(http.StatusConflict, gin.H{
			"status":  http.StatusConflict,
			"message": "ClipboardItem already exists",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  http.StatusCreated,
		"message": "ClipboardItem created successfully",
	})
}

// insertItem accepts both v2 schemas. A time in the path replaces any
// earlier item with the same time; a time in the body must be new.
func (r *Receiver) insertItem(c *gin.Context) {
	segment := c.Param("item")
	if !strings.HasPrefix(segment, "Item") {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  http.StatusNotFound,
			"message": "Not found",
		})
		return
	}

	var pathTime *int64
	if suffix := strings.TrimPrefix(segment, "Item"); suffix != "" {
		ts, err := strconv.ParseInt(suffix, 10, 64)
		if err != nil {
			badRequest(c, "Invalid ItemTime", err)
			return
		}
		pathTime = &ts
	}

	var req itemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid JSON", err)
		return
	}

	item, n, err := r.decode(req.Data)
	if err != nil {
		badRequest(c, "Invalid Data", err)
		return
	}

	rec := Record{Schema: domain.SchemaV2, Time: req.Time, Data: req.Data, Item: item, Bytes: n}
	if pathTime != nil {
		rec.Schema = domain.SchemaV2URLPath
		rec.Time = pathTime
	}

	key := ""
	if rec.Time != nil {
		key = "time:" + strconv.FormatInt(*rec.Time, 10)
	}
	if !r.accept(key, rec, pathTime != nil) {
		c.JSON(http.StatusConflict, gin.H{
			"status":  http.StatusConflict,
			"message": "Item already exists",
		})
		return
	}

	resp := gin.H{
		"status":  http.StatusCreated,
		"message": "Item created successfully",
	}
	if rec.Time != nil {
		resp["ItemTime"] = *rec.Time
	}
	c.JSON(http.StatusCreated, resp)
}

// decode checks that data is base64 of a packed item.
func (r *Receiver) decode(data string) (*domain.ClipboardItem, int, error) {
	packed, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, 0, err
	}
	item, err := r.packer.Unpack(packed)
	if err != nil {
		return nil, 0, err
	}
	return item, len(packed), nil
}

func badRequest(c *gin.Context, message string, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"status":  http.StatusBadRequest,
		"message": message,
		"error":   err.Error(),
	})
}
