package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
)

// WeekCache кеш отрисованных недель и недельных выборок по пользователю
type WeekCache struct {
	cache *cache.Cache
}

func NewWeekCache(ttl, cleanupInterval time.Duration) *WeekCache {
	return &WeekCache{
		cache: cache.New(ttl, cleanupInterval),
	}
}

func weekKey(kind string, ownerID int64, weekStart time.Time) string {
	return fmt.Sprintf("%s:%d:%s", kind, ownerID, weekStart.Format("2006-01-02"))
}

func ownerPrefix(ownerID int64) string {
	return fmt.Sprintf(":%d:", ownerID)
}

// Image PNG недели, если он ещё в кеше
func (c *WeekCache) Image(ownerID int64, weekStart time.Time) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	v, ok := c.cache.Get(weekKey("image", ownerID, weekStart))
	if !ok {
		return nil, false
	}
	data, ok := v.([]byte)
	return data, ok
}

// SetImage кладёт PNG недели с TTL по умолчанию
func (c *WeekCache) SetImage(ownerID int64, weekStart time.Time, data []byte) {
	if c == nil {
		return
	}
	c.cache.SetDefault(weekKey("image", ownerID, weekStart), data)
}

// Get произвольное значение недели (например, выборка дней)
func (c *WeekCache) Get(kind string, ownerID int64, weekStart time.Time) (interface{}, bool) {
	if c == nil {
		return nil, false
	}
	return c.cache.Get(weekKey(kind, ownerID, weekStart))
}

func (c *WeekCache) Set(kind string, ownerID int64, weekStart time.Time, value interface{}) {
	if c == nil {
		return
	}
	c.cache.SetDefault(weekKey(kind, ownerID, weekStart), value)
}

// Invalidate удаляет все записи пользователя, вызывается после изменения уроков и событий
func (c *WeekCache) Invalidate(ownerID int64) {
	if c == nil {
		return
	}
	prefix := ownerPrefix(ownerID)
	for key := range c.cache.Items() {
		if strings.Contains(key, prefix) {
			c.cache.Delete(key)
		}
	}
}

// Flush очищает кеш полностью
func (c *WeekCache) Flush() {
	if c == nil {
		return
	}
	c.cache.Flush()
}
