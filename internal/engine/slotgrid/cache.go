package slotgrid

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// DefaultMaxEntries размер кэша по умолчанию: около пяти лет дат на пару политик
const DefaultMaxEntries = 4096

// cacheKey окна зависят только от даты и границ длительности
type cacheKey struct {
	date     domain.Date
	minHours int
	maxHours int
}

// Cache потокобезопасный LRU-кэш сгенерированных окон
// Сохраненные срезы не изменяются после записи, поэтому выдаются без копирования.
// Кэш принадлежит одному Generator: окна содержат абсолютное время его часового пояса
type Cache struct {
	entries *lru.Cache[cacheKey, []domain.CandidateWindow]
	hits    atomic.Uint64
	misses  atomic.Uint64
}

// NewCache создает кэш. maxEntries <= 0 означает DefaultMaxEntries
func NewCache(maxEntries int) *Cache {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	// lru.New возвращает ошибку только при неположительном размере
	entries, _ := lru.New[cacheKey, []domain.CandidateWindow](maxEntries)
	return &Cache{entries: entries}
}

func (c *Cache) get(key cacheKey) ([]domain.CandidateWindow, bool) {
	windows, ok := c.entries.Get(key)
	if !ok {
		c.misses.Add(1)
		return nil, false
	}
	c.hits.Add(1)
	return windows, true
}

func (c *Cache) set(key cacheKey, windows []domain.CandidateWindow) {
	c.entries.Add(key, windows)
}

// Stats возвращает счетчики попаданий, промахов и текущий размер
func (c *Cache) Stats() (hits, misses uint64, entries int) {
	return c.hits.Load(), c.misses.Load(), c.entries.Len()
}

// Len возвращает количество записей
func (c *Cache) Len() int {
	return c.entries.Len()
}
