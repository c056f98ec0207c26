// Package conflict определяет, пересекается ли окно с существующими резервациями или блокировками.
//
// Резервации расширяются буфером уборки с обеих сторон, окно и блокировки не расширяются.
// Интервалы [s1,e1) и [s2,e2) пересекаются, если NOT (e1 <= s2 OR s1 >= e2).
package conflict

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// Resolver проверяет окна на конфликты
// Неизменяем после создания, безопасен для конкурентного использования
type Resolver struct {
	buffer     int64 // секунды
	facilityID string
	physical   map[string][]string // категория -> физические ресурсы
}

// NewResolver создает резолвер
// facilityResourceID - идентификатор блокировки всего заведения (действует на все категории)
// physicalResources - какие физические ресурсы стоят за категорией
func NewResolver(buffer time.Duration, facilityResourceID string, physicalResources map[string][]string) *Resolver {
	physical := make(map[string][]string, len(physicalResources))
	for categoryID, resources := range physicalResources {
		physical[categoryID] = append([]string(nil), resources...)
	}
	return &Resolver{
		buffer:     int64(buffer / time.Second),
		facilityID: facilityResourceID,
		physical:   physical,
	}
}

// Buffer возвращает буфер вокруг резерваций
func (r *Resolver) Buffer() time.Duration {
	return time.Duration(r.buffer) * time.Second
}

// Conflicts проверяет одно окно категории
// booked уже ограничены категорией (и ее парой), blocks фильтруются по физическим ресурсам категории.
// Для пакетной проверки многих окон используйте Index
func (r *Resolver) Conflicts(categoryID string, window domain.TimeRange, booked []domain.BookedInterval, blocks []domain.BlockInterval) bool {
	w := spanOf(window.Start, window.End)

	for _, b := range booked {
		if overlaps(w, r.buffered(spanOf(b.Start, b.End))) {
			return true
		}
	}

	resources := r.resourcesOf(categoryID)
	for _, b := range blocks {
		if !b.Active {
			continue
		}
		if !r.isFacility(b.AssignedResourceID) {
			if _, ok := resources[b.AssignedResourceID]; !ok {
				continue
			}
		}
		if overlaps(w, spanOf(b.Start, b.End)) {
			return true
		}
	}

	return false
}

func (r *Resolver) resourcesOf(categoryID string) map[string]struct{} {
	resources := make(map[string]struct{}, len(r.physical[categoryID]))
	for _, id := range r.physical[categoryID] {
		resources[id] = struct{}{}
	}
	return resources
}

func (r *Resolver) isFacility(resourceID string) bool {
	return r.facilityID != "" && resourceID == r.facilityID
}

func (r *Resolver) buffered(s span) span {
	return span{start: s.start - r.buffer, end: s.end + r.buffer}
}

// span интервал в unix-секундах
type span struct {
	start int64
	end   int64
}

func spanOf(start, end time.Time) span {
	return span{start: start.Unix(), end: end.Unix()}
}

func overlaps(a, b span) bool {
	return !(a.end <= b.start || a.start >= b.end)
}

// bookedSpan резервация до и после применения буфера
type bookedSpan struct {
	raw      span
	buffered span
}

// Index резервации и блокировки, один раз переведенные в секунды и сгруппированные
// Строится на партицию и далее только читается
type Index struct {
	resolver *Resolver
	booked   map[string][]bookedSpan // категория -> резервации, по возрастанию buffered.start
	blocks   map[string][]span       // физический ресурс -> блокировки, по возрастанию start
	facility []span
}

// Index группирует резервации по категориям, а блокировки по ресурсам
// Неактивные блокировки отбрасываются
func (r *Resolver) Index(booked []domain.BookedInterval, blocks []domain.BlockInterval) *Index {
	ix := &Index{
		resolver: r,
		booked:   make(map[string][]bookedSpan),
		blocks:   make(map[string][]span),
	}

	for _, b := range booked {
		raw := spanOf(b.Start, b.End)
		ix.booked[b.CategoryID] = append(ix.booked[b.CategoryID], bookedSpan{raw: raw, buffered: r.buffered(raw)})
	}

	for _, b := range blocks {
		if !b.Active {
			continue
		}
		s := spanOf(b.Start, b.End)
		if r.isFacility(b.AssignedResourceID) {
			ix.facility = append(ix.facility, s)
			continue
		}
		ix.blocks[b.AssignedResourceID] = append(ix.blocks[b.AssignedResourceID], s)
	}

	for _, spans := range ix.booked {
		sort.Slice(spans, func(i, j int) bool { return spans[i].buffered.start < spans[j].buffered.start })
	}
	for _, spans := range ix.blocks {
		sortSpans(spans)
	}
	sortSpans(ix.facility)

	return ix
}

func sortSpans(spans []span) {
	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })
}

// Candidates возвращает интервалы категорий, которые могут пересечься с горизонтом
// Все окна, проверяемые через результат, должны лежать внутри горизонта
func (ix *Index) Candidates(horizon domain.TimeRange, categoryIDs ...string) *Candidates {
	h := spanOf(horizon.Start, horizon.End)
	c := &Candidates{}

	for _, categoryID := range categoryIDs {
		c.booked = appendBooked(c.booked, ix.booked[categoryID], h)
		for _, resourceID := range ix.resolver.physical[categoryID] {
			c.blocks = appendSpans(c.blocks, ix.blocks[resourceID], h)
		}
	}
	c.blocks = appendSpans(c.blocks, ix.facility, h)

	return c
}

// appendBooked добавляет резервации, буферизованный интервал которых пересекает h
func appendBooked(dst, spans []bookedSpan, h span) []bookedSpan {
	// Все интервалы, начинающиеся не раньше конца горизонта, заведомо не пересекаются
	n := sort.Search(len(spans), func(i int) bool { return spans[i].buffered.start >= h.end })
	for _, s := range spans[:n] {
		if s.buffered.end > h.start {
			dst = append(dst, s)
		}
	}
	return dst
}

func appendSpans(dst, spans []span, h span) []span {
	n := sort.Search(len(spans), func(i int) bool { return spans[i].start >= h.end })
	for _, s := range spans[:n] {
		if s.end > h.start {
			dst = append(dst, s)
		}
	}
	return dst
}

// Candidates предварительно отфильтрованные интервалы для одной даты и набора категорий
type Candidates struct {
	booked []bookedSpan
	blocks []span
}

// Conflicts проверяет окно против буферизованных резерваций и блокировок
func (c *Candidates) Conflicts(start, end time.Time) bool {
	w := spanOf(start, end)
	for _, b := range c.booked {
		if overlaps(w, b.buffered) {
			return true
		}
	}
	for _, b := range c.blocks {
		if overlaps(w, b) {
			return true
		}
	}
	return false
}

// Booked проверяет пересечение с резервациями без буфера
func (c *Candidates) Booked(start, end time.Time) bool {
	w := spanOf(start, end)
	for _, b := range c.booked {
		if overlaps(w, b.raw) {
			return true
		}
	}
	return false
}

// Empty возвращает true, если ни одна резервация или блокировка не может пересечься с горизонтом
func (c *Candidates) Empty() bool {
	return len(c.booked) == 0 && len(c.blocks) == 0
}
