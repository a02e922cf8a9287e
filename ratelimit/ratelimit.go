// Package ratelimit istemci başına deneme kotasını süreç belleğinde izler.
// Tablo kalıcı değildir; süreç yeniden başladığında sıfırlanır.
package ratelimit

import (
	"sync"
	"time"
)

type entry struct {
	remaining    int
	windowEnds   time.Time
	blockedUntil time.Time
}

// Limiter sabit kotalı sayaç tablosudur. Pencere içinde kota tükendiğinde
// anahtar, pencere sıfırlanmalarından bağımsız olarak blok süresi boyunca
// reddedilir.
type Limiter struct {
	mu      sync.Mutex
	entries map[string]*entry

	points int
	window time.Duration
	block  time.Duration

	now func() time.Time
}

// New verilen kota/pencere/blok ayarlarıyla bir Limiter oluşturur ve boşta
// kalan kayıtları süpüren arka plan görevini başlatır.
func New(points int, window, block time.Duration) *Limiter {
	l := &Limiter{
		entries: make(map[string]*entry),
		points:  points,
		window:  window,
		block:   block,
		now:     time.Now,
	}
	go l.janitor()
	return l
}

// Allow anahtar için bir hak tüketir. Okuma ve düşürme tek kilit altında
// yapılır; aynı anahtardan eşzamanlı istekler son hakkı birlikte alamaz.
// Ret bir hata değil beklenen bir sonuçtur.
func (l *Limiter) Allow(key string) bool {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[key]
	if !ok {
		e = &entry{remaining: l.points, windowEnds: now.Add(l.window)}
		l.entries[key] = e
	}

	// Blok denetimi pencere sıfırlamasından önce gelir
	if now.Before(e.blockedUntil) {
		return false
	}

	if !now.Before(e.windowEnds) {
		e.remaining = l.points
		e.windowEnds = now.Add(l.window)
	}

	if e.remaining <= 0 {
		e.blockedUntil = now.Add(l.block)
		return false
	}

	e.remaining--
	return true
}

// janitor süresi dolmuş ve bloklanmamış kayıtları periyodik olarak siler.
func (l *Limiter) janitor() {
	ticker := time.NewTicker(l.window)
	defer ticker.Stop()
	for range ticker.C {
		now := l.now()
		l.mu.Lock()
		for key, e := range l.entries {
			if now.After(e.windowEnds) && now.After(e.blockedUntil) {
				delete(l.entries, key)
			}
		}
		l.mu.Unlock()
	}
}
