package ratelimit

import (
	"sync"
	"testing"
	"time"
)

// newTestLimiter sahte saat kullanan bir Limiter döndürür.
func newTestLimiter(points int, window, block time.Duration) (*Limiter, *time.Time) {
	current := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)
	l := New(points, window, block)
	l.now = func() time.Time { return current }
	return l, &current
}

func TestAllow_QuotaWithinWindow(t *testing.T) {
	l, _ := newTestLimiter(3, time.Minute, time.Hour)

	for i := 0; i < 3; i++ {
		if !l.Allow("1.2.3.4") {
			t.Fatalf("istek %d reddedildi, kabul bekleniyordu", i+1)
		}
	}
	if l.Allow("1.2.3.4") {
		t.Fatal("4. istek kabul edildi, ret bekleniyordu")
	}
}

func TestAllow_BlockOutlastsWindowReset(t *testing.T) {
	l, clock := newTestLimiter(3, time.Minute, time.Hour)

	for i := 0; i < 3; i++ {
		l.Allow("key")
	}
	if l.Allow("key") {
		t.Fatal("kota aşımı sonrası istek kabul edildi")
	}

	// Pencere çoktan sıfırlanmış olsa da blok süresi boyunca ret sürer
	*clock = clock.Add(5 * time.Minute)
	if l.Allow("key") {
		t.Fatal("blok süresi içinde istek kabul edildi")
	}

	*clock = clock.Add(30 * time.Minute)
	if l.Allow("key") {
		t.Fatal("blok süresi dolmadan istek kabul edildi")
	}

	// Blok süresi dolunca kota yeniden açılır
	*clock = clock.Add(26 * time.Minute)
	if !l.Allow("key") {
		t.Fatal("blok süresi dolduğu halde istek reddedildi")
	}
}

func TestAllow_WindowResetRestoresQuota(t *testing.T) {
	l, clock := newTestLimiter(3, time.Minute, time.Hour)

	// Kota tüketilir ama aşılmaz; blok tetiklenmez
	for i := 0; i < 3; i++ {
		l.Allow("key")
	}

	*clock = clock.Add(61 * time.Second)
	for i := 0; i < 3; i++ {
		if !l.Allow("key") {
			t.Fatalf("yeni pencerede istek %d reddedildi", i+1)
		}
	}
}

func TestAllow_KeysAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(1, time.Minute, time.Hour)

	if !l.Allow("a") {
		t.Fatal("ilk anahtarın ilk isteği reddedildi")
	}
	if !l.Allow("b") {
		t.Fatal("ikinci anahtarın ilk isteği reddedildi")
	}
	if l.Allow("a") {
		t.Fatal("ilk anahtarın kota aşımı kabul edildi")
	}
}

// Aynı anahtardan eşzamanlı istekler toplamda kotadan fazla hak alamaz.
func TestAllow_ConcurrentConsume(t *testing.T) {
	l := New(3, time.Minute, time.Hour)

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.Allow("shared") {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if allowed != 3 {
		t.Fatalf("kabul edilen istek sayısı %d, 3 bekleniyordu", allowed)
	}
}
