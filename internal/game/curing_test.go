package game

import (
	"errors"
	"testing"
)

func TestCuringHumidityFollowsBurping(t *testing.T) {
	jar := NewCuringJar("haze", 80, 60)

	sealed, err := jar.Advance(1)
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if sealed.Humidity != 77 || sealed.Quality != 58 {
		t.Fatalf("expected sealed jar at 77%% quality 58, got %d%% quality %d", sealed.Humidity, sealed.Quality)
	}

	burped, err := Burp(jar)
	if err != nil {
		t.Fatalf("burp: %v", err)
	}
	burped, err = burped.Advance(1)
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if burped.Humidity != 71 || burped.Quality != 59 {
		t.Fatalf("expected burped jar at 71%% quality 59, got %d%% quality %d", burped.Humidity, burped.Quality)
	}
	if burped.BurpedToday {
		t.Fatalf("expected burp flag to reset at the day boundary")
	}
}

func TestCuringImprovesInsideBand(t *testing.T) {
	jar := NewCuringJar("haze", 80, 60)
	jar.Humidity = 62

	burped, err := Burp(jar)
	if err != nil {
		t.Fatalf("burp: %v", err)
	}
	next, err := burped.Advance(1)
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if next.Humidity != humidityEquilibrium || next.Quality != 61 {
		t.Fatalf("expected 58%% and quality 61, got %d%% and %d", next.Humidity, next.Quality)
	}
}

func TestBurpOncePerDay(t *testing.T) {
	jar, err := Burp(NewCuringJar("haze", 50, 70))
	if err != nil {
		t.Fatalf("burp: %v", err)
	}
	if _, err := Burp(jar); !errors.Is(err, ErrAlreadyBurped) {
		t.Fatalf("expected ErrAlreadyBurped, got %v", err)
	}

	jar, err = jar.Advance(1)
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if _, err := Burp(jar); err != nil {
		t.Fatalf("expected a new day to allow burping again, got %v", err)
	}
}

func TestDailyBurpingBeatsNeglect(t *testing.T) {
	tended := NewCuringJar("haze", 80, 60)
	neglected := tended

	for day := 0; day < 20; day++ {
		var err error
		tended, err = Burp(tended)
		if err != nil {
			t.Fatalf("burp day %d: %v", day, err)
		}
		if tended, err = tended.Advance(1); err != nil {
			t.Fatalf("advance: %v", err)
		}
		if neglected, err = neglected.Advance(1); err != nil {
			t.Fatalf("advance: %v", err)
		}
		if tended.Quality < 0 || tended.Quality > 100 || neglected.Quality < 0 || neglected.Quality > 100 {
			t.Fatalf("quality escaped 0..100 on day %d", day)
		}
	}

	if tended.Quality <= neglected.Quality {
		t.Fatalf("expected burped jar to cure better, got %d vs %d", tended.Quality, neglected.Quality)
	}
	if neglected.Humidity != 100 || neglected.Quality != 0 {
		t.Fatalf("expected sealed jar to saturate and spoil, got %d%% quality %d", neglected.Humidity, neglected.Quality)
	}
	if tended.DaysInJar != 20 {
		t.Fatalf("expected 20 days in jar, got %d", tended.DaysInJar)
	}
}

func TestCureProgressCapsAtOne(t *testing.T) {
	jar := NewCuringJar("haze", 10, 50)

	jar.DaysInJar = 14
	if got := jar.CureProgress(); got != 0.5 {
		t.Fatalf("expected half cured at 14 days, got %f", got)
	}
	jar.DaysInJar = 40
	if got := jar.CureProgress(); got != 1 {
		t.Fatalf("expected progress capped at 1, got %f", got)
	}
}

func TestSellRequiresAging(t *testing.T) {
	jar := NewCuringJar("northern_lights", 80, 50)
	jar.DaysInJar = 10

	sale, err := Sell(jar)
	if !errors.Is(err, ErrNotCured) {
		t.Fatalf("expected ErrNotCured, got %v", err)
	}
	var actErr *ActionError
	if !errors.As(err, &actErr) || actErr.DaysRemaining != 4 {
		t.Fatalf("expected 4 days remaining, got %v", err)
	}
	if sale != (Sale{}) {
		t.Fatalf("expected no sale, got %+v", sale)
	}

	jar.DaysInJar = MinSellDays
	sale, err = Sell(jar)
	if err != nil {
		t.Fatalf("sell: %v", err)
	}
	if sale.Revenue != 480 || sale.Score != 400 {
		t.Fatalf("expected revenue 480 score 400, got %.2f and %d", sale.Revenue, sale.Score)
	}
}

func TestCuringRejectsNegativeDays(t *testing.T) {
	jar := NewCuringJar("haze", 10, 50)
	got, err := jar.Advance(-2)
	if !errors.Is(err, ErrNegativeDays) {
		t.Fatalf("expected ErrNegativeDays, got %v", err)
	}
	if got != jar {
		t.Fatalf("expected jar unchanged")
	}
}

func TestBurpNeverRaisesDryJar(t *testing.T) {
	jar := NewCuringJar("haze", 80, 60)
	jar.Humidity = 50

	burped, err := Burp(jar)
	if err != nil {
		t.Fatalf("burp: %v", err)
	}
	burped, err = burped.Advance(1)
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if burped.Humidity != 50 {
		t.Fatalf("burped dry jar humidity = %d, want 50", burped.Humidity)
	}
}
