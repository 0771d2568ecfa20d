package game

import (
	"fmt"
	"math"
)

// MinSellDays is the aging gate: a jar cannot be sold before it.
const MinSellDays = 14

// FullCureDays only drives progress display.
const FullCureDays = 28

const (
	startingJarHumidity = 75
	humidityEquilibrium = 58
	burpHumidityDrop    = 4
	sealedHumidityRise  = 2
	optimalHumidityLow  = 55
	optimalHumidityHigh = 70
	mouldHumidity       = 80
	curedQualityPerDay  = 1
	humidityLossDivisor = 5
	mouldQualityPenalty = 2
	pricePerGram        = 12.0
)

// CuringJar is the post-harvest artifact. Like Plant it is a value and every
// operation returns an updated copy.
type CuringJar struct {
	ID             int    `json:"id"`
	StrainID       string `json:"strain_id"`
	Grams          int    `json:"grams"`
	InitialQuality int    `json:"initial_quality"`
	Quality        int    `json:"current_quality"`
	DaysInJar      int    `json:"days_in_jar"`
	Humidity       int    `json:"humidity"`
	BurpedToday    bool   `json:"is_burped_today"`
}

func NewCuringJar(strainID string, grams, quality int) CuringJar {
	quality = clamp(quality, 0, 100)
	return CuringJar{
		StrainID:       strainID,
		Grams:          max(0, grams),
		InitialQuality: quality,
		Quality:        quality,
		Humidity:       startingJarHumidity,
	}
}

func (j CuringJar) Sellable() bool {
	return j.DaysInJar >= MinSellDays
}

func (j CuringJar) DaysUntilSellable() int {
	return max(0, MinSellDays-j.DaysInJar)
}

// CureProgress is the fraction of the full cure reached, capped at 1.
func (j CuringJar) CureProgress() float64 {
	return math.Min(1, float64(j.DaysInJar)/FullCureDays)
}

func (j CuringJar) HumidityInBand() bool {
	return j.Humidity >= optimalHumidityLow && j.Humidity <= optimalHumidityHigh
}

// Advance crosses days day-boundaries. The burp flag only affects the first
// boundary because it is cleared at every boundary.
func (j CuringJar) Advance(days int) (CuringJar, error) {
	if days < 0 {
		return j, &ActionError{Action: "cure", Err: ErrNegativeDays}
	}
	for i := 0; i < days; i++ {
		j = j.endDay()
	}
	return j, nil
}

func (j CuringJar) endDay() CuringJar {
	if j.BurpedToday {
		if j.Humidity > humidityEquilibrium {
			j.Humidity = max(humidityEquilibrium, j.Humidity-burpHumidityDrop)
		}
	} else {
		j.Humidity += sealedHumidityRise
	}
	j.Humidity = clamp(j.Humidity, 0, 100)

	if j.HumidityInBand() {
		j.Quality += curedQualityPerDay
	} else {
		dev := optimalHumidityLow - j.Humidity
		if j.Humidity > optimalHumidityHigh {
			dev = j.Humidity - optimalHumidityHigh
		}
		j.Quality -= 1 + dev/humidityLossDivisor
		if j.Humidity > mouldHumidity {
			j.Quality -= mouldQualityPenalty
		}
	}
	j.Quality = clamp(j.Quality, 0, 100)

	j.DaysInJar++
	j.BurpedToday = false
	return j
}

// Burp vents the jar once per day.
func Burp(j CuringJar) (CuringJar, error) {
	if j.BurpedToday {
		return j, actionErr("burp", ErrAlreadyBurped, "")
	}
	j.BurpedToday = true
	return j, nil
}

type Sale struct {
	StrainID string  `json:"strain_id"`
	Grams    int     `json:"grams"`
	Quality  int     `json:"quality"`
	Revenue  float64 `json:"revenue"`
	Score    int     `json:"score"`
}

// Sell turns an aged jar into revenue. The caller drops the jar on success.
func Sell(j CuringJar) (Sale, error) {
	if !j.Sellable() {
		return Sale{}, &ActionError{
			Action:        "sell",
			Reason:        fmt.Sprintf("sellable in %d days", j.DaysUntilSellable()),
			DaysRemaining: j.DaysUntilSellable(),
			Err:           ErrNotCured,
		}
	}
	revenue := float64(j.Grams) * pricePerGram * float64(j.Quality) / 100
	return Sale{
		StrainID: j.StrainID,
		Grams:    j.Grams,
		Quality:  j.Quality,
		Revenue:  math.Round(revenue*100) / 100,
		Score:    j.Grams * j.Quality / 10,
	}, nil
}
