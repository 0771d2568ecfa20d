package game

import "math"

// ClimateProfile describes the grow room's ambient conditions. SeasonDays of
// zero disables the seasonal swing.
type ClimateProfile struct {
	BaseTempC     float64 `json:"base_temp_c" mapstructure:"base_temp_c"`
	TempSwingC    float64 `json:"temp_swing_c" mapstructure:"temp_swing_c"`
	BaseHumidity  float64 `json:"base_humidity" mapstructure:"base_humidity"`
	HumiditySwing float64 `json:"humidity_swing" mapstructure:"humidity_swing"`
	SeasonDays    int     `json:"season_days" mapstructure:"season_days"`
}

func DefaultClimate() ClimateProfile {
	return ClimateProfile{
		BaseTempC:     23,
		TempSwingC:    4,
		BaseHumidity:  50,
		HumiditySwing: 8,
	}
}

// AmbientForDay is the deterministic ambient reading for a run day.
func AmbientForDay(seed int64, day int, profile ClimateProfile) Ambient {
	rng := dayRNG(seed, day, "ambient")

	temp := profile.BaseTempC + (rng.Float64()*2-1)*profile.TempSwingC/2
	humidity := profile.BaseHumidity + (rng.Float64()*2-1)*profile.HumiditySwing
	if profile.SeasonDays > 0 {
		phase := 2 * math.Pi * float64(day%profile.SeasonDays) / float64(profile.SeasonDays)
		temp += math.Sin(phase) * profile.TempSwingC
		humidity -= math.Sin(phase) * profile.HumiditySwing / 2
	}

	return Ambient{
		TemperatureC: math.Round(temp*10) / 10,
		Humidity:     clampFloat(math.Round(humidity*10)/10, 0, 100),
	}
}
