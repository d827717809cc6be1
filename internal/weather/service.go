// Package weather combines Open-Meteo conditions with Nominatim reverse
// geocoding into one dashboard report.
package weather

import (
	"context"
	"fmt"
	"log"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"finguard/internal/cache/memory"
)

// Report is the dashboard-facing environmental summary.
type Report struct {
	Temp         float64 `json:"temp"`
	Pressure     float64 `json:"pressure"`
	UVIndex      float64 `json:"uvi"`
	LocationName string  `json:"locationName"`
}

// coordKey buckets coordinates to ~11m so nearby lookups share cache
// entries.
type coordKey struct {
	Lat int64
	Lng int64
}

func keyFor(lat, lng float64) coordKey {
	return coordKey{Lat: int64(lat * 10000), Lng: int64(lng * 10000)}
}

// Service caches both adapters: readings age out quickly, place names
// effectively never change for a fixed farm.
type Service struct {
	meteo    *OpenMeteo
	geo      *Nominatim
	readings *memory.LRUTTL[coordKey, Reading]
	places   *lru.Cache[coordKey, string]
}

func NewService(meteo *OpenMeteo, geo *Nominatim) (*Service, error) {
	places, err := lru.New[coordKey, string](256)
	if err != nil {
		return nil, err
	}
	return &Service{
		meteo:    meteo,
		geo:      geo,
		readings: memory.NewLRUTTL[coordKey, Reading](256, 10*time.Minute),
		places:   places,
	}, nil
}

// Report fetches conditions and place name concurrently. A weather
// failure fails the report; a geocoding failure only degrades the place
// name to UnknownLocation.
func (s *Service) Report(ctx context.Context, lat, lng float64) (Report, error) {
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return Report{}, fmt.Errorf("weather: invalid coordinates %.4f, %.4f", lat, lng)
	}
	key := keyFor(lat, lng)

	type readingResult struct {
		r   Reading
		err error
	}
	readingCh := make(chan readingResult, 1)
	placeCh := make(chan string, 1)

	go func() {
		if cached, ok := s.readings.Get(key); ok {
			readingCh <- readingResult{r: cached}
			return
		}
		r, err := s.meteo.Fetch(ctx, lat, lng)
		if err == nil {
			s.readings.Add(key, r)
		}
		readingCh <- readingResult{r: r, err: err}
	}()
	go func() {
		if cached, ok := s.places.Get(key); ok {
			placeCh <- cached
			return
		}
		name, err := s.geo.ReverseGeocode(ctx, lat, lng)
		if err != nil {
			log.Printf("weather: reverse geocode failed: %v", err)
			placeCh <- UnknownLocation
			return
		}
		s.places.Add(key, name)
		placeCh <- name
	}()

	res := <-readingCh
	place := <-placeCh
	if res.err != nil {
		return Report{}, fmt.Errorf("weather: fetch conditions: %w", res.err)
	}
	return Report{
		Temp:         res.r.Temp,
		Pressure:     res.r.Pressure,
		UVIndex:      res.r.UVIndex,
		LocationName: place,
	}, nil
}
