package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const defaultOpenMeteoBase = "https://api.open-meteo.com"

// Reading is one normalized environmental sample.
type Reading struct {
	Temp     float64 `json:"temp"`
	Pressure float64 `json:"pressure"`
	UVIndex  float64 `json:"uvi"`
}

// OpenMeteo fetches current conditions from the Open-Meteo forecast API.
type OpenMeteo struct {
	http    *http.Client
	baseURL string
}

func NewOpenMeteo(baseURL string) *OpenMeteo {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultOpenMeteoBase
	}
	return &OpenMeteo{
		http:    &http.Client{Timeout: 10 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

type openMeteoResp struct {
	Current struct {
		Temperature2m   float64 `json:"temperature_2m"`
		SurfacePressure float64 `json:"surface_pressure"`
		UVIndex         float64 `json:"uv_index"`
	} `json:"current"`
}

func (o *OpenMeteo) Fetch(ctx context.Context, lat, lng float64) (Reading, error) {
	url := fmt.Sprintf(
		"%s/v1/forecast?latitude=%.4f&longitude=%.4f&current=temperature_2m,surface_pressure,uv_index&timezone=auto",
		o.baseURL, lat, lng,
	)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Reading{}, err
	}
	resp, err := o.http.Do(req)
	if err != nil {
		return Reading{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Reading{}, fmt.Errorf("open-meteo: unexpected status %s", resp.Status)
	}
	var out openMeteoResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Reading{}, fmt.Errorf("open-meteo: decode: %w", err)
	}
	return Reading{
		Temp:     out.Current.Temperature2m,
		Pressure: out.Current.SurfacePressure,
		UVIndex:  out.Current.UVIndex,
	}, nil
}
