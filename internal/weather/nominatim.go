package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const defaultNominatimBase = "https://nominatim.openstreetmap.org"

// UnknownLocation is the reverse-geocode fallback name.
const UnknownLocation = "Unknown Location"

// Nominatim resolves coordinates to a human place name via OpenStreetMap.
type Nominatim struct {
	http    *http.Client
	baseURL string
}

func NewNominatim(baseURL string) *Nominatim {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultNominatimBase
	}
	return &Nominatim{
		http:    &http.Client{Timeout: 10 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

type nominatimResp struct {
	Address struct {
		City          string `json:"city"`
		Town          string `json:"town"`
		Village       string `json:"village"`
		Suburb        string `json:"suburb"`
		StateDistrict string `json:"state_district"`
	} `json:"address"`
}

// ReverseGeocode returns the best-effort place name: city, town, village,
// suburb, or district; UnknownLocation when nothing matches.
func (n *Nominatim) ReverseGeocode(ctx context.Context, lat, lng float64) (string, error) {
	url := fmt.Sprintf("%s/reverse?format=json&lat=%.4f&lon=%.4f&zoom=10", n.baseURL, lat, lng)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept-Language", "en")

	resp, err := n.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("nominatim: unexpected status %s", resp.Status)
	}
	var out nominatimResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("nominatim: decode: %w", err)
	}
	a := out.Address
	for _, name := range []string{a.City, a.Town, a.Village, a.Suburb, a.StateDistrict} {
		if strings.TrimSpace(name) != "" {
			return name, nil
		}
	}
	return UnknownLocation, nil
}
