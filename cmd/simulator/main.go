package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"net/http"
	"os"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"
)

// Location represents a geographical position reported by a field unit.
type Location struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Resource mirrors the server-side resource record for registration.
type Resource struct {
	Kind      string   `json:"kind"`
	Name      string   `json:"name"`
	Subtype   string   `json:"subtype"`
	IsActive  bool     `json:"is_active"`
	Expertise []string `json:"expertise,omitempty"`
	Capacity  int      `json:"capacity,omitempty"`
	FuelLevel float64  `json:"fuel_level,omitempty"`
}

// LocationPing is one position report posted to the ingest endpoint.
type LocationPing struct {
	ResourceID string  `json:"resource_id"`
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
}

// Newsroom bases the simulated units roam around. Metro-scale spread keeps
// the proximity bonuses meaningful.
var bases = []Location{
	{Lat: 51.5074, Lon: -0.1278}, // central London
	{Lat: 51.5416, Lon: -0.0042}, // Stratford
	{Lat: 51.4816, Lon: -0.1910}, // Fulham
	{Lat: 51.5560, Lon: -0.2795}, // Wembley
	{Lat: 51.4700, Lon: -0.4543}, // Heathrow
	{Lat: 51.5033, Lon: 0.0098},  // Greenwich peninsula
}

func jitterLocation(base Location, meters float64) Location {
	latMetersPerDeg := 111320.0
	lonMetersPerDeg := 111320.0 * math.Cos(base.Lat*math.Pi/180)
	dLat := (rand.Float64()*2 - 1) * (meters / latMetersPerDeg)
	dLon := (rand.Float64()*2 - 1) * (meters / lonMetersPerDeg)
	return Location{Lat: base.Lat + dLat, Lon: base.Lon + dLon}
}

var authToken string

func authorizedPost(url string, body *bytes.Buffer) (*http.Response, error) {
	req, err := http.NewRequest(http.MethodPost, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if authToken != "" {
		req.Header.Set("Authorization", "Bearer "+authToken)
	}
	client := &http.Client{Timeout: 10 * time.Second}
	return client.Do(req)
}

func login(apiURL, username, password string) error {
	creds := map[string]string{"username": username, "password": password}
	data, _ := json.Marshal(creds)
	resp, err := authorizedPost(apiURL+"/auth/login", bytes.NewBuffer(data))
	if err != nil {
		return fmt.Errorf("login request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("login failed with status: %d", resp.StatusCode)
	}
	var result struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("failed to decode login response: %w", err)
	}
	authToken = result.Token
	return nil
}

func createResource(apiURL string, resource Resource) (string, error) {
	data, err := json.Marshal(resource)
	if err != nil {
		return "", fmt.Errorf("failed to marshal resource: %w", err)
	}
	resp, err := authorizedPost(apiURL+"/resources", bytes.NewBuffer(data))
	if err != nil {
		return "", fmt.Errorf("failed to create resource: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("resource creation failed with status: %d", resp.StatusCode)
	}
	var result map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	id := result["id"]
	if id == "" {
		return "", fmt.Errorf("no resource ID in response")
	}
	log.WithFields(log.Fields{
		"resource_id": id,
		"kind":        resource.Kind,
		"subtype":     resource.Subtype,
	}).Info("Created resource")
	return id, nil
}

func randomResource(i int) Resource {
	switch i % 3 {
	case 0:
		roles := []string{"photographer", "reporter", "camera-operator"}
		pools := [][]string{
			{"breaking-news", "sports"},
			{"politics", "breaking-news"},
			{"sports", "culture"},
		}
		pick := rand.Intn(len(roles))
		return Resource{
			Kind:      "personnel",
			Name:      fmt.Sprintf("sim-crew-%d", i),
			Subtype:   roles[pick],
			IsActive:  true,
			Expertise: pools[pick],
		}
	case 1:
		types := []string{"camera", "drone", "audio-kit"}
		return Resource{
			Kind:    "equipment",
			Name:    fmt.Sprintf("sim-kit-%d", i),
			Subtype: types[rand.Intn(len(types))],
		}
	default:
		return Resource{
			Kind:      "vehicle",
			Name:      fmt.Sprintf("sim-van-%d", i),
			Subtype:   "news-van",
			Capacity:  2 + rand.Intn(5),
			FuelLevel: 40 + rand.Float64()*60,
		}
	}
}

type unitState struct {
	resourceID string
	position   Location
}

func main() {
	apiURL := os.Getenv("API_URL")
	if apiURL == "" {
		apiURL = "http://localhost:8080/api"
	}
	count := 6
	if v := os.Getenv("UNIT_COUNT"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			count = parsed
		}
	}
	interval := 15 * time.Second
	if v := os.Getenv("PING_INTERVAL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil && parsed >= time.Second {
			interval = parsed
		}
	}

	username := os.Getenv("SIM_USERNAME")
	password := os.Getenv("SIM_PASSWORD")
	if username != "" {
		if err := login(apiURL, username, password); err != nil {
			log.WithError(err).Fatal("simulator login failed")
		}
	}

	units := make([]unitState, 0, count)
	for i := 0; i < count; i++ {
		id, err := createResource(apiURL, randomResource(i))
		if err != nil {
			log.WithError(err).Fatal("failed to register simulated resource")
		}
		base := bases[rand.Intn(len(bases))]
		units = append(units, unitState{resourceID: id, position: jitterLocation(base, 500)})
	}

	log.WithFields(log.Fields{"units": len(units), "interval": interval.String()}).Info("simulator running")
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for range ticker.C {
		for i := range units {
			units[i].position = jitterLocation(units[i].position, 800)
			ping := LocationPing{
				ResourceID: units[i].resourceID,
				Lat:        units[i].position.Lat,
				Lon:        units[i].position.Lon,
			}
			data, _ := json.Marshal(ping)
			resp, err := authorizedPost(apiURL+"/resources/location", bytes.NewBuffer(data))
			if err != nil {
				log.WithError(err).Warn("location ping failed")
				continue
			}
			resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				log.WithField("status", resp.StatusCode).Warn("location ping rejected")
			}
		}
	}
}
