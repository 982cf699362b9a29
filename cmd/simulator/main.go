package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	log "github.com/sirupsen/logrus"

	"github.com/ukydev/fleet-maintenance/internal/config"
	"github.com/ukydev/fleet-maintenance/internal/ingest"
	"github.com/ukydev/fleet-maintenance/internal/models"
)

// apiClient talks to the fleet maintenance REST API.
type apiClient struct {
	baseURL string
	http    *http.Client
}

func newAPIClient(baseURL string) *apiClient {
	return &apiClient{baseURL: baseURL, http: &http.Client{Timeout: 10 * time.Second}}
}

func (c *apiClient) send(method, path string, body interface{}) (*http.Response, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
	}
	req, err := http.NewRequest(method, c.baseURL+path, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.http.Do(req)
}

// create posts v and accepts both a fresh insert and an existing record.
func (c *apiClient) create(path string, v interface{}) (created bool, err error) {
	resp, err := c.send(http.MethodPost, path, v)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusCreated:
		return true, nil
	case http.StatusConflict:
		return false, nil
	default:
		return false, fmt.Errorf("POST %s failed with status: %d", path, resp.StatusCode)
	}
}

// seed loads the demo fleet. Records that already exist are left alone, so
// seeding twice is harmless.
func seed(c *apiClient) error {
	for _, client := range demoClients() {
		created, err := c.create("/clients", client)
		if err != nil {
			return err
		}
		log.WithFields(log.Fields{"client_id": client.ID, "created": created}).Info("Seeded client")
	}

	seededTrucks := make(map[string]bool)
	for _, truck := range demoTrucks() {
		created, err := c.create("/trucks", truck)
		if err != nil {
			return err
		}
		seededTrucks[truck.ID] = created
		log.WithFields(log.Fields{"truck_id": truck.ID, "plate": truck.PlateNumber, "created": created}).Info("Seeded truck")
	}

	// History is only replayed onto trucks created by this run.
	for _, record := range demoServices() {
		if !seededTrucks[record.TruckID] {
			continue
		}
		if _, err := c.create("/services", record); err != nil {
			return err
		}
	}
	return nil
}

func (c *apiClient) truckIDs() ([]string, error) {
	resp, err := c.send(http.MethodGet, "/trucks", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET /trucks failed with status: %d", resp.StatusCode)
	}

	var trucks []models.Truck
	if err := json.NewDecoder(resp.Body).Decode(&trucks); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	ids := make([]string, 0, len(trucks))
	for _, t := range trucks {
		ids = append(ids, t.ID)
	}
	return ids, nil
}

// tripSender reports a driven distance for one truck.
type tripSender interface {
	SendTrip(truckID string, addedKm int) error
}

type httpSender struct {
	api *apiClient
}

func (s httpSender) SendTrip(truckID string, addedKm int) error {
	resp, err := s.api.send(http.MethodPut, "/trucks/"+truckID+"/odometer", models.OdometerUpdate{AddedKm: addedKm})
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("odometer update failed with status: %d", resp.StatusCode)
	}
	return nil
}

type mqttSender struct {
	client mqtt.Client
}

func (s mqttSender) SendTrip(truckID string, addedKm int) error {
	return ingest.PublishTrip(s.client, truckID, addedKm)
}

// tripDistance returns a plausible single-trip distance in km.
func tripDistance(rng *rand.Rand) int {
	return 20 + rng.Intn(381) // 20-400 km
}

// simulate sends one trip per truck every interval until ctx is done. It
// returns the number of trips delivered.
func simulate(ctx context.Context, sender tripSender, truckIDs []string, interval time.Duration, rng *rand.Rand) int {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	sent := 0
	for {
		select {
		case <-ctx.Done():
			return sent
		case <-ticker.C:
			for _, id := range truckIDs {
				km := tripDistance(rng)
				if err := sender.SendTrip(id, km); err != nil {
					log.WithError(err).WithField("truck_id", id).Error("Failed to send trip")
					continue
				}
				sent++
				log.WithFields(log.Fields{"truck_id": id, "added_km": km}).Info("Sent trip")
			}
		}
	}
}

func main() {
	cfg := config.Load()

	apiURL := os.Getenv("API_BASE_URL")
	if apiURL == "" {
		apiURL = "http://localhost:8080/api"
	}

	interval := 5 * time.Second
	if v := os.Getenv("SIM_TICK_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 {
			interval = time.Duration(n) * time.Second
		}
	}

	api := newAPIClient(apiURL)
	if os.Getenv("SIM_SEED") == "true" {
		if err := seed(api); err != nil {
			log.WithError(err).Fatal("Failed to seed demo fleet")
		}
	}

	ids, err := api.truckIDs()
	if err != nil {
		log.WithError(err).Fatal("Failed to list trucks")
	}
	if len(ids) == 0 {
		log.Error("No trucks registered. Run with SIM_SEED=true or register trucks first. Exiting.")
		return
	}

	var sender tripSender = httpSender{api: api}
	transport := "http"
	if cfg.MQTTBroker != "" {
		opts := mqtt.NewClientOptions().AddBroker(cfg.MQTTBroker).SetClientID(cfg.MQTTClientID + "-simulator")
		client := mqtt.NewClient(opts)
		if token := client.Connect(); token.Wait() && token.Error() != nil {
			log.WithError(token.Error()).Fatal("Failed to connect to MQTT broker")
		}
		defer client.Disconnect(250)
		sender = mqttSender{client: client}
		transport = "mqtt"
	}

	log.WithFields(log.Fields{
		"trucks":    len(ids),
		"api_url":   apiURL,
		"interval":  interval,
		"transport": transport,
	}).Info("Starting odometer simulation")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	sent := simulate(ctx, sender, ids, interval, rand.New(rand.NewSource(time.Now().UnixNano())))
	log.WithField("trips", sent).Info("Simulation stopped")
}
