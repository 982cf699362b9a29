package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	log "github.com/sirupsen/logrus"
)

const applyTimeout = 5 * time.Second

// Subscriber feeds MQTT odometer messages into a Handler.
type Subscriber struct {
	client  mqtt.Client
	topic   string
	handler *Handler
}

// NewSubscriber prepares a subscriber; Start connects it.
func NewSubscriber(broker, clientID, topic string, handler *Handler) *Subscriber {
	if topic == "" {
		topic = DefaultTopic
	}
	s := &Subscriber{topic: topic, handler: handler}

	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectTimeout(10 * time.Second)
	// Subscriptions are not kept by the broker across reconnects.
	opts.SetOnConnectHandler(func(c mqtt.Client) {
		if token := c.Subscribe(s.topic, 1, s.onMessage); token.Wait() && token.Error() != nil {
			log.WithError(token.Error()).WithField("topic", s.topic).Error("MQTT subscribe failed")
			return
		}
		log.WithField("topic", s.topic).Info("Subscribed to odometer feed")
	})
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		log.WithError(err).Warn("MQTT connection lost")
	})
	s.client = mqtt.NewClient(opts)
	return s
}

// Start connects to the broker.
func (s *Subscriber) Start() error {
	token := s.client.Connect()
	if token.Wait() && token.Error() != nil {
		return fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}
	return nil
}

// Stop unsubscribes and disconnects.
func (s *Subscriber) Stop() {
	if s.client.IsConnected() {
		s.client.Unsubscribe(s.topic).WaitTimeout(time.Second)
	}
	s.client.Disconnect(250)
}

func (s *Subscriber) onMessage(_ mqtt.Client, msg mqtt.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), applyTimeout)
	defer cancel()

	truck, err := s.handler.Apply(ctx, msg.Topic(), msg.Payload())
	if err != nil {
		log.WithError(err).WithField("topic", msg.Topic()).Warn("Dropped odometer message")
		return
	}
	log.WithFields(log.Fields{
		"truck_id": truck.ID,
		"odometer": truck.CurrentOdometer,
	}).Debug("Odometer updated from feed")
}

// PublishTrip publishes a trip distance for a truck.
func PublishTrip(client mqtt.Client, truckID string, addedKm int) error {
	payload, err := json.Marshal(OdometerReading{AddedKm: &addedKm})
	if err != nil {
		return err
	}
	token := client.Publish(TopicFor(truckID), 1, false, payload)
	token.Wait()
	return token.Error()
}
