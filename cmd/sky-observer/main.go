package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/nosthrillz/follow-the-sun/pkg/config"
	"github.com/nosthrillz/follow-the-sun/pkg/mqtt"
)

// sky-observer is a development tool: it tails the sky context topics,
// optionally captures the traffic to a JSON file, and can publish a
// manual time override to scrub the display to any minute of the day.

type capturedMessage struct {
	Timestamp time.Time   `json:"timestamp"`
	Topic     string      `json:"topic"`
	Payload   interface{} `json:"payload"`
}

type capture struct {
	mu       sync.Mutex
	messages []capturedMessage
}

func (c *capture) add(topic string, payload []byte) {
	// Keep payloads as parsed JSON where possible so captures stay readable
	var body interface{}
	if err := json.Unmarshal(payload, &body); err != nil {
		body = string(payload)
	}

	c.mu.Lock()
	c.messages = append(c.messages, capturedMessage{
		Timestamp: time.Now(),
		Topic:     topic,
		Payload:   body,
	})
	c.mu.Unlock()
}

func (c *capture) save(path string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := json.MarshalIndent(c.messages, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal capture: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func (c *capture) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.messages)
}

func main() {
	cfg := config.NewConfig()
	cfg.ServiceName = "sky-observer"
	cfg.LoadFromEnv()

	override := pflag.String("override", "", "Publish a time override (minutes since midnight) and exit")
	clearOverride := pflag.Bool("clear-override", false, "Clear any active time override and exit")
	captureFile := pflag.String("capture-file", "", "Write captured context messages to this JSON file on exit")
	cfg.LoadFromFlags()

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	client := mqtt.NewClient(cfg, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := client.Connect(ctx); err != nil {
		cancel()
		logger.Error("Failed to connect to MQTT broker", "error", err)
		os.Exit(1)
	}
	cancel()
	defer client.Disconnect()

	// One-shot command modes
	if *clearOverride {
		if err := client.Publish(mqtt.TopicTimeOverride, 0, false, []byte("")); err != nil {
			logger.Error("Failed to clear time override", "error", err)
			os.Exit(1)
		}
		logger.Info("Time override cleared")
		return
	}
	if *override != "" {
		if err := client.Publish(mqtt.TopicTimeOverride, 0, false, []byte(*override)); err != nil {
			logger.Error("Failed to publish time override", "error", err)
			os.Exit(1)
		}
		logger.Info("Time override published", "minutes", *override)
		return
	}

	rec := &capture{}

	err := client.Subscribe(mqtt.TopicContextWildcard, 0, func(msg mqtt.Message) {
		rec.add(msg.Topic(), msg.Payload())
		logger.Info("Context message",
			"topic", msg.Topic(),
			"payload", string(msg.Payload()))
	})
	if err != nil {
		logger.Error("Failed to subscribe", "topic", mqtt.TopicContextWildcard, "error", err)
		os.Exit(1)
	}

	logger.Info("Observing sky context topics, Ctrl+C to stop", "topic", mqtt.TopicContextWildcard)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	if *captureFile != "" {
		if err := rec.save(*captureFile); err != nil {
			logger.Error("Failed to save capture", "file", *captureFile, "error", err)
			os.Exit(1)
		}
		logger.Info("Capture saved", "file", *captureFile, "messages", rec.count())
	}
}
