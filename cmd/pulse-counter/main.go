// Command pulse-counter counts falling edges on a GPIO input and prints the
// count once per reporting interval, resetting it after each report.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/sweeney/pulse-counter/internal/counter"
	"github.com/sweeney/pulse-counter/internal/gpio"
	"github.com/sweeney/pulse-counter/internal/mqtt"
	"github.com/sweeney/pulse-counter/internal/report"
	"github.com/sweeney/pulse-counter/internal/status"
	"github.com/sweeney/pulse-counter/internal/web"
)

// Exit codes.
const (
	exitInit     = 1
	exitRegister = 2
)

// Optional sinks are configured from the environment; the command takes no flags.
const (
	envMQTTBroker = "PULSE_MQTT_BROKER"
	envHTTPAddr   = "PULSE_HTTP_ADDR"
)

type config struct {
	Broker   string // empty disables MQTT
	HTTPAddr string // empty disables the status server
}

func readConfig() config {
	return config{
		Broker:   os.Getenv(envMQTTBroker),
		HTTPAddr: os.Getenv(envHTTPAddr),
	}
}

func main() {
	if err := run(gpio.NewRealInterrupter(), os.Stdout, readConfig()); err != nil {
		fmt.Fprintln(os.Stdout, fatalMessage(err))
		log.Printf("fatal: %v", err)
		os.Exit(exitCode(err))
	}
}

func run(hal gpio.Interrupter, out io.Writer, cfg config) error {
	var edges counter.Counter

	if err := gpio.Setup(hal, gpio.DefaultPin, gpio.EdgeFalling, edges.Increment); err != nil {
		return err
	}
	defer hal.Close()

	tracker := status.NewTracker(time.Now(), status.Config{
		Pin:        gpio.DefaultPin,
		Edge:       gpio.EdgeFalling.String(),
		IntervalMs: report.Interval.Milliseconds(),
		Broker:     cfg.Broker,
		HTTPAddr:   cfg.HTTPAddr,
	})

	var publisher mqtt.Publisher
	var mqttStatus mqtt.ConnectionStatus
	if cfg.Broker != "" {
		p := mqtt.NewRealPublisher(cfg.Broker)
		// The reporting loop must never wait on the broker.
		async := mqtt.NewAsyncPublisher(p, mqtt.DefaultQueueSize)
		defer async.Close()
		publisher, mqttStatus = async, p

		startup := mqtt.SystemEvent{
			Timestamp:  time.Now(),
			Event:      "STARTUP",
			Retained:   true,
			RawPayload: status.FormatStatusEvent(tracker.Snapshot(), "STARTUP"),
		}
		if err := publisher.PublishSystem(startup); err != nil {
			log.Printf("failed to publish startup event: %v", err)
		}
	}

	if cfg.HTTPAddr != "" {
		srv := web.New(cfg.HTTPAddr, tracker)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("http server error: %v", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		log.Printf("http status server listening on %s", cfg.HTTPAddr)
	}

	log.Printf("started: pin=%d edge=%s interval=%v", gpio.DefaultPin, gpio.EdgeFalling, report.Interval)

	ticker := time.NewTicker(report.Interval)
	defer ticker.Stop()

	return runLoop(report.NewReporter(&edges), out, publisher, mqttStatus, tracker, time.Now, ticker.C)
}

// runLoop emits one report per tick. It only returns if tick is closed,
// which the production ticker never is.
func runLoop(reporter *report.Reporter, out io.Writer, publisher mqtt.Publisher, mqttStatus mqtt.ConnectionStatus, tracker *status.Tracker, now func() time.Time, tick <-chan time.Time) error {
	for range tick {
		rep := reporter.Take(now())
		fmt.Fprintln(out, rep.Count)

		if tracker != nil {
			tracker.Update(reporter.Totals())
			if mqttStatus != nil {
				tracker.SetMQTTConnected(mqttStatus.IsConnected())
			}
		}

		if publisher != nil {
			if err := publisher.Publish(rep); err != nil {
				log.Printf("publish error: %v", err)
				// Don't stop reporting on publish failure
			}
		}
	}
	return nil
}

// exitCode maps a startup error to the process exit status.
func exitCode(err error) int {
	var regErr *gpio.RegisterError
	if errors.As(err, &regErr) {
		return exitRegister
	}
	return exitInit
}

// fatalMessage is the user-facing line printed for a startup error. It
// carries the platform error string.
func fatalMessage(err error) string {
	var initErr *gpio.InitError
	var regErr *gpio.RegisterError
	switch {
	case errors.As(err, &initErr):
		return fmt.Sprintf("Cannot setup GPIO: %v", initErr.Err)
	case errors.As(err, &regErr):
		return fmt.Sprintf("Cannot setup ISR: %v", regErr.Err)
	}
	return fmt.Sprintf("fatal: %v", err)
}
