package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

type Application struct {
	Host       string     `koanf:"host"`
	Database   Database   `koanf:"db"`
	Alerting   Alerting   `koanf:"alerting"`
	Forecast   Forecast   `koanf:"forecast"`
	Anomaly    Anomaly    `koanf:"anomaly"`
	Classifier Classifier `koanf:"classifier"`
	Notifier   Notifier   `koanf:"notifier"`
}

type Database struct {
	Host   string `koanf:"host"`
	Port   int    `koanf:"port"`
	User   string `koanf:"user"`
	Pass   string `koanf:"pass"`
	Name   string `koanf:"name"`
	Schema string `koanf:"schema"`
}

// Alerting holds the budget thresholds, both expressed as
// percentage-of-budget integers.
type Alerting struct {
	WarningThreshold  int `koanf:"warningthreshold"`
	CriticalThreshold int `koanf:"criticalthreshold"`
}

type Forecast struct {
	LookbackDays int `koanf:"lookbackdays"`
	WindowDays   int `koanf:"windowdays"`
}

type Anomaly struct {
	LookbackDays int `koanf:"lookbackdays"`
}

// Classifier configures the optional external category classifier.
// An empty URL means the keyword fallback is the only strategy.
type Classifier struct {
	URL            string `koanf:"url"`
	TimeoutSeconds int    `koanf:"timeoutseconds"`
}

// Notifier configures alert delivery. An empty webhook URL means
// alerts are only written to the log.
type Notifier struct {
	WebhookURL    string `koanf:"webhookurl"`
	WebhookSecret string `koanf:"webhooksecret"`
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Application{
		Host: "http://localhost:3000",
		Database: Database{
			Host:   "localhost",
			Port:   5432,
			User:   "expenser",
			Pass:   "",
			Name:   "expenser",
			Schema: "expenser",
		},
		Alerting: Alerting{
			WarningThreshold:  80,
			CriticalThreshold: 100,
		},
		Forecast: Forecast{
			LookbackDays: 30,
			WindowDays:   30,
		},
		Anomaly: Anomaly{
			LookbackDays: 30,
		},
		Classifier: Classifier{
			TimeoutSeconds: 5,
		},
	}, "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: "EXPENSER_",
		TransformFunc: func(k, v string) (string, any) {
			// Transform the key.
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "EXPENSER_")), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}

	if err := app.Alerting.Validate(); err != nil {
		return Application{}, err
	}

	return app, nil
}

// Validate checks threshold ordering once at startup, so the alert engine
// can assume warning < critical.
func (a Alerting) Validate() error {
	if a.WarningThreshold <= 0 || a.CriticalThreshold <= 0 {
		return fmt.Errorf("alert thresholds must be positive (warning=%d, critical=%d)", a.WarningThreshold, a.CriticalThreshold)
	}
	if a.WarningThreshold >= a.CriticalThreshold {
		return fmt.Errorf("warning threshold (%d) must be below critical threshold (%d)", a.WarningThreshold, a.CriticalThreshold)
	}
	return nil
}
