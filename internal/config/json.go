package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StationJSONConfig mirrors [StationConfig] with json tags and a
// string-friendly [Duration] type so intervals can be written as "5m"
// in the config file.
type StationJSONConfig struct {
	Server struct {
		BaseURL        string   `json:"base_url"`
		Token          string   `json:"token"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Storage struct {
		DB struct {
			Path string `json:"path"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Sync struct {
		Interval      Duration `json:"interval"`
		ProbeInterval Duration `json:"probe_interval"`
	} `json:"sync,omitempty"`

	Event struct {
		OrgSlug   string `json:"org_slug"`
		EventSlug string `json:"event_slug"`
	} `json:"event,omitempty"`
}

func parseJSON(jsonFilePath string) (*StationConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StationJSONConfig
	if err = json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json config: %w", err)
	}

	cfg := &StationConfig{
		Server: Server{
			BaseURL:        jsonCfg.Server.BaseURL,
			Token:          jsonCfg.Server.Token,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Storage: Storage{
			DB: DB{
				Path: jsonCfg.Storage.DB.Path,
			},
		},
		Sync: Sync{
			Interval:      time.Duration(jsonCfg.Sync.Interval),
			ProbeInterval: time.Duration(jsonCfg.Sync.ProbeInterval),
		},
		Event: Event{
			OrgSlug:   jsonCfg.Event.OrgSlug,
			EventSlug: jsonCfg.Event.EventSlug,
		},
	}

	return cfg, nil
}

// Duration wraps time.Duration so JSON configs can use human-readable
// strings ("10s", "5m") as well as raw nanosecond numbers.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(data []byte) error {
	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}

	switch v := value.(type) {
	case float64:
		*d = Duration(time.Duration(v))
		return nil
	case string:
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("error parsing duration %q: %w", v, err)
		}
		*d = Duration(parsed)
		return nil
	default:
		return fmt.Errorf("invalid duration value: %v", value)
	}
}
