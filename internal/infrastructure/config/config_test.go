package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	path := writeConfig(t, `
api:
  host: "127.0.0.1"
  port: 8080
mqtt:
  enabled: true
  broker:
    host: "broker.local"
    port: 1883
    client_id: "test-client"
  qos: 1
  ingest:
    enabled: true
    topic: "plant/+/temperature"
influxdb:
  enabled: true
  url: "http://influx:8086"
  org: "acme"
  bucket: "telemetry"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if got := cfg.ListenAddress(); got != "127.0.0.1:8080" {
		t.Errorf("ListenAddress() = %q, want %q", got, "127.0.0.1:8080")
	}
	if cfg.MQTT.Broker.Host != "broker.local" {
		t.Errorf("MQTT.Broker.Host = %q, want %q", cfg.MQTT.Broker.Host, "broker.local")
	}
	if cfg.MQTT.Ingest.Topic != "plant/+/temperature" {
		t.Errorf("MQTT.Ingest.Topic = %q", cfg.MQTT.Ingest.Topic)
	}
	if cfg.InfluxDB.Org != "acme" {
		t.Errorf("InfluxDB.Org = %q, want %q", cfg.InfluxDB.Org, "acme")
	}
	// Values absent from the file keep their defaults.
	if cfg.InfluxDB.BatchSize != 100 {
		t.Errorf("InfluxDB.BatchSize = %d, want default 100", cfg.InfluxDB.BatchSize)
	}
	if cfg.Metrics.Path != "/metrics" {
		t.Errorf("Metrics.Path = %q, want default /metrics", cfg.Metrics.Path)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := cfg.ListenAddress(); got != "0.0.0.0:80" {
		t.Errorf("ListenAddress() = %q, want 0.0.0.0:80", got)
	}
	if cfg.MQTT.Enabled || cfg.InfluxDB.Enabled {
		t.Error("external integrations must be disabled by default")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "invalid: [yaml: content")

	if _, err := Load(path); err == nil {
		t.Error("Load() expected error for invalid YAML, got nil")
	}
}

func TestLoad_ValidationFailure(t *testing.T) {
	path := writeConfig(t, `
api:
  port: 70000
`)

	if _, err := Load(path); err == nil {
		t.Error("Load() expected validation error for api.port, got nil")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `
api:
  port: 8080
`)
	t.Setenv("MIDDLEMILE_API_PORT", "9090")
	t.Setenv("MIDDLEMILE_MQTT_ENABLED", "true")
	t.Setenv("MIDDLEMILE_MQTT_HOST", "mqtt.example")
	t.Setenv("MIDDLEMILE_INFLUXDB_TOKEN", "secret-token")
	t.Setenv("MIDDLEMILE_LOG_LEVEL", "debug")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.API.Port != 9090 {
		t.Errorf("API.Port = %d, want 9090", cfg.API.Port)
	}
	if !cfg.MQTT.Enabled || cfg.MQTT.Broker.Host != "mqtt.example" {
		t.Errorf("MQTT = %+v, want enabled with host mqtt.example", cfg.MQTT)
	}
	if cfg.InfluxDB.Token != "secret-token" {
		t.Error("InfluxDB.Token was not overridden")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
}

func TestLoad_ServerIPPort(t *testing.T) {
	t.Setenv("MIDDLEMILE_API_PORT", "9090")
	t.Setenv("SERVER_IP_PORT", "127.0.0.1:3000")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := cfg.ListenAddress(); got != "127.0.0.1:3000" {
		t.Errorf("ListenAddress() = %q, want 127.0.0.1:3000", got)
	}
}

func TestLoad_MalformedOverrides(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"MIDDLEMILE_API_PORT", "eighty"},
		{"MIDDLEMILE_MQTT_ENABLED", "sometimes"},
		{"SERVER_IP_PORT", "no-port"},
		{"SERVER_IP_PORT", "0.0.0.0:http"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
			if err == nil || !strings.Contains(err.Error(), tt.key) {
				t.Errorf("Load() error = %v, want error naming %s", err, tt.key)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(*Config) {},
		},
		{
			name:    "port out of range",
			mutate:  func(c *Config) { c.API.Port = 0 },
			wantErr: "api.port",
		},
		{
			name:    "qos out of range",
			mutate:  func(c *Config) { c.MQTT.QoS = 3 },
			wantErr: "mqtt.qos",
		},
		{
			name: "mqtt enabled without host",
			mutate: func(c *Config) {
				c.MQTT.Enabled = true
				c.MQTT.Broker.Host = ""
			},
			wantErr: "mqtt.broker.host",
		},
		{
			name: "ingest without topic",
			mutate: func(c *Config) {
				c.MQTT.Enabled = true
				c.MQTT.Ingest.Topic = ""
			},
			wantErr: "mqtt.ingest.topic",
		},
		{
			name:    "influx enabled without org",
			mutate:  func(c *Config) { c.InfluxDB.Enabled = true },
			wantErr: "influxdb.org",
		},
		{
			name:    "relative metrics path",
			mutate:  func(c *Config) { c.Metrics.Path = "metrics" },
			wantErr: "metrics.path",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_ValidateCollectsAllErrors(t *testing.T) {
	cfg := Default()
	cfg.API.Port = -1
	cfg.MQTT.QoS = 9

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() expected error")
	}
	for _, want := range []string{"api.port", "mqtt.qos"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err, want)
		}
	}
}

func TestConfig_Timeouts(t *testing.T) {
	cfg := Default()

	if got := cfg.GetReadTimeout(); got != 30*time.Second {
		t.Errorf("GetReadTimeout() = %v, want 30s", got)
	}
	if got := cfg.GetWriteTimeout(); got != 30*time.Second {
		t.Errorf("GetWriteTimeout() = %v, want 30s", got)
	}
	if got := cfg.GetIdleTimeout(); got != 60*time.Second {
		t.Errorf("GetIdleTimeout() = %v, want 60s", got)
	}
}
