// Package config handles loading and validating middlemile configuration.
//
// This package manages:
//   - Loading configuration from YAML files
//   - Overriding with environment variables
//   - Validation of required fields
//   - Default value handling
//
// Secrets (the MQTT password and the InfluxDB token) should be supplied
// through MIDDLEMILE_MQTT_PASSWORD and MIDDLEMILE_INFLUXDB_TOKEN rather than
// written to the file.
//
// Usage:
//
//	cfg, err := config.Load("configs/config.yaml")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(cfg.ListenAddress())
package config
