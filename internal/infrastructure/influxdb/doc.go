// Package influxdb mirrors saved temperature samples into InfluxDB.
//
// The in-memory store answers every query; InfluxDB is an optional secondary
// sink so that long histories can be charted with standard tooling. Client
// implements handler.SampleRecorder:
//
//	client, err := influxdb.Connect(cfg.InfluxDB)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//	handlers := handler.NewSet(store, handler.Options{Recorder: client})
//
// Each sample becomes one point:
//
//	device_temperature,device_group=A1,serial_number=C48302DDL temperature=-2i <checked_at>
//
// # Thread Safety
//
// All methods are safe for concurrent use. Writes are batched according to
// batch_size and flush_interval and never block the caller.
package influxdb
