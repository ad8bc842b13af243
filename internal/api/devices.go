package api

import (
	"net/http"

	"github.com/nerrad567/middlemile/internal/schema"
)

// handleRegisterDevice creates a device inside an existing group.
//
// POST /devices {"serialNumber": "C1", "deviceGroupSerial": "A1"}
func (s *Server) handleRegisterDevice(w http.ResponseWriter, r *http.Request) {
	var body schema.RegisterDeviceBody
	if err := schema.DecodeJSON(r.Body, &body); err != nil {
		s.writeError(w, r, err)
		return
	}
	cmd, err := body.ToCommand()
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	registered, err := s.handlers.RegisterDevice.Handle(r.Context(), cmd)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeSuccess(w, schema.NewDeviceOut(registered.Device, registered.Group))
}

// handleSaveDeviceTemperature appends a telemetry batch.
//
// PATCH /devices {"serialNumber": "C1", "interval": 300,
// "temperatures": "FFFE0001", "registered_at": "2023-02-01 19:00:00"}
func (s *Server) handleSaveDeviceTemperature(w http.ResponseWriter, r *http.Request) {
	var body schema.SaveDeviceTemperatureBody
	if err := schema.DecodeJSON(r.Body, &body); err != nil {
		s.writeError(w, r, err)
		return
	}
	cmd, err := body.ToCommand()
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	saved, err := s.handlers.SaveDeviceTemperature.Handle(r.Context(), cmd)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeSuccess(w, schema.SavedTemperaturesOut{
		SerialNumber: saved.SerialNumber,
		SavedSamples: saved.SampleCount,
	})
}

// handleDeviceAverageTemperature averages one device over a window.
//
// GET /devices/temperature?serialNumber=C1&startDate=...&endDate=...
func (s *Server) handleDeviceAverageTemperature(w http.ResponseWriter, r *http.Request) {
	query, err := schema.DeviceAverageQuery(r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	avg, err := s.handlers.DeviceAverageTemperature.Handle(r.Context(), query)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeSuccess(w, schema.NewAverageTemperatureOut(avg.Device, avg.Average))
}
