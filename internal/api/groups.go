package api

import (
	"net/http"

	"github.com/nerrad567/middlemile/internal/schema"
)

// handleRegisterDeviceGroup creates a device group.
//
// POST /device_groups {"deviceGroupSerial": "A1"}
func (s *Server) handleRegisterDeviceGroup(w http.ResponseWriter, r *http.Request) {
	var body schema.RegisterDeviceGroupBody
	if err := schema.DecodeJSON(r.Body, &body); err != nil {
		s.writeError(w, r, err)
		return
	}
	cmd, err := body.ToCommand()
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	group, err := s.handlers.RegisterDeviceGroup.Handle(r.Context(), cmd)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeSuccess(w, schema.NewDeviceGroupOut(group))
}

// handleDeviceGroupAverageTemperature averages every device in a group.
//
// GET /device_groups/temperature?deviceGroupSerial=A1&startDate=...&endDate=...
func (s *Server) handleDeviceGroupAverageTemperature(w http.ResponseWriter, r *http.Request) {
	query, err := schema.DeviceGroupAverageQuery(r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	averages, err := s.handlers.DeviceGroupAverageTemperature.Handle(r.Context(), query)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	out := make([]schema.AverageTemperatureOut, 0, len(averages))
	for _, a := range averages {
		out = append(out, schema.NewAverageTemperatureOut(a.Device, a.Average))
	}
	writeSuccess(w, out)
}
