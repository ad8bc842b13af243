package handler

import "github.com/nerrad567/middlemile/internal/device"

// Command names used for logging and metrics labels.
const (
	CommandRegisterDevice                = "register_device"
	CommandSaveDeviceTemperature         = "save_device_temperature"
	CommandRegisterDeviceGroup           = "register_device_group"
	CommandDeviceAverageTemperature      = "device_average_temperature"
	CommandDeviceGroupAverageTemperature = "device_group_average_temperature"
)

// Repository is the full capability set. memory.Store implements it.
type Repository interface {
	device.DevicePersist
	device.DeviceQuery
	device.DeviceGroupPersist
	device.DeviceGroupQuery
}

// Options configures NewSet. Every field is optional.
type Options struct {
	Logger   Logger
	Observer Observer
	Recorder SampleRecorder
}

// Set holds one instrumented handler per command and query.
type Set struct {
	RegisterDevice                Handler[device.RegisterDevice, RegisteredDevice]
	SaveDeviceTemperature         Handler[device.SaveDeviceTemperature, SavedTemperatures]
	RegisterDeviceGroup           Handler[device.RegisterDeviceGroup, *device.DeviceGroup]
	DeviceAverageTemperature      Handler[device.GetDeviceAverageTemperatureDuringPeriod, DeviceAverage]
	DeviceGroupAverageTemperature Handler[device.GetDeviceGroupAverageTemperatureDuringPeriod, []DeviceAverage]
}

// NewSet builds every handler over repo.
func NewSet(repo Repository, opts Options) *Set {
	logger := opts.Logger
	if logger == nil {
		logger = noopLogger{}
	}

	save := NewSaveDeviceTemperatureHandler(repo)
	save.SetLogger(logger)
	if opts.Recorder != nil {
		save.SetRecorder(opts.Recorder)
	}

	return &Set{
		RegisterDevice: Instrument[device.RegisterDevice, RegisteredDevice](
			CommandRegisterDevice, NewRegisterDeviceHandler(repo, repo), logger, opts.Observer),
		SaveDeviceTemperature: Instrument[device.SaveDeviceTemperature, SavedTemperatures](
			CommandSaveDeviceTemperature, save, logger, opts.Observer),
		RegisterDeviceGroup: Instrument[device.RegisterDeviceGroup, *device.DeviceGroup](
			CommandRegisterDeviceGroup, NewRegisterDeviceGroupHandler(repo), logger, opts.Observer),
		DeviceAverageTemperature: Instrument[device.GetDeviceAverageTemperatureDuringPeriod, DeviceAverage](
			CommandDeviceAverageTemperature, NewGetDeviceAverageTemperatureHandler(repo), logger, opts.Observer),
		DeviceGroupAverageTemperature: Instrument[device.GetDeviceGroupAverageTemperatureDuringPeriod, []DeviceAverage](
			CommandDeviceGroupAverageTemperature, NewGetDeviceGroupAverageTemperatureHandler(repo), logger, opts.Observer),
	}
}
