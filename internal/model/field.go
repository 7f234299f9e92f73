package model

import (
	"math"
	"time"
)

type Dataset string

const (
	DatasetStuder  Dataset = "studer"
	DatasetEnphase Dataset = "enphase"
	DatasetWeather Dataset = "weather"
)

// FieldType identifies a logical field independent of the column name used by
// a particular export.
type FieldType string

const (
	FieldGridVoltageL1      FieldType = "grid_voltage_l1"
	FieldGridVoltageL2      FieldType = "grid_voltage_l2"
	FieldGridVoltageL3      FieldType = "grid_voltage_l3"
	FieldGridFrequencyL1    FieldType = "grid_frequency_l1"
	FieldGridFrequencyL2    FieldType = "grid_frequency_l2"
	FieldGridFrequencyL3    FieldType = "grid_frequency_l3"
	FieldGridStatusL1       FieldType = "grid_status_l1"
	FieldGridStatusL2       FieldType = "grid_status_l2"
	FieldGridStatusL3       FieldType = "grid_status_l3"
	FieldGridNetL1          FieldType = "grid_net_l1"
	FieldGridNetL2          FieldType = "grid_net_l2"
	FieldGridNetL3          FieldType = "grid_net_l3"
	FieldBatterySOC         FieldType = "battery_soc"
	FieldBatteryTemperature FieldType = "battery_temperature"

	FieldEnergyProduced FieldType = "energy_produced"
	FieldEnergyConsumed FieldType = "energy_consumed"
	FieldEnergyExported FieldType = "energy_exported"
	FieldEnergyImported FieldType = "energy_imported"

	FieldTemperature FieldType = "temp"
	FieldFeelsLike   FieldType = "feels_like"
	FieldTempMin     FieldType = "temp_min"
	FieldTempMax     FieldType = "temp_max"
	FieldVisibility  FieldType = "visibility"
	FieldDewPoint    FieldType = "dew_point"
	FieldHumidity    FieldType = "humidity"
	FieldClouds      FieldType = "clouds_all"
)

// FieldInfo holds display name and unit for a field type.
type FieldInfo struct {
	Name string
	Unit string
}

// FieldCatalog maps every known FieldType to its display name and unit.
var FieldCatalog = map[FieldType]FieldInfo{
	FieldGridVoltageL1:      {Name: "Grid Input Voltage L1", Unit: "V"},
	FieldGridVoltageL2:      {Name: "Grid Input Voltage L2", Unit: "V"},
	FieldGridVoltageL3:      {Name: "Grid Input Voltage L3", Unit: "V"},
	FieldGridFrequencyL1:    {Name: "Grid Input Frequency L1", Unit: "Hz"},
	FieldGridFrequencyL2:    {Name: "Grid Input Frequency L2", Unit: "Hz"},
	FieldGridFrequencyL3:    {Name: "Grid Input Frequency L3", Unit: "Hz"},
	FieldGridStatusL1:       {Name: "Grid Status L1", Unit: ""},
	FieldGridStatusL2:       {Name: "Grid Status L2", Unit: ""},
	FieldGridStatusL3:       {Name: "Grid Status L3", Unit: ""},
	FieldGridNetL1:          {Name: "Grid Net Export/Import L1", Unit: "kWh"},
	FieldGridNetL2:          {Name: "Grid Net Export/Import L2", Unit: "kWh"},
	FieldGridNetL3:          {Name: "Grid Net Export/Import L3", Unit: "kWh"},
	FieldBatterySOC:         {Name: "Battery State of Charge", Unit: "%"},
	FieldBatteryTemperature: {Name: "Battery Internal Temperature", Unit: "°C"},
	FieldEnergyProduced:     {Name: "Energy Produced", Unit: "Wh"},
	FieldEnergyConsumed:     {Name: "Energy Consumed", Unit: "Wh"},
	FieldEnergyExported:     {Name: "Exported to Grid", Unit: "Wh"},
	FieldEnergyImported:     {Name: "Imported from Grid", Unit: "Wh"},
	FieldTemperature:        {Name: "Temperature", Unit: "K"},
	FieldFeelsLike:          {Name: "Feels Like", Unit: "K"},
	FieldTempMin:            {Name: "Minimum Temperature", Unit: "K"},
	FieldTempMax:            {Name: "Maximum Temperature", Unit: "K"},
	FieldVisibility:         {Name: "Visibility", Unit: "m"},
	FieldDewPoint:           {Name: "Dew Point", Unit: "°C"},
	FieldHumidity:           {Name: "Humidity", Unit: "%"},
	FieldClouds:             {Name: "Cloud Cover", Unit: "%"},
}

type TimeRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// IsZero reports whether the range has never been set.
func (tr TimeRange) IsZero() bool {
	return tr.Start.IsZero() && tr.End.IsZero()
}

// Days returns the number of calendar days touched by the range.
func (tr TimeRange) Days() int {
	if tr.IsZero() || tr.End.Before(tr.Start) {
		return 0
	}
	start := time.Date(tr.Start.Year(), tr.Start.Month(), tr.Start.Day(), 0, 0, 0, 0, tr.Start.Location())
	end := time.Date(tr.End.Year(), tr.End.Month(), tr.End.Day(), 0, 0, 0, 0, tr.Start.Location())
	return int(math.Round(end.Sub(start).Hours()/24)) + 1
}
