package config

// Phase holds the column names of one quantity measured on the three phases.
type Phase struct {
	L1 string
	L2 string
	L3 string
}

// Names returns the phase columns in L1, L2, L3 order.
func (p Phase) Names() []string {
	return []string{p.L1, p.L2, p.L3}
}

// Columns is the column vocabulary the calculators depend on. Source exports
// that rename fields only need a different Columns value.
type Columns struct {
	Timestamp string

	GridVoltage     Phase
	GridFrequency   Phase
	GridStatus      Phase
	GridNetExchange Phase

	BatterySOC         string
	BatteryTemperature string

	// StuderLayout names the positional fields of a Studer export row after
	// the two trailing fields are dropped.
	StuderLayout []string

	EnphaseTimestamp string
	EnphaseEnergy    []string

	WeatherTimestamp string
	WeatherNumeric   []string
	WeatherText      []string
}

func DefaultColumns() Columns {
	c := Columns{
		Timestamp: "Timestamp",
		GridVoltage: Phase{
			L1: "Grid Input Voltage - L1",
			L2: "Grid Input Voltage - L2",
			L3: "Grid Input Voltage - L3",
		},
		GridFrequency: Phase{
			L1: "Grid Input Frequency - L1",
			L2: "Grid Input Frequency - L2",
			L3: "Grid Input Frequency - L3",
		},
		GridStatus: Phase{
			L1: "Studer Grid Status - L1",
			L2: "Studer Grid Status - L2",
			L3: "Studer Grid Status - L3",
		},
		GridNetExchange: Phase{
			L1: "Studer Grid Net Export/Import - L1-1",
			L2: "Studer Grid Net Export/Import - L2-2",
			L3: "Studer Grid Net Export/Import - L3-3",
		},
		BatterySOC:         "Battery State of Charge",
		BatteryTemperature: "Battery Internal Temperature",

		EnphaseTimestamp: "Date/Time",
		EnphaseEnergy: []string{
			"Energy Produced (Wh)",
			"Energy Consumed (Wh)",
			"Exported to Grid (Wh)",
			"Imported from Grid (Wh)",
		},

		WeatherTimestamp: "dt",
		WeatherNumeric: []string{
			"temp", "feels_like", "temp_min", "temp_max", "visibility",
			"dew_point", "pressure", "humidity", "wind_speed", "clouds_all", "weather_id",
		},
		WeatherText: []string{"weather_main", "weather_description"},
	}
	c.StuderLayout = c.defaultStuderLayout()
	return c
}

func (c Columns) defaultStuderLayout() []string {
	layout := []string{c.Timestamp}
	layout = append(layout, c.GridVoltage.Names()...)
	layout = append(layout, c.GridFrequency.Names()...)
	layout = append(layout, "Battery Voltage", c.BatterySOC, c.BatteryTemperature, "Solar Power")
	layout = append(layout, c.GridStatus.Names()...)
	layout = append(layout, c.GridNetExchange.Names()...)
	return layout
}

// columnsFromEnv applies per-column overrides. The Studer layout is rebuilt
// so renamed columns keep their positions.
func columnsFromEnv(c Columns) Columns {
	c.GridVoltage.L1 = getEnv("COLUMN_GRID_VOLTAGE_L1", c.GridVoltage.L1)
	c.GridVoltage.L2 = getEnv("COLUMN_GRID_VOLTAGE_L2", c.GridVoltage.L2)
	c.GridVoltage.L3 = getEnv("COLUMN_GRID_VOLTAGE_L3", c.GridVoltage.L3)
	c.GridFrequency.L1 = getEnv("COLUMN_GRID_FREQUENCY_L1", c.GridFrequency.L1)
	c.GridFrequency.L2 = getEnv("COLUMN_GRID_FREQUENCY_L2", c.GridFrequency.L2)
	c.GridFrequency.L3 = getEnv("COLUMN_GRID_FREQUENCY_L3", c.GridFrequency.L3)
	c.GridStatus.L1 = getEnv("COLUMN_GRID_STATUS_L1", c.GridStatus.L1)
	c.GridStatus.L2 = getEnv("COLUMN_GRID_STATUS_L2", c.GridStatus.L2)
	c.GridStatus.L3 = getEnv("COLUMN_GRID_STATUS_L3", c.GridStatus.L3)
	c.GridNetExchange.L1 = getEnv("COLUMN_GRID_NET_L1", c.GridNetExchange.L1)
	c.GridNetExchange.L2 = getEnv("COLUMN_GRID_NET_L2", c.GridNetExchange.L2)
	c.GridNetExchange.L3 = getEnv("COLUMN_GRID_NET_L3", c.GridNetExchange.L3)
	c.BatterySOC = getEnv("COLUMN_BATTERY_SOC", c.BatterySOC)
	c.BatteryTemperature = getEnv("COLUMN_BATTERY_TEMPERATURE", c.BatteryTemperature)
	c.StuderLayout = c.defaultStuderLayout()
	return c
}
