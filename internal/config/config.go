package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Addr        string
	FrontendDir string

	// Inputs
	DataDir     string
	StuderDir   string
	EnphaseFile string
	WeatherFile string

	Columns    Columns
	Thresholds Thresholds
	PQ         PQLimits
}

// Thresholds are the grid-reliability rules applied per row.
type Thresholds struct {
	LoadSheddingVoltage float64 // any phase below -> load shedding
	FrequencyMin        float64
	FrequencyMax        float64
	GridConnectedStatus float64 // any phase below -> disconnected
	BatteryDrainSOC     float64 // SOC below -> drained
}

// PQLimits are the regulatory bands used by the windowed power-quality checks.
type PQLimits struct {
	FrequencyMin float64
	FrequencyMax float64
	VoltageMin   float64
	VoltageMax   float64
	WindowSize   int
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		LoadSheddingVoltage: 190,
		FrequencyMin:        49,
		FrequencyMax:        51,
		GridConnectedStatus: 1,
		BatteryDrainSOC:     10,
	}
}

func DefaultPQLimits() PQLimits {
	return PQLimits{
		FrequencyMin: 49,
		FrequencyMax: 51,
		VoltageMin:   207,
		VoltageMax:   253,
		WindowSize:   10,
	}
}

// Load reads configuration from the environment, after loading a .env file
// from the working directory when one exists.
func Load() *Config {
	_ = godotenv.Load()

	def := DefaultThresholds()
	pq := DefaultPQLimits()

	cfg := &Config{
		Addr:        getEnv("DASHBOARD_ADDR", ":8080"),
		FrontendDir: getEnv("FRONTEND_DIR", "frontend/build"),

		Columns: columnsFromEnv(DefaultColumns()),

		Thresholds: Thresholds{
			LoadSheddingVoltage: getEnvFloat("LOAD_SHEDDING_VOLTAGE", def.LoadSheddingVoltage),
			FrequencyMin:        getEnvFloat("FREQUENCY_MIN", def.FrequencyMin),
			FrequencyMax:        getEnvFloat("FREQUENCY_MAX", def.FrequencyMax),
			GridConnectedStatus: getEnvFloat("GRID_CONNECTED_STATUS", def.GridConnectedStatus),
			BatteryDrainSOC:     getEnvFloat("BATTERY_DRAIN_SOC", def.BatteryDrainSOC),
		},

		PQ: PQLimits{
			FrequencyMin: getEnvFloat("PQ_FREQUENCY_MIN", pq.FrequencyMin),
			FrequencyMax: getEnvFloat("PQ_FREQUENCY_MAX", pq.FrequencyMax),
			VoltageMin:   getEnvFloat("PQ_VOLTAGE_MIN", pq.VoltageMin),
			VoltageMax:   getEnvFloat("PQ_VOLTAGE_MAX", pq.VoltageMax),
			WindowSize:   getEnvInt("PQ_WINDOW_SIZE", pq.WindowSize),
		},
	}
	cfg.SetDataDir(getEnv("DATA_DIR", filepath.Join("data", "sample")))
	return cfg
}

// SetDataDir points the inputs at dir. STUDER_DIR, ENPHASE_FILE and
// WEATHER_FILE still take precedence over the layout under dir.
func (c *Config) SetDataDir(dir string) {
	c.DataDir = dir
	c.StuderDir = getEnv("STUDER_DIR", filepath.Join(dir, "studer"))
	c.EnphaseFile = getEnv("ENPHASE_FILE", filepath.Join(dir, "enphase", "enphase_15m_Jan23_Sep24_total.csv"))
	c.WeatherFile = getEnv("WEATHER_FILE", filepath.Join(dir, "weather", "FormulaHouse-Jan2023-Sep2024.csv"))
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	floatValue, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Printf("Warning: failed to parse %s as float, using default: %v", key, err)
		return defaultValue
	}
	return floatValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.Atoi(value)
	if err != nil || intValue <= 0 {
		log.Printf("Warning: failed to parse %s as positive int, using default: %v", key, err)
		return defaultValue
	}
	return intValue
}
