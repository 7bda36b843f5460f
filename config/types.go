package config

// ServerConfig contains server configuration
type ServerConfig struct {
	Port int `yaml:"port" validate:"gt=0"`
}

// EngineConfig contains trajectory engine defaults. Requests may override
// the gap and minimum length per call; the id attribute is fixed per
// deployment.
type EngineConfig struct {
	IDAttribute   string  `yaml:"id_attribute" validate:"required"`
	MinLengthM    float64 `yaml:"min_length_m" validate:"gte=0"`
	MaxGapMinutes float64 `yaml:"max_gap_minutes" validate:"gte=0"`
}

// AISConfig contains the AIS CSV source configuration
type AISConfig struct {
	CSVPath    string `yaml:"csv_path"`
	TimeColumn string `yaml:"time_column"`
	LatColumn  string `yaml:"lat_column"`
	LonColumn  string `yaml:"lon_column"`
}

// GTFSRTConfig contains the GTFS-Realtime vehicle positions source
type GTFSRTConfig struct {
	VehiclePositionsURL string `yaml:"vehiclePositionsURL" validate:"omitempty,url"`
	ReadIntervalMS      int    `yaml:"readIntervalMS" validate:"gte=0"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Server ServerConfig `yaml:"server" validate:"required"`
	Engine EngineConfig `yaml:"engine"`
	AIS    AISConfig    `yaml:"ais"`
	GTFSRT GTFSRTConfig `yaml:"gtfsrt"`
}
