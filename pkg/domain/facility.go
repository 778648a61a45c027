package domain

// Coordinate is a WGS-84 latitude/longitude pair in decimal degrees.
type Coordinate struct {
	Lat float64 `json:"lat" mapstructure:"lat"`
	Lng float64 `json:"lng" mapstructure:"lng"`
}

// Valid reports whether the coordinate lies in the WGS-84 range.
func (c Coordinate) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

// Facility is one record of the static facility catalog.
type Facility struct {
	Name       string     `json:"name"`
	Coordinate Coordinate `json:"coordinate"`
	Address    string     `json:"address,omitempty"`

	// Capacity is the bed count when the catalog provides one; zero means
	// unreported, not empty.
	Capacity int `json:"capacity,omitempty"`
}

// Place is one hit from the nearby-places service.
type Place struct {
	Name    string `json:"name" mapstructure:"name"`
	Address string `json:"address,omitempty" mapstructure:"address,omitempty"`
}
