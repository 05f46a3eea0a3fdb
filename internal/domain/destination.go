package domain

// Destination is a landing site the charter network serves.
type Destination struct {
	Code string
	Name string
	Lat  float64
	Lng  float64
}

// Destinations is the static table of serviced landing sites, keyed by
// short code. Built once at startup, never mutated at runtime.
var Destinations = map[string]Destination{
	"GUA":        {Code: "GUA", Name: "Guatemala City (La Aurora)", Lat: 14.5833, Lng: -90.5275},
	"ANTIGUA":    {Code: "ANTIGUA", Name: "Antigua Guatemala", Lat: 14.5586, Lng: -90.7339},
	"ATITLAN":    {Code: "ATITLAN", Name: "Lake Atitlan (Panajachel)", Lat: 14.7406, Lng: -91.1581},
	"TIKAL":      {Code: "TIKAL", Name: "Tikal (Flores)", Lat: 16.9131, Lng: -89.8664},
	"SEMUC":      {Code: "SEMUC", Name: "Semuc Champey (Lanquin)", Lat: 15.5333, Lng: -89.9500},
	"MONTERRICO": {Code: "MONTERRICO", Name: "Monterrico Beach", Lat: 13.8942, Lng: -90.4828},
	"XELA":       {Code: "XELA", Name: "Quetzaltenango", Lat: 14.8347, Lng: -91.5181},
	"COBAN":      {Code: "COBAN", Name: "Coban", Lat: 15.4689, Lng: -90.4069},
	"RIODULCE":   {Code: "RIODULCE", Name: "Rio Dulce", Lat: 15.6603, Lng: -88.9986},
	"PUERTOB":    {Code: "PUERTOB", Name: "Puerto Barrios", Lat: 15.7308, Lng: -88.5836},
	"HUEHUE":     {Code: "HUEHUE", Name: "Huehuetenango", Lat: 15.3197, Lng: -91.4708},
	"RETALHULEU": {Code: "RETALHULEU", Name: "Retalhuleu", Lat: 14.5211, Lng: -91.6972},
}

// LookupDestination returns the destination for a code, or false if the
// code is not part of the serviced network.
func LookupDestination(code string) (Destination, bool) {
	d, ok := Destinations[code]
	return d, ok
}

// AllDestinations returns every serviced destination.
func AllDestinations() []Destination {
	result := make([]Destination, 0, len(Destinations))
	for _, d := range Destinations {
		result = append(result, d)
	}
	return result
}
