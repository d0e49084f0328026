// Package search holds the wire shapes of the upstream flight search
// response. Fields tagged omitzero are optional; every other field is
// required by the mapper.
package search

type Response struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    Data   `json:"data"`
}

type Data struct {
	FlightOffers []FlightOffer `json:"flightOffers"`
}

type FlightOffer struct {
	Token          *string         `json:"token,omitzero"`
	Segments       []Segment       `json:"segments"`
	PriceBreakdown *PriceBreakdown `json:"priceBreakdown,omitzero"`
}

// Segment is a directed group of legs between two airports. Timestamps are
// kept as the ISO-8601 text the upstream sends.
type Segment struct {
	DepartureAirport              Airport            `json:"departureAirport"`
	ArrivalAirport                Airport            `json:"arrivalAirport"`
	DepartureTime                 string             `json:"departureTime"`
	ArrivalTime                   string             `json:"arrivalTime"`
	Legs                          []Leg              `json:"legs"`
	TotalTime                     int64              `json:"totalTime"`
	TravellerCheckedLuggage       []TravellerLuggage `json:"travellerCheckedLuggage"`
	TravellerCabinLuggage         []TravellerLuggage `json:"travellerCabinLuggage"`
	ShowWarningDestinationAirport bool               `json:"showWarningDestinationAirport"`
	ShowWarningOriginAirport      bool               `json:"showWarningOriginAirport"`
}

type Airport struct {
	Type         string  `json:"type"`
	Code         string  `json:"code"`
	Name         string  `json:"name"`
	City         string  `json:"city"`
	CityName     string  `json:"cityName"`
	Country      string  `json:"country"`
	CountryName  string  `json:"countryName"`
	Province     *string `json:"province,omitzero"`
	ProvinceCode *string `json:"provinceCode,omitzero"`
}

type Leg struct {
	DepartureTime    string        `json:"departureTime"`
	ArrivalTime      string        `json:"arrivalTime"`
	DepartureAirport Airport       `json:"departureAirport"`
	ArrivalAirport   Airport       `json:"arrivalAirport"`
	CabinClass       string        `json:"cabinClass"`
	FlightInfo       FlightInfo    `json:"flightInfo"`
	Carriers         []string      `json:"carriers"`
	CarriersData     []CarrierData `json:"carriersData"`
	TotalTime        int64         `json:"totalTime"`
	FlightStops      []any         `json:"flightStops"`
	Amenities        []Amenity     `json:"amenities"`
}

type FlightInfo struct {
	FlightNumber int64       `json:"flightNumber"`
	PlaneType    string      `json:"planeType"`
	CarrierInfo  CarrierInfo `json:"carrierInfo"`
}

type CarrierInfo struct {
	OperatingCarrier               string  `json:"operatingCarrier"`
	MarketingCarrier               string  `json:"marketingCarrier"`
	OperatingCarrierDisclosureText *string `json:"operatingCarrierDisclosureText,omitzero"`
}

type CarrierData struct {
	Name string `json:"name"`
	Code string `json:"code"`
	Logo string `json:"logo"`
}

type Amenity struct {
	Category  string       `json:"category"`
	Type      *AmenityType `json:"type,omitzero"`
	Model     *string      `json:"model,omitzero"`
	Cost      *string      `json:"cost,omitzero"`
	Legroom   *string      `json:"legroom,omitzero"`
	Pitch     *string      `json:"pitch,omitzero"`
	PitchUnit *string      `json:"pitchUnit,omitzero"`
}

type TravellerLuggage struct {
	TravellerReference string           `json:"travellerReference"`
	LuggageAllowance   LuggageAllowance `json:"luggageAllowance"`
	PersonalItem       *bool            `json:"personalItem,omitzero"`
}

type LuggageAllowance struct {
	LuggageType       string            `json:"luggageType"`
	MaxPiece          int64             `json:"maxPiece"`
	MaxWeightPerPiece *float64          `json:"maxWeightPerPiece,omitzero"`
	MassUnit          *string           `json:"massUnit,omitzero"`
	SizeRestrictions  *SizeRestrictions `json:"sizeRestrictions,omitzero"`
}

type SizeRestrictions struct {
	MaxLength float64 `json:"maxLength"`
	MaxWidth  float64 `json:"maxWidth"`
	MaxHeight float64 `json:"maxHeight"`
	SizeUnit  string  `json:"sizeUnit"`
}

type PriceBreakdown struct {
	Items      []PriceItem `json:"items"`
	AddedItems []any       `json:"addedItems"`
}

type PriceItem struct {
	Scope  string      `json:"scope"`
	ID     string      `json:"id"`
	Title  string      `json:"title"`
	Amount Money       `json:"amount"`
	Items  []PriceItem `json:"items,omitzero"`
}
