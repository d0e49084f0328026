// Package extras holds the wire shapes of the upstream booking extras and
// pricing response. Unlike search, these values are also written back out.
package extras

type Extras struct {
	SaleCountry               *string               `json:"saleCountry,omitzero"`
	IncludedProductsBySegment [][]TravellerProducts `json:"includedProductsBySegment,omitzero"`
	IncludedProducts          IncludedProducts      `json:"includedProducts"`
	ExtraProducts             []ExtraProduct        `json:"extraProducts"`
	OfferExtras               OfferExtras           `json:"offerExtras"`
}

type TravellerProducts struct {
	TravellerReference string    `json:"travellerReference"`
	TravellerProducts  []Product `json:"travellerProducts"`
}

type Product struct {
	ProductType string           `json:"type"`
	Product     LuggageAllowance `json:"product"`
}

type IncludedProducts struct {
	AreAllSegmentsIdentical bool                 `json:"areAllSegmentsIdentical"`
	Segments                [][]LuggageAllowance `json:"segments"`
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

type ExtraProduct struct {
	ProductType    string         `json:"type"`
	PriceBreakdown PriceBreakdown `json:"priceBreakdown"`
}

type OfferExtras struct {
	FlexibleTicket *FlexibleTicket `json:"flexibleTicket,omitzero"`
}

type FlexibleTicket struct {
	AirProductReference string         `json:"airProductReference"`
	Travellers          []string       `json:"travellers"`
	Recommendation      Recommendation `json:"recommendation"`
	PriceBreakdown      PriceBreakdown `json:"priceBreakdown"`
	SupplierInfo        *SupplierInfo  `json:"supplierInfo,omitzero"`
}

type Recommendation struct {
	Recommended bool   `json:"recommended"`
	Confidence  string `json:"confidence"`
}

// SupplierInfo is kept as a presence marker only. Whatever the upstream puts
// inside it is dropped on decode.
type SupplierInfo struct{}

type PriceBreakdown struct {
	Total                Money            `json:"total"`
	BaseFare             Money            `json:"baseFare"`
	Fee                  Money            `json:"fee"`
	Tax                  Money            `json:"tax"`
	MoreTaxesAndFees     map[string]Money `json:"moreTaxesAndFees"`
	Discount             Money            `json:"discount"`
	TotalWithoutDiscount Money            `json:"totalWithoutDiscount"`
	TotalRounded         *Money           `json:"totalRounded,omitzero"`
}
