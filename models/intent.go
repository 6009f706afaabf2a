package models

// FlightType distinguishes one-way from return journeys.
type FlightType string

const (
	FlightTypeOneWay FlightType = "one_way"
	FlightTypeReturn FlightType = "return"
)

// FlightClass is the cabin the traveller wants to fly in.
type FlightClass string

const (
	ClassEconomy        FlightClass = "economy"
	ClassPremiumEconomy FlightClass = "premium_economy"
	ClassBusiness       FlightClass = "business"
	ClassFirst          FlightClass = "first"
)

// Slot names one field of the travel intent that the dialogue can ask about.
type Slot string

const (
	SlotSource        Slot = "source"
	SlotDestination   Slot = "destination"
	SlotDepartureDate Slot = "departure_date"
	SlotReturnDate    Slot = "return_date"
)

// PassengerCount breaks down the travelling party by fare category.
type PassengerCount struct {
	Adults   int `json:"adults"`
	Children int `json:"children"`
	Infants  int `json:"infants"`
}

// Total returns the full party size.
func (p PassengerCount) Total() int {
	return p.Adults + p.Children + p.Infants
}

// TravelIntent is the accumulated structured form of what the user wants.
// Absent fields are zero values; dates use the YYYY-MM-DD form the partner
// API expects.
type TravelIntent struct {
	Source        string          `json:"source,omitempty"`
	Destination   string          `json:"destination,omitempty"`
	FlightType    FlightType      `json:"flight_type,omitempty"`
	FlightClass   FlightClass     `json:"flight_class,omitempty"`
	DepartureDate string          `json:"departure_date,omitempty"`
	ReturnDate    string          `json:"return_date,omitempty"`
	Passengers    *PassengerCount `json:"passengers,omitempty"`
	// Airline pins the search to a single content provider when set.
	Airline string `json:"airline,omitempty"`
}

// MissingSlots returns the required slots still unresolved, in the fixed
// order the dialogue asks about them.
func (t TravelIntent) MissingSlots() []Slot {
	var missing []Slot
	if t.Source == "" {
		missing = append(missing, SlotSource)
	}
	if t.Destination == "" {
		missing = append(missing, SlotDestination)
	}
	if t.DepartureDate == "" {
		missing = append(missing, SlotDepartureDate)
	}
	if t.FlightType == FlightTypeReturn && t.ReturnDate == "" {
		missing = append(missing, SlotReturnDate)
	}
	return missing
}

// Complete reports whether every required slot is resolved.
func (t TravelIntent) Complete() bool {
	return len(t.MissingSlots()) == 0
}

// ApplyDefaults fills the optional fields the way the search expects them:
// one-way, economy, a single adult.
func (t *TravelIntent) ApplyDefaults() {
	if t.FlightType == "" {
		t.FlightType = FlightTypeOneWay
	}
	if t.FlightClass == "" {
		t.FlightClass = ClassEconomy
	}
	if t.Passengers == nil {
		t.Passengers = &PassengerCount{Adults: 1}
	}
}

// Clone returns a deep copy; Passengers is the only pointer field.
func (t TravelIntent) Clone() TravelIntent {
	out := t
	if t.Passengers != nil {
		p := *t.Passengers
		out.Passengers = &p
	}
	return out
}
