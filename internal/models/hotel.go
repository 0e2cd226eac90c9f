package models

// Hotel is the aggregation root for its rooms. Hotels and rooms are
// seeded from config; there is no creation flow for them.
type Hotel struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Address     string `yaml:"address" json:"address"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Rooms       []Room `yaml:"rooms,omitempty" json:"rooms,omitempty"`
}

// Room belongs to exactly one hotel and holds only a back-reference id.
type Room struct {
	ID      string  `yaml:"id" json:"id"`
	Number  string  `yaml:"number" json:"number"`
	Type    string  `yaml:"type" json:"type"`
	Price   float64 `yaml:"price" json:"price"`
	HotelID string  `yaml:"hotel_id,omitempty" json:"hotel_id,omitempty"`
	Hotel   *Hotel  `yaml:"-" json:"hotel,omitempty"`
}
