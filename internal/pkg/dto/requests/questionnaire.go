package requests

type DeviceLocation struct {
	Latitude  float64 `json:"latitude" validate:"latitude"`
	Longitude float64 `json:"longitude" validate:"longitude"`
}

type StartQuestionnaire struct {
	DeviceLocation *DeviceLocation `json:"device_location" validate:"omitempty"`
}

// SetAnswer carries text for scalar types and values for Multiple Choice and Order.
type SetAnswer struct {
	Text   string   `json:"text"`
	Values []string `json:"values"`
}

type ReorderAnswer struct {
	From *int `json:"from" validate:"required,gte=0"`
	To   *int `json:"to" validate:"required,gte=0"`
}

type ResetLocation struct {
	DeviceLocation *DeviceLocation `json:"device_location" validate:"omitempty"`
}

type SubmitQuestionnaire struct {
	Confirm bool `json:"confirm"`
}
