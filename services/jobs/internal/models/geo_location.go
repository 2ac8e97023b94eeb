package models

import (
	"encoding/json"
	"time"
)

type GeoLocation struct {
	ID        string    `json:"id"`
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (l *GeoLocation) Point() GeoPoint {
	return GeoPoint{Lat: l.Lat, Lng: l.Lng}
}

func (l GeoLocation) MarshalBinary() ([]byte, error) {
	return json.Marshal(l)
}

func (l *GeoLocation) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, l)
}

// GeoPoint is a resolved reference coordinate in degrees.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}
