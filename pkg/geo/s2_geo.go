package geo

import (
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

const earthRadiusM = 6371007

type Coordinate struct {
	Lat float64
	Lon float64
}

func NewCoordinate(lat, lon float64) Coordinate {
	return Coordinate{Lat: lat, Lon: lon}
}

func (c Coordinate) latLng() s2.LatLng {
	return s2.LatLngFromDegrees(c.Lat, c.Lon)
}

// DistanceMeters. jarak great-circle antara dua koordinat dalam meter.
func DistanceMeters(a, b Coordinate) float64 {
	return angleToMeters(a.latLng().Distance(b.latLng()))
}

// PolylineLength. panjang polyline (mis. satu segment way osm) dalam meter.
func PolylineLength(coords []Coordinate) float64 {
	if len(coords) < 2 {
		return 0
	}
	points := make([]s2.Point, len(coords))
	for i, c := range coords {
		points[i] = s2.PointFromLatLng(c.latLng())
	}
	polyline := s2.Polyline(points)
	return angleToMeters(polyline.Length())
}

func angleToMeters(a s1.Angle) float64 {
	return a.Radians() * earthRadiusM
}
