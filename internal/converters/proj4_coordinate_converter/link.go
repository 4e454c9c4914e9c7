package proj4_coordinate_converter

// #cgo LDFLAGS: -lm
import "C"
