package proj4_coordinate_converter

import (
	"fmt"
	"math"
	"sync"

	"github.com/ecopia-map/city_tiler/internal/converters"
	"github.com/ecopia-map/city_tiler/internal/geometry"
	"github.com/golang/glog"
	proj4 "github.com/xeonx/proj4"
)

// Definitions of the systems used by city models, so they resolve without the EPSG
// init file. Other codes go through +init=epsg.
var knownDefinitions = map[int]string{
	4326: "+proj=longlat +datum=WGS84 +no_defs",
	4978: "+proj=geocent +datum=WGS84 +units=m +no_defs",
	3857: "+proj=merc +a=6378137 +b=6378137 +lat_ts=0 +lon_0=0 +x_0=0 +y_0=0 +k=1 +units=m +no_defs",
	2154: "+proj=lcc +lat_1=49 +lat_2=44 +lat_0=46.5 +lon_0=3 +x_0=700000 +y_0=6600000 +ellps=GRS80 +towgs84=0,0,0,0,0,0,0 +units=m +no_defs",
	3946: "+proj=lcc +lat_1=45.25 +lat_2=46.75 +lat_0=46 +lon_0=3 +x_0=1700000 +y_0=5200000 +ellps=GRS80 +towgs84=0,0,0,0,0,0,0 +units=m +no_defs",
}

// Converts coordinates between EPSG reference systems with proj4. Projections are
// initialized lazily and cached until Cleanup is called. Geographic coordinates are
// in degrees, longitude first.
type proj4CoordinateConverter struct {
	projections map[int]*proj4.Proj
	sync.Mutex
}

func NewProj4CoordinateConverter() converters.CoordinateConverter {
	return &proj4CoordinateConverter{
		projections: make(map[int]*proj4.Proj),
	}
}

func (cc *proj4CoordinateConverter) ConvertCoordinateSrid(sourceSrid int, targetSrid int, coord geometry.Coordinate) (geometry.Coordinate, error) {
	if sourceSrid == targetSrid {
		return coord, nil
	}

	cc.Lock()
	defer cc.Unlock()

	src, err := cc.initProjection(sourceSrid)
	if err != nil {
		return coord, err
	}
	dst, err := cc.initProjection(targetSrid)
	if err != nil {
		return coord, err
	}

	x, y, z := []float64{coord.X}, []float64{coord.Y}, []float64{coord.Z}
	// proj4 works in radians on geographic systems
	if src.IsLatLong() {
		x[0], y[0] = x[0]*math.Pi/180, y[0]*math.Pi/180
	}
	if err := proj4.TransformRaw(src, dst, x, y, z); err != nil {
		return coord, fmt.Errorf("converting from EPSG:%d to EPSG:%d: %w", sourceSrid, targetSrid, err)
	}
	if dst.IsLatLong() {
		x[0], y[0] = x[0]*180/math.Pi, y[0]*180/math.Pi
	}

	return geometry.Coordinate{X: x[0], Y: y[0], Z: z[0]}, nil
}

// Releases every cached projection
func (cc *proj4CoordinateConverter) Cleanup() {
	cc.Lock()
	defer cc.Unlock()

	for srid, projection := range cc.projections {
		projection.Close()
		delete(cc.projections, srid)
	}
}

func definition(srid int) string {
	if def, ok := knownDefinitions[srid]; ok {
		return def
	}
	return fmt.Sprintf("+init=epsg:%d", srid)
}

// must be called with the lock held
func (cc *proj4CoordinateConverter) initProjection(srid int) (*proj4.Proj, error) {
	if projection, ok := cc.projections[srid]; ok {
		return projection, nil
	}

	projection, err := proj4.InitPlus(definition(srid))
	if err != nil {
		glog.Warningf("cannot initialize projection EPSG:%d: %v", srid, err)
		return nil, fmt.Errorf("initializing EPSG:%d: %w", srid, err)
	}
	cc.projections[srid] = projection
	return projection, nil
}
