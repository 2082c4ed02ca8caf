// Package solar implements the NOAA low-order solar position algorithm:
// equation of time, declination, hour angle, zenith/elevation, azimuth,
// atmospheric refraction, and solar noon, plus the direction-to-sun unit
// vector used by the rasterizer.
package solar

import (
	"math"
	"time"

	"github.com/condor86/CurveGrowthSystem/pkg/vecmath"
)

// Position holds every quantity the NOAA formulas produce for one instant.
type Position struct {
	GeometricElevDeg float64
	ApparentElevDeg  float64
	AzimuthDegFromN  float64 // clockwise from north, in [0, 360)
	DeclinationDeg   float64
	HourAngleDeg     float64
	EotMinutes       float64
	SolarNoonLocal   float64 // minutes after local midnight
}

// deg/rad helpers
func deg2rad(d float64) float64 { return d * math.Pi / 180 }
func rad2deg(r float64) float64 { return r * 180 / math.Pi }

// fractionalYear returns NOAA's gamma (radians) for a given day-of-year
// (1-based) and UTC fractional hour.
func fractionalYear(dayOfYear int, utcHour float64, daysInYear int) float64 {
	return 2 * math.Pi / float64(daysInYear) * (float64(dayOfYear-1) + (utcHour-12)/24)
}

// equationOfTimeMinutes implements NOAA's equation-of-time approximation.
func equationOfTimeMinutes(gamma float64) float64 {
	return 229.18 * (0.000075 +
		0.001868*math.Cos(gamma) - 0.032077*math.Sin(gamma) -
		0.014615*math.Cos(2*gamma) - 0.040849*math.Sin(2*gamma))
}

// declinationRadians implements NOAA's solar declination approximation.
func declinationRadians(gamma float64) float64 {
	return 0.006918 -
		0.399912*math.Cos(gamma) + 0.070257*math.Sin(gamma) -
		0.006758*math.Cos(2*gamma) + 0.000907*math.Sin(2*gamma) -
		0.002697*math.Cos(3*gamma) + 0.00148*math.Sin(3*gamma)
}

// refractionCorrectionDeg implements NOAA's atmospheric refraction
// approximation for geometric elevations above -0.575 degrees.
func refractionCorrectionDeg(geomElevDeg float64) float64 {
	if geomElevDeg > 85 {
		return 0
	}
	te := math.Tan(deg2rad(geomElevDeg))
	var corrArcmin float64
	switch {
	case geomElevDeg > 5:
		corrArcmin = 58.1/te - 0.07/(te*te*te) + 0.000086/(te*te*te*te*te)
	case geomElevDeg > -0.575:
		corrArcmin = 1735 + geomElevDeg*(-518.2+geomElevDeg*(103.4+geomElevDeg*(-12.79+geomElevDeg*0.711)))
	default:
		corrArcmin = -20.774 / te
	}
	return corrArcmin / 3600
}

// Compute returns the full solar position for local civil time `t` (its
// own location/offset are ignored; `tzOffsetHours` is used explicitly so
// callers can simulate a site's fixed offset without relying on the Go
// time.Location database), at latitude/longitude in degrees (longitude
// positive east), optionally applying atmospheric refraction.
func Compute(t time.Time, latDeg, lonDeg, tzOffsetHours float64, applyRefraction bool) Position {
	utc := t.Add(-time.Duration(tzOffsetHours * float64(time.Hour)))
	dayOfYear := utc.YearDay()
	daysInYear := 365
	if isLeap(utc.Year()) {
		daysInYear = 366
	}
	utcHour := float64(utc.Hour()) + float64(utc.Minute())/60 + float64(utc.Second())/3600

	gamma := fractionalYear(dayOfYear, utcHour, daysInYear)
	eot := equationOfTimeMinutes(gamma)
	declRad := declinationRadians(gamma)

	// utcHour is already UTC, so no timezone term enters the offset.
	timeOffsetMin := eot + 4*lonDeg
	trueSolarTimeMin := utcHour*60 + timeOffsetMin
	// wrap into [0, 1440)
	trueSolarTimeMin = math.Mod(trueSolarTimeMin, 1440)
	if trueSolarTimeMin < 0 {
		trueSolarTimeMin += 1440
	}
	hourAngleDeg := trueSolarTimeMin/4 - 180

	latRad := deg2rad(latDeg)
	hourAngleRad := deg2rad(hourAngleDeg)

	cosZenith := math.Sin(latRad)*math.Sin(declRad) + math.Cos(latRad)*math.Cos(declRad)*math.Cos(hourAngleRad)
	cosZenith = vecmath.Clamp(cosZenith, -1, 1)
	zenithDeg := rad2deg(math.Acos(cosZenith))
	geomElevDeg := 90 - zenithDeg

	apparentElevDeg := geomElevDeg
	if applyRefraction && geomElevDeg > -0.575 {
		apparentElevDeg = geomElevDeg + refractionCorrectionDeg(geomElevDeg)
	}

	azNumerator := math.Sin(hourAngleRad)
	azDenominator := math.Cos(hourAngleRad)*math.Sin(latRad) - math.Tan(declRad)*math.Cos(latRad)
	azimuthDeg := rad2deg(math.Atan2(azNumerator, azDenominator)) + 180
	azimuthDeg = math.Mod(azimuthDeg, 360)
	if azimuthDeg < 0 {
		azimuthDeg += 360
	}

	solarNoon := solarNoonMinutes(lonDeg, tzOffsetHours, dayOfYear, daysInYear)

	return Position{
		GeometricElevDeg: geomElevDeg,
		ApparentElevDeg:  apparentElevDeg,
		AzimuthDegFromN:  azimuthDeg,
		DeclinationDeg:   rad2deg(declRad),
		HourAngleDeg:     hourAngleDeg,
		EotMinutes:       eot,
		SolarNoonLocal:   solarNoon,
	}
}

// solarNoonMinutes iterates NOAA's fixed-point estimator twice: the
// equation of time itself depends weakly on the hour used to estimate noon,
// so two passes are enough to converge to sub-minute accuracy.
func solarNoonMinutes(lonDeg, tzOffsetHours float64, dayOfYear, daysInYear int) float64 {
	estHour := 12.0
	noon := 720 - 4*lonDeg + 60*tzOffsetHours
	for i := 0; i < 2; i++ {
		gamma := fractionalYear(dayOfYear, estHour, daysInYear)
		eot := equationOfTimeMinutes(gamma)
		noon = 720 - 4*lonDeg - eot + 60*tzOffsetHours
		estHour = noon / 60
	}
	return noon
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DirectionToSun builds a right-handed basis from `up` and `north`
// (east = north x up) and returns the unit vector pointing from the scene
// toward the sun for the given elevation/azimuth (degrees, azimuth
// clockwise from north).
func DirectionToSun(elevDeg, azimuthDeg float64, up, north vecmath.Vec3) vecmath.Vec3 {
	up = up.Normalize()
	north = north.Normalize()
	east := north.Cross(up)
	elev := deg2rad(elevDeg)
	az := deg2rad(azimuthDeg)
	horiz := math.Cos(elev)
	dir := north.Scale(horiz * math.Cos(az)).
		Add(east.Scale(horiz * math.Sin(az))).
		Add(up.Scale(math.Sin(elev)))
	return dir.Normalize()
}

// Sample is one instant's solar position plus the direction-to-sun vector
// derived from it.
type Sample struct {
	Position Position
	Dir      vecmath.Vec3
}

// Vectors precomputes the direction-to-sun unit vector for every instant
// in [start, end] (inclusive) on `date`, stepping by `interval`, at the
// given site. Only instants whose apparent elevation exceeds minElevDeg
// contribute a vector — per the sampling contract, elevations at or below
// minElevDeg are treated as "no direct sun" and are omitted entirely so
// downstream rasterization never has to special-case them.
func Vectors(date time.Time, start, end time.Duration, interval time.Duration, latDeg, lonDeg, tzOffsetHours, minElevDeg float64, up, north vecmath.Vec3) []vecmath.Vec3 {
	if interval <= 0 {
		return nil
	}
	midnight := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	var vs []vecmath.Vec3
	for d := start; d <= end; d += interval {
		instant := midnight.Add(d)
		pos := Compute(instant, latDeg, lonDeg, tzOffsetHours, true)
		if pos.ApparentElevDeg <= minElevDeg {
			continue
		}
		vs = append(vs, DirectionToSun(pos.ApparentElevDeg, pos.AzimuthDegFromN, up, north))
	}
	return vs
}
