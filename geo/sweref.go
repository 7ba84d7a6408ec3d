package geo

import "math"

// Gauss conformal projection (transverse Mercator) on GRS80, using
// Krüger's series formulas. The parameters are the fixed SWEREF 99 TM
// configuration; all intermediate math is float64 and results are
// truncated to whole meters only at the MeterCoord boundary.
type transverseMercator struct {
	centralMeridian  float64 // degrees
	flattening       float64
	equatorialRadius float64
	scale            float64
	falseNorthing    float64
	falseEasting     float64
}

var sweref99tm = transverseMercator{
	centralMeridian:  15.0,
	flattening:       1 / 298.257222101,
	equatorialRadius: 6378137.0,
	scale:            0.9996,
	falseNorthing:    0.0,
	falseEasting:     500000.0,
}

const degToRad = math.Pi / 180

func (p transverseMercator) geodeticToGrid(latitude, longitude float64) (northing, easting float64) {
	e2 := p.flattening * (2 - p.flattening)
	n := p.flattening / (2 - p.flattening)
	aRoof := p.equatorialRadius / (1 + n) * (1 + n*n/4 + n*n*n*n/64)

	A := e2
	B := (5*e2*e2 - e2*e2*e2) / 6
	C := (104*e2*e2*e2 - 45*e2*e2*e2*e2) / 120
	D := (1237 * e2 * e2 * e2 * e2) / 1260

	beta1 := n/2 - 2*n*n/3 + 5*n*n*n/16 + 41*n*n*n*n/180
	beta2 := 13*n*n/48 - 3*n*n*n/5 + 557*n*n*n*n/1440
	beta3 := 61*n*n*n/240 - 103*n*n*n*n/140
	beta4 := 49561 * n * n * n * n / 161280

	phi := latitude * degToRad
	lambda := longitude * degToRad
	lambdaZero := p.centralMeridian * degToRad

	sinPhi := math.Sin(phi)
	phiStar := phi - sinPhi*math.Cos(phi)*
		(A+B*sinPhi*sinPhi+C*math.Pow(sinPhi, 4)+D*math.Pow(sinPhi, 6))
	deltaLambda := lambda - lambdaZero

	xiPrim := math.Atan(math.Tan(phiStar) / math.Cos(deltaLambda))
	etaPrim := math.Atanh(math.Cos(phiStar) * math.Sin(deltaLambda))

	northing = p.scale*aRoof*(xiPrim+
		beta1*math.Sin(2*xiPrim)*math.Cosh(2*etaPrim)+
		beta2*math.Sin(4*xiPrim)*math.Cosh(4*etaPrim)+
		beta3*math.Sin(6*xiPrim)*math.Cosh(6*etaPrim)+
		beta4*math.Sin(8*xiPrim)*math.Cosh(8*etaPrim)) + p.falseNorthing
	easting = p.scale*aRoof*(etaPrim+
		beta1*math.Cos(2*xiPrim)*math.Sinh(2*etaPrim)+
		beta2*math.Cos(4*xiPrim)*math.Sinh(4*etaPrim)+
		beta3*math.Cos(6*xiPrim)*math.Sinh(6*etaPrim)+
		beta4*math.Cos(8*xiPrim)*math.Sinh(8*etaPrim)) + p.falseEasting
	return northing, easting
}

func (p transverseMercator) gridToGeodetic(northing, easting float64) (latitude, longitude float64) {
	e2 := p.flattening * (2 - p.flattening)
	n := p.flattening / (2 - p.flattening)
	aRoof := p.equatorialRadius / (1 + n) * (1 + n*n/4 + n*n*n*n/64)

	delta1 := n/2 - 2*n*n/3 + 37*n*n*n/96 - n*n*n*n/360
	delta2 := n*n/48 + n*n*n/15 - 437*n*n*n*n/1440
	delta3 := 17*n*n*n/480 - 37*n*n*n*n/840
	delta4 := 4397 * n * n * n * n / 161280

	aStar := e2 + e2*e2 + e2*e2*e2 + e2*e2*e2*e2
	bStar := -(7*e2*e2 + 17*e2*e2*e2 + 30*e2*e2*e2*e2) / 6
	cStar := (224*e2*e2*e2 + 889*e2*e2*e2*e2) / 120
	dStar := -(4279 * e2 * e2 * e2 * e2) / 1260

	lambdaZero := p.centralMeridian * degToRad
	xi := (northing - p.falseNorthing) / (p.scale * aRoof)
	eta := (easting - p.falseEasting) / (p.scale * aRoof)

	xiPrim := xi -
		delta1*math.Sin(2*xi)*math.Cosh(2*eta) -
		delta2*math.Sin(4*xi)*math.Cosh(4*eta) -
		delta3*math.Sin(6*xi)*math.Cosh(6*eta) -
		delta4*math.Sin(8*xi)*math.Cosh(8*eta)
	etaPrim := eta -
		delta1*math.Cos(2*xi)*math.Sinh(2*eta) -
		delta2*math.Cos(4*xi)*math.Sinh(4*eta) -
		delta3*math.Cos(6*xi)*math.Sinh(6*eta) -
		delta4*math.Cos(8*xi)*math.Sinh(8*eta)

	phiStar := math.Asin(math.Sin(xiPrim) / math.Cosh(etaPrim))
	deltaLambda := math.Atan(math.Sinh(etaPrim) / math.Cos(xiPrim))

	longitude = (lambdaZero + deltaLambda) / degToRad
	sinPhiStar := math.Sin(phiStar)
	latitude = (phiStar + sinPhiStar*math.Cos(phiStar)*
		(aStar+bStar*sinPhiStar*sinPhiStar+
			cStar*math.Pow(sinPhiStar, 4)+
			dStar*math.Pow(sinPhiStar, 6))) / degToRad
	return latitude, longitude
}
