// Package domain models path exports and the elevation profiles built from them.
//
// # Data Source
//
// Paths are drawn in a geographic path tool (for example the Google Earth
// path/ruler tool) and copied out as plain text. The export is a flat list
// of longitude,latitude,altitude triplets. Triplets are separated by a
// single space, fields by commas, so splitting purely on commas yields:
//
//	-110.87521,43.50059,0 -110.87514,43.50059,0 -110.87483,43.50059,
//	0 -110.87454,43.50056,0 ...
//
//	token 0  "-110.87521"      longitude of point 0
//	token 1  "43.50059"        latitude of point 0
//	token 2  "0 -110.87514"    altitude of point 0, then longitude of point 1
//	token 3  "43.50059"        latitude of point 1
//	...
//	last     "0"               altitude of the final point (discarded)
//
// Exports may be wrapped at arbitrary positions, so tokens are trimmed of
// surrounding whitespace. Altitude is always 0 in exports produced by the
// path tool; it is validated as a number and dropped. Any other prefix shape
// is rejected with a [ParseError] rather than silently truncated.
//
// # Profile
//
// Consecutive points are joined by great-circle segments computed with the
// spherical law of cosines on a sphere of radius [EarthRadiusMeters]. The
// cumulative distance column starts at 0 and is the X axis of an elevation
// profile; the elevation column comes from a remote [ElevationService] and
// is index-aligned with the input points.
//
// Output rows are written as latitude, longitude, cumulative distance (m),
// elevation (m). See [Row].
package domain
