// Package domain implements the storm-relative kinematics engine: it turns a
// vertical wind profile observed by a WSR-88D radar (a VAD, Velocity-Azimuth
// Display) into a storm-relative hodograph point sequence and the derived
// parameters forecasters use to judge supercell and tornado potential.
//
// # Data Source
//
// Wind profiles originate from NEXRAD VAD wind profile products. The upstream
// collector service fetches and decodes the binary VWP files, optionally pairs
// them with a METAR surface wind observation, and publishes each request as
// flat JSON to the Kafka source topic. This package never performs I/O; it
// consumes already-parsed numeric inputs and returns structured numeric
// outputs.
//
// # Wind Conventions
//
// Direction is meteorological: the compass bearing the wind blows FROM, in
// degrees [0, 360). Components follow from a single deterministic formula:
//
//	u = -speed * sin(direction)   (eastward)
//	v = -speed * cos(direction)   (northward)
//
// so a north wind (0°) has a southward-pointing vector (0, -speed). Speeds are
// carried in knots, the unit of the source data; helicity integration converts
// to m/s (1 kt = 0.514444 m/s) so SRH comes out in m²/s².
//
// A "VRB" (variable) METAR wind direction maps to 0°. This is a modeling
// approximation inherited from the reference behavior, not a meteorological
// truth; downstream consumers depend on it, so it is preserved as-is.
//
// # Storm Motion
//
// An explicitly supplied storm motion (range-checked: direction [0,360],
// speed [0,100] kt) always wins. Otherwise the Bunkers internal-dynamics
// technique estimates a right-mover/left-mover pair: the 0–6 km mean wind
// offset perpendicular to the 0–6 km shear vector by an empirically derived
// 7.5 m/s. The two movers are reflections of each other about the mean wind.
// Whichever motion is resolved for a request is threaded unchanged through
// helicity, shear, and hodograph construction — it is never re-estimated
// mid-computation.
//
// # Derived Parameters
//
// SRH (storm-relative helicity) over 0–0.5, 0–1, and 0–3 km; bulk shear at
// 1, 3, and 6 km; an effective shear depth/magnitude over the surface-anchored
// aligned layer; and the Esterheld critical angle between the storm-relative
// surface wind and the 0–500 m shear vector. Every parameter the profile
// cannot support at full depth is reported as absent (nil), never as zero:
// consumers must be able to tell "not computable" from "computed as zero".
package domain
