// Package cartography provides small value types for locations and
// headings on integer grids: two- and three-dimensional points and the
// four compass directions.
//
// Points are plain structs passed by value. They are comparable with ==
// and can be used directly as map keys. Coordinate arithmetic never
// wraps: an operation that would overflow int64 panics with an
// *OverflowError.
package cartography
