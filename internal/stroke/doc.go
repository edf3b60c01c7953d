// Package stroke converts a stroked outline into the equivalent filled
// outline, following tiny-skia/kurbo's offset-path construction.
//
// # Algorithm overview
//
// Stroke expansion builds two parallel offset paths per subpath:
//   - forward: offset by +width/2 perpendicular to the tangent
//   - backward: offset by -width/2 perpendicular to the tangent
//
// The filled contour is then: forward path, end cap, backward path
// reversed, start cap, close.
//
// # Line caps
//
//   - CapButt: flat, ends exactly at the endpoint
//   - CapRound: semicircular, radius = width/2
//   - CapSquare: square, extends width/2 past the endpoint
//
// # Line joins
//
//   - JoinMiter: sharp corner, limited by MiterLimit
//   - JoinRound: circular arc
//   - JoinBevel: straight line across the corner
//
// Minimum stroke width clamps to 0.5 device pixels.
package stroke
