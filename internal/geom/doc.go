// Package geom implements the induced Riemannian geometry of an ellipse
// embedded in the plane: the metric coefficient and its derivative in two
// angular charts, arc length and perimeter, periodic intrinsic distance,
// and packing-fraction conversions.
package geom
