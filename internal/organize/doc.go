// Package organize places classified documents into their category folders,
// resolving filename collisions and surviving cross-device moves.
package organize
