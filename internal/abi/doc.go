// Package abi provides the word and alignment arithmetic shared by the
// planner and the WIT layout calculator: rounding to alignment, power-of-two
// checks, discriminant sizing and overflow-checked uint32 addition.
package abi
