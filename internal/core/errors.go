package core

import "errors"

var (
	// ErrConstruction reports invalid dimensions or scale values.
	ErrConstruction = errors.New("invalid construction parameters")
	// ErrOutOfBounds reports coordinates or region bounds outside the grid.
	ErrOutOfBounds = errors.New("out of bounds")
	// ErrDisplayInit reports that a display driver could not be initialised.
	ErrDisplayInit = errors.New("display init failed")
)
