// Package ui draws the status caption and debugging overlays on top of the
// ebiten window. Its contents are only compiled with the ebiten build tag.
package ui
