// Package viz rasterizes particles into text frames.
//
//   - [Canvas]: frame buffer of cells, rebuilt for every frame
//   - [Renderer]: glyph ramp, palette colouring and frame serialization
//   - [Palette]: four built-in 256-colour palettes
//
// Frames start with [CursorHome] so each one overwrites the previous frame
// instead of scrolling. Colour goes through a lipgloss renderer pinned to the
// ANSI-256 profile; output bytes never depend on the host terminal.
package viz
