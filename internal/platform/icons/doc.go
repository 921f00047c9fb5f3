// Package icons defines the icon identifiers content may reference.
//
// The catalog maps stable icon ids to labels and Lucide glyph names so that
// content describes intent while templates choose the presentation.
package icons
