// Package formats provides the binary file formats read and written by the
// rtin tools.
package formats
