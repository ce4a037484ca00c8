// Package stamp provides the describe and postfix commands that read a Git
// repository and publish its provenance as build properties.
package stamp
