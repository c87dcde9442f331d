// Package files is the desktop's fake file system: a few named folders
// with fixed listings. Nothing touches the real disk.
package files
