// Package domjs implements the dom capability interfaces on top of
// syscall/js. It only builds for js/wasm; this file keeps the import path
// resolvable from native builds.
package domjs
