// Package config provides the configuration for the docdeck command: where
// content is read from, where artifacts are written, and the page and theme
// settings applied while rendering.
package config
