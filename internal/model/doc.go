package model

// Package model defines domain data structures used across the app: the
// service filter, conversion tasks and their status, runtime releases, and the
// Rojo project / instance tree read back after a conversion.
