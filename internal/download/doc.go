package download

// Package download fetches a single URL into a file. It is used to pull the
// runtime release archive and reports byte progress to the caller so the UI
// can echo it into the log panel.
