package lune

// Package lune manages the external runtime that runs the conversion script:
// mapping the host to a release asset, querying the latest release, installing
// it into the application directory, and locating an existing binary.
