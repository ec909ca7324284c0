package convert

// Package convert runs the external conversion script through the Lune
// runtime. The subprocess contract is fixed: "run", the script path, the
// input file, the output directory and a JSON array of service names, in that
// order. Success is decided by the exit code alone.
