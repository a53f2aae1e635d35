package devopsdecoded

import "embed"

// EmbeddedAssets contains the scripts served with every build: bios.js, the
// client for the typed bio stream.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS

// biosScriptPath is where the embedded bios client is served.
const biosScriptPath = "/public/bios.js"
