package version

// Version is the current Facet release version
const Version = "0.1.0"
