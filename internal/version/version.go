package version

// Version is the bcsync release version.
const Version = "0.2.0"
