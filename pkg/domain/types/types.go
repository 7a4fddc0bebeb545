package types

// Version is the service version, overridden at build time via ldflags
var Version = "dev"

// ServiceName is used in health responses and error reports
const ServiceName = "collie"
