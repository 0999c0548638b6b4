package common

// UnknownStr is the fallback label for enum values without a known name.
const UnknownStr = "unknown"
