package swagger

// @Tag.name Meta
// @Tag.description Liveness, version and metrics.

// @Tag.name Auth
// @Tag.description OAuth login round trip and session teardown.

// @Tag.name Users
// @Tag.description The logged-in marketer.

// @Tag.name Pixels
// @Tag.description Pixel discovery across ad accounts and pixel selection.

// @Tag.name Events
// @Tag.description Event recording, conversions delivery, history and the live stream.
