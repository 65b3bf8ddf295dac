// Package pixeltrack is a marketing event relay: marketers log in with the ad
// platform, pick one of their pixels and record events that are stored
// locally and forwarded to the platform's conversions endpoint.
//
// @title pixeltrack API
// @version 0.1.0
// @description Marketing event relay: OAuth login, pixel selection, event recording and server-side conversions delivery.
// @BasePath /
// @securityDefinitions.apikey SessionAuth
// @in header
// @name Authorization
// @description Session token from the pt_session cookie, sent as `Bearer <token>`.
package pixeltrack
