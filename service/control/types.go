// SPDX-License-Identifier: BSD-3-Clause

package control

// StopResponse acknowledges a stop request before the process begins
// shutting down.
type StopResponse struct {
	Stopped bool `json:"stopped"`
}

// VersionResponse carries the service version string.
type VersionResponse struct {
	Version string `json:"version"`
}

// GetTemperaturesResponse carries a snapshot of the sample cache.
type GetTemperaturesResponse struct {
	Temperatures map[string]float32 `json:"temperatures"`
}

// ReloadConfigResponse carries a human-readable outcome for a
// reload_config call.
type ReloadConfigResponse struct {
	Outcome string `json:"outcome"`
}

// SwitchActiveCurveRequest addresses one fan channel and names the curve
// it should switch to.
type SwitchActiveCurveRequest struct {
	Controller uint8  `json:"controller"`
	Channel    uint8  `json:"channel"`
	Curve      string `json:"curve"`
}

// GetActiveCurveRequest addresses one fan channel.
type GetActiveCurveRequest struct {
	Controller uint8 `json:"controller"`
	Channel    uint8 `json:"channel"`
}

// GetActiveCurveResponse carries the active curve's name.
type GetActiveCurveResponse struct {
	Curve string `json:"curve"`
}

// GetFirmwareVersionRequest addresses one controller.
type GetFirmwareVersionRequest struct {
	Controller uint8 `json:"controller"`
}

// GetFirmwareVersionResponse carries the decoded "{major}.{minor}.{patch}"
// firmware version string.
type GetFirmwareVersionResponse struct {
	Version string `json:"version"`
}

// UpdateCurveDataRequest addresses one fan channel's named curve and
// supplies its replacement. CurveData is the YAML textual form of a
// config.Curve entry, e.g.:
//
//	kind: step-curve
//	tmps: [30, 50, 70]
//	spds: [40, 70, 100]
type UpdateCurveDataRequest struct {
	Controller uint8  `json:"controller"`
	Channel    uint8  `json:"channel"`
	Curve      string `json:"curve"`
	CurveData  string `json:"curve_data"`
}
