// Package api defines the wire-level JSON shapes of the REST surface.
package api

import "github.com/RawdodReverend/EXIF-STRIP/imaging/domain"

// InspectResponse is the JSON rendering of a metadata summary. Nullable
// fields use pointers so "unknown" serializes as null rather than a zero.
type InspectResponse struct {
	Filename string   `json:"filename"`
	Format   *string  `json:"format"`
	Size     []int    `json:"size"`
	Mode     *string  `json:"mode"`
	Frames   int      `json:"frames"`
	HasAlpha bool     `json:"has_alpha"`
	EXIF     map[string]any `json:"exif"`
	GPS      GPSResponse    `json:"gps"`

	ICCProfile bool `json:"icc_profile"`
	ICCBytes   *int `json:"icc_bytes"`
	XMP        bool `json:"xmp"`
	XMPBytes   *int `json:"xmp_bytes"`

	EXIFRawBytes  *int     `json:"exif_raw_bytes,omitempty"`
	OtherInfoKeys []string `json:"other_info_keys"`
	Warnings      []string `json:"warnings"`
}

// GPSResponse carries the raw GPS sub-directory plus, when both halves of
// the coordinate converted, the [latitude, longitude] pair.
type GPSResponse struct {
	Raw    map[string]any `json:"raw,omitempty"`
	LatLon []float64      `json:"latlon,omitempty"`
}

// ErrorResponse is the body of client-error replies.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewInspectResponse converts a domain summary into its wire form.
func NewInspectResponse(s *domain.MetadataSummary) InspectResponse {
	resp := InspectResponse{
		Filename:      s.Filename,
		Frames:        s.Frames,
		HasAlpha:      s.HasAlpha,
		EXIF:          s.EXIF,
		ICCProfile:    s.ICCPresent,
		ICCBytes:      s.ICCBytes,
		XMP:           s.XMPPresent,
		XMPBytes:      s.XMPBytes,
		EXIFRawBytes:  s.RawEXIFBytes,
		OtherInfoKeys: s.OtherKeys,
		Warnings:      s.Warnings,
	}
	if resp.EXIF == nil {
		resp.EXIF = map[string]any{}
	}
	if resp.OtherInfoKeys == nil {
		resp.OtherInfoKeys = []string{}
	}
	if resp.Warnings == nil {
		resp.Warnings = []string{}
	}

	if s.Format != nil {
		f := string(*s.Format)
		resp.Format = &f
		resp.Size = []int{s.Width, s.Height}
		mode := s.Mode
		resp.Mode = &mode
	}

	if len(s.GPSRaw) > 0 {
		resp.GPS.Raw = s.GPSRaw
	}
	if s.GPS != nil {
		resp.GPS.LatLon = []float64{s.GPS.Latitude, s.GPS.Longitude}
	}

	return resp
}
