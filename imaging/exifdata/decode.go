// Package exifdata decodes EXIF/TIFF tag trees into JSON-safe maps and
// reconstructs GPS coordinates from their DMS rational encoding.
//
// Two independent sources are consulted and merged with a first-non-empty-wins
// rule: the structured directory the codec exposes natively, and a raw-bytes
// reparse of any attached EXIF blob. The second path covers containers
// (notably WEBP and PNG) that carry EXIF outside the codec's tag API.
package exifdata

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	exif3 "github.com/dsoprea/go-exif/v3"
	exifcommon "github.com/dsoprea/go-exif/v3/common"
	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"

	"github.com/RawdodReverend/EXIF-STRIP/imaging/domain"
)

// Result aggregates everything the tag-tree decoder found in one asset.
type Result struct {
	Tags   domain.TagMap
	GPSRaw domain.TagMap
	GPS    *domain.GpsRecord

	// RawBlobBytes is the length of the attached EXIF blob located by the
	// raw reparse, when one exists.
	RawBlobBytes *int

	Warnings []string
}

// Extract decodes the tag tree of an asset from its full raw bytes.
//
// Stage one parses the structured directory (JPEG APP1, TIFF). Stage two
// scans the byte stream for an attached blob and reparses it; its tags are
// used only when stage one found none, and its coordinate only when stage
// one produced no coordinate. The merge never overwrites a successfully
// parsed value.
func Extract(data []byte) Result {
	res := Result{Tags: domain.TagMap{}, GPSRaw: domain.TagMap{}}

	if x, err := exif.Decode(bytes.NewReader(data)); err == nil {
		walkStructured(x, &res)
		res.GPS = gpsFromStructured(x)
	}

	rawTags, rawGPSRaw, rawGPS, blobLen := rawReparse(data, &res)
	if blobLen > 0 {
		res.RawBlobBytes = &blobLen
	}
	if len(res.Tags) == 0 {
		res.Tags = rawTags
	}
	if len(res.GPSRaw) == 0 {
		res.GPSRaw = rawGPSRaw
	}
	if res.GPS == nil {
		res.GPS = rawGPS
	}

	return res
}

// walkStructured flattens every parsed field into the tag map, routing GPS
// sub-directory entries into their own map.
func walkStructured(x *exif.Exif, res *Result) {
	_ = x.Walk(walkerFunc(func(name exif.FieldName, tag *tiff.Tag) error {
		v := structuredTagValue(tag)
		if strings.HasPrefix(string(name), "GPS") {
			res.GPSRaw[string(name)] = v
		} else {
			res.Tags[string(name)] = v
		}
		return nil
	}))
}

type walkerFunc func(exif.FieldName, *tiff.Tag) error

func (f walkerFunc) Walk(name exif.FieldName, tag *tiff.Tag) error { return f(name, tag) }

func structuredTagValue(tag *tiff.Tag) (out any) {
	defer func() {
		if recover() != nil {
			out = Unserializable
		}
	}()

	count := int(tag.Count)
	switch tag.Format() {
	case tiff.StringVal:
		s, err := tag.StringVal()
		if err != nil {
			return Unserializable
		}
		return jsonSafe(s)

	case tiff.IntVal:
		vals := make([]any, 0, count)
		for i := 0; i < count; i++ {
			n, err := tag.Int(i)
			if err != nil {
				return Unserializable
			}
			vals = append(vals, int64(n))
		}
		return scalarOrSeq(vals)

	case tiff.RatVal:
		vals := make([]any, 0, count)
		for i := 0; i < count; i++ {
			num, den, err := tag.Rat2(i)
			if err != nil {
				return Unserializable
			}
			vals = append(vals, ratioValue(float64(num), float64(den)))
		}
		return scalarOrSeq(vals)

	case tiff.FloatVal:
		vals := make([]any, 0, count)
		for i := 0; i < count; i++ {
			f, err := tag.Float(i)
			if err != nil {
				return Unserializable
			}
			vals = append(vals, finite(f))
		}
		return scalarOrSeq(vals)

	default:
		return jsonSafe(tag.Val)
	}
}

func scalarOrSeq(vals []any) any {
	if len(vals) == 1 {
		return vals[0]
	}
	return vals
}

// gpsFromStructured reconstructs the coordinate from the codec-native GPS
// directory. Both halves must convert or the record is absent.
func gpsFromStructured(x *exif.Exif) *domain.GpsRecord {
	lat, okLat := dmsFromTags(x, exif.GPSLatitude, exif.GPSLatitudeRef)
	lon, okLon := dmsFromTags(x, exif.GPSLongitude, exif.GPSLongitudeRef)
	if !okLat || !okLon {
		return nil
	}
	return &domain.GpsRecord{Latitude: lat, Longitude: lon}
}

func dmsFromTags(x *exif.Exif, field, refField exif.FieldName) (float64, bool) {
	tag, err := x.Get(field)
	if err != nil || tag.Count < 3 {
		return 0, false
	}
	refTag, err := x.Get(refField)
	if err != nil {
		return 0, false
	}
	ref, err := refTag.StringVal()
	if err != nil {
		return 0, false
	}

	var comps [3]float64
	for i := range comps {
		num, den, err := tag.Rat2(i)
		if err != nil || den == 0 {
			return 0, false
		}
		comps[i] = float64(num) / float64(den)
	}
	return dmsToDecimal(comps[0], comps[1], comps[2], ref)
}

// rawReparse locates an attached EXIF blob anywhere in the byte stream and
// decodes it independently of the codec. The dsoprea parser signals internal
// failures by panicking, so the whole pass is fenced with a recover.
func rawReparse(data []byte, res *Result) (tags, gpsRaw domain.TagMap, gps *domain.GpsRecord, blobLen int) {
	tags = domain.TagMap{}
	gpsRaw = domain.TagMap{}

	defer func() {
		if r := recover(); r != nil {
			res.Warnings = append(res.Warnings, fmt.Sprintf("raw EXIF reparse aborted: %v", r))
		}
	}()

	rawExif, err := exif3.SearchAndExtractExif(data)
	if err != nil {
		if !errors.Is(err, exif3.ErrNoExif) {
			res.Warnings = append(res.Warnings, fmt.Sprintf("raw EXIF search: %v", err))
		}
		return tags, gpsRaw, nil, 0
	}
	blobLen = len(rawExif)

	entries, _, err := exif3.GetFlatExifData(rawExif, nil)
	if err != nil {
		res.Warnings = append(res.Warnings, fmt.Sprintf("raw EXIF parse: %v", err))
		return tags, gpsRaw, nil, blobLen
	}
	for _, e := range entries {
		if e.TagName == "" {
			continue
		}
		if strings.Contains(e.IfdPath, "GPSInfo") {
			gpsRaw[e.TagName] = jsonSafe(e.Value)
		} else {
			tags[e.TagName] = jsonSafe(e.Value)
		}
	}

	gps = gpsFromRawBlob(rawExif)
	return tags, gpsRaw, gps, blobLen
}

func gpsFromRawBlob(rawExif []byte) *domain.GpsRecord {
	im, err := exifcommon.NewIfdMappingWithStandard()
	if err != nil {
		return nil
	}
	ti := exif3.NewTagIndex()

	_, index, err := exif3.Collect(im, ti, rawExif)
	if err != nil {
		return nil
	}

	gpsIfd, err := index.RootIfd.ChildWithIfdPath(exifcommon.IfdGpsInfoStandardIfdIdentity)
	if err != nil {
		return nil
	}
	gi, err := gpsIfd.GpsInfo()
	if err != nil {
		return nil
	}

	lat, okLat := dmsToDecimal(gi.Latitude.Degrees, gi.Latitude.Minutes, gi.Latitude.Seconds,
		string(gi.Latitude.Orientation))
	lon, okLon := dmsToDecimal(gi.Longitude.Degrees, gi.Longitude.Minutes, gi.Longitude.Seconds,
		string(gi.Longitude.Orientation))
	if !okLat || !okLon {
		return nil
	}
	return &domain.GpsRecord{Latitude: lat, Longitude: lon}
}
