package cli

import (
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
)

var errBadDataURL = errors.New("not a base64 data URL")

// encodeDataURL wraps raw image bytes the way a browser canvas exports them.
func encodeDataURL(data []byte) string {
	mime := http.DetectContentType(data)
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = mime[:i]
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// decodeDataURL returns the payload and media type of a base64 data URL.
func decodeDataURL(s string) ([]byte, string, error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return nil, "", errBadDataURL
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, "", errBadDataURL
	}
	mime, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return nil, "", errBadDataURL
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", errBadDataURL
	}
	return data, mime, nil
}
