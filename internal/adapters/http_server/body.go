package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"math"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// fields is a request body read field by field. Values of the wrong JSON
// type are coerced where it makes sense and dropped otherwise, so a client
// never gets a 400 for a field it sent.
type fields interface {
	// text returns nil for an absent field or a falsy non-string (0, false, null).
	text(key string) *string
	// number returns nil unless the field holds an integer or integer string.
	number(key string) *int64
}

// readFields reads a JSON or urlencoded body. An empty body reads as an
// empty object.
func readFields(r *http.Request) (fields, error) {
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct == "application/x-www-form-urlencoded" {
		if err := r.ParseForm(); err != nil {
			return nil, badRequest("invalid form body")
		}
		return formFields(r.PostForm), nil
	}
	var m jsonFields
	err := json.NewDecoder(r.Body).Decode(&m)
	if err == nil || errors.Is(err, io.EOF) {
		return m, nil
	}
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return nil, &apiError{Status: http.StatusRequestEntityTooLarge, Message: "request body too large"}
	}
	return nil, badRequest("invalid JSON body")
}

type jsonFields map[string]json.RawMessage

func (f jsonFields) text(key string) *string {
	raw, ok := f[key]
	if !ok || len(raw) == 0 {
		return nil
	}
	switch raw[0] {
	case '"':
		var s string
		if json.Unmarshal(raw, &s) != nil {
			return nil
		}
		return &s
	case 't':
		s := "true"
		return &s
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		if v, err := strconv.ParseFloat(string(raw), 64); err != nil || v == 0 {
			return nil
		}
		s := string(raw)
		return &s
	}
	// null, false, objects and arrays
	return nil
}

func (f jsonFields) number(key string) *int64 {
	raw, ok := f[key]
	if !ok || len(raw) == 0 {
		return nil
	}
	lit := string(raw)
	if raw[0] == '"' {
		if json.Unmarshal(raw, &lit) != nil {
			return nil
		}
	}
	return integer(lit)
}

type formFields url.Values

// text returns nil when key was not posted, so absent stays absent.
func (f formFields) text(key string) *string {
	if _, ok := f[key]; !ok {
		return nil
	}
	s := url.Values(f).Get(key)
	return &s
}

func (f formFields) number(key string) *int64 {
	s := f.text(key)
	if s == nil {
		return nil
	}
	return integer(*s)
}

// integer parses s as a whole number, accepting forms like "3" and "3.0".
func integer(s string) *int64 {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return &n
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v != math.Trunc(v) || math.Abs(v) > 1<<53 {
		return nil
	}
	n := int64(v)
	return &n
}
