package blurb

import (
	"crypto/md5"
	"encoding/base64"
	"errors"
	"fmt"
	"maps"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	sortableLayout = "2006-01-02-15-04-05"
	dateLayout     = "2006-01-02"
)

// ErrNoIssue is returned when an entry has neither a gh-issue nor a bpo number.
var ErrNoIssue = errors.New("'gh-issue:' or 'bpo:' must be specified in the metadata")

// filenameKeys are stored in a next file's name rather than its contents.
var filenameKeys = []string{"section", "date", "gh-issue", "bpo", "nonce"}

// SortableDatetime formats t for use in next file names.
func SortableDatetime(t time.Time) string {
	return t.Format(sortableLayout)
}

// CurrentDate formats t as a release date.
func CurrentDate(t time.Time) string {
	return t.Format(dateLayout)
}

// Nonce derives a short file name token from an entry body.
func Nonce(body string) string {
	sum := md5.Sum([]byte(body))
	return base64.URLEncoding.EncodeToString(sum[:])[:6]
}

// ParseNextFilename extracts the metadata stored in the path of a next file:
// the section from its directory and the date, issue and nonce from its name.
func ParseNextFilename(path string) (Metadata, error) {
	dir := filepath.Base(filepath.Dir(path))
	section := UnsanitizeSection(dir)
	if !IsSection(section) {
		return nil, fmt.Errorf("unknown section %q in %s", section, path)
	}

	name := filepath.Base(path)
	fields := strings.Split(name, ".")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	if len(fields) < 4 || fields[len(fields)-1] != "rst" {
		return nil, fmt.Errorf("can't parse next filename %q", name)
	}

	md := Metadata{
		"date":    fields[0],
		"nonce":   fields[len(fields)-2],
		"section": section,
	}
	for _, field := range fields[1 : len(fields)-2] {
		matched := false
		for _, key := range []string{"gh-issue", "bpo"} {
			if _, value, ok := strings.Cut(field, key+"-"); ok {
				md[key] = strings.TrimSpace(value)
				matched = true
				break
			}
		}
		if !matched {
			return nil, fmt.Errorf("unparsable field %q in next filename %q", field, name)
		}
	}
	return md, nil
}

// LoadNext reads a next file, taking its section, issue, date and nonce
// from the file name.
func LoadNext(path string) (Blurbs, error) {
	md, err := ParseNextFilename(path)
	if err != nil {
		return nil, err
	}
	entries, err := load(path, md)
	if err != nil {
		return nil, err
	}
	if len(entries) != 1 {
		return nil, fmt.Errorf("%s: next files must hold exactly one entry, found %d", path, len(entries))
	}
	return entries, nil
}

// NextFilename returns the path a new entry is saved under in newsDir.
// Missing date and nonce metadata are derived from now and the body.
func NextFilename(newsDir string, e Entry, now time.Time) (string, error) {
	md := withDefaults(e, now)
	section := SanitizeSection(md["section"])

	field := ""
	if n, _ := strconv.Atoi(md["gh-issue"]); n > 0 {
		field = "gh-issue-" + md["gh-issue"]
	} else if n, _ := strconv.Atoi(md["bpo"]); n > 0 {
		field = "bpo-" + md["bpo"]
	} else {
		return "", ErrNoIssue
	}

	name := fmt.Sprintf("%s.%s.%s.rst", md["date"], field, md["nonce"])
	return filepath.Join(newsDir, "next", section, name), nil
}

func withDefaults(e Entry, now time.Time) Metadata {
	md := maps.Clone(e.Metadata)
	if md == nil {
		md = Metadata{}
	}
	defaults := map[string]string{
		"gh-issue": "0",
		"bpo":      "0",
		"date":     SortableDatetime(now),
		"nonce":    Nonce(e.Body),
	}
	for k, v := range defaults {
		if _, ok := md[k]; !ok {
			md[k] = v
		}
	}
	return md
}

// SaveNext saves a single entry as a next file under newsDir and returns
// its path. Metadata encoded in the file name is not repeated in the file.
func (b Blurbs) SaveNext(newsDir string, now time.Time) (string, error) {
	if len(b) != 1 {
		return "", fmt.Errorf("next files hold exactly one entry, got %d", len(b))
	}
	path, err := NextFilename(newsDir, b[0], now)
	if err != nil {
		return "", err
	}

	md := maps.Clone(b[0].Metadata)
	for _, key := range filenameKeys {
		delete(md, key)
	}
	if err := (Blurbs{{Metadata: md, Body: b[0].Body}}).Save(path); err != nil {
		return "", err
	}
	return path, nil
}
