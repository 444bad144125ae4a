package fs

import (
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const sniffLimit = 4096

// Extensions the backend serves as mangled text; sniffing them is pointless.
var binaryExtensions = map[string]string{
	".7z":    "application/x-7z-compressed",
	".class": "application/x-java-applet",
	".dll":   "application/vnd.microsoft.portable-executable",
	".exe":   "application/vnd.microsoft.portable-executable",
	".gif":   "image/gif",
	".gz":    "application/gzip",
	".ico":   "image/x-icon",
	".jar":   "application/jar",
	".jpeg":  "image/jpeg",
	".jpg":   "image/jpeg",
	".mp3":   "audio/mpeg",
	".mp4":   "video/mp4",
	".pdf":   "application/pdf",
	".png":   "image/png",
	".so":    "application/x-sharedlib",
	".wasm":  "application/wasm",
	".woff2": "font/woff2",
	".zip":   "application/zip",
}

// Content is file text prepared for display.
type Content struct {
	Text   string
	Binary bool
	// MIME is the detected media type without parameters.
	MIME  string
	Lines int
	Bytes int
}

// PrepareContent classifies the text served for path. The text is kept
// exactly as served, byte order mark included, because search offsets count
// every character of it.
func PrepareContent(path, text string) Content {
	mediaType, isText := Classify(path, []byte(text))
	if !isText {
		return Content{Text: text, Binary: true, MIME: mediaType, Bytes: len(text)}
	}
	return Content{
		Text:  text,
		MIME:  mediaType,
		Lines: countLines(text),
		Bytes: len(text),
	}
}

// Classify returns the media type of content and whether it can be shown as
// text. Known binary extensions win over sniffing.
func Classify(path string, content []byte) (string, bool) {
	if mediaType, ok := binaryExtensions[strings.ToLower(filepath.Ext(path))]; ok && path != "" {
		return mediaType, false
	}
	if len(content) == 0 {
		return "text/plain", true
	}
	sample := content
	if len(sample) > sniffLimit {
		sample = sample[:sniffLimit]
	}
	detected := mimetype.Detect(sample)
	mediaType := baseType(detected.String())
	for m := detected; m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return mediaType, true
		}
	}
	return mediaType, false
}

func baseType(mediaType string) string {
	if i := strings.IndexByte(mediaType, ';'); i >= 0 {
		return strings.TrimSpace(mediaType[:i])
	}
	return mediaType
}

func countLines(text string) int {
	if text == "" {
		return 0
	}
	return strings.Count(text, "\n") + 1
}
