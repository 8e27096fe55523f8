package api

import (
	"encoding/base64"
	"fmt"
	"html/template"
	"mime"
	"net/http"
	"os"
	"path/filepath"
)

// Logo is the banner image shown at the top of the page.
type Logo struct {
	Data        []byte
	ContentType string
}

// LoadLogo reads the image at path. The content type comes from the extension,
// falling back to sniffing the bytes.
func LoadLogo(path string) (Logo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Logo{}, fmt.Errorf("failed to read logo %s: %w", path, err)
	}
	ct := mime.TypeByExtension(filepath.Ext(path))
	if ct == "" {
		ct = http.DetectContentType(data)
	}
	return Logo{Data: data, ContentType: ct}, nil
}

// DataURI returns the image inlined as a base64 data URI.
func (l Logo) DataURI() template.URL {
	if len(l.Data) == 0 {
		return ""
	}
	return template.URL("data:" + l.ContentType + ";base64," + base64.StdEncoding.EncodeToString(l.Data))
}
